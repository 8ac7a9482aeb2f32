package graphdata

// Sample is the demo inventory shown when the API can't be reached.
func Sample() Graph {
	return Graph{
		Nodes: []Node{
			{ID: "1", Name: "Prod-DB-01", AssetType: Hardware, Status: Active},
			{ID: "2", Name: "Auth-Lambda", AssetType: Cloud, Status: Active},
			{ID: "3", Name: "Firewall-Edge-01", AssetType: Network, Status: Active},
			{ID: "4", Name: "Microsoft 365", AssetType: Software, Status: Active},
			{ID: "5", Name: "Dev-WS-22", AssetType: Hardware, Status: Active},
			{ID: "6", Name: "VPN-Concentrator", AssetType: Network, Status: Maintenance},
			{ID: "7", Name: "Splunk SIEM", AssetType: Software, Status: Active},
			{ID: "8", Name: "Azure-VNET", AssetType: Cloud, Status: Active},
			{ID: "9", Name: "Legacy-ERP", AssetType: Hardware, Status: Retired},
			{ID: "10", Name: "Core-Switch-01", AssetType: Network, Status: Active},
			{ID: "11", Name: "Jira Cloud", AssetType: Software, Status: Active},
			{ID: "12", Name: "S3-Backup", AssetType: Cloud, Status: Active},
		},
		Links: []Link{
			{Source: ID("2"), Target: ID("1"), RelationshipType: "connects_to"},
			{Source: ID("1"), Target: ID("3"), RelationshipType: "protected_by"},
			{Source: ID("1"), Target: ID("7"), RelationshipType: "monitored_by"},
			{Source: ID("5"), Target: ID("4"), RelationshipType: "runs"},
			{Source: ID("5"), Target: ID("11"), RelationshipType: "uses"},
			{Source: ID("6"), Target: ID("3"), RelationshipType: "connects_to"},
			{Source: ID("8"), Target: ID("2"), RelationshipType: "hosts"},
			{Source: ID("10"), Target: ID("1"), RelationshipType: "connects_to"},
			{Source: ID("10"), Target: ID("6"), RelationshipType: "connects_to"},
			{Source: ID("7"), Target: ID("3"), RelationshipType: "monitors"},
			{Source: ID("1"), Target: ID("12"), RelationshipType: "backed_up_to"},
			{Source: ID("9"), Target: ID("1"), RelationshipType: "replaced_by"},
		},
	}
}
