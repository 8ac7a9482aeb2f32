package graphdata

import (
	"encoding/json"
	"reflect"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildGraph makes nodeCount nodes ("0".."n-1") and one link per pair in endpoints.
// Endpoint values past nodeCount produce dangling links.
func buildGraph(nodeCount int, endpoints []int) Graph {
	g := Graph{}
	for i := 0; i < nodeCount; i++ {
		g.Nodes = append(g.Nodes, Node{
			ID:        strconv.Itoa(i),
			Name:      "asset-" + strconv.Itoa(i),
			AssetType: AssetTypes[i%len(AssetTypes)],
			Status:    Active,
		})
	}
	for i := 0; i+1 < len(endpoints); i += 2 {
		src := ID(strconv.Itoa(endpoints[i]))
		if endpoints[i]%3 == 0 && endpoints[i] < nodeCount {
			src = Ref(&g.Nodes[endpoints[i]])
		}
		g.Links = append(g.Links, Link{Source: src, Target: ID(strconv.Itoa(endpoints[i+1])), RelationshipType: "uses"})
	}
	return g
}

func TestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("normalize is idempotent and keeps endpoint ids", prop.ForAll(
		func(nodeCount int, endpoints []int) bool {
			g := buildGraph(nodeCount, endpoints)
			once := Normalize(g.Nodes, g.Links)
			twice := Normalize(once.Nodes, once.Links())
			if !reflect.DeepEqual(once, twice) {
				return false
			}
			for i, l := range g.Links {
				if once.Edges[i].Source != l.Source.Resolve() || once.Edges[i].Target != l.Target.Resolve() {
					return false
				}
			}
			return len(once.Nodes) == len(g.Nodes)
		},
		gen.IntRange(0, 20),
		gen.SliceOf(gen.IntRange(0, 25)),
	))

	properties.Property("filter never keeps a link with a dropped end", prop.ForAll(
		func(nodeCount int, endpoints []int, typeIndex int, search string) bool {
			g := buildGraph(nodeCount, endpoints)
			c := Criteria{Search: search}
			if typeIndex < len(AssetTypes) {
				c.AssetType = AssetTypes[typeIndex]
			}
			out := Filter(g, c)
			kept := make(map[string]bool)
			for _, n := range out.Nodes {
				if !c.Match(n) {
					return false
				}
				kept[n.ID] = true
			}
			for _, l := range out.Links {
				if !kept[l.Source.Resolve()] || !kept[l.Target.Resolve()] {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 20),
		gen.SliceOf(gen.IntRange(0, 25)),
		gen.IntRange(0, len(AssetTypes)),
		gen.OneConstOf("", "asset", "1", "ASSET-2", "zzz"),
	))

	properties.Property("impact stays within depth of the root", prop.ForAll(
		func(nodeCount int, endpoints []int, depth int) bool {
			g := buildGraph(nodeCount, endpoints)
			out, err := Impact(g, "0", depth)
			if err != nil {
				return false
			}
			if _, ok := out.NodeByID("0"); !ok {
				return false
			}
			return len(out.Nodes) <= len(g.Nodes)
		},
		gen.IntRange(1, 20),
		gen.SliceOf(gen.IntRange(0, 25)),
		gen.IntRange(0, 4),
	))

	properties.TestingRun(t)
}

func TestNormalizeDoesNotAlias(t *testing.T) {
	g := Sample()
	s := Normalize(g.Nodes, g.Links)
	s.Nodes[0].Name = "changed"
	assert.Equal(t, "Prod-DB-01", g.Nodes[0].Name)
}

func TestNormalizeResolvesReferences(t *testing.T) {
	a := Node{ID: "a"}
	links := []Link{{Source: Ref(&a), Target: ID("b"), RelationshipType: "runs"}}
	s := Normalize([]Node{a, {ID: "b"}}, links)
	require.Len(t, s.Edges, 1)
	assert.Equal(t, Edge{Source: "a", Target: "b", RelationshipType: "runs"}, s.Edges[0])
	assert.Equal(t, []string{"a", "b"}, s.NodeIDs())
}

func TestDecodeBackendShape(t *testing.T) {
	payload := `{
		"nodes": [
			{"id": 7, "name": "Core-Switch", "type": "network", "status": "active"},
			{"id": "8", "name": "Lambda", "asset_type": "cloud_service", "status": "planned"}
		],
		"links": [
			{"source": 7, "target": "8", "type": "connects_to"},
			{"source": {"id": 8, "name": "Lambda"}, "target": 7, "relationship_type": "hosts"}
		]
	}`

	var g Graph
	require.NoError(t, json.Unmarshal([]byte(payload), &g))
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, Node{ID: "7", Name: "Core-Switch", AssetType: Network, Status: Active}, g.Nodes[0])
	assert.Equal(t, Cloud, g.Nodes[1].AssetType)

	require.Len(t, g.Links, 2)
	assert.Equal(t, "7", g.Links[0].Source.Resolve())
	assert.Equal(t, "connects_to", g.Links[0].RelationshipType)
	assert.True(t, g.Links[1].Source.IsRef())
	assert.Equal(t, "8", g.Links[1].Source.Resolve())
	assert.Equal(t, "hosts", g.Links[1].RelationshipType)

	out, err := json.Marshal(g.Links[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"source": "8", "target": "7", "relationship_type": "hosts"}`, string(out))
}

func TestDecodeRejectsBadID(t *testing.T) {
	var n Node
	assert.Error(t, json.Unmarshal([]byte(`{"id": true}`), &n))
}

func TestFilter(t *testing.T) {
	g := Sample()

	network := Filter(g, Criteria{AssetType: Network})
	assert.Len(t, network.Nodes, 3)
	// 10->6 and 6->3 survive, 10->1 loses its target.
	assert.Len(t, network.Links, 2)

	search := Filter(g, Criteria{Search: "cLoUd"})
	require.Len(t, search.Nodes, 1)
	assert.Equal(t, "Jira Cloud", search.Nodes[0].Name)
	assert.Empty(t, search.Links)

	// Whitespace in the query is matched as typed.
	assert.Len(t, Filter(g, Criteria{Search: " cloud"}).Nodes, 1)
	assert.Empty(t, Filter(g, Criteria{Search: "cloud "}).Nodes)
	assert.False(t, Criteria{Search: " "}.Empty())

	all := Filter(g, Criteria{})
	assert.Len(t, all.Nodes, len(g.Nodes))
	assert.Len(t, all.Links, len(g.Links))
	assert.True(t, Criteria{}.Empty())
}

func TestFilterDropsDanglingLinks(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a", Name: "a"}},
		Links: []Link{{Source: ID("a"), Target: ID("ghost")}},
	}
	assert.Empty(t, Filter(g, Criteria{}).Links)
}

func TestConnections(t *testing.T) {
	conns := Connections(Sample(), "3")
	require.Len(t, conns, 3)
	for _, c := range conns {
		assert.Equal(t, Incoming, c.Direction)
		require.NotNil(t, c.Node)
	}
	assert.Equal(t, "Prod-DB-01", conns[0].Node.Name)

	conns = Connections(Sample(), "8")
	require.Len(t, conns, 1)
	assert.Equal(t, Outgoing, conns[0].Direction)
	assert.Equal(t, "hosts", conns[0].RelationshipType)

	g := Graph{Nodes: []Node{{ID: "a"}}, Links: []Link{{Source: ID("a"), Target: ID("gone")}}}
	conns = Connections(g, "a")
	require.Len(t, conns, 1)
	assert.Nil(t, conns[0].Node)
}

func TestImpact(t *testing.T) {
	out, err := Impact(Sample(), "10", 2)
	require.NoError(t, err)

	var ids []string
	for _, n := range out.Nodes {
		ids = append(ids, n.ID)
	}
	assert.ElementsMatch(t, []string{"1", "3", "6", "7", "10", "12"}, ids)
	for _, l := range out.Links {
		assert.NotEqual(t, "9", l.Source.Resolve())
	}

	out, err = Impact(Sample(), "10", 1)
	require.NoError(t, err)
	assert.Len(t, out.Nodes, 3)

	_, err = Impact(Sample(), "404", 2)
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestEnums(t *testing.T) {
	assert.True(t, Hardware.Valid())
	assert.False(t, AssetType("license").Valid())
	assert.True(t, Maintenance.Valid())
	assert.False(t, Status("lost").Valid())
}
