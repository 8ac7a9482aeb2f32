// Package palette maps asset types to their fixed colour, icon and label.
package palette

import (
	"github.com/psidex/assetmap/internal/graphdata"
)

// NodeRadius is the drawn circle radius in graph units.
const NodeRadius = 20

type Entry struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// Fallback is used for asset types the inventory knows but the map doesn't.
var Fallback = Entry{Color: "#999", Icon: "circle", Label: "Other"}

var entries = map[graphdata.AssetType]Entry{
	graphdata.Hardware: {Color: "#337ab7", Icon: "server", Label: "Hardware"},
	graphdata.Software: {Color: "#5cb85c", Icon: "monitor", Label: "Software"},
	graphdata.Cloud:    {Color: "#7c3aed", Icon: "cloud", Label: "Cloud"},
	graphdata.Network:  {Color: "#f0ad4e", Icon: "wifi", Label: "Network"},
}

func Lookup(t graphdata.AssetType) Entry {
	if e, ok := entries[t]; ok {
		return e
	}
	return Fallback
}

func Color(t graphdata.AssetType) string {
	return Lookup(t).Color
}

// Legend returns the entries for every known asset type in display order.
func Legend() []Entry {
	legend := make([]Entry, 0, len(graphdata.AssetTypes))
	for _, t := range graphdata.AssetTypes {
		legend = append(legend, entries[t])
	}
	return legend
}
