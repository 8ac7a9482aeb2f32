package graphs

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/psidex/assetmap/internal/palette"
	"github.com/psidex/assetmap/internal/render"
)

type GraphologyNodeAttributes struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Size      float64 `json:"size"`
	Label     string  `json:"label"`
	Color     string  `json:"color"`
	AssetType string  `json:"asset_type"`
	Status    string  `json:"status,omitempty"`
}

type GraphologyNode struct {
	Key        string                   `json:"key"`
	Attributes GraphologyNodeAttributes `json:"attributes"`
}

type GraphologyEdgeAttributes struct {
	Size  int    `json:"size"`
	Label string `json:"label,omitempty"`
	Type  string `json:"type"`
}

type GraphologyEdge struct {
	Key        string                   `json:"key"`
	Source     string                   `json:"source"`
	Target     string                   `json:"target"`
	Attributes GraphologyEdgeAttributes `json:"attributes"`
}

type GraphologyOptions struct {
	Type       string `json:"type"`
	Multi      bool   `json:"multi"`
	AllowLoops bool   `json:"allowSelfLoops"`
}

// SerializedGraph is graphology's JSON import/export format.
type SerializedGraph struct {
	Options GraphologyOptions `json:"options"`
	Nodes   []GraphologyNode  `json:"nodes"`
	Edges   []GraphologyEdge  `json:"edges"`
}

// Graphology writes a frame as a serialized graphology graph that sigma.js can load
// with the layout already applied.
type Graphology struct{}

var _ Exporter = Graphology{}

func (Graphology) Extension() string {
	return ".json"
}

// Serialize converts f, y is flipped since sigma's axis points up.
func (Graphology) Serialize(f render.Frame) SerializedGraph {
	g := SerializedGraph{
		Options: GraphologyOptions{Type: "directed", Multi: true, AllowLoops: true},
		Nodes:   make([]GraphologyNode, 0, len(f.Nodes)),
		Edges:   make([]GraphologyEdge, 0, len(f.Links)),
	}
	for _, n := range f.Nodes {
		g.Nodes = append(g.Nodes, GraphologyNode{
			Key: n.ID,
			Attributes: GraphologyNodeAttributes{
				X:         n.X,
				Y:         -n.Y,
				Size:      palette.NodeRadius / 2,
				Label:     n.Name,
				Color:     n.Color,
				AssetType: string(n.AssetType),
				Status:    string(n.Status),
			},
		})
	}
	for i, l := range f.Links {
		g.Edges = append(g.Edges, GraphologyEdge{
			Key:    strconv.Itoa(i),
			Source: l.Source,
			Target: l.Target,
			Attributes: GraphologyEdgeAttributes{
				Size:  2,
				Label: l.RelationshipType,
				Type:  "arrow",
			},
		})
	}
	return g
}

func (g Graphology) Render(w io.Writer, f render.Frame) error {
	return json.NewEncoder(w).Encode(g.Serialize(f))
}
