// Package render projects simulation state in to drawable frames and writes them out
// as SVG.
package render

import (
	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/highlight"
	"github.com/psidex/assetmap/internal/interact"
	"github.com/psidex/assetmap/internal/layout"
	"github.com/psidex/assetmap/internal/palette"
)

const (
	labelMaxLen   = 14
	labelKeepLen  = 12
	labelEllipsis = "..."
)

// Label shortens long asset names for drawing under a node.
func Label(name string) string {
	r := []rune(name)
	if len(r) > labelMaxLen {
		return string(r[:labelKeepLen]) + labelEllipsis
	}
	return name
}

type NodeFrame struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Label     string              `json:"label"`
	AssetType graphdata.AssetType `json:"asset_type"`
	Status    graphdata.Status    `json:"status"`
	Color     string              `json:"color"`
	X         float64             `json:"x"`
	Y         float64             `json:"y"`
	Style     highlight.NodeStyle `json:"style"`
}

type LinkFrame struct {
	Source           string              `json:"source"`
	Target           string              `json:"target"`
	RelationshipType string              `json:"relationship_type"`
	X1               float64             `json:"x1"`
	Y1               float64             `json:"y1"`
	X2               float64             `json:"x2"`
	Y2               float64             `json:"y2"`
	LabelX           float64             `json:"label_x"`
	LabelY           float64             `json:"label_y"`
	Style            highlight.LinkStyle `json:"style"`
}

// Frame is everything needed to draw one tick.
type Frame struct {
	Tick      int                `json:"tick"`
	Alpha     float64            `json:"alpha"`
	State     string             `json:"state"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Transform interact.Transform `json:"transform"`
	Nodes     []NodeFrame        `json:"nodes"`
	Links     []LinkFrame        `json:"links"`
}

// Empty reports whether there's nothing to draw.
func (f Frame) Empty() bool {
	return len(f.Nodes) == 0
}

// Positions is where Project reads body coordinates from.
type Positions interface {
	Lookup(id string) (*layout.Body, bool)
}

var _ Positions = (*layout.Simulation)(nil)

// Project reads the current body positions for every node and link endpoint. An id
// with no placed body is drawn at the origin.
func Project(pos Positions, snap graphdata.Snapshot) Frame {
	f := Frame{
		Nodes: make([]NodeFrame, len(snap.Nodes)),
		Links: make([]LinkFrame, len(snap.Edges)),
	}
	xy := func(id string) (float64, float64) {
		if pos == nil {
			return 0, 0
		}
		b, ok := pos.Lookup(id)
		if !ok || !b.Placed() {
			return 0, 0
		}
		return b.X, b.Y
	}

	for i, n := range snap.Nodes {
		x, y := xy(n.ID)
		f.Nodes[i] = NodeFrame{
			ID:        n.ID,
			Name:      n.Name,
			Label:     Label(n.Name),
			AssetType: n.AssetType,
			Status:    n.Status,
			Color:     palette.Color(n.AssetType),
			X:         x,
			Y:         y,
		}
	}
	for i, e := range snap.Edges {
		x1, y1 := xy(e.Source)
		x2, y2 := xy(e.Target)
		f.Links[i] = LinkFrame{
			Source:           e.Source,
			Target:           e.Target,
			RelationshipType: e.RelationshipType,
			X1:               x1,
			Y1:               y1,
			X2:               x2,
			Y2:               y2,
			LabelX:           (x1 + x2) / 2,
			LabelY:           (y1 + y2) / 2,
		}
	}
	return f
}

// Emphasize applies the highlight styles. Links are matched by position, so e must
// have been computed over the same edges the frame was projected from.
func (f *Frame) Emphasize(e highlight.Emphasis) {
	for i := range f.Nodes {
		f.Nodes[i].Style = e.NodeStyle(f.Nodes[i].ID)
	}
	for i := range f.Links {
		f.Links[i].Style = e.LinkStyle(i)
	}
}

// Describe copies the simulation progress in to the frame.
func (f *Frame) Describe(sim *layout.Simulation) {
	if sim == nil {
		return
	}
	f.Tick = sim.Ticks()
	f.Alpha = sim.Alpha()
	f.State = sim.State().String()
}
