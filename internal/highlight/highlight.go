// Package highlight works out which nodes and links are emphasised for the current
// selection and how they are drawn.
package highlight

import (
	"github.com/psidex/assetmap/internal/graphdata"
)

// Emphasis is the result of Compute. When Active is false nothing is selected and
// everything is drawn at the default emphasis.
type Emphasis struct {
	Active   bool
	Selected string
	// Nodes holds the relevant node ids: the selected node and its neighbours.
	Nodes map[string]bool
	// Links is parallel to the edges Compute was called with.
	Links []bool
}

// Compute is a linear scan over edges. An empty selected id means no selection.
func Compute(selected string, edges []graphdata.Edge, nodeIDs []string) Emphasis {
	e := Emphasis{
		Active:   selected != "",
		Selected: selected,
		Nodes:    make(map[string]bool, len(nodeIDs)),
		Links:    make([]bool, len(edges)),
	}
	if !e.Active {
		for _, id := range nodeIDs {
			e.Nodes[id] = true
		}
		for i := range e.Links {
			e.Links[i] = true
		}
		return e
	}

	e.Nodes[selected] = true
	adjacent := graphdata.Neighbors(edges, selected)
	for _, id := range nodeIDs {
		if adjacent.Contains(id) {
			e.Nodes[id] = true
		}
	}
	for i, edge := range edges {
		e.Links[i] = edge.Touches(selected)
	}
	return e
}

// NodeRelevant reports whether id is the selection or one of its neighbours. With no
// selection every node is relevant.
func (e Emphasis) NodeRelevant(id string) bool {
	if !e.Active {
		return true
	}
	return e.Nodes[id]
}

func (e Emphasis) LinkRelevant(i int) bool {
	if !e.Active {
		return true
	}
	return i >= 0 && i < len(e.Links) && e.Links[i]
}

const (
	relevantOpacity   = 1.0
	suppressedOpacity = 0.3

	selectedStroke      = "#333"
	selectedStrokeWidth = 3
	nodeStroke          = "#fff"
	nodeStrokeWidth     = 2

	linkDefaultOpacity    = 0.6
	linkRelevantOpacity   = 1.0
	linkSuppressedOpacity = 0.15
	linkDefaultStroke     = "#ccc"
	linkRelevantStroke    = "#666"
	linkSuppressedStroke  = "#eee"
)

type NodeStyle struct {
	Opacity     float64 `json:"opacity"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"stroke_width"`
}

type LinkStyle struct {
	Opacity float64 `json:"opacity"`
	Stroke  string  `json:"stroke"`
}

func (e Emphasis) NodeStyle(id string) NodeStyle {
	s := NodeStyle{Opacity: relevantOpacity, Stroke: nodeStroke, StrokeWidth: nodeStrokeWidth}
	if !e.Active {
		return s
	}
	if !e.Nodes[id] {
		s.Opacity = suppressedOpacity
	}
	if id == e.Selected {
		s.Stroke, s.StrokeWidth = selectedStroke, selectedStrokeWidth
	}
	return s
}

func (e Emphasis) LinkStyle(i int) LinkStyle {
	switch {
	case !e.Active:
		return LinkStyle{Opacity: linkDefaultOpacity, Stroke: linkDefaultStroke}
	case e.LinkRelevant(i):
		return LinkStyle{Opacity: linkRelevantOpacity, Stroke: linkRelevantStroke}
	default:
		return LinkStyle{Opacity: linkSuppressedOpacity, Stroke: linkSuppressedStroke}
	}
}
