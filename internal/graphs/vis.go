package graphs

import (
	"encoding/json"
	"fmt"
	"html"
	"io"

	"github.com/psidex/assetmap/internal/palette"
	"github.com/psidex/assetmap/internal/render"
)

type visNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Title string  `json:"title"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
	Size  int     `json:"size"`
	Shape string  `json:"shape"`
}

type visEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Label  string `json:"label,omitempty"`
	Arrows string `json:"arrows"`
}

type visData struct {
	Nodes []visNode `json:"nodes"`
	Edges []visEdge `json:"edges"`
}

// Vis renders a frame to a vis-network HTML page with physics turned off, so the page
// shows the layout computed here.
type Vis struct {
	title string
}

var _ Exporter = Vis{}

func NewVis(title string) Vis {
	if title == "" {
		title = "assetmap"
	}
	return Vis{title: title}
}

func (Vis) Extension() string {
	return ".html"
}

func visDataFor(f render.Frame) visData {
	d := visData{
		Nodes: make([]visNode, 0, len(f.Nodes)),
		Edges: make([]visEdge, 0, len(f.Links)),
	}
	for _, n := range f.Nodes {
		d.Nodes = append(d.Nodes, visNode{
			ID:    n.ID,
			Label: n.Label,
			Title: n.Name,
			X:     n.X,
			Y:     n.Y,
			Color: n.Color,
			Size:  palette.NodeRadius,
			Shape: "dot",
		})
	}
	for _, l := range f.Links {
		d.Edges = append(d.Edges, visEdge{
			From:   l.Source,
			To:     l.Target,
			Label:  l.RelationshipType,
			Arrows: "to",
		})
	}
	return d
}

func (v Vis) Render(w io.Writer, f render.Frame) error {
	data, err := json.Marshal(visDataFor(f))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, visHTML, html.EscapeString(v.title), data)
	return err
}
