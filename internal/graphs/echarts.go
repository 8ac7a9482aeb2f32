package graphs

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/lib"
	"github.com/psidex/assetmap/internal/palette"
	"github.com/psidex/assetmap/internal/render"
)

// ECharts renders a frame to a go-echarts HTML page. Node positions come from the
// frame, echarts does no layout of its own.
type ECharts struct {
	title string
}

var _ Exporter = ECharts{}

func NewECharts(title string) ECharts {
	if title == "" {
		title = "assetmap"
	}
	return ECharts{title: title}
}

func (ECharts) Extension() string {
	return ".html"
}

func (e ECharts) Render(w io.Writer, f render.Frame) error {
	page := components.NewPage()
	page.SetPageTitle(e.title)
	page.AddCharts(e.graph(f))
	return page.Render(w)
}

// categoryIndex is the position of t in the legend, the fallback comes last.
func categoryIndex(t graphdata.AssetType) int {
	for i, known := range graphdata.AssetTypes {
		if known == t {
			return i
		}
	}
	return len(graphdata.AssetTypes)
}

func echartsCategories() []*opts.GraphCategory {
	legend := append(palette.Legend(), palette.Fallback)
	categories := make([]*opts.GraphCategory, 0, len(legend))
	for _, entry := range legend {
		categories = append(categories, &opts.GraphCategory{
			Name:      entry.Label,
			ItemStyle: &opts.ItemStyle{Color: entry.Color},
		})
	}
	return categories
}

func echartsNodes(f render.Frame) []opts.GraphNode {
	used := lib.NewSet[string]()
	nodes := make([]opts.GraphNode, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		// Series data is keyed by name.
		name := n.Name
		if used.Contains(name) || name == "" {
			name = n.Name + " #" + n.ID
			for i := 2; used.Contains(name); i++ {
				name = fmt.Sprintf("%s #%s-%d", n.Name, n.ID, i)
			}
		}
		used.Add(name)

		nodes = append(nodes, opts.GraphNode{
			Name:       name,
			X:          float32(n.X),
			Y:          float32(n.Y),
			Fixed:      opts.Bool(true),
			Category:   categoryIndex(n.AssetType),
			SymbolSize: palette.NodeRadius * 2,
			ItemStyle: &opts.ItemStyle{
				Color:       n.Color,
				BorderColor: n.Style.Stroke,
				BorderWidth: float32(n.Style.StrokeWidth),
				Opacity:     opts.Float(float32(n.Style.Opacity)),
			},
		})
	}
	return nodes
}

func echartsLinks(f render.Frame) []opts.GraphLink {
	index := make(map[string]int, len(f.Nodes))
	for i, n := range f.Nodes {
		index[n.ID] = i
	}
	links := make([]opts.GraphLink, 0, len(f.Links))
	for _, l := range f.Links {
		src, ok := index[l.Source]
		if !ok {
			continue
		}
		dst, ok := index[l.Target]
		if !ok {
			continue
		}
		links = append(links, opts.GraphLink{
			Source: src,
			Target: dst,
			Label: &opts.EdgeLabel{
				Show:      opts.Bool(true),
				Formatter: l.RelationshipType,
				FontSize:  9,
				Color:     "#999",
			},
			LineStyle: &opts.LineStyle{
				Color:   l.Style.Stroke,
				Width:   1.5,
				Opacity: opts.Float(float32(l.Style.Opacity)),
			},
		})
	}
	return links
}

func (e ECharts) graph(f render.Frame) *charts.Graph {
	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: e.title,
			Height:    "100vh",
			Width:     "100vw",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: e.title,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	graph.AddSeries(
		"assets",
		echartsNodes(f),
		echartsLinks(f),
		charts.WithGraphChartOpts(
			opts.GraphChart{
				Layout:     "none",
				Roam:       opts.Bool(true),
				Draggable:  opts.Bool(false),
				EdgeSymbol: []string{"none", "arrow"},
				Categories: echartsCategories(),
			},
		),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    "#333",
			Position: "bottom",
		}),
	)
	return graph
}
