package graphs

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/highlight"
	"github.com/psidex/assetmap/internal/render"
)

func testFrame() render.Frame {
	return render.Frame{
		Width:  900,
		Height: 550,
		Nodes: []render.NodeFrame{
			{ID: "1", Name: "Prod-DB-01", Label: "Prod-DB-01", AssetType: graphdata.Hardware, Color: "#337ab7", X: 100, Y: 50,
				Style: highlight.NodeStyle{Opacity: 1, Stroke: "#fff", StrokeWidth: 2}},
			{ID: "2", Name: "Auth-Lambda", Label: "Auth-Lambda", AssetType: graphdata.Cloud, Color: "#7c3aed", X: 200, Y: 80,
				Style: highlight.NodeStyle{Opacity: 1, Stroke: "#fff", StrokeWidth: 2}},
			{ID: "3", Name: "Prod-DB-01", Label: "Prod-DB-01", AssetType: "printer", Color: "#999", X: 300, Y: 120,
				Style: highlight.NodeStyle{Opacity: 1, Stroke: "#fff", StrokeWidth: 2}},
		},
		Links: []render.LinkFrame{
			{Source: "2", Target: "1", RelationshipType: "connects_to", Style: highlight.LinkStyle{Opacity: 0.6, Stroke: "#ccc"}},
			{Source: "2", Target: "3", RelationshipType: "uses", Style: highlight.LinkStyle{Opacity: 0.6, Stroke: "#ccc"}},
		},
	}
}

func TestByName(t *testing.T) {
	for _, name := range Exporters {
		e, err := ByName(name, "test")
		require.NoError(t, err, name)
		assert.True(t, strings.HasPrefix(e.Extension(), "."))
	}
	_, err := ByName("png", "test")
	assert.Error(t, err)
}

func TestAdjacencyJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, AdjacencyJSON{}.Render(&buf, testFrame()))

	var got map[string][]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string][]string{
		"1": {},
		"2": {"1", "3"},
		"3": {},
	}, got)
}

func TestGraphology(t *testing.T) {
	g := Graphology{}.Serialize(testFrame())
	require.Len(t, g.Nodes, 3)
	require.Len(t, g.Edges, 2)
	assert.Equal(t, "directed", g.Options.Type)
	assert.Equal(t, -50.0, g.Nodes[0].Attributes.Y)
	assert.Equal(t, "#7c3aed", g.Nodes[1].Attributes.Color)
	assert.Equal(t, "uses", g.Edges[1].Attributes.Label)
	assert.NotEqual(t, g.Edges[0].Key, g.Edges[1].Key)
}

func TestVis(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewVis("<inventory>").Render(&buf, testFrame()))
	out := buf.String()
	assert.Contains(t, out, "<title>&lt;inventory&gt;</title>")
	assert.Contains(t, out, `physics: { enabled: false }`)
	assert.Contains(t, out, `{"from":"2","to":"1","label":"connects_to","arrows":"to"}`)
}

func TestEChartsNodesAndLinks(t *testing.T) {
	f := testFrame()
	nodes := echartsNodes(f)
	require.Len(t, nodes, 3)
	assert.Equal(t, "Prod-DB-01", nodes[0].Name)
	assert.Equal(t, "Prod-DB-01 #3", nodes[2].Name)
	assert.Equal(t, float32(100), nodes[0].X)
	assert.Equal(t, 0, nodes[0].Category)
	assert.Equal(t, len(graphdata.AssetTypes), nodes[2].Category)

	links := echartsLinks(f)
	require.Len(t, links, 2)
	assert.Equal(t, 1, links[0].Source)
	assert.Equal(t, 0, links[0].Target)
	assert.Equal(t, "connects_to", links[0].Label.Formatter)

	assert.Len(t, echartsCategories(), len(graphdata.AssetTypes)+1)
}

func TestEChartsNamesAreUnique(t *testing.T) {
	f := render.Frame{Nodes: []render.NodeFrame{
		{ID: "1", Name: "X"},
		{ID: "2", Name: "X #3"},
		{ID: "3", Name: "X"},
		{ID: "4", Name: ""},
		{ID: "5", Name: "X #3"},
	}}
	seen := map[string]bool{}
	for _, n := range echartsNodes(f) {
		assert.False(t, seen[n.Name], "duplicate name %q", n.Name)
		seen[n.Name] = true
	}
	assert.Len(t, seen, len(f.Nodes))
}

func TestRenderToFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "out")
	for _, name := range Exporters {
		e, err := ByName(name, "test")
		require.NoError(t, err)
		written, err := RenderToFile(e, base+"-"+name, testFrame())
		require.NoError(t, err, name)
		info, err := os.Stat(written)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), name)
	}
}

func TestRecorderLimit(t *testing.T) {
	r := NewRecorder(2)
	for i := 0; i < 5; i++ {
		r.PublishFrame(render.Frame{Tick: i})
	}
	assert.Equal(t, 2, r.Len())
	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, 4, last.Tick)
	assert.Equal(t, 3, r.Frames()[0].Tick)
}
