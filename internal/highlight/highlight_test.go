package highlight

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/psidex/assetmap/internal/graphdata"
)

func edgesFrom(endpoints []int) []graphdata.Edge {
	var edges []graphdata.Edge
	for i := 0; i+1 < len(endpoints); i += 2 {
		edges = append(edges, graphdata.Edge{Source: strconv.Itoa(endpoints[i]), Target: strconv.Itoa(endpoints[i+1])})
	}
	return edges
}

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i)
	}
	return out
}

func TestAdjacencyProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("relevant nodes are exactly the selection and its neighbours", prop.ForAll(
		func(n int, endpoints []int, selected int) bool {
			edges := edgesFrom(endpoints)
			sel := strconv.Itoa(selected)
			e := Compute(sel, edges, ids(n))

			want := map[string]bool{sel: true}
			for _, edge := range edges {
				if edge.Source == sel {
					want[edge.Target] = true
				}
				if edge.Target == sel {
					want[edge.Source] = true
				}
			}
			for _, id := range ids(n) {
				if e.NodeRelevant(id) != want[id] {
					return false
				}
			}
			for i, edge := range edges {
				if e.LinkRelevant(i) != (edge.Source == sel || edge.Target == sel) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 15),
		gen.SliceOf(gen.IntRange(0, 14)),
		gen.IntRange(0, 14),
	))

	properties.TestingRun(t)
}

// A-B, B-C with A selected: A and B relevant, C dimmed, A-B relevant, B-C suppressed.
func TestThreeNodeScenario(t *testing.T) {
	edges := []graphdata.Edge{{Source: "A", Target: "B"}, {Source: "B", Target: "C"}}
	e := Compute("A", edges, []string{"A", "B", "C"})

	assert.True(t, e.NodeRelevant("A"))
	assert.True(t, e.NodeRelevant("B"))
	assert.False(t, e.NodeRelevant("C"))
	assert.True(t, e.LinkRelevant(0))
	assert.False(t, e.LinkRelevant(1))

	assert.Equal(t, NodeStyle{Opacity: 1, Stroke: "#333", StrokeWidth: 3}, e.NodeStyle("A"))
	assert.Equal(t, NodeStyle{Opacity: 1, Stroke: "#fff", StrokeWidth: 2}, e.NodeStyle("B"))
	assert.Equal(t, NodeStyle{Opacity: 0.3, Stroke: "#fff", StrokeWidth: 2}, e.NodeStyle("C"))
	assert.Equal(t, LinkStyle{Opacity: 1, Stroke: "#666"}, e.LinkStyle(0))
	assert.Equal(t, LinkStyle{Opacity: 0.15, Stroke: "#eee"}, e.LinkStyle(1))
}

func TestNoSelection(t *testing.T) {
	edges := []graphdata.Edge{{Source: "A", Target: "B"}}
	e := Compute("", edges, []string{"A", "B", "C"})

	assert.False(t, e.Active)
	for _, id := range []string{"A", "B", "C"} {
		assert.Equal(t, NodeStyle{Opacity: 1, Stroke: "#fff", StrokeWidth: 2}, e.NodeStyle(id))
	}
	assert.Equal(t, LinkStyle{Opacity: 0.6, Stroke: "#ccc"}, e.LinkStyle(0))
	assert.True(t, e.LinkRelevant(0))
}

func TestOutOfRangeLink(t *testing.T) {
	e := Compute("A", nil, []string{"A"})
	assert.False(t, e.LinkRelevant(3))
	assert.Equal(t, LinkStyle{Opacity: 0.15, Stroke: "#eee"}, e.LinkStyle(3))
}
