package snapshot

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/layout"
	"github.com/psidex/assetmap/internal/render"
)

func TestInspectPainterDOM(t *testing.T) {
	page := `<html><body><svg id="canvas"><g>
<line class="link"></line><line class="link"></line><line></line>
<g class="node"><circle></circle></g>
<g class="node selected"><circle></circle></g>
<g class="nodes"></g>
</g></svg></body></html>`

	c, err := Inspect(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Nodes)
	assert.Equal(t, 2, c.Links)
	assert.Empty(t, c.NodeIDs)
}

func TestInspectExportedSVG(t *testing.T) {
	g := graphdata.Sample()
	snap := graphdata.Normalize(g.Nodes, g.Links)
	sim := layout.New(snap.NodeIDs(), snap.Edges, layout.Config{Seed: 1})
	sim.Settle(50)

	f := render.Project(sim, snap)
	f.Width, f.Height = 900, 550
	var buf bytes.Buffer
	require.NoError(t, render.WriteSVG(&buf, f))

	c, err := Inspect(&buf)
	require.NoError(t, err)
	assert.Equal(t, 12, c.Nodes)
	assert.Equal(t, 12, c.Links)
	assert.ElementsMatch(t, snap.NodeIDs(), c.NodeIDs)
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{URL: "http://localhost:8080", Quality: 101}.withDefaults()
	assert.Equal(t, 1280, o.Width)
	assert.Equal(t, 800, o.Height)
	assert.Equal(t, DefaultTimeout, o.Timeout)
	assert.Equal(t, DefaultSettle, o.Settle)
	assert.Equal(t, DefaultQuality, o.Quality)
}

func TestCaptureNeedsURL(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := Capture(ctx, Options{})
	assert.ErrorIs(t, err, ErrNoURL)
}
