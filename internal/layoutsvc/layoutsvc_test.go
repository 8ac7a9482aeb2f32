package layoutsvc

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/layout"
	"github.com/psidex/assetmap/internal/metrics"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	Register(s, NewServer(nil, metrics.NewRegistry(), layout.Config{Seed: 1}))
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	cc, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { cc.Close() })
	return NewClient(cc)
}

func sampleRequest() Request {
	g := graphdata.Sample()
	snap := graphdata.Normalize(g.Nodes, g.Links)
	return Request{Nodes: snap.NodeIDs(), Links: snap.Edges, Width: 900, Height: 550, Seed: 7}
}

func TestComputeSettles(t *testing.T) {
	c := newTestClient(t)
	req := sampleRequest()
	req.MaxTicks = 1000

	resp, err := c.Compute(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Settled)
	assert.LessOrEqual(t, resp.Ticks, 1000)
	require.Len(t, resp.Positions, len(req.Nodes))
	for _, id := range req.Nodes {
		p := resp.Positions[id]
		assert.NotEqual(t, Position{}, p, id)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	c := newTestClient(t)
	req := sampleRequest()
	req.MaxTicks = 20

	a, err := c.Compute(context.Background(), req)
	require.NoError(t, err)
	b, err := c.Compute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 20, a.Ticks)
	assert.False(t, a.Settled)
}

func TestComputeEmptyGraph(t *testing.T) {
	c := newTestClient(t)
	resp, err := c.Compute(context.Background(), Request{})
	require.NoError(t, err)
	assert.Empty(t, resp.Positions)
	assert.Zero(t, resp.Ticks)
}

func TestComputeRejectsBadRequests(t *testing.T) {
	c := newTestClient(t)

	for name, req := range map[string]Request{
		"unknown node": {Nodes: []string{"a"}, Links: []graphdata.Edge{{Source: "a", Target: "b"}}},
		"duplicates":   {Nodes: []string{"a", "a"}},
		"too many":     {Nodes: []string{"a"}, MaxTicks: MaxTicksLimit + 1},
	} {
		_, err := c.Compute(context.Background(), req)
		assert.Equal(t, codes.InvalidArgument, status.Code(err), name)
	}
}

func TestResponseLookup(t *testing.T) {
	resp := Response{Positions: map[string]Position{"a": {X: 1, Y: 2}}}
	b, ok := resp.Lookup("a")
	require.True(t, ok)
	assert.True(t, b.Placed())
	assert.Equal(t, 1.0, b.X)
	_, ok = resp.Lookup("b")
	assert.False(t, ok)
}
