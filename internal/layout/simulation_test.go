package layout

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/assetmap/internal/graphdata"
)

func sampleSimulation(cfg Config) *Simulation {
	s := graphdata.Sample()
	snap := graphdata.Normalize(s.Nodes, s.Links)
	return New(snap.NodeIDs(), snap.Edges, cfg)
}

func TestInitialPlacement(t *testing.T) {
	sim := New([]string{"a", "b", "a"}, nil, Config{})
	require.Len(t, sim.Bodies(), 2)
	for _, b := range sim.Bodies() {
		assert.True(t, b.Placed())
	}
	// First body sits at radius 10*sqrt(0.5) on the x axis.
	assert.InDelta(t, 10*math.Sqrt(0.5), sim.Bodies()[0].X, 1e-9)
	assert.InDelta(t, 0, sim.Bodies()[0].Y, 1e-9)
	assert.Equal(t, Idle, sim.State())
	assert.Equal(t, 1.0, sim.Alpha())
}

func TestSettles(t *testing.T) {
	sim := sampleSimulation(Config{Seed: 1})
	ticks := sim.Settle(1000)

	assert.Equal(t, Settled, sim.State())
	assert.LessOrEqual(t, ticks, 301)
	assert.Less(t, sim.Alpha(), DefaultAlphaMin)

	var mx, my float64
	for _, b := range sim.Bodies() {
		mx += b.X
		my += b.Y
	}
	n := float64(len(sim.Bodies()))
	assert.InDelta(t, DefaultWidth/2, mx/n, 1)
	assert.InDelta(t, DefaultHeight/2, my/n, 1)

	bodies := sim.Bodies()
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			d := math.Hypot(bodies[i].X-bodies[j].X, bodies[i].Y-bodies[j].Y)
			assert.Greater(t, d, 40.0, "%s and %s overlap", bodies[i].ID, bodies[j].ID)
		}
	}
}

func TestDeterministicForSeed(t *testing.T) {
	a := sampleSimulation(Config{Seed: 42})
	b := sampleSimulation(Config{Seed: 42})
	a.Settle(500)
	b.Settle(500)
	for i := range a.Bodies() {
		assert.Equal(t, a.Bodies()[i].X, b.Bodies()[i].X)
		assert.Equal(t, a.Bodies()[i].Y, b.Bodies()[i].Y)
	}
}

func TestCoincidentBodiesSeparate(t *testing.T) {
	sim := New([]string{"a", "b"}, []graphdata.Edge{{Source: "a", Target: "b"}}, Config{})
	for _, b := range sim.Bodies() {
		b.X, b.Y = 100, 100
	}
	sim.Settle(300)
	a, _ := sim.Lookup("a")
	b, _ := sim.Lookup("b")
	assert.Greater(t, math.Hypot(a.X-b.X, a.Y-b.Y), 1.0)
}

func TestPinnedBodyStays(t *testing.T) {
	sim := sampleSimulation(Config{})
	b, ok := sim.Lookup("1")
	require.True(t, ok)
	b.Pin(10, 20)

	for i := 0; i < 50; i++ {
		sim.Tick()
		assert.Equal(t, 10.0, b.X)
		assert.Equal(t, 20.0, b.Y)
		assert.Zero(t, b.VX)
		assert.Zero(t, b.VY)
	}

	b.Unpin()
	sim.Tick()
	_, _, pinned := b.Pinned()
	assert.False(t, pinned)
}

func TestDanglingEdgesIgnored(t *testing.T) {
	sim := New([]string{"a"}, []graphdata.Edge{{Source: "a", Target: "ghost"}}, Config{})
	assert.Empty(t, sim.springs)
	assert.True(t, sim.Tick())
}

func TestFind(t *testing.T) {
	sim := New([]string{"a", "b"}, nil, Config{})
	a, _ := sim.Lookup("a")
	b, _ := sim.Lookup("b")
	a.X, a.Y = 0, 0
	b.X, b.Y = 5, 0

	// Both are in range, b is drawn last so it's on top.
	assert.Equal(t, "b", sim.Find(2, 0, 20).ID)
	assert.Equal(t, "a", sim.Find(-16, 0, 20).ID)
	// The radius is inclusive: b is exactly 20 away.
	assert.Equal(t, "b", sim.Find(-15, 0, 20).ID)
	assert.Nil(t, sim.Find(-20.5, 0, 20))
	assert.Nil(t, sim.Find(100, 100, 20))
}

func TestStopReleasesSubscription(t *testing.T) {
	clock := NewManualClock()
	sim := sampleSimulation(Config{})
	require.NoError(t, sim.Start(clock))
	assert.Equal(t, 1, clock.Subscribers())
	assert.NotNil(t, sim.Frames())

	sim.Stop()
	sim.Stop()
	assert.Equal(t, 0, clock.Subscribers())
	assert.Nil(t, sim.Frames())
	assert.Equal(t, Stopped, sim.State())

	assert.False(t, sim.Tick())
	sim.Restart()
	sim.SetAlphaTarget(0.3)
	assert.Equal(t, Stopped, sim.State())
	assert.Zero(t, sim.AlphaTarget())
	assert.ErrorIs(t, sim.Start(clock), ErrStopped)
}

func TestSettleDropsAndRestartTakesSubscription(t *testing.T) {
	clock := NewManualClock()
	sim := sampleSimulation(Config{AlphaMin: 0.5})
	require.NoError(t, sim.Start(clock))

	for sim.State() == Running {
		clock.Fire()
		<-sim.Frames()
		sim.Tick()
	}
	assert.Equal(t, Settled, sim.State())
	assert.Equal(t, 0, clock.Subscribers())

	sim.SetAlphaTarget(DragAlphaTarget)
	sim.Restart()
	assert.Equal(t, Running, sim.State())
	assert.Equal(t, 1, clock.Subscribers())
}

func TestRunUntilSettled(t *testing.T) {
	sim := sampleSimulation(Config{AlphaMin: 0.2})
	calls := 0
	err := sim.Run(context.Background(), NewFrameClock(time.Millisecond), func(*Simulation) {
		calls++
	})
	require.NoError(t, err)
	assert.Equal(t, Settled, sim.State())
	assert.Equal(t, sim.Ticks(), calls)
}

func TestRunStopsOnCancel(t *testing.T) {
	sim := sampleSimulation(Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sim.Run(ctx, NewManualClock(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, Stopped, sim.State())
}
