// Package view owns one force layout at a time and everything that happens to it:
// drawing a new graph, ticking, pointer input, selection and teardown. All of it runs
// on a single loop goroutine.
package view

import (
	"context"
	"log/slog"
	"time"

	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/graphs"
	"github.com/psidex/assetmap/internal/highlight"
	"github.com/psidex/assetmap/internal/interact"
	"github.com/psidex/assetmap/internal/layout"
	"github.com/psidex/assetmap/internal/lib"
	"github.com/psidex/assetmap/internal/metrics"
	"github.com/psidex/assetmap/internal/palette"
	"github.com/psidex/assetmap/internal/render"
)

// DrawRequest is the entry point for showing a graph.
type DrawRequest struct {
	Nodes []graphdata.Node
	Links []graphdata.Link
	// Width and Height override the stored dimensions when > 0.
	Width  float64
	Height float64
	// OnClick is called on the loop goroutine when a node is clicked.
	OnClick    func(graphdata.Node)
	SelectedID string
}

type Options struct {
	Logger  *slog.Logger
	Metrics *metrics.Registry
	// Clock drives ticks, a FrameClock by default.
	Clock  layout.Scheduler
	Sink   graphs.FrameSink
	Layout layout.Config
}

type View struct {
	logger  *slog.Logger
	metrics *metrics.Registry
	clock   layout.Scheduler
	sink    graphs.FrameSink
	cfg     layout.Config
	queue   *lib.Queue[func(*View)]

	ctrl     *interact.Controller
	sim      *layout.Simulation
	snap     graphdata.Snapshot
	nodes    map[string]graphdata.Node
	emphasis highlight.Emphasis
	selected string
	onClick  func(graphdata.Node)

	width, height float64
	unmounted     bool
}

func New(opts Options) *View {
	v := &View{
		logger:  lib.OrDiscard(opts.Logger),
		metrics: opts.Metrics,
		clock:   opts.Clock,
		sink:    opts.Sink,
		cfg:     opts.Layout,
		queue:   lib.NewQueue[func(*View)](),
		ctrl:    interact.NewController(palette.NodeRadius),
		nodes:   map[string]graphdata.Node{},
		width:   opts.Layout.Width,
		height:  opts.Layout.Height,
	}
	if v.clock == nil {
		v.clock = layout.NewFrameClock(layout.DefaultFrameInterval)
	}
	if v.width <= 0 {
		v.width = layout.DefaultWidth
	}
	if v.height <= 0 {
		v.height = layout.DefaultHeight
	}
	v.ctrl.OnClick = v.clicked
	return v
}

// Draw replaces whatever is shown with req. The previous simulation is stopped before
// anything else happens. An empty node list leaves no simulation running.
func (v *View) Draw(req DrawRequest) {
	if v.unmounted {
		v.metrics.RecordDraw("unmounted")
		return
	}
	v.stopSimulation()

	if req.Width > 0 {
		v.width = req.Width
	}
	if req.Height > 0 {
		v.height = req.Height
	}
	v.snap = graphdata.Normalize(req.Nodes, req.Links)
	v.nodes = make(map[string]graphdata.Node, len(v.snap.Nodes))
	for _, n := range v.snap.Nodes {
		v.nodes[n.ID] = n
	}
	v.onClick = req.OnClick
	v.selected = req.SelectedID
	v.emphasis = highlight.Compute(v.selected, v.snap.Edges, v.snap.NodeIDs())

	if v.snap.Empty() {
		v.ctrl.Detach()
		v.metrics.RecordDraw("empty")
		v.logger.Debug("Drew empty graph")
		v.publish()
		return
	}

	cfg := v.cfg
	cfg.Width, cfg.Height = v.width, v.height
	v.sim = layout.New(v.snap.NodeIDs(), v.snap.Edges, cfg)
	v.ctrl.Attach(v.sim)
	if err := v.sim.Start(v.clock); err != nil {
		v.logger.Error("Failed to start simulation", "error", err)
	}
	v.metrics.RecordSimulationStarted()
	v.metrics.RecordDraw("drawn")
	v.logger.Debug("Drew graph", "nodes", len(v.snap.Nodes), "links", len(v.snap.Edges))
	v.publish()
}

// Select changes the highlighted node without touching the simulation. "" clears.
func (v *View) Select(id string) {
	if v.unmounted {
		return
	}
	v.selected = id
	v.emphasis = highlight.Compute(id, v.snap.Edges, v.snap.NodeIDs())
	v.publish()
}

func (v *View) Selected() string {
	return v.selected
}

// Resize stores the dimensions used by the next Draw.
func (v *View) Resize(width, height float64) {
	if v.unmounted || width <= 0 || height <= 0 {
		return
	}
	v.width, v.height = width, height
}

func (v *View) Dimensions() (width, height float64) {
	return v.width, v.height
}

// Unmount stops the simulation for good. Every later call on the view is a no-op.
func (v *View) Unmount() {
	if v.unmounted {
		return
	}
	v.stopSimulation()
	v.ctrl.Detach()
	v.unmounted = true
}

func (v *View) Unmounted() bool {
	return v.unmounted
}

// Simulation returns the current simulation, nil when nothing is drawn.
func (v *View) Simulation() *layout.Simulation {
	return v.sim
}

func (v *View) Transform() interact.Transform {
	return v.ctrl.Transform()
}

func (v *View) stopSimulation() {
	if v.sim == nil {
		return
	}
	v.sim.Stop()
	v.sim = nil
	v.metrics.RecordSimulationStopped()
}

// Frames is the tick channel of the current simulation, nil when there is nothing to
// tick.
func (v *View) Frames() <-chan time.Time {
	if v.sim == nil {
		return nil
	}
	return v.sim.Frames()
}

// Step runs one tick and publishes its frame.
func (v *View) Step() bool {
	if v.sim == nil {
		return false
	}
	start := time.Now()
	if !v.sim.Tick() {
		return false
	}
	v.publish()
	v.metrics.RecordTick(time.Since(start))
	return true
}

// Frame projects the current state.
func (v *View) Frame() render.Frame {
	var f render.Frame
	if v.sim != nil {
		f = render.Project(v.sim, v.snap)
		f.Describe(v.sim)
	} else {
		f = render.Frame{Nodes: []render.NodeFrame{}, Links: []render.LinkFrame{}}
	}
	f.Emphasize(v.emphasis)
	f.Width, f.Height = v.width, v.height
	f.Transform = v.ctrl.Transform()
	return f
}

func (v *View) publish() {
	if v.sink != nil {
		v.sink.PublishFrame(v.Frame())
	}
}

func (v *View) PointerDown(x, y float64) {
	if v.unmounted {
		return
	}
	v.ctrl.PointerDown(x, y)
}

func (v *View) PointerMove(x, y float64) {
	if v.unmounted {
		return
	}
	if v.ctrl.PointerMove(x, y) {
		v.publish()
	}
}

func (v *View) PointerUp(x, y float64) {
	if v.unmounted {
		return
	}
	v.ctrl.PointerUp(x, y)
}

func (v *View) Wheel(deltaY, x, y float64) {
	if v.unmounted {
		return
	}
	v.ctrl.Wheel(deltaY, x, y)
	v.publish()
}

func (v *View) clicked(id string) {
	n, ok := v.nodes[id]
	if !ok || v.onClick == nil {
		return
	}
	v.onClick(n)
}

// Post queues fn to run on the loop goroutine. It's safe to call from anywhere.
func (v *View) Post(fn func(*View)) {
	v.queue.Enqueue(fn)
}

// Run is the view's loop: it runs ticks and posted functions strictly one after the
// other until ctx is done or the view is unmounted. The view is unmounted on return.
func (v *View) Run(ctx context.Context) error {
	defer v.Unmount()
	for !v.unmounted {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-v.Frames():
			v.Step()
		case <-v.queue.Ready():
			for _, fn := range v.queue.Drain() {
				fn(v)
				if v.unmounted {
					break
				}
			}
		}
	}
	return nil
}
