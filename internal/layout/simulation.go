// Package layout is a force-directed layout engine with d3-force semantics: link
// springs, many-body repulsion, centring and collision, cooled by an alpha schedule.
package layout

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/lib"
)

var ErrStopped = errors.New("simulation stopped")

type State int

const (
	Idle State = iota
	Running
	Settled
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Settled:
		return "settled"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

const (
	DefaultWidth          = 900
	DefaultHeight         = 550
	DefaultLinkDistance   = 120
	DefaultChargeStrength = -300
	DefaultCollideRadius  = 30
	DefaultVelocityDecay  = 0.4
	DefaultAlphaMin       = 0.001
	// DragAlphaTarget keeps the simulation warm while a node is being dragged.
	DragAlphaTarget = 0.3

	initialRadius = 10
)

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// Config holds the force parameters. Zero values are replaced by the defaults.
type Config struct {
	Width          float64
	Height         float64
	LinkDistance   float64
	ChargeStrength float64
	CollideRadius  float64
	VelocityDecay  float64
	AlphaMin       float64
	AlphaDecay     float64
	Seed           int64
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.LinkDistance <= 0 {
		c.LinkDistance = DefaultLinkDistance
	}
	if c.ChargeStrength == 0 {
		c.ChargeStrength = DefaultChargeStrength
	}
	if c.CollideRadius <= 0 {
		c.CollideRadius = DefaultCollideRadius
	}
	if c.VelocityDecay <= 0 || c.VelocityDecay >= 1 {
		c.VelocityDecay = DefaultVelocityDecay
	}
	if c.AlphaMin <= 0 {
		c.AlphaMin = DefaultAlphaMin
	}
	if c.AlphaDecay <= 0 {
		c.AlphaDecay = 1 - math.Pow(c.AlphaMin, 1.0/300)
	}
	return c
}

type spring struct {
	source, target int
	strength, bias float64
}

// Simulation is not safe for concurrent use, it is driven from one goroutine.
type Simulation struct {
	cfg     Config
	bodies  []*Body
	index   *lib.Indexer
	springs []spring

	alpha       float64
	alphaTarget float64
	state       State
	ticks       int

	rng       *rand.Rand
	scheduler Scheduler
	sub       Subscription
}

// New builds a simulation over the given node ids. Edges whose ends aren't in ids are
// ignored. Bodies are given their initial positions straight away.
func New(ids []string, edges []graphdata.Edge, cfg Config) *Simulation {
	cfg = cfg.withDefaults()
	s := &Simulation{
		cfg:    cfg,
		bodies: make([]*Body, 0, len(ids)),
		index:  lib.NewIndexer(),
		alpha:  1,
		state:  Idle,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}

	for _, id := range ids {
		if _, dup := s.index.Lookup(id); dup {
			continue
		}
		s.bodies = append(s.bodies, &Body{ID: id, Index: s.index.Index(id)})
	}

	degree := make([]int, len(s.bodies))
	for _, e := range edges {
		src, ok := s.index.Lookup(e.Source)
		if !ok {
			continue
		}
		tgt, ok := s.index.Lookup(e.Target)
		if !ok {
			continue
		}
		s.springs = append(s.springs, spring{source: src, target: tgt})
		degree[src]++
		degree[tgt]++
	}
	for i := range s.springs {
		sp := &s.springs[i]
		ds, dt := float64(degree[sp.source]), float64(degree[sp.target])
		sp.strength = 1 / math.Min(ds, dt)
		sp.bias = ds / (ds + dt)
	}

	s.place()
	return s
}

// place gives every body that doesn't have a position one on a phyllotaxis spiral.
func (s *Simulation) place() {
	for i, b := range s.bodies {
		if x, y, ok := b.Pinned(); ok {
			b.X, b.Y = x, y
		}
		if !b.placed {
			radius := initialRadius * math.Sqrt(0.5+float64(i))
			angle := float64(i) * initialAngle
			b.X = radius * math.Cos(angle)
			b.Y = radius * math.Sin(angle)
			b.placed = true
		}
	}
}

func (s *Simulation) Config() Config {
	return s.cfg
}

func (s *Simulation) State() State {
	return s.state
}

func (s *Simulation) Alpha() float64 {
	return s.alpha
}

func (s *Simulation) AlphaTarget() float64 {
	return s.alphaTarget
}

// Ticks is the number of ticks since New.
func (s *Simulation) Ticks() int {
	return s.ticks
}

func (s *Simulation) Bodies() []*Body {
	return s.bodies
}

func (s *Simulation) Lookup(id string) (*Body, bool) {
	i, ok := s.index.Lookup(id)
	if !ok {
		return nil, false
	}
	return s.bodies[i], true
}

// Find returns the topmost body (last in draw order) within radius of x, y.
func (s *Simulation) Find(x, y, radius float64) *Body {
	r2 := radius * radius
	for i := len(s.bodies) - 1; i >= 0; i-- {
		b := s.bodies[i]
		dx, dy := b.X-x, b.Y-y
		if dx*dx+dy*dy <= r2 {
			return b
		}
	}
	return nil
}

// Start subscribes the simulation to sched and moves it to Running.
func (s *Simulation) Start(sched Scheduler) error {
	if s.state == Stopped {
		return ErrStopped
	}
	s.scheduler = sched
	s.subscribe()
	s.state = Running
	return nil
}

// Frames is the channel of the current scheduler subscription, nil while there is
// none. Read it again after every tick, it changes when the simulation settles or
// restarts.
func (s *Simulation) Frames() <-chan time.Time {
	if s.sub == nil {
		return nil
	}
	return s.sub.C()
}

func (s *Simulation) subscribe() {
	if s.sub == nil && s.scheduler != nil {
		s.sub = s.scheduler.Subscribe()
	}
}

func (s *Simulation) unsubscribe() {
	if s.sub != nil {
		s.sub.Cancel()
		s.sub = nil
	}
}

// Restart re-enters Running without resetting alpha.
func (s *Simulation) Restart() {
	if s.state == Stopped {
		return
	}
	s.subscribe()
	s.state = Running
}

func (s *Simulation) SetAlphaTarget(t float64) {
	if s.state == Stopped {
		return
	}
	s.alphaTarget = t
}

func (s *Simulation) SetAlpha(a float64) {
	if s.state == Stopped {
		return
	}
	s.alpha = a
}

// Stop releases the scheduler subscription. It is idempotent.
func (s *Simulation) Stop() {
	s.unsubscribe()
	s.state = Stopped
}

// Tick advances the simulation by one step. It returns false, doing nothing, once
// the simulation is stopped. When alpha falls below alphaMin the simulation settles
// and drops its subscription.
func (s *Simulation) Tick() bool {
	if s.state == Stopped {
		return false
	}
	if s.state == Idle || s.state == Settled {
		s.state = Running
	}

	s.alpha += (s.alphaTarget - s.alpha) * s.cfg.AlphaDecay

	s.applyLink()
	s.applyCharge()
	s.applyCenter()
	s.applyCollide()

	keep := 1 - s.cfg.VelocityDecay
	for _, b := range s.bodies {
		if x, y, ok := b.Pinned(); ok {
			b.X, b.Y = x, y
			b.VX, b.VY = 0, 0
			continue
		}
		b.VX *= keep
		b.VY *= keep
		b.X += b.VX
		b.Y += b.VY
	}

	s.ticks++
	if s.alpha < s.cfg.AlphaMin {
		s.state = Settled
		s.unsubscribe()
	}
	return true
}

// Settle ticks synchronously until the simulation settles or maxTicks is reached,
// returning the number of ticks taken.
func (s *Simulation) Settle(maxTicks int) int {
	n := 0
	for n < maxTicks && s.state != Stopped {
		s.Tick()
		n++
		if s.state == Settled {
			break
		}
	}
	return n
}

// Run ticks on every frame from sched, calling onTick after each one, until the
// simulation settles, is stopped, or ctx is done. On ctx being done the simulation is
// stopped.
func (s *Simulation) Run(ctx context.Context, sched Scheduler, onTick func(*Simulation)) error {
	if err := s.Start(sched); err != nil {
		return err
	}
	for {
		frames := s.Frames()
		if frames == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			s.Stop()
			return ctx.Err()
		case <-frames:
			if s.Tick() && onTick != nil {
				onTick(s)
			}
		}
	}
}

func (s *Simulation) jiggle() float64 {
	return (s.rng.Float64() - 0.5) * 1e-6
}
