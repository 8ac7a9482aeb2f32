package interact

import (
	"github.com/psidex/assetmap/internal/layout"
)

// Simulation is the part of a layout the controller drives.
type Simulation interface {
	Find(x, y, radius float64) *layout.Body
	Lookup(id string) (*layout.Body, bool)
	Restart()
	SetAlphaTarget(t float64)
}

var _ Simulation = (*layout.Simulation)(nil)

// Controller owns the viewport and the gesture in progress for one view.
type Controller struct {
	viewport  *Viewport
	sim       Simulation
	gesture   *Gesture
	hitRadius float64

	// OnClick is called with the node id when a press and release on a node didn't
	// move past ClickDistance.
	OnClick func(id string)
}

func NewController(hitRadius float64) *Controller {
	return &Controller{
		viewport:  NewViewport(),
		hitRadius: hitRadius,
	}
}

func (c *Controller) Viewport() *Viewport {
	return c.viewport
}

func (c *Controller) Transform() Transform {
	return c.viewport.Transform()
}

// Attach points the controller at a new simulation, resetting the viewport and
// dropping any gesture that was in progress.
func (c *Controller) Attach(sim Simulation) {
	c.release()
	c.sim = sim
	c.viewport.Reset()
}

// Detach drops the simulation. The viewport is left as it is.
func (c *Controller) Detach() {
	c.release()
	c.sim = nil
}

// Gesture returns the gesture in progress, or nil.
func (c *Controller) Gesture() *Gesture {
	return c.gesture
}

func (c *Controller) PointerDown(px, py float64) {
	c.release()
	target := ""
	if c.sim != nil {
		gx, gy := c.viewport.Transform().Invert(px, py)
		if b := c.sim.Find(gx, gy, c.hitRadius); b != nil {
			target = b.ID
		}
	}
	c.gesture = Press(px, py, target)
}

// PointerMove returns true if anything visible changed.
func (c *Controller) PointerMove(px, py float64) bool {
	g := c.gesture
	if g == nil {
		return false
	}
	wasDragging := g.State() == Dragging
	dx, dy, dragging := g.Move(px, py)
	if !dragging {
		return false
	}

	if g.Target() == "" {
		c.viewport.PanBy(dx, dy)
		return true
	}

	b, ok := c.body(g.Target())
	if !ok {
		return false
	}
	if !wasDragging {
		b.Pin(b.X, b.Y)
		c.sim.SetAlphaTarget(layout.DragAlphaTarget)
		c.sim.Restart()
	}
	gx, gy := c.viewport.Transform().Invert(px, py)
	b.Pin(gx, gy)
	return true
}

// PointerUp ends the gesture. It returns the clicked node id, if the gesture was a
// click on a node.
func (c *Controller) PointerUp(px, py float64) (clicked string, ok bool) {
	g := c.gesture
	if g == nil {
		return "", false
	}
	c.gesture = nil

	if g.State() == Dragging {
		c.endDrag(g)
		g.Release()
		return "", false
	}
	if !g.Release() || g.Target() == "" {
		return "", false
	}
	if c.OnClick != nil {
		c.OnClick(g.Target())
	}
	return g.Target(), true
}

func (c *Controller) Wheel(deltaY, px, py float64) {
	c.viewport.ZoomWheel(deltaY, px, py)
}

// release abandons the gesture in progress, unpinning a dragged node.
func (c *Controller) release() {
	if c.gesture != nil && c.gesture.State() == Dragging {
		c.endDrag(c.gesture)
	}
	c.gesture = nil
}

func (c *Controller) endDrag(g *Gesture) {
	if g.Target() == "" {
		return
	}
	if b, ok := c.body(g.Target()); ok {
		b.Unpin()
	}
	if c.sim != nil {
		c.sim.SetAlphaTarget(0)
	}
}

func (c *Controller) body(id string) (*layout.Body, bool) {
	if c.sim == nil {
		return nil, false
	}
	return c.sim.Lookup(id)
}
