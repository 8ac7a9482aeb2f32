package interact

import "math"

// ClickDistance is how far, in screen pixels, a pointer may move between press and
// release and still count as a click.
const ClickDistance = 3

type GestureState int

const (
	Pressed GestureState = iota
	Dragging
	Released
)

func (s GestureState) String() string {
	switch s {
	case Pressed:
		return "pressed"
	case Dragging:
		return "dragging"
	case Released:
		return "released"
	}
	return "unknown"
}

// Gesture tracks one pointer from press to release.
type Gesture struct {
	state          GestureState
	target         string
	startX, startY float64
	lastX, lastY   float64
}

// Press starts a gesture at (x, y). target is the node id under the pointer, or "".
func Press(x, y float64, target string) *Gesture {
	return &Gesture{state: Pressed, target: target, startX: x, startY: y, lastX: x, lastY: y}
}

func (g *Gesture) State() GestureState {
	return g.state
}

func (g *Gesture) Target() string {
	return g.target
}

// Move records a pointer move. It returns the movement since the last move that was
// reported, and whether the gesture is dragging. Moves under ClickDistance from the
// press point are held back, the first move past it promotes the gesture to Dragging
// and reports the whole distance from the press point.
func (g *Gesture) Move(x, y float64) (dx, dy float64, dragging bool) {
	switch g.state {
	case Pressed:
		if math.Hypot(x-g.startX, y-g.startY) <= ClickDistance {
			return 0, 0, false
		}
		g.state = Dragging
	case Released:
		return 0, 0, false
	}
	dx, dy = x-g.lastX, y-g.lastY
	g.lastX, g.lastY = x, y
	return dx, dy, true
}

// Release ends the gesture and reports whether it was a click.
func (g *Gesture) Release() (click bool) {
	click = g.state == Pressed
	g.state = Released
	return click
}
