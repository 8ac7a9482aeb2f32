package layout

// Body is the mutable simulation state of one node.
type Body struct {
	ID     string
	Index  int
	X, Y   float64
	VX, VY float64

	placed bool
	pinned bool
	fx, fy float64
}

// Placed is false until the simulation has given the body a position.
func (b *Body) Placed() bool {
	return b.placed
}

// Pin fixes the body at x, y until Unpin is called.
func (b *Body) Pin(x, y float64) {
	b.pinned = true
	b.fx, b.fy = x, y
}

func (b *Body) Unpin() {
	b.pinned = false
}

// Pinned returns the pinned position, if any.
func (b *Body) Pinned() (x, y float64, ok bool) {
	return b.fx, b.fy, b.pinned
}

// PlacedBody returns a body already positioned at x, y, for positions computed
// elsewhere.
func PlacedBody(id string, x, y float64) *Body {
	return &Body{ID: id, Index: -1, X: x, Y: y, placed: true}
}
