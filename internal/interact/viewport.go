// Package interact turns raw pointer input in to pan, zoom, node drag and click
// actions against a running layout.
package interact

import (
	"fmt"
	"math"
)

const (
	MinScale     = 0.2
	MaxScale     = 4
	InitialScale = 0.9

	// wheelDelta matches d3-zoom for pixel-mode wheel events.
	wheelDelta = 0.002
)

// Transform maps graph coordinates to screen coordinates: screen = graph*K + (X, Y).
type Transform struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// Identity is the transform every new draw starts from.
var Identity = Transform{X: 0, Y: 0, K: InitialScale}

// Invert maps a screen point to graph coordinates.
func (t Transform) Invert(px, py float64) (x, y float64) {
	return (px - t.X) / t.K, (py - t.Y) / t.K
}

// Apply maps a graph point to screen coordinates.
func (t Transform) Apply(x, y float64) (px, py float64) {
	return x*t.K + t.X, y*t.K + t.Y
}

// String is the SVG transform attribute for the transform.
func (t Transform) String() string {
	return fmt.Sprintf("translate(%g,%g) scale(%g)", t.X, t.Y, t.K)
}

func clampScale(k float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, k))
}

type Viewport struct {
	t Transform
}

func NewViewport() *Viewport {
	return &Viewport{t: Identity}
}

func (v *Viewport) Transform() Transform {
	return v.t
}

func (v *Viewport) Reset() {
	v.t = Identity
}

// ZoomBy scales by factor keeping the graph point under (px, py) fixed on screen.
// The resulting scale is clamped to [MinScale, MaxScale].
func (v *Viewport) ZoomBy(factor, px, py float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	gx, gy := v.t.Invert(px, py)
	k := clampScale(v.t.K * factor)
	v.t = Transform{X: px - gx*k, Y: py - gy*k, K: k}
}

// ZoomWheel zooms for a wheel event with the given pixel deltaY.
func (v *Viewport) ZoomWheel(deltaY, px, py float64) {
	v.ZoomBy(math.Pow(2, -deltaY*wheelDelta), px, py)
}

func (v *Viewport) PanBy(dx, dy float64) {
	v.t.X += dx
	v.t.Y += dy
}
