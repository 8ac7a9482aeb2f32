package view

import "github.com/psidex/assetmap/internal/graphdata"

// Event is something a client asks a Session to do.
type Event interface {
	eventType() string
}

// Pointer coordinates are screen pixels relative to the drawing surface.
type (
	PointerDown struct{ X, Y float64 }
	PointerMove struct{ X, Y float64 }
	PointerUp   struct{ X, Y float64 }
	Wheel       struct{ DeltaY, X, Y float64 }
)

type Resize struct{ Width, Height float64 }

type FilterChange struct{ Criteria graphdata.Criteria }

type ClearSelection struct{}

// SelectNode selects ID outright, it doesn't toggle.
type SelectNode struct{ ID string }

// Reload fetches the graph from the source again.
type Reload struct{}

type Unmount struct{}

type graphLoaded struct {
	seq   int
	graph graphdata.Graph
	err   error
}

func (PointerDown) eventType() string    { return "pointerdown" }
func (PointerMove) eventType() string    { return "pointermove" }
func (PointerUp) eventType() string      { return "pointerup" }
func (Wheel) eventType() string          { return "wheel" }
func (Resize) eventType() string         { return "resize" }
func (FilterChange) eventType() string   { return "filter" }
func (ClearSelection) eventType() string { return "clear" }
func (SelectNode) eventType() string     { return "select" }
func (Reload) eventType() string         { return "reload" }
func (Unmount) eventType() string        { return "unmount" }
func (graphLoaded) eventType() string    { return "loaded" }

// EventType returns the wire name of e.
func EventType(e Event) string {
	return e.eventType()
}
