package wsframes

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/view"
)

// Outgoing message types.
const (
	TypeFrame     = "frame"
	TypeSelection = "selection"
	TypeStats     = "stats"
	TypeError     = "error"
	TypeHello     = "hello"
)

// Message is the envelope for everything sent to the painter.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Hello is sent once, before the first frame.
type Hello struct {
	SessionID string       `json:"session_id"`
	Version   string       `json:"version"`
	Legend    []LegendItem `json:"legend"`
}

type LegendItem struct {
	AssetType graphdata.AssetType `json:"asset_type"`
	Color     string              `json:"color"`
	Icon      string              `json:"icon"`
	Label     string              `json:"label"`
}

type errorData struct {
	Message string `json:"message"`
}

// ClientMessage is everything the painter can send. Which fields are set depends on
// Type.
type ClientMessage struct {
	Type      string  `json:"type"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	DeltaY    float64 `json:"delta_y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	AssetType string  `json:"asset_type"`
	Search    string  `json:"search"`
	ID        string  `json:"id"`
}

var ErrUnknownMessage = errors.New("unknown message type")

// DecodeEvent turns one painter message in to a session event.
func DecodeEvent(msg []byte) (view.Event, error) {
	var m ClientMessage
	if err := json.Unmarshal(msg, &m); err != nil {
		return nil, fmt.Errorf("decode client message: %w", err)
	}
	return m.Event()
}

func (m ClientMessage) Event() (view.Event, error) {
	switch strings.ToLower(m.Type) {
	case "pointerdown":
		return view.PointerDown{X: m.X, Y: m.Y}, nil
	case "pointermove":
		return view.PointerMove{X: m.X, Y: m.Y}, nil
	case "pointerup":
		return view.PointerUp{X: m.X, Y: m.Y}, nil
	case "wheel":
		return view.Wheel{DeltaY: m.DeltaY, X: m.X, Y: m.Y}, nil
	case "resize":
		return view.Resize{Width: m.Width, Height: m.Height}, nil
	case "filter":
		t := graphdata.AssetType(strings.ToLower(strings.TrimSpace(m.AssetType)))
		if t == "all" {
			t = ""
		}
		if t != "" && !t.Valid() {
			return nil, fmt.Errorf("filter: unknown asset type %q", m.AssetType)
		}
		return view.FilterChange{Criteria: graphdata.Criteria{AssetType: t, Search: m.Search}}, nil
	case "clear":
		return view.ClearSelection{}, nil
	case "select":
		if m.ID == "" {
			return view.ClearSelection{}, nil
		}
		return view.SelectNode{ID: m.ID}, nil
	case "reload":
		return view.Reload{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, m.Type)
}
