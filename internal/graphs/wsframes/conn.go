// Package wsframes streams a session's frames to a browser painter over a websocket and
// decodes the painter's input back in to session events.
package wsframes

import (
	"log/slog"
	"sync/atomic"

	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/lib"
	"github.com/psidex/assetmap/internal/palette"
	"github.com/psidex/assetmap/internal/render"
	"github.com/psidex/assetmap/internal/view"
)

// Conn is a view.Publisher that writes every message as JSON to a websocket.
type Conn struct {
	ws     lib.ThreadSafeWebSocket
	logger *slog.Logger
	// After the first failed write the peer is assumed gone.
	broken atomic.Bool
	sent   atomic.Int64
}

var _ view.Publisher = (*Conn)(nil)

func NewConn(ws lib.ThreadSafeWebSocket, logger *slog.Logger) *Conn {
	return &Conn{ws: ws, logger: lib.OrDiscard(logger)}
}

func (c *Conn) send(msgType string, data any) {
	if c.broken.Load() {
		return
	}
	if err := c.ws.WriteJSON(Message{Type: msgType, Data: data}); err != nil {
		c.broken.Store(true)
		c.logger.Warn("Failed to write to websocket", "type", msgType, "error", err)
		return
	}
	c.sent.Add(1)
}

// Broken reports whether a write has failed.
func (c *Conn) Broken() bool {
	return c.broken.Load()
}

// Sent is the number of messages written.
func (c *Conn) Sent() int64 {
	return c.sent.Load()
}

func (c *Conn) SendHello(sessionID string) {
	hello := Hello{SessionID: sessionID, Version: lib.Version}
	for _, t := range graphdata.AssetTypes {
		e := palette.Lookup(t)
		hello.Legend = append(hello.Legend, LegendItem{AssetType: t, Color: e.Color, Icon: e.Icon, Label: e.Label})
	}
	c.send(TypeHello, hello)
}

func (c *Conn) PublishFrame(f render.Frame) {
	c.send(TypeFrame, f)
}

func (c *Conn) PublishSelection(s view.SelectionInfo) {
	c.send(TypeSelection, s)
}

func (c *Conn) PublishStats(s view.Stats) {
	c.send(TypeStats, s)
}

func (c *Conn) PublishError(msg string) {
	c.send(TypeError, errorData{Message: msg})
}
