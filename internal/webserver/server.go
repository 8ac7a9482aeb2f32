// Package webserver serves the painter page, runs one view session per websocket and
// exposes metrics.
package webserver

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/psidex/assetmap/internal/assetapi"
	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/graphs/wsframes"
	"github.com/psidex/assetmap/internal/layout"
	"github.com/psidex/assetmap/internal/lib"
	"github.com/psidex/assetmap/internal/metrics"
	"github.com/psidex/assetmap/internal/view"
)

//go:embed static
var static embed.FS

const (
	DefaultWriteTimeout = 10 * time.Second
	initTimeout         = 30 * time.Second
	shutdownTimeout     = 5 * time.Second
)

type Options struct {
	Logger  *slog.Logger
	Metrics *metrics.Registry
	Source  assetapi.Source
	// Fallback is shown by sessions whose first load fails.
	Fallback graphdata.Graph
	Layout   layout.Config
	// Clock is shared by every session, a FrameClock by default.
	Clock        layout.Scheduler
	WriteTimeout time.Duration
}

type Server struct {
	logger   *slog.Logger
	metrics  *metrics.Registry
	source   assetapi.Source
	fallback graphdata.Graph
	layout   layout.Config
	clock    layout.Scheduler
	timeout  time.Duration
	upgrader websocket.Upgrader
}

func NewServer(opts Options) *Server {
	s := &Server{
		logger:   lib.OrDiscard(opts.Logger),
		metrics:  opts.Metrics,
		source:   opts.Source,
		fallback: opts.Fallback,
		layout:   opts.Layout,
		clock:    opts.Clock,
		timeout:  opts.WriteTimeout,
	}
	if s.clock == nil {
		s.clock = layout.NewFrameClock(layout.DefaultFrameInterval)
	}
	if s.timeout <= 0 {
		s.timeout = DefaultWriteTimeout
	}
	s.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	return s
}

// Handler routes /, /ws, /metrics and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	public, _ := fs.Sub(static, "static")
	mux.Handle("/", http.FileServer(http.FS(public)))
	mux.HandleFunc("/ws", s.Session)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("Serving", "addr", ln.Addr().String())
		errs <- srv.Serve(ln)
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Session upgrades to a websocket and runs one view session on it until either side
// goes away.
func (s *Server) Session(w http.ResponseWriter, r *http.Request) {
	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", "error", err)
		return
	}
	ws := lib.NewThreadSafeWebSocket(c, s.timeout)
	defer ws.Close()

	id := uuid.NewString()
	logger := s.logger.With("session", id)

	_ = c.SetReadDeadline(time.Now().Add(initTimeout))
	_, msg, err := ws.ReadMessage()
	if err != nil {
		logger.Warn("Failed to read init message", "error", err)
		return
	}
	_ = c.SetReadDeadline(time.Time{})

	conn := wsframes.NewConn(ws, logger)
	cfg, err := parseSessionConfig(msg)
	if err != nil {
		logger.Warn("Bad init message", "error", err)
		conn.PublishError(err.Error())
		return
	}
	conn.SendHello(id)

	layoutCfg := s.layout
	layoutCfg.Width, layoutCfg.Height = cfg.dimensions()
	if layoutCfg.Width <= 0 {
		layoutCfg.Width = s.layout.Width
	}
	if layoutCfg.Height <= 0 {
		layoutCfg.Height = s.layout.Height
	}

	session := view.NewSession(conn, view.SessionOptions{
		Logger:   logger,
		Metrics:  s.metrics,
		Source:   s.source,
		Mode:     cfg.mode(),
		Criteria: cfg.criteria(),
		Fallback: s.fallback,
		View: view.Options{
			Clock:  s.clock,
			Layout: layoutCfg,
		},
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go func() {
		// The session ends as soon as the painter disconnects.
		defer cancel()
		for {
			_, msg, err := ws.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Debug("Websocket read ended", "error", err)
				}
				return
			}
			e, err := wsframes.DecodeEvent(msg)
			if err != nil {
				logger.Warn("Bad client message", "error", err)
				conn.PublishError(err.Error())
				continue
			}
			session.Post(e)
		}
	}()

	logger.Info("Session started", "impact", cfg.Impact, "asset_type", cfg.AssetType)
	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("Session ended with error", "error", err)
	}
	logger.Info("Session ended", "messages", conn.Sent())
}
