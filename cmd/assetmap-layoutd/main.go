package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/psidex/assetmap/internal/layout"
	"github.com/psidex/assetmap/internal/layoutsvc"
	"github.com/psidex/assetmap/internal/lib"
	"github.com/psidex/assetmap/internal/metrics"
)

const (
	// Default gRPC address, set using ASSETMAP_LAYOUTD_BIND_ADDRESS
	defaultBindAddress = "0.0.0.0:50051"
	// Metrics are only served when ASSETMAP_LAYOUTD_METRICS_ADDRESS is set
	metricsAddressEnv = "ASSETMAP_LAYOUTD_METRICS_ADDRESS"
)

func main() {
	logger, err := newLogger(os.Stderr, os.Getenv("ASSETMAP_LOG_LEVEL"))
	if err != nil {
		logger.Warn("Bad ASSETMAP_LOG_LEVEL, using info", "error", err)
	}

	address := defaultBindAddress
	if addr := os.Getenv("ASSETMAP_LAYOUTD_BIND_ADDRESS"); addr != "" {
		address = addr
	}

	logger.Info("Starting layoutd", "address", address, "version", lib.Version)

	lis, err := net.Listen("tcp", address)
	if err != nil {
		logger.Error("Failed to listen", "error", err)
		os.Exit(1)
	}

	m := metrics.NewRegistry()
	s := grpc.NewServer()
	layoutsvc.Register(s, layoutsvc.NewServer(logger, m, layout.Config{}))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(layoutsvc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, healthServer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Serve(lis)
	})
	g.Go(func() error {
		<-ctx.Done()
		healthServer.Shutdown()
		s.GracefulStop()
		return nil
	})

	if metricsAddr := os.Getenv(metricsAddressEnv); metricsAddr != "" {
		srv := &http.Server{Addr: metricsAddr, Handler: m.Handler(), ReadHeaderTimeout: 10 * time.Second}
		g.Go(func() error {
			logger.Info("Serving metrics", "address", metricsAddr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return srv.Shutdown(context.Background())
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Failed to serve", "error", err)
		os.Exit(1)
	}
	logger.Info("Done, goodbye")
}

// newLogger logs at level, or at info if level can't be parsed. An empty level is info.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	if level == "" {
		return lib.NiceLogger(w, slog.LevelInfo), nil
	}
	l, err := lib.ParseSLogLevel(level)
	if err != nil {
		return lib.NiceLogger(w, slog.LevelInfo), fmt.Errorf("parse log level: %w", err)
	}
	return lib.NiceLogger(w, l), nil
}
