package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/layoutsvc"
	"github.com/psidex/assetmap/internal/metrics"
	"github.com/psidex/assetmap/internal/webserver"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var (
		addr    string
		layoutd string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive map",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}
			if layoutd != "" {
				cfg.Server.LayoutdAddr = layoutd
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			m := metrics.NewRegistry()
			src, closeSource, err := newSource(cfg, logger, m)
			if err != nil {
				return err
			}
			defer closeSource()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := webserver.NewServer(webserver.Options{
				Logger:       logger,
				Metrics:      m,
				Source:       src,
				Fallback:     graphdata.Sample(),
				Layout:       cfg.LayoutConfig(),
				WriteTimeout: cfg.Server.WriteTimeout.Duration,
			})

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Run(ctx, cfg.Server.Address)
			})

			if cfg.Server.LayoutdAddr != "" {
				lis, err := net.Listen("tcp", cfg.Server.LayoutdAddr)
				if err != nil {
					return err
				}
				gs := grpc.NewServer()
				layoutsvc.Register(gs, layoutsvc.NewServer(logger, m, cfg.LayoutConfig()))

				g.Go(func() error {
					logger.Info("Serving layout gRPC", "addr", lis.Addr().String())
					if err := gs.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
						return err
					}
					return nil
				})
				g.Go(func() error {
					<-ctx.Done()
					gs.GracefulStop()
					return nil
				})
			}

			ui.Brand.Printf("assetmap serving on http://%s\n", cfg.Server.Address)
			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			logger.Info("Shut down")
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "address to serve http on, overrides the config file")
	cmd.Flags().StringVar(&layoutd, "layoutd", "", "also serve the layout gRPC service on this address")
	return cmd
}
