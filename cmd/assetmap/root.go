package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/psidex/assetmap/internal/assetapi"
	"github.com/psidex/assetmap/internal/config"
	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/lib"
	"github.com/psidex/assetmap/internal/metrics"
)

type rootOptions struct {
	configPath string
	logLevel   string
	apiURL     string
	token      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "assetmap",
		Short:         "Force-directed relationship map of an asset inventory",
		Version:       lib.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("assetmap {{ .Version }}\n")

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML or TOML config file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level, overrides the config file")
	flags.StringVar(&opts.apiURL, "api", "", "asset API base url, overrides the config file")
	flags.StringVar(&opts.token, "token", os.Getenv("ASSETMAP_TOKEN"), "asset API bearer token")

	cmd.AddCommand(
		newServeCmd(opts),
		newExportCmd(opts),
		newLayoutCmd(opts),
		newSnapshotCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// load reads the config file, if any, and applies flag overrides.
func (o *rootOptions) load() (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.apiURL != "" {
		cfg.Source.BaseURL = o.apiURL
	}
	if o.token != "" {
		cfg.Source.Token = o.token
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := lib.ParseSLogLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	return lib.NiceLogger(os.Stderr, level), nil
}

// newSource builds the asset source described by cfg: the sample inventory when no
// API is configured, else the API client, optionally behind the redis cache. The
// returned func releases it.
func newSource(cfg *config.Config, logger *slog.Logger, m *metrics.Registry) (assetapi.Source, func(), error) {
	noop := func() {}
	if cfg.Source.BaseURL == "" {
		logger.Info("No asset API configured, serving the sample inventory")
		return assetapi.NewStaticSource(graphdata.Sample()), noop, nil
	}

	client, err := assetapi.NewClient(cfg.Source.BaseURL,
		assetapi.WithToken(cfg.Source.Token),
		assetapi.WithHTTPClient(&http.Client{Timeout: cfg.Source.Timeout.Duration}),
		assetapi.WithLogger(logger),
		assetapi.WithMetrics(m),
	)
	if err != nil {
		return nil, noop, err
	}
	if !cfg.Cache.Enabled {
		return client, noop, nil
	}

	cached, err := assetapi.NewCachedSource(client, cfg.RedisConfig(), logger, m)
	if err != nil {
		return nil, noop, err
	}
	return cached, func() {
		if err := cached.Close(); err != nil {
			logger.Warn("Failed to close cache", "error", err)
		}
	}, nil
}

// loadGraph fetches either the full map or one asset's impact.
func loadGraph(ctx context.Context, src assetapi.Source, impact string, depth int, criteria graphdata.Criteria) (graphdata.Graph, error) {
	var (
		g   graphdata.Graph
		err error
	)
	if impact != "" {
		g, err = src.Impact(ctx, impact, depth)
	} else {
		g, err = src.Graph(ctx, criteria.AssetType)
	}
	if err != nil {
		return g, err
	}
	return graphdata.Filter(g, criteria), nil
}
