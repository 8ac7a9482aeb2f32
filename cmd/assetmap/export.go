package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/psidex/assetmap/internal/assetapi"
	"github.com/psidex/assetmap/internal/config"
	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/graphs"
	"github.com/psidex/assetmap/internal/highlight"
	"github.com/psidex/assetmap/internal/layout"
	"github.com/psidex/assetmap/internal/layoutsvc"
	"github.com/psidex/assetmap/internal/metrics"
	"github.com/psidex/assetmap/internal/render"
)

const remoteLayoutTimeout = 30 * time.Second

// selectOptions pick which part of the inventory a command works on.
type selectOptions struct {
	assetType string
	search    string
	impact    string
	depth     int
	selected  string
}

func (o *selectOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.assetType, "type", "t", "", "only assets of this type (hardware, software, cloud, network)")
	cmd.Flags().StringVarP(&o.search, "search", "s", "", "only assets whose name contains this")
	cmd.Flags().StringVar(&o.impact, "impact", "", "show the downstream impact of this asset id")
	cmd.Flags().IntVar(&o.depth, "depth", assetapi.DefaultDepth, "impact depth")
	cmd.Flags().StringVar(&o.selected, "select", "", "highlight this asset id and its neighbours")
}

func (o *selectOptions) criteria() (graphdata.Criteria, error) {
	t := graphdata.AssetType(strings.ToLower(o.assetType))
	if t != "" && !t.Valid() {
		return graphdata.Criteria{}, fmt.Errorf("unknown asset type %q", o.assetType)
	}
	return graphdata.Criteria{AssetType: t, Search: o.search}, nil
}

type exportOptions struct {
	selectOptions
	format   string
	out      string
	title    string
	maxTicks int
	remote   string
}

func newExportCmd(root *rootOptions) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Lay out the map and write it to a file",
		Example: "  assetmap export --format svg --out inventory\n" +
			"  assetmap export --impact 12 --depth 3 --format echarts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			return runExport(cmd.Context(), cfg, opts, cmd)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "svg", "output format: "+strings.Join(graphs.Exporters, ", "))
	cmd.Flags().StringVarP(&opts.out, "out", "o", "assetmap", "output file name without extension")
	cmd.Flags().StringVar(&opts.title, "title", "assetmap", "document title")
	cmd.Flags().IntVar(&opts.maxTicks, "max-ticks", layoutsvc.DefaultMaxTicks, "layout tick budget")
	cmd.Flags().StringVar(&opts.remote, "remote", "", "compute the layout on this assetmap-layoutd address")
	return cmd
}

func runExport(ctx context.Context, cfg *config.Config, opts *exportOptions, cmd *cobra.Command) error {
	exporter, err := graphs.ByName(opts.format, opts.title)
	if err != nil {
		return err
	}
	criteria, err := opts.criteria()
	if err != nil {
		return err
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

	g, err := loadGraph(ctx, src, opts.impact, opts.depth, criteria)
	if err != nil {
		return err
	}
	snap := graphdata.Normalize(g.Nodes, g.Links)
	layoutCfg := cfg.LayoutConfig()

	var (
		pos   render.Positions
		ticks int
	)
	if opts.remote != "" {
		resp, err := remoteLayout(ctx, opts.remote, snap, layoutCfg, opts.maxTicks)
		if err != nil {
			return err
		}
		pos, ticks = resp, resp.Ticks
	} else {
		sim := layout.New(snap.NodeIDs(), snap.Edges, layoutCfg)
		ticks = sim.Settle(opts.maxTicks)
		pos = sim
	}

	f := render.Project(pos, snap)
	f.Tick = ticks
	f.Width, f.Height = layoutCfg.Width, layoutCfg.Height
	if f.Width <= 0 {
		f.Width = layout.DefaultWidth
	}
	if f.Height <= 0 {
		f.Height = layout.DefaultHeight
	}
	f.Emphasize(highlight.Compute(opts.selected, snap.Edges, snap.NodeIDs()))

	written, err := graphs.RenderToFile(exporter, opts.out, f)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	ui.Good.Fprintf(w, "wrote %s\n", written)
	kv(w, "assets", len(f.Nodes))
	kv(w, "links", len(f.Links))
	kv(w, "ticks", ticks)
	return nil
}

func remoteLayout(ctx context.Context, addr string, snap graphdata.Snapshot, cfg layout.Config, maxTicks int) (layoutsvc.Response, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return layoutsvc.Response{}, fmt.Errorf("connect to layoutd: %w", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, remoteLayoutTimeout)
	defer cancel()

	resp, err := layoutsvc.NewClient(conn).Compute(ctx, layoutsvc.Request{
		Nodes:    snap.NodeIDs(),
		Links:    snap.Edges,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Seed:     cfg.Seed,
		MaxTicks: maxTicks,
	})
	if err != nil {
		return resp, fmt.Errorf("remote layout: %w", err)
	}
	return resp, nil
}
