package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/psidex/assetmap/internal/graphdata"
	"github.com/psidex/assetmap/internal/layout"
	"github.com/psidex/assetmap/internal/metrics"
)

type layoutRow struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func newLayoutCmd(root *rootOptions) *cobra.Command {
	var (
		sel      selectOptions
		maxTicks int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print settled node positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			criteria, err := sel.criteria()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			src, closeSource, err := newSource(cfg, logger, metrics.NewRegistry())
			if err != nil {
				return err
			}
			defer closeSource()

			g, err := loadGraph(cmd.Context(), src, sel.impact, sel.depth, criteria)
			if err != nil {
				return err
			}
			snap := graphdata.Normalize(g.Nodes, g.Links)
			sim := layout.New(snap.NodeIDs(), snap.Edges, cfg.LayoutConfig())
			ticks := sim.Settle(maxTicks)

			rows := make([]layoutRow, 0, len(snap.Nodes))
			for _, n := range snap.Nodes {
				b, _ := sim.Lookup(n.ID)
				rows = append(rows, layoutRow{ID: n.ID, Name: n.Name, X: b.X, Y: b.Y})
			}
			sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"ticks": ticks, "state": sim.State().String(), "positions": rows})
			}
			ui.Brand.Fprintf(w, "%d assets, %d ticks, %s\n", len(rows), ticks, sim.State())
			for _, r := range rows {
				fmt.Fprintf(w, "  %-6s %-24s %s\n", r.ID, r.Name, ui.Subtle.Sprintf("(%.1f, %.1f)", r.X, r.Y))
			}
			return nil
		},
	}

	sel.register(cmd)
	cmd.Flags().IntVar(&maxTicks, "max-ticks", 300, "layout tick budget")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
