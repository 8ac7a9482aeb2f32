package main

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/psidex/assetmap/internal/snapshot"
)

func newSnapshotCmd(root *rootOptions) *cobra.Command {
	var (
		sel    selectOptions
		server string
		out    string
		settle time.Duration
	)

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Screenshot the live map from a running assetmap serve",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if server == "" {
				server = "http://" + cfg.Server.Address
			}
			u, err := url.Parse(server)
			if err != nil {
				return fmt.Errorf("parse server url: %w", err)
			}
			q := u.Query()
			for key, value := range map[string]string{
				"asset_type": sel.assetType,
				"search":     sel.search,
				"impact":     sel.impact,
				"select":     sel.selected,
			} {
				if value != "" {
					q.Set(key, value)
				}
			}
			if sel.impact != "" {
				q.Set("depth", strconv.Itoa(sel.depth))
			}
			u.RawQuery = q.Encode()

			res, err := snapshot.Capture(cmd.Context(), snapshot.Options{
				URL:     u.String(),
				Width:   cfg.Snapshot.Width,
				Height:  cfg.Snapshot.Height,
				Timeout: cfg.Snapshot.Timeout.Duration,
				Settle:  settle,
				Quality: cfg.Snapshot.Quality,
			})
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, res.PNG, 0o644); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			ui.Good.Fprintf(w, "wrote %s\n", out)
			kv(w, "assets", res.Counts.Nodes)
			kv(w, "links", res.Counts.Links)
			kv(w, "bytes", res.DownloadedBytes)
			kv(w, "took", res.Duration.Round(time.Millisecond))
			return nil
		},
	}

	sel.register(cmd)
	cmd.Flags().StringVar(&server, "server", "", "url of the running server, defaults to the configured address")
	cmd.Flags().StringVarP(&out, "out", "o", "assetmap.png", "output PNG file")
	cmd.Flags().DurationVar(&settle, "settle", snapshot.DefaultSettle, "time to let the layout settle before the screenshot")
	return cmd
}
