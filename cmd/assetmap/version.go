package main

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/psidex/assetmap/internal/lib"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			ui.Brand.Fprintln(w, "assetmap")
			kv(w, "version", lib.Version)
			kv(w, "go", runtime.Version())
		},
	}
}
