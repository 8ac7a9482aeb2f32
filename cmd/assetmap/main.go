package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		ui.Bad.Fprintf(os.Stderr, "assetmap: %v\n", err)
		os.Exit(1)
	}
}
