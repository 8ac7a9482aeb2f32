package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var ui = struct {
	Brand  *color.Color
	Subtle *color.Color
	Good   *color.Color
	Warn   *color.Color
	Bad    *color.Color
}{
	Brand:  color.New(color.FgHiBlue, color.Bold),
	Subtle: color.New(color.FgHiBlack),
	Good:   color.New(color.FgGreen),
	Warn:   color.New(color.FgYellow),
	Bad:    color.New(color.FgRed),
}

// kv prints an aligned key/value line.
func kv(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "  %s %v\n", ui.Subtle.Sprintf("%-10s", key), value)
}
