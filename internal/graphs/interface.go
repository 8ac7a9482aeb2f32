package graphs

import (
	"fmt"
	"io"
	"os"

	"github.com/psidex/assetmap/internal/render"
)

// FrameSink receives every frame a live view produces.
type FrameSink interface {
	// PublishFrame is called from the view's loop goroutine only.
	PublishFrame(f render.Frame)
}

// Exporter renders a settled frame to a standalone document.
type Exporter interface {
	Render(w io.Writer, f render.Frame) error
	// Extension is the file extension including the dot.
	Extension() string
}

// RenderToFile renders f with e to filename, which should be the desired file name
// without an extension. It returns the name of the file written.
func RenderToFile(e Exporter, filename string, f render.Frame) (string, error) {
	filename = filename + e.Extension()

	file, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := e.Render(file, f); err != nil {
		return "", fmt.Errorf("render %s: %w", filename, err)
	}
	return filename, nil
}

// Exporters lists the names accepted by ByName.
var Exporters = []string{"echarts", "svg", "json", "graphology", "vis"}

// ByName returns the exporter registered under name.
func ByName(name, title string) (Exporter, error) {
	switch name {
	case "echarts":
		return NewECharts(title), nil
	case "svg":
		return SVG{}, nil
	case "json":
		return AdjacencyJSON{}, nil
	case "graphology":
		return Graphology{}, nil
	case "vis":
		return NewVis(title), nil
	}
	return nil, fmt.Errorf("unknown exporter: %s", name)
}
