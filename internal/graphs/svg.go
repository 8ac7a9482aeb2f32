package graphs

import (
	"io"

	"github.com/psidex/assetmap/internal/render"
)

// SVG writes the frame exactly as the live view draws it.
type SVG struct{}

var _ Exporter = SVG{}

func (SVG) Extension() string {
	return ".svg"
}

func (SVG) Render(w io.Writer, f render.Frame) error {
	return render.WriteSVG(w, f)
}
