package render

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/psidex/assetmap/internal/palette"
)

const svgHeader = `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g" font-family="sans-serif">
<defs>
<marker id="arrowhead" viewBox="0 -5 10 10" refX="%d" refY="0" markerWidth="6" markerHeight="6" orient="auto"><path d="M0,-5L10,0L0,5" fill="#999"/></marker>
</defs>
<rect width="100%%" height="100%%" fill="#fff"/>
`

// WriteSVG writes f as a standalone SVG document.
func WriteSVG(w io.Writer, f Frame) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, svgHeader, f.Width, f.Height, f.Width, f.Height, palette.NodeRadius+10)
	if f.Transform.K == 0 {
		f.Transform.K = 1
	}
	fmt.Fprintf(bw, "<g class=\"viewport\" transform=\"%s\">\n", f.Transform)

	fmt.Fprint(bw, "<g class=\"links\">\n")
	for _, l := range f.Links {
		fmt.Fprintf(bw,
			"<line class=\"link\" data-source=\"%s\" data-target=\"%s\" x1=\"%.2f\" y1=\"%.2f\" x2=\"%.2f\" y2=\"%.2f\" stroke=\"%s\" stroke-width=\"1.5\" opacity=\"%g\" marker-end=\"url(#arrowhead)\"/>\n",
			attr(l.Source), attr(l.Target), l.X1, l.Y1, l.X2, l.Y2, attr(l.Style.Stroke), l.Style.Opacity,
		)
	}
	fmt.Fprint(bw, "</g>\n<g class=\"link-labels\">\n")
	for _, l := range f.Links {
		fmt.Fprintf(bw,
			"<text class=\"link-label\" x=\"%.2f\" y=\"%.2f\" dy=\"-4\" font-size=\"9\" fill=\"#999\" text-anchor=\"middle\">%s</text>\n",
			l.LabelX, l.LabelY, html.EscapeString(l.RelationshipType),
		)
	}
	fmt.Fprint(bw, "</g>\n<g class=\"nodes\">\n")
	for _, n := range f.Nodes {
		fmt.Fprintf(bw,
			"<g class=\"node\" data-id=\"%s\" transform=\"translate(%.2f,%.2f)\"><title>%s</title><circle r=\"%d\" fill=\"%s\" stroke=\"%s\" stroke-width=\"%g\" opacity=\"%g\"/><text dy=\"%d\" font-size=\"10\" fill=\"#333\" font-weight=\"500\" text-anchor=\"middle\">%s</text></g>\n",
			attr(n.ID), n.X, n.Y, html.EscapeString(n.Name), palette.NodeRadius, attr(n.Color),
			attr(n.Style.Stroke), n.Style.StrokeWidth, n.Style.Opacity, palette.NodeRadius+14, html.EscapeString(n.Label),
		)
	}
	fmt.Fprint(bw, "</g>\n</g>\n</svg>\n")

	return bw.Flush()
}

func attr(s string) string {
	return html.EscapeString(s)
}
