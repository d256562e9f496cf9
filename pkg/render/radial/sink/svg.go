package sink

import (
	"bytes"
	"fmt"

	"github.com/Babdus/protolanguage-v2/pkg/render/radial"
	"github.com/Babdus/protolanguage-v2/pkg/render/radial/layout"
	"github.com/Babdus/protolanguage-v2/pkg/render/radial/styles"
)

// DefaultMargin is the space reserved around the outer circle for labels.
const DefaultMargin = 120.0

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	linkStyle radial.LinkStyle
	style     styles.Style
	width     float64
	height    float64
	margin    float64
	title     string
}

func WithLinkStyle(s radial.LinkStyle) SVGOption { return func(r *svgRenderer) { r.linkStyle = s } }
func WithStyle(s styles.Style) SVGOption         { return func(r *svgRenderer) { r.style = s } }
func WithTitle(title string) SVGOption           { return func(r *svgRenderer) { r.title = title } }
func WithMargin(m float64) SVGOption             { return func(r *svgRenderer) { r.margin = m } }

// WithSize sets the width and height attributes of the document. The
// viewBox always fits the whole tree; zero keeps the natural size.
func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = width, height }
}

// RenderSVG draws l as a standalone SVG document centered on the root.
// Malformed nodes abort rendering with a MALFORMED_NODE error.
func RenderSVG(l layout.Layout, opts ...SVGOption) ([]byte, error) {
	r := newSVGRenderer(opts...)

	sc, err := l.Scene(r.linkStyle)
	if err != nil {
		return nil, err
	}

	extent := max(l.Radius, sc.Bounds()) + r.margin
	size := 2 * extent
	width, height := r.width, r.height
	if width <= 0 {
		width = size
	}
	if height <= 0 {
		height = size
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		-extent, -extent, size, size, width, height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(r.title))
	}

	r.style.RenderDefs(&buf)
	buf.WriteString(`  <g class="links">` + "\n")
	for _, lv := range sc.Links {
		r.style.RenderLink(&buf, lv)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString(`  <g class="nodes">` + "\n")
	for _, nv := range sc.Nodes {
		r.style.RenderNode(&buf, nv)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{linkStyle: radial.Straight, margin: DefaultMargin}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = styles.ForLinkStyle(r.linkStyle)
	}
	return r
}
