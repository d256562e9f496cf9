// Package sink writes a laid-out dendrogram to output formats.
//
// [RenderSVG] draws the scene with a [styles.Style]; [RenderPDF] and
// [RenderPNG] convert that SVG through rsvg-convert. [RenderJSON] exports
// the computed geometry (placements, labels, link paths) for external
// tools, and [RenderHTML] builds an interactive radial tree page with
// go-echarts.
//
//	l, _ := layout.Build(root, 300)
//	svg, err := sink.RenderSVG(l, sink.WithLinkStyle(radial.Arc), sink.WithTitle("Kartvelian"))
package sink
