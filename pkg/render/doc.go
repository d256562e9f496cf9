// Package render provides output conversion shared by the dendrogram
// renderers.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, _ := sink.RenderSVG(layout)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Renderers
//
//   - [radial]: polar placement, labels and link paths for radial trees
//   - [radial/layout]: cluster layout assigning angles and radii
//   - [radial/sink]: SVG, JSON, HTML, PDF and PNG output
//   - [nodelink]: Graphviz twopi rendering of the same tree
package render
