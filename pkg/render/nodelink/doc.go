// Package nodelink renders trees as Graphviz node-link diagrams.
//
// # Overview
//
// This package is an alternative to the radial dendrogram renderer: the
// tree is converted to DOT and laid out by Graphviz's twopi engine, which
// also places the root at the center and the descendants on concentric
// rings.
//
// # Usage
//
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Options
//
//   - Detailed: node labels include the branch length and metadata
//   - Engine: Graphviz layout engine, "twopi" by default
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
