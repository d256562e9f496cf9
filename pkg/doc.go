// Package pkg holds the dendro libraries.
//
// # Overview
//
// dendro draws a tree as a radial dendrogram: the root sits at the center,
// every level lies on a larger circle, and each node is linked to its parent
// by a radial curve or by an arc followed by a radial segment.
//
//	tree JSON ─┐
//	           ├─ [io] ─ [tree] ─ [render/radial/layout] ─ [render/radial] ─ [render/radial/sink]
//	matrix CSV ┘ [phylo]
//
// # Packages
//
//   - [tree]: the hierarchy and its validation
//   - [io]: JSON import and export, stdin and URL loading
//   - [phylo]: distance matrices and neighbor joining
//   - [render/radial]: node placement, label placement and link paths
//   - [render/radial/layout]: the cluster layout assigning polar coordinates
//   - [render/radial/sink]: SVG, JSON, HTML, PDF and PNG output
//   - [render/nodelink]: Graphviz DOT and twopi rendering
//   - [pipeline]: load, layout and render with caching
//   - [cache], [storage]: layout caches and stored renders
//   - [config], [errors], [observability], [buildinfo]: ambient support
//
// # Quick start
//
//	root, err := io.ImportJSON("languages.json")
//	if err != nil {
//	    return err
//	}
//	l, err := layout.Build(root, 300)
//	if err != nil {
//	    return err
//	}
//	svg, err := sink.RenderSVG(l, sink.WithLinkStyle(radial.Arc))
package pkg
