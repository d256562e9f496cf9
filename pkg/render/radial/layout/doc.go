// Package layout assigns polar coordinates to the nodes of a tree.
//
// [Build] implements a cluster (dendrogram) layout on a full circle:
//
//   - Leaves are spread over [0, 360) in left-to-right order. Adjacent
//     siblings are one unit apart, cousins two, and the same gap is kept
//     across the 0°/360° seam.
//   - Inner nodes sit at the mean angle of their children.
//   - Radius grows with depth, reaching the layout radius at the deepest
//     leaf.
//
// Options change the radial placement:
//
//   - [WithLeavesAligned]: all leaves on the outer circle, inner nodes
//     placed by the height of their subtree
//   - [WithBranchLengths]: radius proportional to the cumulative branch
//     length from the root (a phylogram)
//
//	l, err := layout.Build(root, 300, layout.WithBranchLengths())
//	scene, err := l.Scene(radial.Arc)
package layout
