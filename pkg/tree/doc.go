// Package tree provides the hierarchy that dendro renders as a radial
// dendrogram.
//
// # Overview
//
// A tree is a single root [Node] with nested children. It is the in-memory
// form of the JSON documents read by [github.com/Babdus/protolanguage-v2/pkg/io]
// and produced by neighbor joining in [github.com/Babdus/protolanguage-v2/pkg/phylo]:
//
//	{"name": "root", "children": [
//	  {"name": "ka", "distance": 0.42},
//	  {"name": "hy", "distance": 0.37}
//	]}
//
// A node without children is a leaf. Only leaves receive a visible label
// in rendered output.
//
// # Branch Lengths
//
// [Node.Distance] is the optional length of the edge to the node's parent.
// Layouts use it to place nodes by cumulative distance from the root instead
// of by depth.
//
// # Validation
//
// [Validate] walks the whole tree and rejects missing names, negative or
// non-finite distances and shared subtrees (a node reachable twice), all
// reported with the MALFORMED_NODE error code.
package tree
