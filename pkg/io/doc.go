// Package io provides JSON import and export for dendrogram trees.
//
// # JSON Format
//
// A tree is a single nested object:
//
//	{
//	  "name": "root",
//	  "children": [
//	    {"name": "leaf1", "children": []},
//	    {"name": "leaf2", "distance": 0.25}
//	  ]
//	}
//
// Required:
//   - name: Display label of the node
//
// Optional:
//   - children: Child nodes (absent or empty marks a leaf)
//   - distance: Branch length to the parent, used by phylogram layouts
//   - meta: Freeform object carried through unchanged
//
// # Loading
//
// [LoadTree] is the first stage of the render pipeline. It reads a tree from
// a file path, from stdin ("-"), or from an http(s) URL, decodes it, and
// validates it. Failures to read or decode the document are reported with
// the DATA_UNAVAILABLE error code; structurally broken trees with
// MALFORMED_NODE. Either aborts the render.
//
//	root, err := io.LoadTree(ctx, "data/generated/tree.json")
//	if err != nil {
//	    return err
//	}
//
// [ReadJSON] and [ImportJSON] decode without fetching; [WriteJSON] and
// [ExportJSON] produce the same format so documents round-trip.
package io
