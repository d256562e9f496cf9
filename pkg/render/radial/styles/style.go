package styles

import (
	"bytes"

	"github.com/Babdus/protolanguage-v2/pkg/render/radial"
)

// Style defines the visual appearance of a dendrogram.
type Style interface {
	// RenderDefs writes the SVG <style> or <defs> content.
	RenderDefs(buf *bytes.Buffer)
	// RenderLink writes the SVG for a single parent to child link.
	RenderLink(buf *bytes.Buffer, l radial.LinkView)
	// RenderNode writes the SVG group for a node marker and its label.
	RenderNode(buf *bytes.Buffer, n radial.NodeView)
}

// ForLinkStyle returns the stock style for the given link geometry.
func ForLinkStyle(s radial.LinkStyle) Simple {
	st := Simple{
		NodeRadius:  4,
		NodeFill:    "#fff",
		NodeStroke:  "steelblue",
		LinkStroke:  "#ccc",
		StrokeWidth: 3,
		Font:        "14px sans-serif",
	}
	if s == radial.Arc {
		st.NodeRadius = 8
	}
	return st
}
