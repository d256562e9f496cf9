package styles

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/Babdus/protolanguage-v2/pkg/render/radial"
)

// Simple draws flat circles joined by stroked paths.
type Simple struct {
	NodeRadius  float64 // Circle radius of every node marker
	NodeFill    string
	NodeStroke  string
	LinkStroke  string
	StrokeWidth float64 // Shared by links and node outlines
	Font        string  // CSS font shorthand for labels
}

func (s Simple) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>\n")
	fmt.Fprintf(buf, "    .link { fill: none; stroke: %s; stroke-width: %spx; }\n", s.LinkStroke, num(s.StrokeWidth))
	fmt.Fprintf(buf, "    .node circle { fill: %s; stroke: %s; stroke-width: %spx; }\n", s.NodeFill, s.NodeStroke, num(s.StrokeWidth))
	fmt.Fprintf(buf, "    .node text { font: %s; }\n", s.Font)
	fmt.Fprintf(buf, "  </style>\n")
}

func (s Simple) RenderLink(buf *bytes.Buffer, l radial.LinkView) {
	fmt.Fprintf(buf, `  <path class="link" d="%s" data-source="%s" data-target="%s"/>`+"\n",
		l.Path.String(), EscapeXML(l.Link.Source.Name), EscapeXML(l.Link.Target.Name))
}

func (s Simple) RenderNode(buf *bytes.Buffer, n radial.NodeView) {
	class := "node node--internal"
	if n.Node.IsLeaf() {
		class = "node node--leaf"
	}
	fmt.Fprintf(buf, `  <g class="%s" transform="%s">`+"\n", class, n.Placement.Transform())
	fmt.Fprintf(buf, `    <circle r="%s"/>`+"\n", num(s.NodeRadius))
	if n.Label.Visible {
		fmt.Fprintf(buf, `    <text dy="0.31em" text-anchor="%s" transform="%s">%s</text>`+"\n",
			n.Label.Anchor, n.Label.Transform, EscapeXML(n.Label.Text))
	}
	buf.WriteString("  </g>\n")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
