package radial

import "math"

// labelOffset is the distance between a node and its label text.
const labelOffset = 8.0

// Text anchors used by PlaceLabel.
const (
	AnchorStart = "start"
	AnchorEnd   = "end"
)

// Placement positions a node: rotate by Rotate degrees about the origin,
// then translate outward by Translate along the rotated x axis.
type Placement struct {
	Rotate    float64
	Translate float64
}

// PlaceNode returns the placement of n.
func PlaceNode(n Node) Placement {
	return Placement{Rotate: n.Angle - 90, Translate: n.Radius}
}

// Point returns the Cartesian point the placement moves the origin to.
func (p Placement) Point() Point {
	rad := p.Rotate * math.Pi / 180
	return Point{X: p.Translate * math.Cos(rad), Y: p.Translate * math.Sin(rad)}
}

// Transform returns the SVG transform attribute for the placement.
func (p Placement) Transform() string {
	return "rotate(" + formatFloat(p.Rotate) + ")translate(" + formatFloat(p.Translate) + ")"
}

// Label describes how a node's text is drawn in the node's local frame.
type Label struct {
	Text      string  // Node name for leaves, empty otherwise
	Offset    float64 // Shift along the local x axis
	Anchor    string  // AnchorStart or AnchorEnd
	Transform string  // SVG transform applied to the text element
	Visible   bool    // True for leaves only
}

// PlaceLabel returns the label of n. Labels on the left half of the circle
// (angle >= 180) are flipped so they read left to right.
func PlaceLabel(n Node) Label {
	l := Label{Visible: n.IsLeaf()}
	if l.Visible {
		l.Text = n.Name
	}
	if n.Angle < 180 {
		l.Offset = labelOffset
		l.Anchor = AnchorStart
		l.Transform = "translate(" + formatFloat(labelOffset) + ")"
	} else {
		l.Offset = -labelOffset
		l.Anchor = AnchorEnd
		l.Transform = "rotate(180)translate(" + formatFloat(-labelOffset) + ")"
	}
	return l
}
