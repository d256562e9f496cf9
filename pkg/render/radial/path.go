package radial

import (
	"math"
	"strconv"
	"strings"
)

// Point is a Cartesian coordinate with y pointing down.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// polar maps an angle in degrees and a radius to a Point.
func polar(angle, radius float64) Point {
	rad := (angle - 90) * math.Pi / 180
	return Point{X: radius * math.Cos(rad), Y: radius * math.Sin(rad)}
}

// SegmentKind identifies a path command.
type SegmentKind int

const (
	MoveTo  SegmentKind = iota // M x,y
	LineTo                     // L x,y
	CubicTo                    // C c1 c2 x,y
	ArcTo                      // A r,r 0 large,sweep x,y
)

// Segment is one path command. C1 and C2 are used by CubicTo; Radius,
// LargeArc and Sweep by ArcTo.
type Segment struct {
	Kind     SegmentKind
	To       Point
	C1, C2   Point
	Radius   float64
	LargeArc bool
	Sweep    bool
}

// Path is a sequence of segments starting with a MoveTo.
type Path struct {
	Segments []Segment
}

// Start returns the point the path starts at.
func (p Path) Start() Point {
	if len(p.Segments) == 0 {
		return Point{}
	}
	return p.Segments[0].To
}

// End returns the point the path ends at.
func (p Path) End() Point {
	if len(p.Segments) == 0 {
		return Point{}
	}
	return p.Segments[len(p.Segments)-1].To
}

// Arc returns the first ArcTo segment and its start point.
func (p Path) Arc() (seg Segment, from Point, ok bool) {
	for i, s := range p.Segments {
		if s.Kind == ArcTo && i > 0 {
			return s, p.Segments[i-1].To, true
		}
	}
	return Segment{}, Point{}, false
}

// String returns SVG path data with coordinates rounded to 3 decimals.
func (p Path) String() string {
	var b strings.Builder
	for _, s := range p.Segments {
		switch s.Kind {
		case MoveTo:
			b.WriteString("M")
			writePoint(&b, s.To)
		case LineTo:
			b.WriteString("L")
			writePoint(&b, s.To)
		case CubicTo:
			b.WriteString("C")
			writePoint(&b, s.C1)
			b.WriteByte(' ')
			writePoint(&b, s.C2)
			b.WriteByte(' ')
			writePoint(&b, s.To)
		case ArcTo:
			b.WriteString("A")
			b.WriteString(formatFloat(s.Radius))
			b.WriteByte(',')
			b.WriteString(formatFloat(s.Radius))
			b.WriteString(" 0 ")
			b.WriteString(flag(s.LargeArc))
			b.WriteByte(',')
			b.WriteString(flag(s.Sweep))
			b.WriteByte(' ')
			writePoint(&b, s.To)
		}
	}
	return b.String()
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(formatFloat(p.X))
	b.WriteByte(',')
	b.WriteString(formatFloat(p.Y))
}

func flag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// formatFloat rounds to 3 decimals and drops trailing zeros and negative zero.
func formatFloat(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
