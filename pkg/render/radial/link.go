package radial

import (
	"strings"

	"github.com/Babdus/protolanguage-v2/pkg/errors"
)

// LinkStyle selects the geometry of parent-child links.
type LinkStyle int

const (
	// Straight draws the standard radial link curve.
	Straight LinkStyle = iota
	// Arc draws an arc at the parent's radius and a radial line to the child.
	Arc
)

// String returns the style name accepted by ParseLinkStyle.
func (s LinkStyle) String() string {
	switch s {
	case Straight:
		return "straight"
	case Arc:
		return "arc"
	default:
		return "unknown"
	}
}

// LinkStyles lists the accepted style names.
var LinkStyles = []string{Straight.String(), Arc.String()}

// ParseLinkStyle parses a style name. The empty string selects Straight.
func ParseLinkStyle(s string) (LinkStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "straight":
		return Straight, nil
	case "arc":
		return Arc, nil
	default:
		return Straight, errors.New(errors.ErrCodeInvalidLinkStyle, "invalid link style: %s (must be 'straight' or 'arc')", s)
	}
}

// LinkPath returns the path of l drawn in the given style.
func LinkPath(style LinkStyle, l Link) Path {
	if style == Arc {
		return ArcLinkPath(l)
	}
	return StraightLinkPath(l)
}

// StraightLinkPath returns the radial link from source to target: a cubic
// curve whose control points lie at the mean radius on the source's and the
// target's angle respectively.
func StraightLinkPath(l Link) Path {
	s, t := l.Source, l.Target
	mid := (s.Radius + t.Radius) / 2
	return Path{Segments: []Segment{
		{Kind: MoveTo, To: polar(s.Angle, s.Radius)},
		{
			Kind: CubicTo,
			C1:   polar(s.Angle, mid),
			C2:   polar(t.Angle, mid),
			To:   polar(t.Angle, t.Radius),
		},
	}}
}

// ArcLinkPath returns the elbow link from source to target: an arc of
// radius source.Radius from the source to the elbow point at the target's
// angle, then a straight line out to the target.
func ArcLinkPath(l Link) Path {
	s, t := l.Source, l.Target
	src := polar(s.Angle, s.Radius)
	elbow := polar(t.Angle, s.Radius)
	dst := polar(t.Angle, t.Radius)

	return Path{Segments: []Segment{
		{Kind: MoveTo, To: src},
		{Kind: ArcTo, To: elbow, Radius: s.Radius, LargeArc: false, Sweep: s.Angle <= t.Angle},
		{Kind: LineTo, To: dst},
	}}
}
