package radial

import (
	"math"
	"strings"
	"testing"

	"github.com/Babdus/protolanguage-v2/pkg/errors"
)

const eps = 1e-6

func near(a, b Point) bool { return a.Dist(b) < eps }

func TestPlaceNodeRotation(t *testing.T) {
	for angle := 0.0; angle < 360; angle += 7.5 {
		p := PlaceNode(Node{Name: "n", Angle: angle, Radius: 10})
		if p.Rotate != angle-90 {
			t.Errorf("PlaceNode(%v).Rotate = %v, want %v", angle, p.Rotate, angle-90)
		}
		if p.Translate != 10 {
			t.Errorf("PlaceNode(%v).Translate = %v, want 10", angle, p.Translate)
		}
	}
}

func TestPlacementPoint(t *testing.T) {
	tests := []struct {
		angle, radius float64
		want          Point
	}{
		{0, 100, Point{0, -100}},
		{90, 100, Point{100, 0}},
		{180, 100, Point{0, 100}},
		{270, 50, Point{-50, 0}},
		{45, 0, Point{0, 0}},
	}
	for _, tt := range tests {
		got := PlaceNode(Node{Name: "n", Angle: tt.angle, Radius: tt.radius}).Point()
		if !near(got, tt.want) {
			t.Errorf("Point(%v, %v) = %v, want %v", tt.angle, tt.radius, got, tt.want)
		}
	}
}

func TestPlacementTransform(t *testing.T) {
	got := PlaceNode(Node{Name: "n", Angle: 30, Radius: 120.5}).Transform()
	if got != "rotate(-60)translate(120.5)" {
		t.Errorf("Transform() = %q", got)
	}
}

func TestPlaceLabel(t *testing.T) {
	tests := []struct {
		name      string
		node      Node
		visible   bool
		offset    float64
		anchor    string
		transform string
	}{
		{"leaf right half", Node{Name: "ka", Angle: 10, ChildCount: 0}, true, 8, "start", "translate(8)"},
		{"leaf just below 180", Node{Name: "ka", Angle: 179.9}, true, 8, "start", "translate(8)"},
		{"leaf at 180", Node{Name: "hy", Angle: 180}, true, -8, "end", "rotate(180)translate(-8)"},
		{"leaf left half", Node{Name: "hy", Angle: 300}, true, -8, "end", "rotate(180)translate(-8)"},
		{"inner node", Node{Name: "ka.hy", Angle: 90, ChildCount: 2}, false, 8, "start", "translate(8)"},
		{"inner node left", Node{Name: "ka.hy", Angle: 200, ChildCount: 1}, false, -8, "end", "rotate(180)translate(-8)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := PlaceLabel(tt.node)
			if l.Visible != tt.visible {
				t.Errorf("Visible = %v, want %v", l.Visible, tt.visible)
			}
			if tt.visible && l.Text != tt.node.Name {
				t.Errorf("Text = %q, want %q", l.Text, tt.node.Name)
			}
			if !tt.visible && l.Text != "" {
				t.Errorf("Text = %q, want empty", l.Text)
			}
			if l.Offset != tt.offset || l.Anchor != tt.anchor || l.Transform != tt.transform {
				t.Errorf("got (%v, %s, %s), want (%v, %s, %s)", l.Offset, l.Anchor, l.Transform, tt.offset, tt.anchor, tt.transform)
			}
		})
	}
}

func TestLabelVisibleIffLeaf(t *testing.T) {
	for children := 0; children < 4; children++ {
		for angle := 0.0; angle < 360; angle += 45 {
			l := PlaceLabel(Node{Name: "n", Angle: angle, ChildCount: children})
			if l.Visible != (children == 0) {
				t.Errorf("children=%d angle=%v: Visible = %v", children, angle, l.Visible)
			}
		}
	}
}

func TestLinkEndpointsMatchPlacement(t *testing.T) {
	links := []Link{
		{Node{Name: "r", Angle: 0, Radius: 0, ChildCount: 2}, Node{Name: "a", Angle: 0, Radius: 100}},
		{Node{Name: "p", Angle: 200, Radius: 50, ChildCount: 1}, Node{Name: "c", Angle: 100, Radius: 80}},
		{Node{Name: "p", Angle: 30, Radius: 50, ChildCount: 3}, Node{Name: "c", Angle: 170, Radius: 90}},
		{Node{Name: "p", Angle: 350, Radius: 20, ChildCount: 1}, Node{Name: "c", Angle: 10, Radius: 40}},
		{Node{Name: "p", Angle: 123, Radius: 33, ChildCount: 1}, Node{Name: "c", Angle: 123, Radius: 66}},
	}
	for _, style := range []LinkStyle{Straight, Arc} {
		for _, l := range links {
			p := LinkPath(style, l)
			src := PlaceNode(l.Source).Point()
			dst := PlaceNode(l.Target).Point()
			if !near(p.Start(), src) {
				t.Errorf("%s %s->%s: Start() = %v, want %v", style, l.Source.Name, l.Target.Name, p.Start(), src)
			}
			if !near(p.End(), dst) {
				t.Errorf("%s %s->%s: End() = %v, want %v", style, l.Source.Name, l.Target.Name, p.End(), dst)
			}
		}
	}
}

func TestStraightLinkPathControls(t *testing.T) {
	l := Link{Node{Name: "p", Angle: 90, Radius: 20, ChildCount: 1}, Node{Name: "c", Angle: 180, Radius: 60}}
	p := StraightLinkPath(l)
	if len(p.Segments) != 2 || p.Segments[1].Kind != CubicTo {
		t.Fatalf("segments = %+v", p.Segments)
	}
	c := p.Segments[1]
	if !near(c.C1, Point{40, 0}) {
		t.Errorf("C1 = %v, want (40, 0)", c.C1)
	}
	if !near(c.C2, Point{0, 40}) {
		t.Errorf("C2 = %v, want (0, 40)", c.C2)
	}
	if got := p.String(); got != "M20,0C40,0 0,40 0,60" {
		t.Errorf("String() = %q", got)
	}
}

func TestArcLinkPathSweep(t *testing.T) {
	src := Node{Name: "p", Angle: 200, Radius: 50, ChildCount: 1}
	dst := Node{Name: "c", Angle: 100, Radius: 80}
	p := ArcLinkPath(Link{src, dst})

	arc, from, ok := p.Arc()
	if !ok {
		t.Fatal("Arc() ok = false")
	}
	if arc.Radius != 50 || arc.LargeArc || arc.Sweep {
		t.Errorf("arc = %+v, want radius 50, large 0, sweep 0", arc)
	}
	if !near(from, polar(200, 50)) {
		t.Errorf("arc start = %v, want source point", from)
	}
	if !near(arc.To, polar(100, 50)) {
		t.Errorf("arc end = %v, want elbow at target angle on source radius", arc.To)
	}
	last := p.Segments[len(p.Segments)-1]
	if last.Kind != LineTo || !near(last.To, polar(100, 80)) {
		t.Errorf("last segment = %+v, want line to target", last)
	}
	if s := p.String(); !strings.Contains(s, "A50,50 0 0,0 ") {
		t.Errorf("String() = %q, want arc flags 0,0", s)
	}
}

func TestArcLinkPathSweepIncreasing(t *testing.T) {
	p := ArcLinkPath(Link{
		Node{Name: "p", Angle: 100, Radius: 50, ChildCount: 1},
		Node{Name: "c", Angle: 200, Radius: 80},
	})
	arc, _, _ := p.Arc()
	if !arc.Sweep || arc.LargeArc {
		t.Errorf("arc = %+v, want sweep 1, large 0", arc)
	}
}

func TestArcLinkPathEqualAngles(t *testing.T) {
	p := ArcLinkPath(Link{
		Node{Name: "p", Angle: 45, Radius: 30, ChildCount: 1},
		Node{Name: "c", Angle: 45, Radius: 90},
	})
	arc, from, ok := p.Arc()
	if !ok {
		t.Fatal("Arc() ok = false")
	}
	if !near(from, arc.To) {
		t.Errorf("zero-length arc expected: from %v, to %v", from, arc.To)
	}
}

// Known edge case: the sweep decision compares raw angles, so a link across
// the 0/360 seam is not special-cased.
func TestArcLinkPathWrapAround(t *testing.T) {
	p := ArcLinkPath(Link{
		Node{Name: "p", Angle: 350, Radius: 40, ChildCount: 1},
		Node{Name: "c", Angle: 10, Radius: 80},
	})
	arc, _, _ := p.Arc()
	if arc.Sweep {
		t.Errorf("350 -> 10: Sweep = true, want false (source angle is greater)")
	}
}

func TestPathString(t *testing.T) {
	p := ArcLinkPath(Link{
		Node{Name: "r", Angle: 0, Radius: 0, ChildCount: 2},
		Node{Name: "l", Angle: 180, Radius: 100},
	})
	if got := p.String(); got != "M0,0A0,0 0 0,1 0,0L0,100" {
		t.Errorf("String() = %q", got)
	}
	if (Path{}).Start() != (Point{}) || (Path{}).End() != (Point{}) {
		t.Error("empty path should start and end at origin")
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{6.123233995736766e-15, "0"},
		{1.23456, "1.235"},
		{-8, "-8"},
		{100.1, "100.1"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.in); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseLinkStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    LinkStyle
		wantErr bool
	}{
		{"", Straight, false},
		{"straight", Straight, false},
		{"ARC", Arc, false},
		{" arc ", Arc, false},
		{"curvy", Straight, true},
	}
	for _, tt := range tests {
		got, err := ParseLinkStyle(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLinkStyle(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidLinkStyle) {
			t.Errorf("ParseLinkStyle(%q) code = %v", tt.in, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ParseLinkStyle(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if Straight.String() != "straight" || Arc.String() != "arc" || LinkStyle(9).String() != "unknown" {
		t.Error("LinkStyle.String() mismatch")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		node    Node
		wantErr bool
	}{
		{"valid", Node{Name: "a", Angle: 0, Radius: 0}, false},
		{"valid max angle", Node{Name: "a", Angle: 359.99, Radius: 10, ChildCount: 2}, false},
		{"missing name", Node{Angle: 10, Radius: 1}, true},
		{"negative radius", Node{Name: "a", Radius: -1}, true},
		{"NaN angle", Node{Name: "a", Angle: math.NaN()}, true},
		{"Inf radius", Node{Name: "a", Radius: math.Inf(1)}, true},
		{"angle 360", Node{Name: "a", Angle: 360}, true},
		{"negative angle", Node{Name: "a", Angle: -1}, true},
		{"negative children", Node{Name: "a", ChildCount: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.node)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeMalformedNode) {
				t.Errorf("Validate() code = %v, want MALFORMED_NODE", errors.GetCode(err))
			}
		})
	}
}

func TestValidateLink(t *testing.T) {
	parent := Node{Name: "p", Angle: 10, Radius: 10, ChildCount: 1}
	child := Node{Name: "c", Angle: 20, Radius: 20}

	if err := ValidateLink(Link{parent, child}); err != nil {
		t.Errorf("valid link: %v", err)
	}
	// A unary parent and its child on a zero-length branch are equal values.
	if err := ValidateLink(Link{parent, parent}); err != nil {
		t.Errorf("coincident parent and child: %v", err)
	}
	if err := ValidateLink(Link{child, parent}); err == nil {
		t.Error("link from a leaf should be rejected")
	}
	if err := ValidateLink(Link{parent, Node{Name: "c", Radius: -5}}); err == nil {
		t.Error("malformed target should be rejected")
	}
}

func TestBuildSceneEndToEnd(t *testing.T) {
	root := Node{Name: "root", Angle: 0, Radius: 0, ChildCount: 2}
	leaf1 := Node{Name: "leaf1", Angle: 0, Radius: 100}
	leaf2 := Node{Name: "leaf2", Angle: 180, Radius: 100}

	for _, style := range []LinkStyle{Straight, Arc} {
		sc, err := BuildScene(
			[]Node{root, leaf1, leaf2},
			[]Link{{root, leaf1}, {root, leaf2}},
			style,
		)
		if err != nil {
			t.Fatalf("BuildScene(%s): %v", style, err)
		}
		if len(sc.Links) != 2 || len(sc.Nodes) != 3 {
			t.Fatalf("%s: got %d links, %d nodes", style, len(sc.Links), len(sc.Nodes))
		}
		if sc.Nodes[0].Label.Visible || sc.Nodes[0].Label.Text != "" {
			t.Errorf("%s: root label = %+v, want empty", style, sc.Nodes[0].Label)
		}
		for _, nv := range sc.Nodes[1:] {
			if !nv.Label.Visible || nv.Label.Text != nv.Node.Name {
				t.Errorf("%s: %s label = %+v, want visible", style, nv.Node.Name, nv.Label)
			}
		}
		if !near(sc.Nodes[1].Placement.Point(), Point{0, -100}) || !near(sc.Nodes[2].Placement.Point(), Point{0, 100}) {
			t.Errorf("%s: leaf placements = %v, %v", style, sc.Nodes[1].Placement.Point(), sc.Nodes[2].Placement.Point())
		}
		if sc.Bounds() != 100 {
			t.Errorf("Bounds() = %v, want 100", sc.Bounds())
		}
	}
}

func TestBuildSceneRejectsMalformed(t *testing.T) {
	_, err := BuildScene([]Node{{Name: "x", Radius: -1}}, nil, Straight)
	if !errors.Is(err, errors.ErrCodeMalformedNode) {
		t.Errorf("BuildScene() error = %v, want MALFORMED_NODE", err)
	}
}
