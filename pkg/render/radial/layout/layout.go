package layout

import (
	"github.com/Babdus/protolanguage-v2/pkg/errors"
	"github.com/Babdus/protolanguage-v2/pkg/render/radial"
	"github.com/Babdus/protolanguage-v2/pkg/tree"
)

// Layout is a tree with polar coordinates assigned to every node.
type Layout struct {
	Radius float64       `json:"radius"` // Outer radius of the layout
	Nodes  []radial.Node `json:"nodes"`  // Pre-order, root first
	Links  []radial.Link `json:"links"`  // Parent to child, in pre-order of the child
	Trees  []*tree.Node  `json:"-"`      // Source node for each entry of Nodes; nil when decoded
}

// Scene computes the drawable geometry of the layout.
func (l Layout) Scene(style radial.LinkStyle) (radial.Scene, error) {
	return radial.BuildScene(l.Nodes, l.Links, style)
}

// Option configures Build.
type Option func(*config)

type config struct {
	branchLengths bool
	leavesAligned bool
}

// WithBranchLengths places nodes by cumulative Distance from the root. Trees
// without any branch lengths fall back to depth.
func WithBranchLengths() Option { return func(c *config) { c.branchLengths = true } }

// WithLeavesAligned puts every leaf on the outer circle.
func WithLeavesAligned() Option { return func(c *config) { c.leavesAligned = true } }

type placed struct {
	src      *tree.Node
	parent   *placed
	children []*placed
	depth    int
	x        float64 // unnormalized angular position
	dist     float64 // cumulative branch length
	height   int     // edges to the deepest leaf below
}

// Build lays out the tree rooted at root within the given outer radius.
func Build(root *tree.Node, radius float64, opts ...Option) (Layout, error) {
	if err := tree.Validate(root); err != nil {
		return Layout{}, err
	}
	if err := errors.ValidateFinite("radius", radius); err != nil || radius < 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "layout radius must be a finite non-negative number, got %v", radius)
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	var order, leaves []*placed
	var build func(n *tree.Node, parent *placed, depth int) *placed
	build = func(n *tree.Node, parent *placed, depth int) *placed {
		p := &placed{src: n, parent: parent, depth: depth}
		if parent != nil {
			p.dist = parent.dist + n.Distance
		}
		order = append(order, p)
		for _, c := range n.Children {
			p.children = append(p.children, build(c, p, depth+1))
		}
		if len(p.children) == 0 {
			leaves = append(leaves, p)
		}
		return p
	}
	top := build(root, nil, 0)

	assignX(top, leaves)
	angle := angleScale(leaves)
	radiusOf := radiusScale(top, order, radius, cfg)

	l := Layout{
		Radius: radius,
		Nodes:  make([]radial.Node, len(order)),
		Trees:  make([]*tree.Node, len(order)),
	}
	index := make(map[*placed]int, len(order))
	for i, p := range order {
		index[p] = i
		l.Nodes[i] = radial.Node{
			Name:       p.src.Name,
			Angle:      angle(p.x),
			Radius:     radiusOf(p),
			ChildCount: len(p.children),
		}
		l.Trees[i] = p.src
		if p.parent != nil {
			l.Links = append(l.Links, radial.Link{Source: l.Nodes[index[p.parent]], Target: l.Nodes[i]})
		}
	}
	return l, nil
}

func separation(a, b *placed) float64 {
	if a.parent == b.parent {
		return 1
	}
	return 2
}

// assignX spaces leaves by separation and centers inner nodes over their
// children.
func assignX(top *placed, leaves []*placed) {
	for i, leaf := range leaves {
		if i > 0 {
			leaf.x = leaves[i-1].x + separation(leaves[i-1], leaf)
		}
	}
	var visit func(p *placed)
	visit = func(p *placed) {
		if len(p.children) == 0 {
			return
		}
		var sum float64
		for _, c := range p.children {
			visit(c)
			sum += c.x
			p.height = max(p.height, c.height+1)
		}
		p.x = sum / float64(len(p.children))
	}
	visit(top)
}

// angleScale maps x positions onto [0, 360), leaving half a separation of
// padding on each side of the seam.
func angleScale(leaves []*placed) func(float64) float64 {
	left, right := leaves[0], leaves[len(leaves)-1]
	x0 := left.x - separation(left, right)/2
	x1 := right.x + separation(right, left)/2
	return func(x float64) float64 {
		return (x - x0) / (x1 - x0) * 360
	}
}

func radiusScale(top *placed, order []*placed, radius float64, cfg config) func(*placed) float64 {
	if cfg.branchLengths {
		var maxDist float64
		for _, p := range order {
			maxDist = max(maxDist, p.dist)
		}
		if maxDist > 0 {
			return func(p *placed) float64 {
				if cfg.leavesAligned && len(p.children) == 0 {
					return radius
				}
				return p.dist / maxDist * radius
			}
		}
	}

	if cfg.leavesAligned {
		if top.height == 0 {
			return func(*placed) float64 { return 0 }
		}
		h := float64(top.height)
		return func(p *placed) float64 {
			return (1 - float64(p.height)/h) * radius
		}
	}

	maxDepth := 0
	for _, p := range order {
		maxDepth = max(maxDepth, p.depth)
	}
	if maxDepth == 0 {
		return func(*placed) float64 { return 0 }
	}
	return func(p *placed) float64 {
		return float64(p.depth) / float64(maxDepth) * radius
	}
}
