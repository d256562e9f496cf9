package tree

import (
	"fmt"

	"github.com/Babdus/protolanguage-v2/pkg/errors"
)

// Metadata stores arbitrary key-value pairs attached to a node, such as a
// language code or a display color. It is carried through to exports
// unchanged.
type Metadata map[string]any

// Node is one vertex of the hierarchy.
type Node struct {
	Name     string   // Display label
	Distance float64  // Branch length to the parent (0 if unknown)
	Meta     Metadata // Optional free-form metadata
	Children []*Node
}

// New returns a node with the given name and children.
func New(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Walk visits n and its descendants in pre-order. The depth of n is 0.
// Returning false from fn skips the subtree below the visited node.
func (n *Node) Walk(fn func(node *Node, parent *Node, depth int) bool) {
	walk(n, nil, 0, fn)
}

func walk(n, parent *Node, depth int, fn func(*Node, *Node, int) bool) {
	if !fn(n, parent, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, n, depth+1, fn)
	}
}

// Leaves returns the leaves of the tree in left-to-right order.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.Walk(func(node, _ *Node, _ int) bool {
		if node.IsLeaf() {
			leaves = append(leaves, node)
		}
		return true
	})
	return leaves
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, *Node, int) bool {
		count++
		return true
	})
	return count
}

// Depth returns the number of edges on the longest root-to-leaf path.
func (n *Node) Depth() int {
	deepest := 0
	n.Walk(func(_, _ *Node, depth int) bool {
		deepest = max(deepest, depth)
		return true
	})
	return deepest
}

// Height returns the largest cumulative Distance from n to any leaf, not
// counting n's own Distance.
func (n *Node) Height() float64 {
	var h float64
	for _, c := range n.Children {
		h = max(h, c.Distance+c.Height())
	}
	return h
}

// Validate checks that every node in the tree is well formed. It returns an
// error with code MALFORMED_NODE describing the first problem found.
func Validate(root *Node) error {
	if root == nil {
		return errors.New(errors.ErrCodeMalformedNode, "tree has no root")
	}

	seen := make(map[*Node]bool)
	var firstErr error
	var check func(n *Node, path string)
	check = func(n *Node, path string) {
		if firstErr != nil {
			return
		}
		if n == nil {
			firstErr = errors.New(errors.ErrCodeMalformedNode, "%s: nil child", path)
			return
		}
		if seen[n] {
			firstErr = errors.New(errors.ErrCodeMalformedNode, "%s: node %q appears more than once", path, n.Name)
			return
		}
		seen[n] = true

		if err := errors.ValidateNodeName(n.Name); err != nil {
			firstErr = errors.Wrap(errors.ErrCodeMalformedNode, err, "%s", path)
			return
		}
		if err := errors.ValidateFinite("distance", n.Distance); err != nil {
			firstErr = errors.Wrap(errors.ErrCodeMalformedNode, err, "node %q", n.Name)
			return
		}
		if n.Distance < 0 {
			firstErr = errors.New(errors.ErrCodeMalformedNode, "node %q: negative distance %v", n.Name, n.Distance)
			return
		}
		for i, c := range n.Children {
			check(c, fmt.Sprintf("%s/%s[%d]", path, n.Name, i))
		}
	}
	check(root, "tree")
	return firstErr
}
