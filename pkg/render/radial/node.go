package radial

import (
	"github.com/Babdus/protolanguage-v2/pkg/errors"
)

// Node is a laid-out tree node.
type Node struct {
	Name       string  // Label text
	Angle      float64 // Degrees in [0, 360)
	Radius     float64 // Distance from the root, >= 0
	ChildCount int     // Number of children; 0 for leaves
}

// IsLeaf reports whether the node has no children.
func (n Node) IsLeaf() bool { return n.ChildCount == 0 }

// Link connects a parent (Source) to one of its children (Target). Nodes
// are values, so a parent and child may compare equal (same name on a
// zero-length branch); links are never checked for identity here.
type Link struct {
	Source Node
	Target Node
}

// Validate rejects nodes whose geometry would be meaningless. All failures
// carry the MALFORMED_NODE code.
func Validate(n Node) error {
	if err := errors.ValidateNodeName(n.Name); err != nil {
		return err
	}
	if err := errors.ValidateFinite("angle", n.Angle); err != nil {
		return errors.Wrap(errors.ErrCodeMalformedNode, err, "node %q", n.Name)
	}
	if err := errors.ValidateFinite("radius", n.Radius); err != nil {
		return errors.Wrap(errors.ErrCodeMalformedNode, err, "node %q", n.Name)
	}
	if n.Angle < 0 || n.Angle >= 360 {
		return errors.New(errors.ErrCodeMalformedNode, "node %q: angle %v outside [0, 360)", n.Name, n.Angle)
	}
	if n.Radius < 0 {
		return errors.New(errors.ErrCodeMalformedNode, "node %q: negative radius %v", n.Name, n.Radius)
	}
	if n.ChildCount < 0 {
		return errors.New(errors.ErrCodeMalformedNode, "node %q: negative child count %d", n.Name, n.ChildCount)
	}
	return nil
}

// ValidateLink checks both endpoints and that the source has children.
func ValidateLink(l Link) error {
	if err := Validate(l.Source); err != nil {
		return err
	}
	if err := Validate(l.Target); err != nil {
		return err
	}
	if l.Source.IsLeaf() {
		return errors.New(errors.ErrCodeMalformedNode, "link %q -> %q: source has no children", l.Source.Name, l.Target.Name)
	}
	return nil
}
