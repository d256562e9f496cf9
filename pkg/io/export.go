package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Babdus/protolanguage-v2/pkg/tree"
)

// WriteJSON encodes a tree as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(root *tree.Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromTree(root)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a tree to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(root *tree.Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(root, f)
}

// MarshalJSON returns the compact JSON encoding of a tree. It is stable for
// equal trees, which makes it suitable as a cache key input.
func MarshalJSON(root *tree.Node) ([]byte, error) {
	return json.Marshal(fromTree(root))
}

func fromTree(n *tree.Node) *node {
	out := &node{Name: n.Name, Distance: n.Distance, Meta: n.Meta}
	for _, c := range n.Children {
		out.Children = append(out.Children, fromTree(c))
	}
	return out
}
