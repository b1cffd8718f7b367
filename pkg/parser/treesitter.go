// Package parser holds tree-sitter helpers shared by the codemod: node text
// and location, comment-aware child listing, bounded tree walks and syntax
// error lookup.
package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/qunit-codemod/pkg/domain"
	"github.com/specvital/qunit-codemod/pkg/parser/tspool"
)

// GetNodeText returns the source text for the given AST node.
// Returns empty string if the node's byte range exceeds the source length.
// Uses defensive bounds checking and panic recovery to handle edge cases.
func GetNodeText(node *sitter.Node, source []byte) (result string) {
	start := node.StartByte()
	end := node.EndByte()
	sourceLen := uint32(len(source))

	// Validate bounds before calling tree-sitter C code
	if start > sourceLen || end > sourceLen {
		return ""
	}

	defer func() {
		if r := recover(); r != nil {
			result = ""
		}
	}()

	return node.Content(source)
}

// GetLocation converts a tree-sitter node position to a [domain.Location].
// Line numbers are converted to 1-based indexing.
func GetLocation(node *sitter.Node, filename string) domain.Location {
	start := node.StartPoint()
	end := node.EndPoint()

	return domain.Location{
		File:      filename,
		StartLine: int(start.Row) + 1, // Convert to 1-based
		EndLine:   int(end.Row) + 1,
		StartCol:  int(start.Column),
		EndCol:    int(end.Column),
	}
}

// NamedChildren returns the named direct children of node, skipping comments.
func NamedChildren(node *sitter.Node) []*sitter.Node {
	var children []*sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		children = append(children, child)
	}
	return children
}

func walkTreeWithDepth(node *sitter.Node, visitor func(*sitter.Node, int) bool, depth int) {
	if depth > tspool.MaxTreeDepth {
		return
	}

	if !visitor(node, depth) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTreeWithDepth(node.Child(i), visitor, depth+1)
	}
}

// WalkTree recursively visits all nodes in the AST.
// The visitor function returns false to stop traversing into children.
func WalkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	walkTreeWithDepth(node, func(n *sitter.Node, _ int) bool { return visitor(n) }, 0)
}

// WalkTreeDepth is like [WalkTree] but also reports each node's depth
// relative to the starting node, which is visited at depth 0.
func WalkTreeDepth(node *sitter.Node, visitor func(node *sitter.Node, depth int) bool) {
	walkTreeWithDepth(node, visitor, 0)
}

// FirstError returns the first ERROR or MISSING node in document order,
// or nil if the tree parsed cleanly.
func FirstError(root *sitter.Node) *sitter.Node {
	if root == nil || !root.HasError() {
		return nil
	}

	var found *sitter.Node
	WalkTree(root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			found = n
			return false
		}
		return n.HasError()
	})
	return found
}

// DumpTree returns the S-expression representation of the parsed source.
// Useful for debugging which node types the grammar produces for your code.
func DumpTree(ctx context.Context, lang domain.Language, source []byte) (string, error) {
	tree, err := tspool.Parse(ctx, lang, source)
	if err != nil {
		return "", err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return "", fmt.Errorf("parse returned nil root node")
	}

	return root.String(), nil
}
