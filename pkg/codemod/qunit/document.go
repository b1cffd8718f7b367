package qunit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/qunit-codemod/pkg/domain"
	"github.com/specvital/qunit-codemod/pkg/parser"
	"github.com/specvital/qunit-codemod/pkg/parser/tspool"
)

// ErrSyntax is returned when the input is not valid in the host grammar.
var ErrSyntax = errors.New("qunit: syntax error")

// SyntaxError locates the first parse error in a document.
type SyntaxError struct {
	Location domain.Location
	// Near is the source text of the offending node, truncated.
	Near string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d near %q",
		e.Location.StartLine, e.Location.StartCol+1, e.Near)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

const maxSnippet = 40

// Document is a parsed source file plus the edits recorded against it.
// Edits are byte-range replacements on the original source; printing splices
// them in and leaves every other byte untouched.
type Document struct {
	Source []byte
	Lang   domain.Language
	Root   *sitter.Node

	tree    *sitter.Tree
	edits   []edit
	newline string
}

type edit struct {
	start uint32
	end   uint32
	text  string
}

// Parse parses source and fails with a [*SyntaxError] if the tree contains
// any ERROR or MISSING node. The caller must Close the document.
func Parse(ctx context.Context, lang domain.Language, source []byte) (*Document, error) {
	tree, err := tspool.Parse(ctx, lang, source)
	if err != nil {
		return nil, err
	}

	root := tree.RootNode()
	if root == nil {
		tree.Close()
		return nil, fmt.Errorf("parse returned nil root node")
	}

	if bad := parser.FirstError(root); bad != nil {
		near := parser.GetNodeText(bad, source)
		if len(near) > maxSnippet {
			near = near[:maxSnippet]
		}
		serr := &SyntaxError{Location: parser.GetLocation(bad, ""), Near: near}
		tree.Close()
		return nil, serr
	}

	nl := "\n"
	if bytes.Contains(source, []byte("\r\n")) {
		nl = "\r\n"
	}

	return &Document{
		Source:  source,
		Lang:    lang,
		Root:    root,
		tree:    tree,
		newline: nl,
	}, nil
}

// Close releases the underlying tree.
func (d *Document) Close() {
	if d.tree != nil {
		d.tree.Close()
		d.tree = nil
	}
}

// Statements returns the top-level statements in source order.
// Comments and a leading #! line are not statements.
func (d *Document) Statements() []*sitter.Node {
	var stmts []*sitter.Node
	for _, child := range parser.NamedChildren(d.Root) {
		if child.Type() == "hash_bang_line" {
			continue
		}
		stmts = append(stmts, child)
	}
	return stmts
}

// Text returns the original source text of node.
func (d *Document) Text(node *sitter.Node) string {
	return parser.GetNodeText(node, d.Source)
}

// Replace records replacing node's source text with text.
func (d *Document) Replace(node *sitter.Node, text string) {
	d.ReplaceRange(node.StartByte(), node.EndByte(), text)
}

// ReplaceRange records replacing source[start:end] with text.
func (d *Document) ReplaceRange(start, end uint32, text string) {
	d.edits = append(d.edits, edit{start: start, end: end, text: text})
}

// Insert records inserting text at byte offset at.
func (d *Document) Insert(at uint32, text string) {
	d.ReplaceRange(at, at, text)
}

// Modified reports whether any edit has been recorded.
func (d *Document) Modified() bool {
	return len(d.edits) > 0
}

// Newline returns the line terminator used by the source.
func (d *Document) Newline() string {
	return d.newline
}

// Print returns the source with all recorded edits applied. Edits must not
// overlap; insertions at the same offset keep their recording order.
func (d *Document) Print() []byte {
	if len(d.edits) == 0 {
		return append([]byte(nil), d.Source...)
	}

	edits := make([]edit, len(d.edits))
	copy(edits, d.edits)
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].start < edits[j].start
	})

	growth := 0
	for _, e := range edits {
		growth += len(e.text)
	}
	out := make([]byte, 0, len(d.Source)+growth)

	last := uint32(0)
	for _, e := range edits {
		out = append(out, d.Source[last:e.start]...)
		out = append(out, e.text...)
		last = e.end
	}
	out = append(out, d.Source[last:]...)

	return out
}
