package qunit

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/qunit-codemod/pkg/parser"
)

// Classification is the result of the single classifying walk.
type Classification struct {
	// Modules holds top-level module(...) statements in source order.
	Modules []*sitter.Node
	// Tests holds top-level test(...) statements in source order.
	Tests []*sitter.Node
	// HasImport is set when any import statement, at any depth, imports
	// from the target module.
	HasImport bool
}

// Classify walks every node of doc once. Only direct children of the program
// are eligible as module or test declarations; imports are detected anywhere.
// The document is not modified.
func Classify(doc *Document, target Target) Classification {
	var c Classification

	parser.WalkTreeDepth(doc.Root, func(node *sitter.Node, depth int) bool {
		switch v := View(node, doc.Source).(type) {
		case CallStatement:
			if depth != 1 {
				break
			}
			switch v.Callee {
			case ModuleCallee:
				c.Modules = append(c.Modules, node)
			case TestCallee:
				c.Tests = append(c.Tests, node)
			}
		case ImportStatement:
			if v.Source == target.Module {
				c.HasImport = true
			}
		case ObjectLiteral, Property, FunctionLiteral, Identifier, StringLiteral, Other:
		}
		return true
	})

	return c
}
