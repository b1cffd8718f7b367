package qunit

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// hookRenames maps legacy QUnit module hooks to their ember-qunit names.
var hookRenames = map[string]string{
	"setup":    "beforeEach",
	"teardown": "afterEach",
}

// RewriteModule renames setup/teardown keys of the hooks object passed as the
// second argument of a module declaration. Only direct members keyed by a bare
// identifier are renamed; nested objects are not visited. It returns the
// number of keys renamed.
func RewriteModule(doc *Document, stmt *sitter.Node) int {
	call, ok := View(stmt, doc.Source).(CallStatement)
	if !ok || len(call.Args) < 2 {
		return 0
	}

	hooks, ok := View(call.Args[1], doc.Source).(ObjectLiteral)
	if !ok {
		return 0
	}

	renamed := 0
	for _, member := range hooks.Members {
		prop, ok := View(member, doc.Source).(Property)
		if !ok || prop.Key == nil {
			continue
		}

		var name string
		switch key := View(prop.Key, doc.Source).(type) {
		case Identifier:
			name = key.Name
		case Property:
			// shorthand members are their own key
			name = doc.Text(key.Node)
		case CallStatement, ObjectLiteral, FunctionLiteral, ImportStatement, StringLiteral, Other:
			continue
		}

		newName, ok := hookRenames[name]
		if !ok {
			continue
		}

		if prop.Shorthand {
			doc.Replace(prop.Node, newName+": "+name)
		} else {
			doc.Replace(prop.Key, newName)
		}
		renamed++
	}

	return renamed
}

// RewriteTest gives a zero-parameter test callback the single parameter
// assert. Callbacks that already declare parameters, arrow functions and
// non-function arguments are left alone. The body is never touched.
func RewriteTest(doc *Document, stmt *sitter.Node) bool {
	call, ok := View(stmt, doc.Source).(CallStatement)
	if !ok || len(call.Args) < 2 {
		return false
	}

	fn, ok := View(call.Args[1], doc.Source).(FunctionLiteral)
	if !ok || fn.Params == nil || fn.ParamCount > 0 {
		return false
	}

	if hasComment(fn.Params) {
		// Keep comments inside the parentheses; insert right after "(".
		doc.Insert(fn.Params.StartByte()+1, AssertParam)
	} else {
		doc.Replace(fn.Params, "("+AssertParam+")")
	}
	return true
}

func hasComment(node *sitter.Node) bool {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if node.NamedChild(i).Type() == "comment" {
			return true
		}
	}
	return false
}
