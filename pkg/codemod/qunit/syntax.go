package qunit

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/qunit-codemod/pkg/parser"
)

// Syntax is a closed view over the tree-sitter node kinds the codemod cares
// about. Every rule inspects nodes through [View] and a type switch instead of
// comparing raw node type strings.
type Syntax interface {
	syntaxNode() *sitter.Node
}

// CallStatement is an expression statement whose expression is a call.
// Callee is set only when the callee is a bare identifier.
type CallStatement struct {
	Node   *sitter.Node
	Callee string
	Args   []*sitter.Node
}

// ObjectLiteral is an object expression. Members holds its direct members.
type ObjectLiteral struct {
	Node    *sitter.Node
	Members []*sitter.Node
}

// Property is a member of an object literal that carries a key: a
// key/value pair, a method, or a shorthand property.
type Property struct {
	Node      *sitter.Node
	Key       *sitter.Node
	Shorthand bool
}

// FunctionLiteral is a non-arrow function expression.
type FunctionLiteral struct {
	Node       *sitter.Node
	Params     *sitter.Node
	ParamCount int
}

// ImportStatement is an ES module import declaration.
type ImportStatement struct {
	Node   *sitter.Node
	Source string
}

// Identifier is a bare name, including property keys.
type Identifier struct {
	Node *sitter.Node
	Name string
}

// StringLiteral is a quoted string with its unquoted value.
type StringLiteral struct {
	Node  *sitter.Node
	Value string
}

// Other is any node the codemod does not inspect.
type Other struct {
	Node *sitter.Node
}

func (s CallStatement) syntaxNode() *sitter.Node   { return s.Node }
func (s ObjectLiteral) syntaxNode() *sitter.Node   { return s.Node }
func (s Property) syntaxNode() *sitter.Node        { return s.Node }
func (s FunctionLiteral) syntaxNode() *sitter.Node { return s.Node }
func (s ImportStatement) syntaxNode() *sitter.Node { return s.Node }
func (s Identifier) syntaxNode() *sitter.Node      { return s.Node }
func (s StringLiteral) syntaxNode() *sitter.Node   { return s.Node }
func (s Other) syntaxNode() *sitter.Node           { return s.Node }

// View classifies node into one of the [Syntax] variants.
func View(node *sitter.Node, source []byte) Syntax {
	if node == nil {
		return Other{}
	}

	switch node.Type() {
	case "expression_statement":
		return viewExpressionStatement(node, source)
	case "object":
		return ObjectLiteral{Node: node, Members: parser.NamedChildren(node)}
	case "pair":
		return Property{Node: node, Key: node.ChildByFieldName("key")}
	case "method_definition":
		return Property{Node: node, Key: node.ChildByFieldName("name")}
	case "shorthand_property_identifier":
		return Property{Node: node, Key: node, Shorthand: true}
	case "function_expression", "function", "generator_function":
		params := node.ChildByFieldName("parameters")
		fn := FunctionLiteral{Node: node, Params: params}
		if params != nil {
			fn.ParamCount = len(parser.NamedChildren(params))
		}
		return fn
	case "import_statement":
		src := node.ChildByFieldName("source")
		if src == nil {
			return Other{Node: node}
		}
		return ImportStatement{Node: node, Source: unquote(parser.GetNodeText(src, source))}
	case "identifier", "property_identifier":
		return Identifier{Node: node, Name: parser.GetNodeText(node, source)}
	case "string":
		return StringLiteral{Node: node, Value: unquote(parser.GetNodeText(node, source))}
	default:
		return Other{Node: node}
	}
}

func viewExpressionStatement(node *sitter.Node, source []byte) Syntax {
	exprs := parser.NamedChildren(node)
	if len(exprs) != 1 || exprs[0].Type() != "call_expression" {
		return Other{Node: node}
	}
	call := exprs[0]

	// Tagged templates share call_expression but have no argument list.
	args := call.ChildByFieldName("arguments")
	if args == nil || args.Type() != "arguments" {
		return Other{Node: node}
	}

	stmt := CallStatement{Node: node, Args: parser.NamedChildren(args)}
	if fn := call.ChildByFieldName("function"); fn != nil && fn.Type() == "identifier" {
		stmt.Callee = parser.GetNodeText(fn, source)
	}
	return stmt
}

// unquote returns the value of a JavaScript string literal, or text unchanged
// when it cannot be decoded.
func unquote(text string) string {
	if len(text) < 2 {
		return text
	}

	switch text[0] {
	case '\'':
		if text[len(text)-1] != '\'' {
			return text
		}
		inner := strings.ReplaceAll(text[1:len(text)-1], `\'`, `'`)
		inner = strings.ReplaceAll(inner, `"`, `\"`)
		if s, err := strconv.Unquote(`"` + inner + `"`); err == nil {
			return s
		}
		return text
	case '"':
		if s, err := strconv.Unquote(text); err == nil {
			return s
		}
		return text
	default:
		return text
	}
}
