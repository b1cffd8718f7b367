package parser

import (
	"context"
	"strings"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/qunit-codemod/pkg/domain"
	"github.com/specvital/qunit-codemod/pkg/parser/tspool"
)

func parseJS(t *testing.T, source string) *sitter.Node {
	t.Helper()

	tree, err := tspool.Parse(context.Background(), domain.LanguageJavaScript, []byte(source))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree.RootNode()
}

func TestNamedChildren(t *testing.T) {
	t.Parallel()

	root := parseJS(t, "// header\nfoo();\n/* trailing */\nbar();\n")

	children := NamedChildren(root)
	require.Len(t, children, 2)
	for _, c := range children {
		assert.Equal(t, "expression_statement", c.Type())
	}
}

func TestWalkTreeDepth(t *testing.T) {
	t.Parallel()

	root := parseJS(t, "test('x', function () { inner(); });\n")

	depths := map[string][]int{}
	WalkTreeDepth(root, func(n *sitter.Node, depth int) bool {
		if n.Type() == "expression_statement" {
			depths[n.Type()] = append(depths[n.Type()], depth)
		}
		return true
	})

	assert.Equal(t, []int{1, 6}, depths["expression_statement"])
}

func TestWalkTree_StopsDescending(t *testing.T) {
	t.Parallel()

	root := parseJS(t, "foo(bar());\n")

	var visited int
	WalkTree(root, func(n *sitter.Node) bool {
		visited++
		return n.Type() == "program"
	})

	// program plus its single statement
	assert.Equal(t, 2, visited)
}

func TestFirstError(t *testing.T) {
	t.Parallel()

	t.Run("should return nil for valid source", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, FirstError(parseJS(t, "module('Foo');\n")))
	})

	t.Run("should locate the first error", func(t *testing.T) {
		t.Parallel()

		bad := FirstError(parseJS(t, "ok();\nmodule('Foo', {\n"))
		require.NotNil(t, bad)
		assert.True(t, bad.Type() == "ERROR" || bad.IsMissing())
		assert.GreaterOrEqual(t, GetLocation(bad, "x.js").StartLine, 2)
	})
}

func TestGetLocation(t *testing.T) {
	t.Parallel()

	root := parseJS(t, "a();\n  b();\n")
	second := NamedChildren(root)[1]

	loc := GetLocation(second, "foo-test.js")
	assert.Equal(t, domain.Location{
		File:      "foo-test.js",
		StartLine: 2,
		EndLine:   2,
		StartCol:  2,
		EndCol:    6,
	}, loc)
}

func TestGetNodeText(t *testing.T) {
	t.Parallel()

	src := "module('Foo');\n"
	root := parseJS(t, src)
	stmt := NamedChildren(root)[0]

	assert.Equal(t, "module('Foo');", GetNodeText(stmt, []byte(src)))
	assert.Empty(t, GetNodeText(stmt, []byte("short")))
}

func TestDumpTree(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		lang domain.Language
		src  string
		want string
	}{
		{"javascript", domain.LanguageJavaScript, "test('x', function () {});", "call_expression"},
		{"typescript", domain.LanguageTypeScript, "const n: number = 1;", "type_annotation"},
		{"tsx", domain.LanguageTSX, "const el = <div />;", "jsx_self_closing_element"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := DumpTree(context.Background(), tt.lang, []byte(tt.src))
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, "(program"))
			assert.Contains(t, out, tt.want)
		})
	}
}
