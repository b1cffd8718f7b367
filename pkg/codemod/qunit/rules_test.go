package qunit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteModule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		source      string
		want        string
		wantRenamed int
	}{
		{
			name:        "should rename pair keys",
			source:      "module('Foo', { setup: a, teardown: b });",
			want:        "module('Foo', { beforeEach: a, afterEach: b });",
			wantRenamed: 2,
		},
		{
			name:        "should rename method keys",
			source:      "module('Foo', { setup() {}, async teardown() {} });",
			want:        "module('Foo', { beforeEach() {}, async afterEach() {} });",
			wantRenamed: 2,
		},
		{
			name:        "should rename duplicated keys",
			source:      "module('Foo', { setup: a, setup: b });",
			want:        "module('Foo', { beforeEach: a, beforeEach: b });",
			wantRenamed: 2,
		},
		{
			name:        "should skip spread and computed keys",
			source:      "module('Foo', { ...base, ['setup']: a, [teardown]: b });",
			want:        "module('Foo', { ...base, ['setup']: a, [teardown]: b });",
			wantRenamed: 0,
		},
		{
			name:        "should leave missing hooks object alone",
			source:      "module('Foo');",
			want:        "module('Foo');",
			wantRenamed: 0,
		},
		{
			name:        "should ignore hooks beyond the second argument",
			source:      "module('Foo', null, { setup: a });",
			want:        "module('Foo', null, { setup: a });",
			wantRenamed: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := parseJS(t, tt.source)
			stmts := doc.Statements()
			require.Len(t, stmts, 1)

			renamed := RewriteModule(doc, stmts[0])

			assert.Equal(t, tt.wantRenamed, renamed)
			assert.Equal(t, tt.want, string(doc.Print()))
		})
	}
}

func TestRewriteTest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		source      string
		want        string
		wantChanged bool
	}{
		{
			name:        "should inject into anonymous function",
			source:      "test('x', function () {});",
			want:        "test('x', function (assert) {});",
			wantChanged: true,
		},
		{
			name:        "should normalise whitespace inside empty parameters",
			source:      "test('x', function ( ) {});",
			want:        "test('x', function (assert) {});",
			wantChanged: true,
		},
		{
			name:        "should inject into generator function",
			source:      "test('x', function* () {});",
			want:        "test('x', function* (assert) {});",
			wantChanged: true,
		},
		{
			name:        "should not touch the body",
			source:      "test('x', function () { test('y', function () {}); });",
			want:        "test('x', function (assert) { test('y', function () {}); });",
			wantChanged: true,
		},
		{
			name:        "should keep single existing parameter",
			source:      "test('x', function (a) {});",
			want:        "test('x', function (a) {});",
			wantChanged: false,
		},
		{
			name:        "should keep rest parameter",
			source:      "test('x', function (...args) {});",
			want:        "test('x', function (...args) {});",
			wantChanged: false,
		},
		{
			name:        "should ignore arrow functions",
			source:      "test('x', () => {});",
			want:        "test('x', () => {});",
			wantChanged: false,
		},
		{
			name:        "should ignore callback in third position",
			source:      "test('x', 1, function () {});",
			want:        "test('x', 1, function () {});",
			wantChanged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := parseJS(t, tt.source)
			stmts := doc.Statements()
			require.Len(t, stmts, 1)

			changed := RewriteTest(doc, stmts[0])

			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.want, string(doc.Print()))
		})
	}
}
