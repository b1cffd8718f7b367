// Package qunit rewrites test files written against the legacy global QUnit
// API into the ember-qunit module API.
//
// It operates on raw source bytes, preserving all formatting, comments, and
// whitespace by doing surgical byte-range replacements guided by the
// tree-sitter concrete syntax tree:
//
//	module('Foo', { setup: fn, teardown: fn });  ->  module('Foo', { beforeEach: fn, afterEach: fn });
//	test('works', function () { ... });          ->  test('works', function (assert) { ... });
//
// and an `import { module, test } from 'ember-qunit';` is added as the second
// top-level statement when the file does not import from ember-qunit yet.
// Running the transform on its own output is a no-op.
package qunit

import (
	"context"
	"fmt"

	"github.com/specvital/qunit-codemod/pkg/domain"
)

// Transformer applies the migration with a fixed target and print options.
// It holds no per-call state and is safe for concurrent use.
type Transformer struct {
	target Target
	print  PrintOptions
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithTarget sets the module and bindings the migrated file must import.
func WithTarget(target Target) Option {
	return func(t *Transformer) {
		t.target = target
	}
}

// WithPrintOptions sets the formatting of synthesized text.
func WithPrintOptions(opts PrintOptions) Option {
	return func(t *Transformer) {
		t.print = opts
	}
}

// New creates a Transformer. It returns an error if the target or print
// options are invalid.
func New(opts ...Option) (*Transformer, error) {
	t := &Transformer{
		target: DefaultTarget,
		print:  DefaultPrintOptions,
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := t.target.Validate(); err != nil {
		return nil, fmt.Errorf("invalid target: %w", err)
	}
	if err := t.print.Validate(); err != nil {
		return nil, fmt.Errorf("invalid print options: %w", err)
	}
	return t, nil
}

// Target returns the configured import target.
func (t *Transformer) Target() Target {
	return t.target
}

// Result holds the output of a migration.
type Result struct {
	// Output is the transformed source code.
	Output []byte
	// Edits summarises what was rewritten.
	Edits domain.Edits
}

// Changed reports whether Output differs from the input.
func (r *Result) Changed() bool {
	return r.Edits.Total() > 0
}

// Declarations reports whether the file contains any module or test
// declaration.
func (r *Result) Declarations() int {
	return r.Edits.Modules + r.Edits.Tests
}

// Transform parses source, rewrites every module and test declaration in
// source order, ensures the target import, and prints the result. A source
// that does not parse yields an error wrapping [ErrSyntax] and no output.
func (t *Transformer) Transform(ctx context.Context, lang domain.Language, source []byte) (*Result, error) {
	doc, err := Parse(ctx, lang, source)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	c := Classify(doc, t.target)

	edits := domain.Edits{
		Modules: len(c.Modules),
		Tests:   len(c.Tests),
	}

	for _, stmt := range c.Modules {
		edits.RenamedKeys += RewriteModule(doc, stmt)
	}

	for _, stmt := range c.Tests {
		if RewriteTest(doc, stmt) {
			edits.InjectedParams++
		}
	}

	edits.ImportAdded = NormalizeImport(doc, c, t.target, t.print)

	return &Result{
		Output: doc.Print(),
		Edits:  edits,
	}, nil
}

var defaultTransformer = &Transformer{
	target: DefaultTarget,
	print:  DefaultPrintOptions,
}

// Default returns the transformer for the ember-qunit target with default
// print options.
func Default() *Transformer {
	return defaultTransformer
}

// Transform migrates JavaScript source with the default ember-qunit target.
func Transform(source string) (string, error) {
	res, err := defaultTransformer.Transform(context.Background(), domain.LanguageJavaScript, []byte(source))
	if err != nil {
		return "", err
	}
	return string(res.Output), nil
}
