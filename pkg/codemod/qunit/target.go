package qunit

import (
	"errors"
	"fmt"
	"regexp"
)

// Legacy global call names recognised by the classifier.
const (
	ModuleCallee = "module"
	TestCallee   = "test"
)

// AssertParam is the parameter injected into zero-argument test callbacks.
const AssertParam = "assert"

// Target names the module the migrated file must import and the bindings it
// must import from it.
type Target struct {
	Module string   `yaml:"module"`
	Names  []string `yaml:"names"`
}

// DefaultTarget is the ember-qunit mapping.
var DefaultTarget = Target{
	Module: "ember-qunit",
	Names:  []string{"module", "test"},
}

var identPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Validate checks that the target can be rendered as an import statement.
func (t Target) Validate() error {
	if t.Module == "" {
		return errors.New("target module must not be empty")
	}
	if len(t.Names) == 0 {
		return errors.New("target names must not be empty")
	}
	seen := make(map[string]bool, len(t.Names))
	for _, name := range t.Names {
		if !identPattern.MatchString(name) {
			return fmt.Errorf("target name %q is not an identifier", name)
		}
		if seen[name] {
			return fmt.Errorf("target name %q is duplicated", name)
		}
		seen[name] = true
	}
	return nil
}

// PrintOptions controls text synthesized by the codemod. Source that is not
// rewritten keeps its original formatting.
type PrintOptions struct {
	// TabWidth is the indentation used when the import wraps.
	TabWidth int
	// Quote is the quote character for synthesized string literals.
	Quote rune
	// LineWidth is the column at which the import specifier list wraps.
	// Zero disables wrapping.
	LineWidth int
}

// DefaultPrintOptions uses two-space indentation and single quotes.
var DefaultPrintOptions = PrintOptions{
	TabWidth:  2,
	Quote:     '\'',
	LineWidth: 80,
}

// Validate checks the options.
func (o PrintOptions) Validate() error {
	if o.Quote != '\'' && o.Quote != '"' {
		return fmt.Errorf("unsupported quote %q", o.Quote)
	}
	if o.TabWidth < 0 {
		return fmt.Errorf("tab width must not be negative, got %d", o.TabWidth)
	}
	if o.LineWidth < 0 {
		return fmt.Errorf("line width must not be negative, got %d", o.LineWidth)
	}
	return nil
}
