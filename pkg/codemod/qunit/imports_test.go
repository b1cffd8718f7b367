package qunit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target Target
		opts   PrintOptions
		nl     string
		want   string
	}{
		{
			name:   "should render default import on one line",
			target: DefaultTarget,
			opts:   DefaultPrintOptions,
			nl:     "\n",
			want:   "import { module, test } from 'ember-qunit';",
		},
		{
			name:   "should use double quotes",
			target: DefaultTarget,
			opts:   PrintOptions{TabWidth: 2, Quote: '"'},
			nl:     "\n",
			want:   `import { module, test } from "ember-qunit";`,
		},
		{
			name:   "should escape quote characters in module name",
			target: Target{Module: `it's`, Names: []string{"test"}},
			opts:   DefaultPrintOptions,
			nl:     "\n",
			want:   `import { test } from 'it\'s';`,
		},
		{
			name:   "should wrap long specifier lists with tab width indentation",
			target: DefaultTarget,
			opts:   PrintOptions{TabWidth: 2, Quote: '\'', LineWidth: 20},
			nl:     "\n",
			want:   "import {\n  module,\n  test\n} from 'ember-qunit';",
		},
		{
			name:   "should wrap with CRLF",
			target: DefaultTarget,
			opts:   PrintOptions{TabWidth: 4, Quote: '\'', LineWidth: 20},
			nl:     "\r\n",
			want:   "import {\r\n    module,\r\n    test\r\n} from 'ember-qunit';",
		},
		{
			name:   "should not wrap a single name",
			target: Target{Module: "a-very-long-module-name-for-testing", Names: []string{"test"}},
			opts:   PrintOptions{TabWidth: 2, Quote: '\'', LineWidth: 10},
			nl:     "\n",
			want:   "import { test } from 'a-very-long-module-name-for-testing';",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ImportText(tt.target, tt.opts, tt.nl))
		})
	}
}

func TestNormalizeImport(t *testing.T) {
	t.Parallel()

	t.Run("should do nothing when import is present", func(t *testing.T) {
		t.Parallel()

		src := "module('A');\nimport { test } from 'ember-qunit';\n"
		doc := parseJS(t, src)
		c := Classify(doc, DefaultTarget)

		assert.False(t, NormalizeImport(doc, c, DefaultTarget, DefaultPrintOptions))
		assert.Equal(t, src, string(doc.Print()))
	})

	t.Run("should make import the second statement", func(t *testing.T) {
		t.Parallel()

		doc := parseJS(t, "#!/usr/bin/env node\n// lead\nfirst();\n\nsecond();\nthird();\n")
		c := Classify(doc, DefaultTarget)

		assert.True(t, NormalizeImport(doc, c, DefaultTarget, DefaultPrintOptions))

		out := doc.Print()
		assert.Equal(t, "#!/usr/bin/env node\n// lead\nfirst();\n"+emberImport+"\n\nsecond();\nthird();\n", string(out))

		again := parseJS(t, string(out))
		stmts := again.Statements()
		if assert.Len(t, stmts, 4) {
			assert.Equal(t, "first();", again.Text(stmts[0]))
			assert.Equal(t, emberImport, again.Text(stmts[1]))
			assert.Equal(t, "second();", again.Text(stmts[2]))
		}
	})

	t.Run("should wrap import at multi-line first statement end", func(t *testing.T) {
		t.Parallel()

		doc := parseJS(t, "module('A', {\n  setup() {}\n});")
		c := Classify(doc, DefaultTarget)

		assert.True(t, NormalizeImport(doc, c, DefaultTarget, DefaultPrintOptions))
		assert.Equal(t, "module('A', {\n  setup() {}\n});\n"+emberImport, string(doc.Print()))
	})
}
