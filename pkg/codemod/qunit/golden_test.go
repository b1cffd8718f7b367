package qunit

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/qunit-codemod/pkg/domain"
)

var update = flag.Bool("update", false, "rewrite golden files in testdata")

// goldenPath maps testdata/name.ext to testdata/name.golden.ext.
func goldenPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".golden" + ext
}

func TestTransform_Golden(t *testing.T) {
	inputs, err := filepath.Glob(filepath.Join("testdata", "*"))
	require.NoError(t, err)

	var cases int
	for _, input := range inputs {
		if strings.Contains(filepath.Base(input), ".golden.") {
			continue
		}
		cases++

		t.Run(filepath.Base(input), func(t *testing.T) {
			src, err := os.ReadFile(input)
			require.NoError(t, err)

			res, err := Default().Transform(context.Background(), domain.LanguageFromPath(input), src)
			require.NoError(t, err)

			golden := goldenPath(input)
			if *update {
				require.NoError(t, os.WriteFile(golden, res.Output, 0o644))
				return
			}

			want, err := os.ReadFile(golden)
			require.NoError(t, err, "golden file missing (run with -update to create)")
			assert.Equal(t, string(want), string(res.Output))

			again, err := Default().Transform(context.Background(), domain.LanguageFromPath(golden), res.Output)
			require.NoError(t, err)
			assert.False(t, again.Changed(), "golden output must be stable")
		})
	}

	assert.NotZero(t, cases, "no inputs in testdata")
}
