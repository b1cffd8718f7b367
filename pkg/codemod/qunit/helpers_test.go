package qunit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specvital/qunit-codemod/pkg/domain"
)

func parseJS(t *testing.T, source string) *Document {
	t.Helper()

	doc, err := Parse(context.Background(), domain.LanguageJavaScript, []byte(source))
	require.NoError(t, err)
	t.Cleanup(doc.Close)
	return doc
}
