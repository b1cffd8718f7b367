// Package domain defines the core types for migrated file representation.
package domain

import (
	"path/filepath"
	"strings"
)

// Language represents a source language the codemod can parse.
type Language string

// Supported languages.
const (
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageTSX        Language = "tsx"
)

// LanguageFromPath determines the grammar to use based on file extension.
// Anything that is not TypeScript is parsed as JavaScript.
func LanguageFromPath(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return LanguageTypeScript
	case ".tsx":
		return LanguageTSX
	default:
		return LanguageJavaScript
	}
}
