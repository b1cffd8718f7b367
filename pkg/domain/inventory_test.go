package domain

import "testing"

func TestEdits_Total(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		edits Edits
		want  int
	}{
		{
			name:  "should return zero for no edits",
			edits: Edits{Modules: 1, Tests: 3},
			want:  0,
		},
		{
			name:  "should count renames and params",
			edits: Edits{RenamedKeys: 2, InjectedParams: 3},
			want:  5,
		},
		{
			name:  "should count import insertion as one edit",
			edits: Edits{InjectedParams: 1, ImportAdded: true},
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// When
			got := tt.edits.Total()

			// Then
			if got != tt.want {
				t.Errorf("Total() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInventory_Count(t *testing.T) {
	t.Parallel()

	inv := Inventory{
		Files: []MigratedFile{
			{Path: "a.js", Status: FileStatusChanged},
			{Path: "b.js", Status: FileStatusUnchanged},
			{Path: "c.js", Status: FileStatusChanged},
			{Path: "d.js", Status: FileStatusSkipped},
		},
	}

	tests := []struct {
		status FileStatus
		want   int
	}{
		{FileStatusChanged, 2},
		{FileStatusUnchanged, 1},
		{FileStatusSkipped, 1},
		{FileStatusFailed, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()

			if got := inv.Count(tt.status); got != tt.want {
				t.Errorf("Count(%q) = %d, want %d", tt.status, got, tt.want)
			}
		})
	}

	changed := inv.Changed()
	if len(changed) != 2 || changed[0].Path != "a.js" || changed[1].Path != "c.js" {
		t.Errorf("Changed() = %+v, want a.js and c.js", changed)
	}
}

func TestLanguageFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want Language
	}{
		{"tests/unit/foo-test.js", LanguageJavaScript},
		{"foo-test.mjs", LanguageJavaScript},
		{"foo-test.jsx", LanguageJavaScript},
		{"foo-test.ts", LanguageTypeScript},
		{"FOO-TEST.TS", LanguageTypeScript},
		{"foo-test.tsx", LanguageTSX},
		{"foo", LanguageJavaScript},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := LanguageFromPath(tt.path); got != tt.want {
				t.Errorf("LanguageFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
