package domain

// Edits summarises the rewrites applied to one file.
type Edits struct {
	// Modules is the number of module declarations found.
	Modules int `json:"modules"`
	// Tests is the number of test declarations found.
	Tests int `json:"tests"`
	// RenamedKeys counts setup/teardown hooks renamed.
	RenamedKeys int `json:"renamedKeys"`
	// InjectedParams counts test callbacks that gained an assert parameter.
	InjectedParams int `json:"injectedParams"`
	// ImportAdded reports whether the target import was inserted.
	ImportAdded bool `json:"importAdded"`
}

// Total returns the number of individual edits.
func (e Edits) Total() int {
	n := e.RenamedKeys + e.InjectedParams
	if e.ImportAdded {
		n++
	}
	return n
}

// MigratedFile represents the migration outcome for one file.
type MigratedFile struct {
	Edits    Edits      `json:"edits"`
	Language Language   `json:"language"`
	Path     string     `json:"path"`
	Status   FileStatus `json:"status"`
}

// Inventory represents the migration outcome for a project.
type Inventory struct {
	// Files contains every candidate file, sorted by path.
	Files []MigratedFile `json:"files"`
	// RootPath is the root directory path of the migrated project.
	RootPath string `json:"rootPath"`
}

// Count returns the number of files with the given status.
func (inv Inventory) Count(status FileStatus) int {
	count := 0
	for _, f := range inv.Files {
		if f.Status == status {
			count++
		}
	}
	return count
}

// Changed returns the files that were (or would be) rewritten.
func (inv Inventory) Changed() []MigratedFile {
	var files []MigratedFile
	for _, f := range inv.Files {
		if f.Status == FileStatusChanged {
			files = append(files, f)
		}
	}
	return files
}
