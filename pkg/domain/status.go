package domain

// FileStatus represents the outcome of migrating a single file.
type FileStatus string

const (
	// FileStatusChanged indicates the file was rewritten (or would be, in dry-run).
	FileStatusChanged FileStatus = "changed"
	// FileStatusUnchanged indicates the file was already migrated.
	FileStatusUnchanged FileStatus = "unchanged"
	// FileStatusSkipped indicates the file contains no QUnit declarations.
	FileStatusSkipped FileStatus = "skipped"
	// FileStatusFailed indicates the file could not be read, parsed or written.
	FileStatusFailed FileStatus = "failed"
)
