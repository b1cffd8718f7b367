// Package runner drives the QUnit migration over a directory tree.
//
// Files are discovered once, transformed in parallel, and written back in
// place unless the run is a dry run. Per-file failures never abort the run;
// they are collected in the report.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/specvital/qunit-codemod/pkg/domain"
	"github.com/specvital/qunit-codemod/pkg/source"
)

const (
	// DefaultWorkers indicates that the runner should use GOMAXPROCS as the worker count.
	DefaultWorkers = 0
	// DefaultTimeout is the default run timeout duration.
	DefaultTimeout = 5 * time.Minute
	// MaxWorkers is the maximum number of concurrent workers allowed.
	MaxWorkers = 1024
	// DefaultMaxFileSize is the default maximum file size for migration (10MB).
	DefaultMaxFileSize = 10 * 1024 * 1024
)

// Phases reported in FileError.
const (
	PhaseDiscovery = "discovery"
	PhaseRead      = "read"
	PhaseTransform = "transform"
	PhaseWrite     = "write"
)

// DefaultSkipPatterns contains directory names that are skipped by default during discovery.
var DefaultSkipPatterns = []string{
	"node_modules",
	"bower_components",
	".git",
	"vendor",
	"dist",
	"tmp",
	"coverage",
	".cache",
}

var (
	// ErrRunCancelled is returned when the run is cancelled via context.
	ErrRunCancelled = errors.New("runner: run cancelled")
	// ErrRunTimeout is returned when the run exceeds the timeout duration.
	ErrRunTimeout = errors.New("runner: run timeout")
	// ErrReadOnlySource is reported when a file must be written to a source
	// that does not implement source.Writer.
	ErrReadOnlySource = errors.New("runner: source is read-only")
)

// Runner discovers and migrates QUnit test files.
type Runner struct {
	options *Options
}

// Report contains the outcome of a run.
type Report struct {
	// Inventory contains one entry per candidate file that was processed.
	Inventory *domain.Inventory

	// Errors contains non-fatal errors encountered during the run.
	Errors []FileError

	// Stats provides run statistics.
	Stats Stats
}

// FileError represents an error that occurred during a specific phase of a run.
type FileError struct {
	// Err is the underlying error.
	Err error

	// Path is the file path where the error occurred (may be empty for non-file errors).
	Path string

	// Phase indicates which phase the error occurred in.
	Phase string
}

// Error implements the error interface.
func (e FileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Phase, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e FileError) Unwrap() error { return e.Err }

// Stats provides statistics about a run.
type Stats struct {
	// FilesScanned is the number of candidate files discovered.
	FilesScanned int
	// FilesChanged is the number of files rewritten (or that would be, in a dry run).
	FilesChanged int
	// FilesUnchanged is the number of files that were already migrated.
	FilesUnchanged int
	// FilesSkipped is the number of files without QUnit declarations.
	FilesSkipped int
	// FilesFailed is the number of files that could not be migrated.
	FilesFailed int
	// Edits aggregates the edits over all changed files.
	Edits domain.Edits
	// Duration is the total run duration.
	Duration time.Duration
}

// NewRunner creates a new runner with the given options.
func NewRunner(opts ...Option) *Runner {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	applyDefaults(options)

	return &Runner{options: options}
}

// Run discovers candidate files below src's root and migrates them.
//
// The caller is responsible for calling src.Close() when done.
func (r *Runner) Run(ctx context.Context, src source.Source) (*Report, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.options.Timeout)
	defer cancel()

	report := newReport(src.Root())

	files, errs := r.discoverFiles(ctx, src)
	for _, err := range errs {
		report.Errors = append(report.Errors, FileError{
			Err:   err,
			Phase: PhaseDiscovery,
		})
	}

	return r.finish(ctx, src, files, report, startTime)
}

// RunFiles migrates the given files, relative to src's root, bypassing
// discovery.
//
// The caller is responsible for calling src.Close() when done.
func (r *Runner) RunFiles(ctx context.Context, src source.Source, files []string) (*Report, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.options.Timeout)
	defer cancel()

	return r.finish(ctx, src, files, newReport(src.Root()), startTime)
}

func newReport(root string) *Report {
	return &Report{
		Inventory: &domain.Inventory{
			RootPath: root,
			Files:    []domain.MigratedFile{},
		},
		Errors: []FileError{},
	}
}

func (r *Runner) finish(ctx context.Context, src source.Source, files []string, report *Report, startTime time.Time) (*Report, error) {
	report.Stats.FilesScanned = len(files)

	if len(files) > 0 {
		migrated, fileErrors := r.migrateFilesParallel(ctx, src, files)
		report.Inventory.Files = migrated
		report.Errors = append(report.Errors, fileErrors...)
	}

	for _, f := range report.Inventory.Files {
		switch f.Status {
		case domain.FileStatusChanged:
			report.Stats.FilesChanged++
			report.Stats.Edits.RenamedKeys += f.Edits.RenamedKeys
			report.Stats.Edits.InjectedParams += f.Edits.InjectedParams
			report.Stats.Edits.Modules += f.Edits.Modules
			report.Stats.Edits.Tests += f.Edits.Tests
			if f.Edits.ImportAdded {
				report.Stats.Edits.ImportAdded = true
			}
		case domain.FileStatusUnchanged:
			report.Stats.FilesUnchanged++
		case domain.FileStatusSkipped:
			report.Stats.FilesSkipped++
		case domain.FileStatusFailed:
			report.Stats.FilesFailed++
		}
	}
	report.Stats.Duration = time.Since(startTime)

	r.options.Logger.Info("migration finished",
		"root", report.Inventory.RootPath,
		"dry_run", r.options.DryRun,
		"scanned", report.Stats.FilesScanned,
		"changed", report.Stats.FilesChanged,
		"unchanged", report.Stats.FilesUnchanged,
		"skipped", report.Stats.FilesSkipped,
		"failed", report.Stats.FilesFailed,
		"duration", report.Stats.Duration,
	)

	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return report, ErrRunTimeout
		}
		if errors.Is(err, context.Canceled) {
			return report, ErrRunCancelled
		}
	}

	return report, nil
}

// discoverFiles walks the source root to find candidate files.
// Returns relative paths from the source root for consistent Source.Open() usage.
func (r *Runner) discoverFiles(ctx context.Context, src source.Source) ([]string, []error) {
	rootPath := src.Root()
	skipSet := buildSkipSet(append(append([]string(nil), DefaultSkipPatterns...), r.options.ExcludePatterns...))

	var (
		files []string
		errs  []error
	)

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if walkErr != nil {
			errs = append(errs, fmt.Errorf("access error at %s: %w", path, walkErr))
			return nil
		}

		if d.IsDir() {
			if shouldSkipDir(path, rootPath, skipSet) {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsCandidate(path) {
			return nil
		}

		relPath, err := filepath.Rel(rootPath, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("compute relative path for %s: %w", path, err))
			return nil
		}

		if len(r.options.Patterns) > 0 && !matchesAnyPattern(relPath, r.options.Patterns) {
			return nil
		}

		if r.options.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil {
				errs = append(errs, fmt.Errorf("failed to get file info for %s: %w", path, err))
				return nil
			}
			if info.Size() > r.options.MaxFileSize {
				r.options.Logger.Debug("skipping large file", "path", relPath, "size", info.Size())
				return nil
			}
		}

		files = append(files, relPath)
		return nil
	})

	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			errs = append(errs, err)
		}
	}

	return files, errs
}

func (r *Runner) migrateFilesParallel(ctx context.Context, src source.Source, files []string) ([]domain.MigratedFile, []FileError) {
	workers := r.options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, gCtx := errgroup.WithContext(ctx)

	var (
		mu         sync.Mutex
		migrated   = make([]domain.MigratedFile, 0, len(files))
		fileErrors = make([]FileError, 0)
	)

	for _, file := range files {
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				return nil
			}
			defer sem.Release(1)

			result, fileErr := r.migrateFile(gCtx, src, file)

			mu.Lock()
			defer mu.Unlock()

			migrated = append(migrated, result)
			if fileErr != nil {
				fileErrors = append(fileErrors, *fileErr)
			}
			return nil
		})
	}

	_ = g.Wait()

	// Goroutines complete in arbitrary order.
	sort.Slice(migrated, func(i, j int) bool {
		return migrated[i].Path < migrated[j].Path
	})
	sort.Slice(fileErrors, func(i, j int) bool {
		return fileErrors[i].Path < fileErrors[j].Path
	})

	return migrated, fileErrors
}

func (r *Runner) migrateFile(ctx context.Context, src source.Source, path string) (domain.MigratedFile, *FileError) {
	lang := domain.LanguageFromPath(path)
	result := domain.MigratedFile{
		Path:     path,
		Language: lang,
		Status:   domain.FileStatusFailed,
	}

	fail := func(phase string, err error) (domain.MigratedFile, *FileError) {
		r.options.Logger.Warn("migration failed", "path", path, "phase", phase, "error", err)
		return result, &FileError{Err: err, Path: path, Phase: phase}
	}

	content, err := readFileFromSource(ctx, src, path)
	if err != nil {
		return fail(PhaseRead, err)
	}

	res, err := r.options.Transformer.Transform(ctx, lang, content)
	if err != nil {
		return fail(PhaseTransform, err)
	}
	result.Edits = res.Edits

	switch {
	case res.Declarations() == 0 && !r.options.IncludeUnmatched:
		result.Status = domain.FileStatusSkipped
	case !res.Changed():
		result.Status = domain.FileStatusUnchanged
	default:
		result.Status = domain.FileStatusChanged
		if !r.options.DryRun {
			if err := writeFileToSource(ctx, src, path, res.Output); err != nil {
				result.Status = domain.FileStatusFailed
				return fail(PhaseWrite, err)
			}
		}
	}

	r.options.Logger.Debug("migrated file",
		"path", path,
		"status", result.Status,
		"renamed_keys", result.Edits.RenamedKeys,
		"injected_params", result.Edits.InjectedParams,
		"import_added", result.Edits.ImportAdded,
	)

	return result, nil
}

// readFileFromSource reads a file from source using relative path.
// The relPath must be relative to src.Root().
func readFileFromSource(ctx context.Context, src source.Source, relPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := src.Open(ctx, relPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", relPath, err)
	}

	return content, nil
}

func writeFileToSource(ctx context.Context, src source.Source, relPath string, content []byte) error {
	w, ok := src.(source.Writer)
	if !ok {
		return ErrReadOnlySource
	}
	return w.WriteFile(ctx, relPath, content)
}

func buildSkipSet(patterns []string) map[string]bool {
	skipSet := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		skipSet[p] = true
	}
	return skipSet
}

func shouldSkipDir(path, rootPath string, skipSet map[string]bool) bool {
	if path == rootPath {
		return false
	}

	base := filepath.Base(path)
	return skipSet[base]
}

// IsCandidate reports whether path has a JavaScript or TypeScript extension.
// Declaration files (.d.ts) are never candidates.
func IsCandidate(path string) bool {
	lower := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(lower, ".d.ts") {
		return false
	}

	switch filepath.Ext(lower) {
	case ".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts":
		return true
	default:
		return false
	}
}

func matchesAnyPattern(relPath string, patterns []string) bool {
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, relPath)
		if err != nil {
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// Run migrates every candidate file below src's root.
func Run(ctx context.Context, src source.Source, opts ...Option) (*Report, error) {
	return NewRunner(opts...).Run(ctx, src)
}
