package runner

import (
	"log/slog"
	"time"

	"github.com/specvital/qunit-codemod/pkg/codemod/qunit"
)

// Options configures runner behavior.
type Options struct {
	// DryRun computes results without writing any file.
	DryRun bool

	// ExcludePatterns specifies directory names to skip during file discovery.
	// These are combined with DefaultSkipPatterns.
	ExcludePatterns []string

	// IncludeUnmatched also rewrites files without any module or test
	// declaration. By default such files are skipped so helpers do not gain
	// an unused import.
	IncludeUnmatched bool

	// Logger receives per-file and summary records. Defaults to slog.Default().
	Logger *slog.Logger

	// MaxFileSize is the maximum file size in bytes to process.
	// Files larger than this are skipped.
	MaxFileSize int64

	// Patterns specifies doublestar glob patterns, relative to the root,
	// that candidate files must match. Empty means all candidates.
	Patterns []string

	// Timeout is the maximum duration for the entire run.
	// Zero or negative values use DefaultTimeout.
	Timeout time.Duration

	// Transformer performs the per-file migration.
	// If nil, the default ember-qunit transformer is used.
	Transformer *qunit.Transformer

	// Workers specifies the number of concurrent file transforms.
	// Zero or negative values use runtime.GOMAXPROCS(0).
	Workers int
}

// Option is a functional option for configuring Runner.
type Option func(*Options)

// WithWorkers sets the number of concurrent file transforms.
// Negative values are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.Workers = n
		}
	}
}

// WithTimeout sets the run timeout duration.
// Negative values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}

// WithDryRun disables writing rewritten files.
func WithDryRun(enabled bool) Option {
	return func(o *Options) {
		o.DryRun = enabled
	}
}

// WithExcludePatterns adds directory names to skip during file discovery.
func WithExcludePatterns(patterns []string) Option {
	return func(o *Options) {
		o.ExcludePatterns = patterns
	}
}

// WithIncludeUnmatched makes the runner rewrite files without declarations.
func WithIncludeUnmatched(enabled bool) Option {
	return func(o *Options) {
		o.IncludeUnmatched = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithMaxFileSize sets the maximum file size to process.
// Negative values are ignored.
func WithMaxFileSize(size int64) Option {
	return func(o *Options) {
		if size >= 0 {
			o.MaxFileSize = size
		}
	}
}

// WithPatterns sets glob patterns to filter candidate files.
func WithPatterns(patterns []string) Option {
	return func(o *Options) {
		o.Patterns = patterns
	}
}

// WithTransformer sets the transformer applied to each file.
func WithTransformer(t *qunit.Transformer) Option {
	return func(o *Options) {
		o.Transformer = t
	}
}

func applyDefaults(opts *Options) {
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Transformer == nil {
		opts.Transformer = qunit.Default()
	}
}
