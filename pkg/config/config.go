// Package config loads codemod settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/specvital/qunit-codemod/pkg/codemod/qunit"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = ".qunit-codemod.yaml"

// Quote styles accepted in the format section.
const (
	QuoteSingle = "single"
	QuoteDouble = "double"
)

// Config represents the codemod configuration.
type Config struct {
	Target  qunit.Target `yaml:"target"`
	Format  Format       `yaml:"format"`
	Include []string     `yaml:"include,omitempty"` // doublestar patterns relative to the root
	Exclude []string     `yaml:"exclude,omitempty"` // directory names skipped in addition to the defaults

	Workers              int           `yaml:"workers"`
	MaxFileSize          int64         `yaml:"max_file_size"`
	Timeout              time.Duration `yaml:"timeout"`
	RequireCleanWorktree bool          `yaml:"require_clean_worktree"`
}

// Format controls synthesized text.
type Format struct {
	TabWidth  int    `yaml:"tab_width"`
	Quote     string `yaml:"quote"`
	LineWidth int    `yaml:"line_width"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Target: qunit.Target{
			Module: qunit.DefaultTarget.Module,
			Names:  append([]string(nil), qunit.DefaultTarget.Names...),
		},
		Format: Format{
			TabWidth:  qunit.DefaultPrintOptions.TabWidth,
			Quote:     QuoteSingle,
			LineWidth: qunit.DefaultPrintOptions.LineWidth,
		},
		MaxFileSize:          10 * 1024 * 1024,
		Timeout:              5 * time.Minute,
		RequireCleanWorktree: true,
	}
}

// Load reads the configuration at path on top of [Default]. A missing file is
// not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := c.Target.Validate(); err != nil {
		return fmt.Errorf("target: %w", err)
	}
	if _, err := c.PrintOptions(); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must not be negative, got %d", c.MaxFileSize)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// PrintOptions converts the format section for the transformer.
func (c *Config) PrintOptions() (qunit.PrintOptions, error) {
	opts := qunit.PrintOptions{
		TabWidth:  c.Format.TabWidth,
		LineWidth: c.Format.LineWidth,
	}

	switch c.Format.Quote {
	case QuoteSingle, "":
		opts.Quote = '\''
	case QuoteDouble:
		opts.Quote = '"'
	default:
		return opts, fmt.Errorf("unknown quote style %q (want %s or %s)", c.Format.Quote, QuoteSingle, QuoteDouble)
	}

	return opts, opts.Validate()
}

// Transformer builds a transformer from the target and format sections.
func (c *Config) Transformer() (*qunit.Transformer, error) {
	opts, err := c.PrintOptions()
	if err != nil {
		return nil, err
	}
	return qunit.New(qunit.WithTarget(c.Target), qunit.WithPrintOptions(opts))
}
