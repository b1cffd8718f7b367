package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/specvital/qunit-codemod/pkg/config"
	"github.com/specvital/qunit-codemod/pkg/domain"
)

// Global carries the process-wide state shared by all commands.
type Global struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:".qunit-codemod.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Run       RunCmd       `cmd:"" default:"withargs" help:"Migrate test files below the given paths in place"`
	Transform TransformCmd `cmd:"" help:"Migrate a single file (or stdin) and print the result"`
	Dump      DumpCmd      `cmd:"" help:"Print the syntax tree of a file as an S-expression"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded configuration", "path", c.Config, "target", cfg.Target.Module)
	return cfg, nil
}

// languageFlag resolves the grammar for path, honoring an explicit override.
func languageFlag(override, path string) (domain.Language, error) {
	switch override {
	case "":
		return domain.LanguageFromPath(path), nil
	case string(domain.LanguageJavaScript), string(domain.LanguageTypeScript), string(domain.LanguageTSX):
		return domain.Language(override), nil
	default:
		return "", fmt.Errorf("unknown language %q", override)
	}
}
