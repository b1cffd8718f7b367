package main

import (
	"fmt"
	"io"
	"os"

	"github.com/specvital/qunit-codemod/pkg/parser"
)

// stdinPath selects standard input instead of a file.
const stdinPath = "-"

// TransformCmd implements the 'transform' command.
type TransformCmd struct {
	File string `arg:"" help:"File to migrate, or - for stdin"`
	Lang string `short:"l" help:"Grammar to parse with (default: from extension)"`
}

// Run executes the transform command.
func (t *TransformCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	tr, err := cfg.Transformer()
	if err != nil {
		return err
	}

	lang, err := languageFlag(t.Lang, t.File)
	if err != nil {
		return err
	}

	src, err := readInput(g.Stdin, t.File)
	if err != nil {
		return err
	}

	res, err := tr.Transform(g.Ctx, lang, src)
	if err != nil {
		return fmt.Errorf("%s: %w", t.File, err)
	}

	_, err = g.Stdout.Write(res.Output)
	return err
}

// DumpCmd implements the 'dump' command.
type DumpCmd struct {
	File string `arg:"" help:"File to parse, or - for stdin"`
	Lang string `short:"l" help:"Grammar to parse with (default: from extension)"`
}

// Run executes the dump command.
func (d *DumpCmd) Run(g *Global) error {
	lang, err := languageFlag(d.Lang, d.File)
	if err != nil {
		return err
	}

	src, err := readInput(g.Stdin, d.File)
	if err != nil {
		return err
	}

	tree, err := parser.DumpTree(g.Ctx, lang, src)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(g.Stdout, tree)
	return err
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == stdinPath {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
