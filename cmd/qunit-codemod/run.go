package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/specvital/qunit-codemod/pkg/domain"
	"github.com/specvital/qunit-codemod/pkg/runner"
	"github.com/specvital/qunit-codemod/pkg/source"
	"github.com/specvital/qunit-codemod/pkg/vcs"
)

var (
	errWouldChange = errors.New("files would change")
	errFailedFiles = errors.New("some files could not be migrated")
)

// RunCmd implements the 'run' command.
type RunCmd struct {
	Paths []string `arg:"" optional:"" type:"path" help:"Directories or files to migrate. Defaults to the current directory"`

	DryRun  bool     `help:"Show what would change without writing files"`
	Check   bool     `help:"Exit non-zero when any file would change; implies --dry-run"`
	Force   bool     `short:"f" help:"Run even when the git worktree has uncommitted changes"`
	All     bool     `help:"Also add the import to files without module or test declarations"`
	Workers int      `short:"w" default:"-1" help:"Number of concurrent workers (0 = GOMAXPROCS, -1 = from config)"`
	Include []string `short:"i" help:"Doublestar patterns candidate files must match (overrides config)"`
	Exclude []string `short:"x" help:"Additional directory names to skip"`
	Quiet   bool     `short:"q" help:"Do not print the per-file report"`
}

// Run executes the run command.
func (r *RunCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	tr, err := cfg.Transformer()
	if err != nil {
		return err
	}

	paths := r.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	dryRun := r.DryRun || r.Check
	if cfg.RequireCleanWorktree && !dryRun && !r.Force {
		for _, p := range paths {
			if err := vcs.EnsureClean(dirOf(p)); err != nil {
				if errors.Is(err, vcs.ErrDirtyWorktree) {
					return fmt.Errorf("%w (commit or stash them, or pass --force)", err)
				}
				return err
			}
		}
	}

	workers := cfg.Workers
	if r.Workers >= 0 {
		workers = r.Workers
	}
	include := cfg.Include
	if len(r.Include) > 0 {
		include = r.Include
	}

	run := runner.NewRunner(
		runner.WithTransformer(tr),
		runner.WithWorkers(workers),
		runner.WithTimeout(cfg.Timeout),
		runner.WithMaxFileSize(cfg.MaxFileSize),
		runner.WithPatterns(include),
		runner.WithExcludePatterns(append(append([]string(nil), cfg.Exclude...), r.Exclude...)),
		runner.WithDryRun(dryRun),
		runner.WithIncludeUnmatched(r.All),
		runner.WithLogger(slog.Default()),
	)

	var reports []*runner.Report
	for _, p := range paths {
		report, err := runPath(g, run, p)
		if report != nil {
			reports = append(reports, report)
		}
		if err != nil {
			return err
		}
	}

	if !r.Quiet {
		printReport(g.Stdout, reports, root.Verbose)
	}

	return outcome(reports, r.Check)
}

func runPath(g *Global, run *runner.Runner, path string) (*runner.Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		src, err := source.NewLocalSource(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = src.Close() }()
		return run.Run(g.Ctx, src)
	}

	src, err := source.NewLocalSource(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()
	return run.RunFiles(g.Ctx, src, []string{filepath.Base(path)})
}

// outcome maps the reports to the command's exit status.
func outcome(reports []*runner.Report, check bool) error {
	var changed, failed int
	for _, report := range reports {
		changed += report.Inventory.Count(domain.FileStatusChanged)
		failed += len(report.Errors)
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d error(s)", errFailedFiles, failed)
	}
	if check && changed > 0 {
		return fmt.Errorf("%w: %d file(s)", errWouldChange, changed)
	}
	return nil
}

func dirOf(path string) string {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return filepath.Dir(path)
	}
	return path
}
