// Package vcs guards in-place rewrites against clobbering uncommitted work.
package vcs

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
)

// ErrDirtyWorktree is returned when the repository containing the migration
// root has uncommitted changes.
var ErrDirtyWorktree = errors.New("vcs: worktree has uncommitted changes")

// DirtyError lists the paths that prevent a clean-worktree check from passing.
type DirtyError struct {
	Paths []string
}

func (e *DirtyError) Error() string {
	const shown = 5
	paths := e.Paths
	suffix := ""
	if len(paths) > shown {
		suffix = fmt.Sprintf(" and %d more", len(paths)-shown)
		paths = paths[:shown]
	}
	return fmt.Sprintf("%v: %s%s", ErrDirtyWorktree, strings.Join(paths, ", "), suffix)
}

func (e *DirtyError) Unwrap() error { return ErrDirtyWorktree }

// EnsureClean returns a [*DirtyError] if dir lies inside a git repository
// whose worktree has modified, staged or untracked files. A directory that is
// not inside a repository is considered clean.
func EnsureClean(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dir, err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil
		}
		return fmt.Errorf("open repository at %s: %w", abs, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return nil
		}
		return fmt.Errorf("get worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("get worktree status: %w", err)
	}

	if status.IsClean() {
		return nil
	}

	paths := make([]string, 0, len(status))
	for path := range status {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return &DirtyError{Paths: paths}
}
