// Package source abstracts where migrated files are read from and written to.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned for paths that escape the source root.
var ErrOutsideRoot = errors.New("source: path escapes root")

// Source provides read access to files below a root directory.
type Source interface {
	// Root returns the absolute root directory.
	Root() string
	// Open opens the file at relPath, relative to Root.
	Open(ctx context.Context, relPath string) (io.ReadCloser, error)
	// Close releases resources held by the source.
	Close() error
}

// Writer is implemented by sources that can persist rewritten files.
type Writer interface {
	WriteFile(ctx context.Context, relPath string, content []byte) error
}

// LocalSource reads and writes files on the local filesystem.
type LocalSource struct {
	root string
}

// NewLocalSource creates a source rooted at path, which must be a directory.
func NewLocalSource(path string) (*LocalSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", abs, fs.ErrInvalid)
	}

	return &LocalSource{root: abs}, nil
}

func (s *LocalSource) Root() string { return s.root }

func (s *LocalSource) Close() error { return nil }

func (s *LocalSource) Open(ctx context.Context, relPath string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := s.resolve(relPath)
	if err != nil {
		return nil, err
	}
	return os.Open(abs)
}

// WriteFile replaces the file at relPath, keeping its permission bits.
// Content is written to a temporary file in the same directory and renamed
// into place so readers never observe a partial file.
func (s *LocalSource) WriteFile(ctx context.Context, relPath string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	abs, err := s.resolve(relPath)
	if err != nil {
		return err
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(abs); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(abs), "."+filepath.Base(abs)+".*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", relPath, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", relPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", relPath, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("chmod %s: %w", relPath, err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("replace %s: %w", relPath, err)
	}
	return nil
}

func (s *LocalSource) resolve(relPath string) (string, error) {
	if filepath.IsAbs(relPath) {
		return "", fmt.Errorf("%s: %w", relPath, ErrOutsideRoot)
	}
	clean := filepath.Clean(relPath)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", relPath, ErrOutsideRoot)
	}
	return filepath.Join(s.root, clean), nil
}
