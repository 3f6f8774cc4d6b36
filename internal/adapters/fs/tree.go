// Package fs provides filesystem adapters for the output tree and source walking.
package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputWriter = (*OutputTree)(nil)

// OutputTree writes the rewritten stylesheet mirror below the output root.
type OutputTree struct {
	root       string
	sourceRoot string
	dev        bool
}

// NewOutputTree creates an OutputTree. In dev mode existing files are overwritten.
func NewOutputTree(root, sourceRoot string, dev bool) *OutputTree {
	return &OutputTree{
		root:       strings.TrimSuffix(root, "/"),
		sourceRoot: strings.TrimSuffix(sourceRoot, "/"),
		dev:        dev,
	}
}

// Root returns the output root.
func (t *OutputTree) Root() string {
	return t.root
}

// Write creates parent directories and writes content to path unless the
// file already exists outside dev mode.
func (t *OutputTree) Write(path, content string) error {
	path, err := domain.Normalize(path)
	if err != nil {
		return zerr.With(err, "root", t.root)
	}
	if !domain.IsWithin(path, t.root) {
		return zerr.With(zerr.With(domain.ErrOutOfRoot, "path", path), "root", t.root)
	}

	file := filepath.FromSlash(path)
	if err := os.MkdirAll(filepath.Dir(file), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}

	if !t.dev {
		if _, err := os.Stat(file); err == nil {
			return nil
		} else if !errors.Is(err, iofs.ErrNotExist) {
			return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
		}
	}

	//nolint:gosec // path is checked to lie below the output root
	if err := os.WriteFile(file, []byte(content), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	return nil
}

// Clear removes the output root. The root must be at least
// domain.MinClearPathLength long and must not contain the source root.
func (t *OutputTree) Clear() error {
	if len(t.root) < domain.MinClearPathLength {
		return zerr.With(zerr.With(domain.ErrUnsafeClear, "path", t.root), "reason", "path too short")
	}
	if domain.IsWithin(t.sourceRoot, t.root) {
		return zerr.With(zerr.With(domain.ErrUnsafeClear, "path", t.root), "reason", "contains "+t.sourceRoot)
	}

	if err := os.RemoveAll(filepath.FromSlash(t.root)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrUnsafeClear.Error()), "path", t.root)
	}
	return nil
}
