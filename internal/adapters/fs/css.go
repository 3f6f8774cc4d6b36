package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/zerr"
)

// WriteIfChanged writes content to path unless the file already holds the
// same bytes. It reports whether the file was written.
func WriteIfChanged(path string, content []byte) (bool, error) {
	file := filepath.FromSlash(path)

	//nolint:gosec // path is derived from the configured output directory
	existing, err := os.ReadFile(file)
	switch {
	case err == nil:
		if Digest(existing) == Digest(content) {
			return false, nil
		}
	case !errors.Is(err, iofs.ErrNotExist):
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}

	if err := os.MkdirAll(filepath.Dir(file), domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	//nolint:gosec // path is derived from the configured output directory
	if err := os.WriteFile(file, content, domain.FilePerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}
	return true, nil
}
