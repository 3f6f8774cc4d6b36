package fs

import (
	iofs "io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"
)

// skippedDirs are never descended into.
var skippedDirs = map[string]bool{
	".git":         true,
	".jj":          true,
	".lessen":      true,
	"node_modules": true,
}

// Walker lists stylesheet sources below a root.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields the slash paths of files below root whose name ends in
// ext. Directories listed in skip, given as absolute slash paths, are pruned.
func (w *Walker) WalkFiles(root, ext string, skip []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(filepath.FromSlash(root), func(path string, d iofs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable entries are skipped
			}
			slash := filepath.ToSlash(path)
			if d.IsDir() {
				if skippedDirs[d.Name()] || slices.Contains(skip, slash) {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(d.Name(), ext) {
				return nil
			}
			if !yield(slash) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}
