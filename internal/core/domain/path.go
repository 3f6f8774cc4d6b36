package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Normalize collapses "." and ".." segments of a slash separated path.
// Empty segments are dropped and a leading "/" is kept. Ascending above the
// first segment is a broken import, so it fails with ErrMalformedPath rather
// than clamping at the root.
func Normalize(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	parts := strings.Split(path, "/")
	stack := make([]string, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(stack) == 0 {
				return "", zerr.With(ErrMalformedPath, "path", path)
			}
			stack = stack[:len(stack)-1]
		default:
			stack = append(stack, part)
		}
	}

	normalized := strings.Join(stack, "/")
	if path[0] == '/' {
		normalized = "/" + normalized
	}
	return normalized, nil
}

// RelativePath returns the path of to relative to the directory of from.
// Both arguments are absolute and end in a file name.
func RelativePath(from, to string) string {
	fromDirs := dirSegments(from)
	toParts := strings.Split(to, "/")
	toDirs, toFile := toParts[:len(toParts)-1], toParts[len(toParts)-1]

	common := 0
	for common < len(fromDirs) && common < len(toDirs) && fromDirs[common] == toDirs[common] {
		common++
	}

	parts := make([]string, 0, len(fromDirs)-common+len(toDirs)-common+1)
	for range len(fromDirs) - common {
		parts = append(parts, "..")
	}
	parts = append(parts, toDirs[common:]...)
	parts = append(parts, toFile)
	return strings.Join(parts, "/")
}

// Rebase maps a path below sourceRoot onto the same location below outputRoot.
func Rebase(path, sourceRoot, outputRoot string) (string, error) {
	if !IsWithin(path, sourceRoot) {
		return "", zerr.With(zerr.With(ErrOutOfRoot, "path", path), "root", sourceRoot)
	}
	return outputRoot + strings.TrimPrefix(path, sourceRoot), nil
}

// IsWithin reports whether path is root itself or lies below it.
func IsWithin(path, root string) bool {
	root = strings.TrimSuffix(root, "/")
	return path == root || strings.HasPrefix(path, root+"/")
}

// Dir returns everything before the last "/" of a slash separated path.
func Dir(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		return "/"
	}
	return path[:idx]
}

// Base returns the segment after the last "/".
func Base(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}

func dirSegments(path string) []string {
	parts := strings.Split(path, "/")
	return parts[:len(parts)-1]
}
