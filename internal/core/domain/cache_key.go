package domain

import (
	"strconv"
	"time"
)

// CacheNamespace separates the two kinds of cached values.
type CacheNamespace string

const (
	// NamespaceImports holds the direct import list of a file.
	NamespaceImports CacheNamespace = "less_imports_"
	// NamespaceCompiled holds the compiled stylesheet text of a file.
	NamespaceCompiled CacheNamespace = "less_"
)

// CacheKey identifies a cached value by file and modification time.
// Entries are never updated in place: a new timestamp yields a new key.
type CacheKey struct {
	Namespace CacheNamespace
	Path      string
	// Variant separates outputs of the same file generated for different
	// requests, e.g. one per theme.
	Variant  string
	Modified time.Time
}

// String renders the key as used by storage backends.
func (k CacheKey) String() string {
	key := string(k.Namespace) + k.Path
	if k.Variant != "" {
		key += "#" + k.Variant
	}
	return key + "@" + strconv.FormatInt(k.Modified.UnixMilli(), 10)
}
