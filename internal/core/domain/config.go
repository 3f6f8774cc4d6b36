package domain

import "time"

// CacheBackend selects the storage used by the compilation cache.
type CacheBackend string

const (
	// CacheBackendMemory keeps entries in process memory.
	CacheBackendMemory CacheBackend = "memory"
	// CacheBackendDisk keeps entries as files under .lessen/store.
	CacheBackendDisk CacheBackend = "disk"
)

// Config is the resolved project configuration. All paths are absolute and
// slash separated without a trailing slash.
type Config struct {
	ProjectRoot     string
	SourceRoot      string
	OutputRoot      string
	ThemesDir       string
	DynamicExt      string
	Dev             bool
	CacheBackend    CacheBackend
	CacheTTL        time.Duration
	CacheMaxKeys    int
	CacheControl    int
	CompilerCommand []string
}
