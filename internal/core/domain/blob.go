package domain

import "strings"

// DynamicBlob is the output of a content generator for one dynamic import.
type DynamicBlob struct {
	// Key distinguishes generated variants in the output tree. Empty means no key.
	Key string
	// Content is the generated stylesheet text.
	Content string
}

// PathWithKey inserts "-key" before the last occurrence of ext in path.
// The path is returned unchanged when key is empty or ext is not found.
func PathWithKey(path, ext, key string) string {
	if key == "" {
		return path
	}
	idx := strings.LastIndex(path, ext)
	if idx < 0 {
		return path
	}
	return path[:idx] + "-" + key + path[idx:]
}

// IsDynamic reports whether an import target must be generated instead of read.
func IsDynamic(path, ext string) bool {
	return ext != "" && strings.HasSuffix(path, ext)
}
