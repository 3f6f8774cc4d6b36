package domain

import "regexp"

var (
	lineComment  = regexp.MustCompile(`(?m)//.*$`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)

	// ImportPattern matches a double quoted @import statement. The first
	// submatch is the import target.
	ImportPattern = regexp.MustCompile(`@import\s*"(.*?)"`)
)

// StripComments removes line comments first and block comments second.
// Comment-like text inside string literals is removed as well.
func StripComments(src string) string {
	return blockComment.ReplaceAllString(lineComment.ReplaceAllString(src, ""), "")
}

// ImportTargets returns the import targets of src in order of appearance.
func ImportTargets(src string) []string {
	matches := ImportPattern.FindAllStringSubmatch(src, -1)
	targets := make([]string, 0, len(matches))
	for _, m := range matches {
		targets = append(targets, m[1])
	}
	return targets
}
