package domain

import "unique"

// InternedString is a value object that wraps a unique.Handle[string].
// Stylesheet paths repeat across every import statement of a walk, so the
// import graph keys its sets by handle instead of by string.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString creates a new InternedString from a string.
func NewInternedString(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	return is.h.Value()
}
