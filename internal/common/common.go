// Package common holds small helpers shared by the generator packages.
package common

// UnknownStr is the String() fallback for enum values out of range.
const UnknownStr = "unknown"

// IsEmpty reports whether s has no elements.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// IsMultiple reports whether s has more than one element.
func IsMultiple[S ~[]E, E any](s S) bool {
	return len(s) > 1
}

// First returns the first element of s, or the zero value and false when s is empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}
