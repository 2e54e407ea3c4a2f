// Package diagnostic collects coded findings about a class model, ranked by
// severity.
//
// A finding carries:
//   - a stable code such as "no_root" or "unknown_aggregation_target"
//   - the class and element it concerns
//   - close-match suggestions for misspelled class names
package diagnostic
