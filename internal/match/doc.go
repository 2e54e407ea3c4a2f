// Package match provides name normalization and Levenshtein similarity used to
// suggest class names when a model references a class that does not exist.
//
// Key functions:
//   - NormalizeName: folds a class or attribute name for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known names against an unknown one
package match
