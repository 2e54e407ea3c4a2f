package match

import (
	"strings"
	"unicode"
)

// NormalizeName folds a class name for fuzzy matching: lower case, with
// separators (_, -, space, dot) removed.
// Examples:
//   - "Power_Supply" -> "powersupply"
//   - "power-supply" -> "powersupply"
//   - "PowerSupply"  -> "powersupply"
func NormalizeName(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}
