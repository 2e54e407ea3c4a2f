package classmodel

import "strings"

// RangeSeparator splits the lower and upper bound of a multiplicity.
const RangeSeparator = ".."

// Multiplicity is a cardinality constraint. Bounds are kept as the literal
// tokens of the input ("0", "1", "*", ...), never parsed as numbers.
type Multiplicity struct {
	Min string
	Max string
}

// ParseMultiplicity reads "N" as Min = Max = "N" and "MIN..MAX" as a range
// split at the first separator.
func ParseMultiplicity(raw string) Multiplicity {
	lo, hi, ok := strings.Cut(raw, RangeSeparator)
	if !ok {
		return Multiplicity{Min: raw, Max: raw}
	}

	return Multiplicity{Min: lo, Max: hi}
}

// IsExact reports whether both bounds are the same token.
func (m Multiplicity) IsExact() bool {
	return m.Min == m.Max
}

// String returns the canonical textual form.
func (m Multiplicity) String() string {
	if m.IsExact() {
		return m.Min
	}

	return m.Min + RangeSeparator + m.Max
}
