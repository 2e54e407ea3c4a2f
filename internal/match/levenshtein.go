package match

// Levenshtein computes the edit distance between two strings: the minimum
// number of single-rune insertions, deletions or substitutions needed to turn
// one into the other.
//
// Time complexity: O(len(a) * len(b))
// Space complexity: O(min(len(a), len(b))).
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	switch {
	case string(ra) == string(rb):
		return 0
	case len(ra) == 0:
		return len(rb)
	case len(rb) == 0:
		return len(ra)
	}

	// Keep the shorter string in ra so the rows stay small.
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Similarity returns 1 - distance/maxLen over normalized names, so 1.0 means
// the names are equal after normalization and 0.0 means nothing in common.
func Similarity(a, b string) float64 {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na == "" && nb == "" {
		return 1.0
	}

	maxLen := max(len([]rune(na)), len([]rune(nb)))

	return 1.0 - float64(Levenshtein(na, nb))/float64(maxLen)
}
