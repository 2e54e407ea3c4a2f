package match

import "sort"

// DefaultMinSimilarity is the lowest score a name needs to be suggested.
const DefaultMinSimilarity = 0.6

// DefaultMaxSuggestions caps the number of suggestions returned.
const DefaultMaxSuggestions = 3

type scored struct {
	name  string
	score float64
	index int
}

// Suggest returns up to limit names from known that resemble name, best
// first. Ties keep the order of known. Exact matches are not suggested.
func Suggest(name string, known []string, limit int) []string {
	if limit <= 0 {
		limit = DefaultMaxSuggestions
	}

	var hits []scored

	for i, k := range known {
		if k == name {
			continue
		}

		score := Similarity(name, k)
		if score >= DefaultMinSimilarity {
			hits = append(hits, scored{name: k, score: score, index: i})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}

		return hits[i].index < hits[j].index
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}

	return out
}
