package service

import "strings"

// TokenSimilarity computes the Jaccard similarity of the token sets of two
// texts: tokens are lower-cased and whitespace-split, and the score is
// |A∩B| / |A∪B|. Two empty token sets score 0, not 1 — whether an empty pair
// counts as "the same position" is the caller's call, made via the
// similarity threshold.
//
// The function is symmetric and returns 1 for identical non-empty texts.
func TokenSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	intersection := 0
	for token := range setB {
		if _, ok := setA[token]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}

	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(strings.ToLower(text)) {
		set[token] = struct{}{}
	}
	return set
}
