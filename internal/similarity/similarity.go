// Package similarity scores token-set overlap.
package similarity

// Set is a set of content tokens.
type Set map[string]struct{}

func NewSet(tokens []string) Set {
	s := make(Set, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

func intersection(a, b Set) int {
	// iterate the smaller set
	if len(a) > len(b) {
		a, b = b, a
	}

	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}

// Overlap returns |A∩B| / min(|A|,|B|), or 0 when either set is empty.
func Overlap(a, b Set) float64 {
	smaller := min(len(a), len(b))
	if smaller == 0 {
		return 0.0
	}
	return float64(intersection(a, b)) / float64(smaller)
}

// Jaccard returns |A∩B| / |A∪B|, or 0 when both sets are empty.
func Jaccard(a, b Set) float64 {
	inter := intersection(a, b)

	// union = |A| + |B| - intersection
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}
