// Package match reconciles playlist tracks with a library index, first by
// exact artist and title, then by edit distance.
package match

// Levenshtein returns the edit distance between s and t counted in runes.
// It keeps two rows sized by the shorter string.
func Levenshtein(s, t string) int {
	if s == t {
		return 0
	}

	a := []rune(s)
	b := []rune(t)
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
