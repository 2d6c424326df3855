// Package similarity quantifies how close two strings are, tolerant of
// recognition-induced character noise. The ratio is (L - D) / L where L is
// the length of the longer string and D the Levenshtein edit distance.
package similarity

// Ratio returns a similarity value in [0.0, 1.0]. Identical strings score
// 1.0, as do two empty strings. Comparison is case-sensitive; callers fold
// case before comparing. Cost is O(len(a) * len(b)), fine for field-length
// inputs.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longer := len(ra)
	if len(rb) > longer {
		longer = len(rb)
	}
	if longer == 0 {
		return 1.0
	}
	d := levenshtein(ra, rb)
	return float64(longer-d) / float64(longer)
}

// levenshtein is the classic dynamic-programming edit distance over runes,
// kept to two rows since only the previous row is ever read.
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j-1]+cost, curr[j-1]+1, prev[j]+1)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
