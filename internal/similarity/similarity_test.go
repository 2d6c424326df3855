package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatioIdentity(t *testing.T) {
	for _, s := range []string{"", "a", "Aarav Sharma", "B.Tech Computer Science", "certificate no: IITB001"} {
		assert.Equal(t, 1.0, Ratio(s, s), "identical strings must score 1.0: %q", s)
	}
}

func TestRatioBothEmpty(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("", ""))
}

func TestRatioSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"kitten", "sitting"},
		{"aarav sharma", "arav sharma"},
		{"b.tech", "btech"},
		{"", "abc"},
		{"flaw", "lawn"},
	}
	for _, p := range pairs {
		assert.Equal(t, Ratio(p[0], p[1]), Ratio(p[1], p[0]), "ratio must be symmetric for %q / %q", p[0], p[1])
	}
}

func TestRatioKnownDistances(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		// kitten -> sitting: 3 edits, longer length 7
		{"kitten", "sitting", (7.0 - 3.0) / 7.0},
		// one deletion, longer length 12
		{"aarav sharma", "arav sharma", (12.0 - 1.0) / 12.0},
		// completely disjoint single chars
		{"a", "b", 0.0},
		// empty vs non-empty: all insertions
		{"", "abcd", 0.0},
		{"abc", "abcd", 0.75},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, Ratio(tc.a, tc.b), 1e-9, "%q vs %q", tc.a, tc.b)
	}
}

func TestRatioCaseSensitive(t *testing.T) {
	// Case folding is the caller's job; at this layer case differences cost edits.
	assert.Less(t, Ratio("ABC", "abc"), 1.0)
}

func TestRatioUnicode(t *testing.T) {
	// Distance is per rune, not per byte.
	assert.InDelta(t, (5.0-1.0)/5.0, Ratio("héllo", "hello"), 1e-9)
}
