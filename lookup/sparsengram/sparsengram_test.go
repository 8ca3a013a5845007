package sparsengram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindsOverlappingTerm(t *testing.T) {
	l := New(map[string][]string{
		"universite de bordeaux": {"bordeaux-1"},
		"institut pasteur":       {"pasteur-1"},
	}, 1, 4, false)

	matches := l.NormedTermsMatchingTerm("universite de bordeau")
	require.NotEmpty(t, matches)
	assert.Contains(t, matches, "universite bordeaux")
}

func TestNGramsAreBoundaryMarked(t *testing.T) {
	g := ngrams("ab", 4)
	assert.Contains(t, g, "^ab$")
}

func TestDiceCoefficientSymmetric(t *testing.T) {
	a := map[string]bool{"x": true, "y": true}
	b := map[string]bool{"y": true, "z": true}
	assert.Equal(t, dice(a, b), dice(b, a))
}

func TestRarestGramsCapsCount(t *testing.T) {
	set := map[string]bool{"aa": true, "bb": true, "cc": true}
	freq := map[string]int{"aa": 3, "bb": 1, "cc": 2}
	got := rarestGrams(set, freq, 2)
	assert.Equal(t, []string{"bb", "cc"}, got)
}
