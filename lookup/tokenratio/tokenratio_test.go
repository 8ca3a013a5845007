package tokenratio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopTwoRankedByRatio(t *testing.T) {
	l := New(map[string][]string{
		"sorbonne universite":    {"su-1"},
		"universite de bordeaux": {"bordeaux-1"},
		"institut pasteur":       {"pasteur-1"},
	}, 1, 4, false)

	matches := l.NormedTermsMatchingTerm("sorbonne universites")
	require.NotEmpty(t, matches)
	assert.LessOrEqual(t, len(matches), 2)
	assert.Equal(t, "sorbonne universite", matches[0])
}

func TestRatioIsSymmetric(t *testing.T) {
	assert.Equal(t, ratio("abcdef", "abcdeg"), ratio("abcdeg", "abcdef"))
}

func TestThresholdScalesWithLength(t *testing.T) {
	assert.Equal(t, 40, threshold(3))
	assert.Equal(t, 50, threshold(8))
	assert.Equal(t, 60, threshold(20))
}
