package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopWordsFrenchLoadsAndLowercases(t *testing.T) {
	words, err := StopWordsFrench()
	require.NoError(t, err)
	assert.True(t, words["de"])
	assert.True(t, words["les"])
}

func TestKnownAcronymsLoadsUppercase(t *testing.T) {
	acros, err := KnownAcronyms()
	require.NoError(t, err)
	assert.True(t, acros["CNRS"])
	assert.True(t, acros["INSERM"])
}

func TestTokenFreqComputesMean(t *testing.T) {
	freq, mean, err := TokenFreq()
	require.NoError(t, err)
	require.NotEmpty(t, freq)
	assert.Greater(t, freq["DE"], 0)
	assert.Greater(t, mean, 0.0)
}

func TestSynonymsLowercasesBothSides(t *testing.T) {
	syn, err := Synonyms()
	require.NoError(t, err)
	assert.Equal(t, "university", syn["universite"])
}

func TestNonDiscriminatingWordsIncludesInstitutionalBoilerplate(t *testing.T) {
	words, err := NonDiscriminatingWords()
	require.NoError(t, err)
	assert.True(t, words["institut"])
	assert.True(t, words["centre"])
}
