package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKgramsIncludesFullPhraseFirst(t *testing.T) {
	got := Kgrams("Centre National de la Recherche Scientifique", true, 1, 3, false)
	require.NotEmpty(t, got)
	assert.Equal(t, "centre national recherche scientifique", got[0])
}

func TestKgramsRespectsWindowBounds(t *testing.T) {
	got := Kgrams("centre national recherche", true, 2, 2, false)
	for _, g := range got[1:] {
		assert.LessOrEqual(t, len(splitWords(g)), 2)
	}
}

func splitWords(s string) []string {
	var out []string
	cur := ""
	for _, r := range s {
		if r == ' ' {
			if cur != "" {
				out = append(out, cur)
				cur = ""
			}
			continue
		}
		cur += string(r)
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}

type stubBackend map[string][]string

func (s stubBackend) NormedTermsMatchingTerm(term string) []string { return s[term] }

func TestCountUIDMatchesRollsUpToSurfaceTerms(t *testing.T) {
	idx := NewIndex(false)
	idx.Add("cnrs", "CNRS", NewUIDSet("uid-1"))
	idx.Add("inserm", "INSERM", NewUIDSet("uid-2"))

	backend := stubBackend{
		"cnrs":   {"cnrs"},
		"inserm": {},
	}
	got := idx.CountUIDMatches("cnrs laboratory", backend, 3, 1)
	require.Contains(t, got, "CNRS")
	assert.True(t, got["CNRS"].UIDs["uid-1"])
	assert.NotContains(t, got, "INSERM")
}
