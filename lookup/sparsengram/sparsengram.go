// Package sparsengram implements a sparse character n-gram lookup
// backend: every indexed term contributes its prefix n-gram (a fast,
// order-preserving first filter) and its globally rarest n-grams (the
// ones least likely to produce spurious collisions) to an inverted
// index; a query is matched against whichever indexed terms share the
// most n-grams, ranked by Dice coefficient over the two n-gram sets.
//
// Grounded on original_source/vocab_lookup.py's NGLookup — whose
// lookup/normedTermsMatchingTerm method bodies are both a bare `pass`
// in the original, left unfinished. This backend completes the
// prefix/rarest-gram design the original constructor already builds
// toward.
package sparsengram

import (
	"sort"

	"github.com/duplau/link-fields/lookup"
)

// Default n-gram size and rarest-gram count, matching NGLookup's
// n=4, rarest=5 defaults.
const (
	DefaultN      = 4
	DefaultRarest = 5
)

// Lookup is a sparse n-gram index over a small vocabulary.
type Lookup struct {
	*lookup.Index
	n           int
	rarest      int
	prefixIndex map[string]map[string]bool // prefix n-gram -> normalized terms
	rareIndex   map[string]map[string]bool // rarest n-gram -> normalized terms
	gramsOf     map[string]map[string]bool // normalized term -> its full n-gram set
}

// New builds a sparse n-gram lookup over uidsByTerm using the default
// n-gram size and rarest-gram count.
func New(uidsByTerm map[string][]string, minTokens, maxTokens int, keepAcronyms bool) *Lookup {
	return NewWithParams(uidsByTerm, minTokens, maxTokens, keepAcronyms, DefaultN, DefaultRarest)
}

// NewWithParams is New with an explicit n-gram size and rarest-gram
// count.
func NewWithParams(uidsByTerm map[string][]string, minTokens, maxTokens int, keepAcronyms bool, n, rarest int) *Lookup {
	l := &Lookup{
		Index:       lookup.NewIndex(keepAcronyms),
		n:           n,
		rarest:      rarest,
		prefixIndex: make(map[string]map[string]bool),
		rareIndex:   make(map[string]map[string]bool),
		gramsOf:     make(map[string]map[string]bool),
	}

	normedOf := make(map[string]string)
	globalFreq := make(map[string]int)
	for term, uids := range uidsByTerm {
		uidSet := lookup.NewUIDSet(uids...)
		grams := lookup.Kgrams(term, true, minTokens, maxTokens, keepAcronyms)
		if len(grams) == 0 {
			continue
		}
		normed := grams[0]
		normedOf[term] = normed
		for _, g := range grams {
			l.Add(g, term, uidSet)
		}
		for g := range ngrams(normed, n) {
			globalFreq[g]++
		}
	}

	for _, normed := range normedOf {
		if l.gramsOf[normed] != nil {
			continue // already indexed via a different surface term
		}
		grams := ngrams(normed, n)
		l.gramsOf[normed] = grams

		prefix := prefixGram(normed, n)
		if l.prefixIndex[prefix] == nil {
			l.prefixIndex[prefix] = make(map[string]bool)
		}
		l.prefixIndex[prefix][normed] = true

		for _, g := range rarestGrams(grams, globalFreq, l.rarest) {
			if l.rareIndex[g] == nil {
				l.rareIndex[g] = make(map[string]bool)
			}
			l.rareIndex[g][normed] = true
		}
	}
	return l
}

// ngrams returns the set of boundary-marked character n-grams of s.
func ngrams(s string, n int) map[string]bool {
	marked := "^" + s + "$"
	out := make(map[string]bool)
	if len(marked) < n {
		out[marked] = true
		return out
	}
	for i := 0; i+n <= len(marked); i++ {
		out[marked[i:i+n]] = true
	}
	return out
}

func prefixGram(s string, n int) string {
	marked := "^" + s
	if len(marked) < n {
		return marked
	}
	return marked[:n]
}

// rarestGrams returns up to k members of set sorted by ascending
// global frequency, ties broken lexically for determinism.
func rarestGrams(set map[string]bool, freq map[string]int, k int) []string {
	grams := make([]string, 0, len(set))
	for g := range set {
		grams = append(grams, g)
	}
	sort.Slice(grams, func(i, j int) bool {
		if freq[grams[i]] != freq[grams[j]] {
			return freq[grams[i]] < freq[grams[j]]
		}
		return grams[i] < grams[j]
	})
	if len(grams) > k {
		grams = grams[:k]
	}
	return grams
}

func dice(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for g := range a {
		if b[g] {
			shared++
		}
	}
	return 2 * float64(shared) / float64(len(a)+len(b))
}

// diceThreshold mirrors tokenratio.threshold's length-scaled acceptance
// bar: the longer the shorter side of the pair, the higher the bar. Dice
// coefficient lives on [0,1], so the same 60/50/40 breakpoints are
// expressed as fractions rather than tokenratio's 0-100 scale.
func diceThreshold(n int) float64 {
	switch {
	case n > 10:
		return 0.60
	case n > 5:
		return 0.50
	default:
		return 0.40
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// NormedTermsMatchingTerm implements lookup.Backend: candidates are
// drawn from the prefix index and the rarest-gram index, ranked by
// Dice coefficient, and the top 2 clearing the length-scaled
// diceThreshold survive.
func (l *Lookup) NormedTermsMatchingTerm(term string) []string {
	queryGrams := ngrams(term, l.n)
	candidates := make(map[string]bool)
	for normed := range l.prefixIndex[prefixGram(term, l.n)] {
		candidates[normed] = true
	}
	for g := range queryGrams {
		for normed := range l.rareIndex[g] {
			candidates[normed] = true
		}
	}

	type scored struct {
		term  string
		score float64
	}
	var ranked []scored
	for normed := range candidates {
		need := diceThreshold(minInt(len(normed), len(term)))
		if s := dice(queryGrams, l.gramsOf[normed]); s >= need {
			ranked = append(ranked, scored{normed, s})
		}
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > 2 {
		ranked = ranked[:2]
	}
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.term
	}
	return out
}
