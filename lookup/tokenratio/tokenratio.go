// Package tokenratio implements a top-2 Levenshtein-ratio lookup
// backend: every query term is ranked against the full indexed
// vocabulary by similarity ratio, and the best two above a
// length-scaled threshold survive.
//
// Grounded on original_source/vocab_lookup.py's FWLookup, which calls
// fuzzywuzzy's process.extract(term, idx, limit=2, scorer=fuzz.ratio).
// fuzz.ratio is itself edit-distance based, so lithammer/fuzzysearch's
// LevenshteinDistance (the pack's one fuzzy-string dependency)
// reproduces it directly without pulling in fuzzywuzzy's Python-only
// process.extract machinery.
package tokenratio

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/duplau/link-fields/lookup"
)

// Lookup ranks the indexed vocabulary by Levenshtein ratio against the
// query term.
type Lookup struct {
	*lookup.Index
	terms []string
}

// New builds a ratio-ranked lookup over uidsByTerm.
func New(uidsByTerm map[string][]string, minTokens, maxTokens int, keepAcronyms bool) *Lookup {
	l := &Lookup{Index: lookup.NewIndex(keepAcronyms)}
	seen := make(map[string]bool)
	for term, uids := range uidsByTerm {
		uidSet := lookup.NewUIDSet(uids...)
		grams := lookup.Kgrams(term, true, minTokens, maxTokens, keepAcronyms)
		for _, kgram := range grams {
			l.Add(kgram, term, uidSet)
		}
		if len(grams) == 0 {
			continue
		}
		normed := grams[0]
		if !seen[normed] {
			seen[normed] = true
			l.terms = append(l.terms, normed)
		}
	}
	return l
}

// ratio is fuzzywuzzy's fuzz.ratio, reimplemented over Levenshtein
// distance: 100 * (total length - distance) / total length.
func ratio(a, b string) int {
	dist := fuzzy.LevenshteinDistance(a, b)
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	return int(100 * float64(total-dist) / float64(total))
}

// threshold mirrors FWLookup's default maxDist lambda: the longer the
// shorter side of the pair, the higher the bar (60 above 10 characters,
// 50 above 5, else 40).
func threshold(n int) int {
	switch {
	case n > 10:
		return 60
	case n > 5:
		return 50
	default:
		return 40
	}
}

type scoredTerm struct {
	term  string
	score int
}

// NormedTermsMatchingTerm implements lookup.Backend: the top 2 indexed
// terms by ratio, kept only while their ratio exceeds threshold.
func (l *Lookup) NormedTermsMatchingTerm(term string) []string {
	scored := make([]scoredTerm, 0, len(l.terms))
	for _, t := range l.terms {
		scored = append(scored, scoredTerm{t, ratio(term, t)})
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > 2 {
		scored = scored[:2]
	}
	out := make([]string, 0, 2)
	for _, s := range scored {
		need := threshold(minInt(len(s.term), len(term)))
		if s.score <= need {
			break
		}
		out = append(out, s.term)
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
