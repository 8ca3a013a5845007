// Package fss implements a bounded edit-distance lookup backend using
// the deletion-neighborhood construction FastSS is built on: every
// indexed string is expanded into the set of strings reachable by
// deleting up to two characters, and a query is matched against that
// same expansion before the true edit distance is computed on the
// survivors.
//
// Grounded on original_source/vocab_lookup.py's FSSLookup, which wraps
// the tinyfss Python binding of the same algorithm; no Go package in
// the example pack provides a FastSS-style index, so the deletion
// neighborhoods are built here on stdlib, with final distance
// verification delegated to lithammer/fuzzysearch (the pack's one
// fuzzy-string library) rather than a hand-rolled Levenshtein.
package fss

import (
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/duplau/link-fields/lookup"
)

// MaxDeletions bounds the deletion neighborhood built per indexed
// string; two matches the original's highest maxDist tier.
const MaxDeletions = 2

// Lookup is a bounded edit-distance index over a small vocabulary.
type Lookup struct {
	*lookup.Index
	deletionIndex map[string]map[string]bool // deletion variant -> indexed normalized terms
}

// New builds an FSS-backed lookup over uidsByTerm.
func New(uidsByTerm map[string][]string, minTokens, maxTokens int, keepAcronyms bool) *Lookup {
	l := &Lookup{
		Index:         lookup.NewIndex(keepAcronyms),
		deletionIndex: make(map[string]map[string]bool),
	}
	indexed := make(map[string]bool)
	for term, uids := range uidsByTerm {
		uidSet := lookup.NewUIDSet(uids...)
		for _, kgram := range lookup.Kgrams(term, true, minTokens, maxTokens, keepAcronyms) {
			l.Add(kgram, term, uidSet)
			if !indexed[kgram] {
				indexed[kgram] = true
				l.index(kgram)
			}
		}
	}
	return l
}

func (l *Lookup) index(normed string) {
	for _, variant := range deletionVariants(normed, MaxDeletions) {
		if l.deletionIndex[variant] == nil {
			l.deletionIndex[variant] = make(map[string]bool)
		}
		l.deletionIndex[variant][normed] = true
	}
}

// deletionVariants returns s itself plus every string obtained by
// deleting up to k characters from it.
func deletionVariants(s string, k int) []string {
	variants := map[string]bool{s: true}
	frontier := []string{s}
	for d := 0; d < k; d++ {
		var next []string
		for _, f := range frontier {
			for i := range f {
				v := f[:i] + f[i+1:]
				if !variants[v] {
					variants[v] = true
					next = append(next, v)
				}
			}
		}
		frontier = next
	}
	out := make([]string, 0, len(variants))
	for v := range variants {
		out = append(out, v)
	}
	return out
}

// maxDist mirrors FSSLookup's default maxDist lambda: the shorter the
// pair of strings being compared, the less edit distance is tolerated.
func maxDist(n int) int {
	switch {
	case n >= 6:
		return 2
	case n >= 4:
		return 1
	default:
		return 0
	}
}

// NormedTermsMatchingTerm implements lookup.Backend.
func (l *Lookup) NormedTermsMatchingTerm(term string) []string {
	candidates := make(map[string]bool)
	for _, variant := range deletionVariants(term, MaxDeletions) {
		for normed := range l.deletionIndex[variant] {
			candidates[normed] = true
		}
	}
	out := make([]string, 0, len(candidates))
	for normed := range candidates {
		budget := maxDist(minInt(len(term), len(normed)))
		if fuzzy.LevenshteinDistance(term, normed) <= budget {
			out = append(out, normed)
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
