// Package lookup implements the small-vocabulary approximate lookup
// layer: the shared k-gram/index bookkeeping every backend builds on,
// plus the Backend contract each approximate-matching strategy
// implements.
//
// Grounded on original_source/vocab_lookup.py's SmallVocabLookup base
// class and its kgrams generator.
package lookup

import (
	"strings"

	"github.com/duplau/link-fields/normalize"
)

// UIDSet is a set of opaque canonical-entry identifiers attached to a
// normalized term.
type UIDSet map[string]bool

// NewUIDSet builds a UIDSet from a slice of ids.
func NewUIDSet(uids ...string) UIDSet {
	s := make(UIDSet, len(uids))
	for _, u := range uids {
		s[u] = true
	}
	return s
}

// Union merges other into s in place.
func (s UIDSet) Union(other UIDSet) {
	for u := range other {
		s[u] = true
	}
}

// Slice returns s's members in indeterminate order.
func (s UIDSet) Slice() []string {
	out := make([]string, 0, len(s))
	for u := range s {
		out = append(out, u)
	}
	return out
}

// Kgrams yields the normalized full phrase, then every contiguous
// token run of length [minK,maxK] (optionally sliding the window start
// across every token, longest run first), deduplicated. A window start
// with fewer than minK tokens left yields the run of all remaining
// tokens instead. Mirrors vocab_lookup.py's kgrams.
func Kgrams(text string, slide bool, minK, maxK int, keepAcronyms bool) []string {
	tokens := normalize.NormalizeAndTokens(text, keepAcronyms, nil, nil)
	if len(tokens) == 0 {
		return nil
	}
	phrase := strings.Join(tokens, " ")
	seen := map[string]bool{phrase: true}
	out := []string{phrase}

	starts := []int{0}
	if slide {
		starts = make([]int, len(tokens))
		for i := range tokens {
			starts[i] = i
		}
	}
	for _, i := range starts {
		lo := minK
		if remaining := len(tokens) - i; remaining < lo {
			lo = remaining
		}
		for k := maxK; k >= lo; k-- {
			if k <= 0 || i+k > len(tokens) {
				continue
			}
			gram := strings.Join(tokens[i:i+k], " ")
			if seen[gram] {
				continue
			}
			seen[gram] = true
			out = append(out, gram)
		}
	}
	return out
}

// Index is the bookkeeping shared by every lookup backend: which
// surface terms map to which normalized form, and which canonical ids
// back each normalized form.
type Index struct {
	UIDsByNormedTerm  map[string]UIDSet
	TermsByNormedTerm map[string]map[string]bool
	KeepAcronyms      bool
}

// NewIndex returns an empty Index.
func NewIndex(keepAcronyms bool) *Index {
	return &Index{
		UIDsByNormedTerm:  make(map[string]UIDSet),
		TermsByNormedTerm: make(map[string]map[string]bool),
		KeepAcronyms:      keepAcronyms,
	}
}

// Add records that the surface term normalizes to normed and is backed
// by uids.
func (idx *Index) Add(normed, term string, uids UIDSet) {
	if idx.UIDsByNormedTerm[normed] == nil {
		idx.UIDsByNormedTerm[normed] = make(UIDSet)
	}
	idx.UIDsByNormedTerm[normed].Union(uids)
	if idx.TermsByNormedTerm[normed] == nil {
		idx.TermsByNormedTerm[normed] = make(map[string]bool)
	}
	idx.TermsByNormedTerm[normed][term] = true
}

// Backend is implemented by each approximate-matching strategy: given
// one normalized k-gram, return the normalized indexed terms it
// considers a match.
type Backend interface {
	NormedTermsMatchingTerm(term string) []string
}

// TermMatch is one entry of TermsMatchingText's result.
type TermMatch struct {
	Count int
	Terms map[string]bool
}

// TermsMatchingText slides a k-gram window (1..maxTokens tokens) over
// text and tallies, for every normalized term backend considers a
// match, how many k-grams hit it. Entries below minCount are dropped.
func (idx *Index) TermsMatchingText(text string, backend Backend, maxTokens, minCount int) map[string]TermMatch {
	counts := make(map[string]int)
	for _, kgram := range Kgrams(text, true, 1, maxTokens, idx.KeepAcronyms) {
		for _, normed := range backend.NormedTermsMatchingTerm(kgram) {
			counts[normed]++
		}
	}
	out := make(map[string]TermMatch, len(counts))
	for normed, c := range counts {
		if c < minCount {
			continue
		}
		out[normed] = TermMatch{Count: c, Terms: idx.TermsByNormedTerm[normed]}
	}
	return out
}

// UIDMatch is one entry of CountUIDMatches' result: how many k-gram
// hits rolled up to this surface term, and the canonical ids it backs.
type UIDMatch struct {
	Count int
	UIDs  UIDSet
}

// CountUIDMatches rolls TermsMatchingText's normalized-term hits back
// up to surface terms and their canonical ids.
func (idx *Index) CountUIDMatches(text string, backend Backend, maxTokens, minCount int) map[string]UIDMatch {
	byNormed := idx.TermsMatchingText(text, backend, maxTokens, minCount)
	countsByTerm := make(map[string]int)
	uidsByTerm := make(map[string]UIDSet)
	for normed, m := range byNormed {
		for term := range m.Terms {
			countsByTerm[term] += m.Count
			if uidsByTerm[term] == nil {
				uidsByTerm[term] = make(UIDSet)
			}
			uidsByTerm[term].Union(idx.UIDsByNormedTerm[normed])
		}
	}
	out := make(map[string]UIDMatch, len(countsByTerm))
	for term, c := range countsByTerm {
		out[term] = UIDMatch{Count: c, UIDs: uidsByTerm[term]}
	}
	return out
}
