// Package candidate implements the candidate generator: narrowing a
// source item down to a short, scored list of canonical entries worth
// a full item-score comparison.
//
// Generalizes original_source/link_field.py's Referential.matchScore
// token-frequency driven shortlisting into an explicit capped postings
// union.
package candidate

import (
	"sort"

	"github.com/duplau/link-fields/entity"
	"github.com/duplau/link-fields/normalize"
	"github.com/duplau/link-fields/scorer"
)

// MaxTokens caps how many of the source item's highest-frequency
// tokens seed the postings union.
const MaxTokens = 8

// MaxCandidates caps the postings union; the token whose union would
// push the set past this size is dropped rather than partially merged.
const MaxCandidates = 32

// Postings maps a normalized token to the set of canonical ids whose
// label (or a variant) contains that token.
type Postings map[string]map[string]bool

// TokenFreq is a corpus-wide token frequency counter, highest-frequency
// tokens first when sorting a source item's own tokens.
type TokenFreq map[string]int

// Scored is one ranked candidate: the canonical id and its item score.
type Scored struct {
	CanonicalID string
	Result      scorer.ItemResult
}

// Generate narrows the catalog down to a short ranked candidate list
// by seeding a postings union from the item's highest-frequency
// tokens, then scoring each union member.
func Generate(src *entity.SourceItem, catalog map[string]*entity.CanonicalEntry, postings Postings, freq TokenFreq, cfg scorer.ItemScoreConfig) []Scored {
	tokens := topTokens(src.RawLabel, freq, MaxTokens)
	if len(tokens) == 0 {
		return nil
	}

	candidateIDs := unionPostings(tokens, postings, MaxCandidates)
	if len(candidateIDs) == 0 {
		return nil
	}

	results := make([]Scored, 0, len(candidateIDs))
	for id := range candidateIDs {
		ref, ok := catalog[id]
		if !ok {
			continue
		}
		result := scorer.ItemScore(src, ref, cfg)
		if result.Score <= 0 {
			continue
		}
		results = append(results, Scored{CanonicalID: id, Result: result})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Result.Score > results[j].Result.Score
	})
	return results
}

// topTokens validates and tokenizes label, then sorts by descending
// corpus frequency, keeping at most max.
func topTokens(label string, freq TokenFreq, max int) []string {
	tokens := normalize.NormalizeAndTokens(label, true, nil, nil)
	if len(tokens) == 0 {
		return nil
	}
	sort.SliceStable(tokens, func(i, j int) bool {
		return freq[tokens[i]] > freq[tokens[j]]
	})
	if len(tokens) > max {
		tokens = tokens[:max]
	}
	return tokens
}

// unionPostings greedily unions postings for each token in order,
// stopping before any union that would push the set past capacity —
// that token's postings are discarded entirely, not partially merged.
func unionPostings(tokens []string, postings Postings, capacity int) map[string]bool {
	out := make(map[string]bool)
	for _, t := range tokens {
		ids, ok := postings[t]
		if !ok {
			continue
		}
		added := 0
		for id := range ids {
			if !out[id] {
				added++
			}
		}
		if len(out)+added > capacity {
			break
		}
		for id := range ids {
			out[id] = true
		}
	}
	return out
}
