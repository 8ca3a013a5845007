// Package assign implements the assignment / decision layer: turning
// each source item's ranked candidate list into a final one-to-one
// linking decision, plus the fallback passes that rescue items the
// primary pass left unmatched.
package assign

import (
	"github.com/duplau/link-fields/candidate"
	"github.com/duplau/link-fields/entity"
)

// Greedy walks source items in the given order and, for each, claims
// its highest-scoring candidate unless that canonical id has already
// been claimed by a different source item — in which case the item is
// skipped outright rather than falling through to its runner-up
// candidate.
//
// Grounded on original_source/link_field.py's matchAll, whose
// termCounter/matchCounts bookkeeping is generalized here into an
// explicit at-most-one claim set.
func Greedy(order []string, candidatesByItem map[string][]candidate.Scored) map[string]entity.Match {
	claimed := make(map[string]bool)
	out := make(map[string]entity.Match, len(order))
	for _, docID := range order {
		cands := candidatesByItem[docID]
		if len(cands) == 0 {
			continue
		}
		best := cands[0]
		if claimed[best.CanonicalID] {
			continue
		}
		claimed[best.CanonicalID] = true
		out[docID] = entity.Match{
			DocID:       docID,
			CanonicalID: best.CanonicalID,
			Score:       float64(best.Result.Score),
			Reason:      best.Result.Reason,
		}
	}
	return out
}
