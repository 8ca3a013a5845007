package assign

import (
	"sort"
	"strings"

	"github.com/duplau/link-fields/entity"
)

// ParentGridPropagation handles the first fallback pass: an
// unmatched item whose parent label is itself matched inherits the
// parent's canonical id.
func ParentGridPropagation(items []*entity.SourceItem, matches map[string]entity.Match, labelToDocID map[string]string) {
	for _, it := range items {
		if _, ok := matches[it.DocID]; ok {
			continue
		}
		if it.ParentLabel == "" {
			continue
		}
		parentDocID, ok := labelToDocID[it.ParentLabel]
		if !ok {
			continue
		}
		parentMatch, ok := matches[parentDocID]
		if !ok {
			continue
		}
		matches[it.DocID] = entity.Match{
			DocID:       it.DocID,
			CanonicalID: parentMatch.CanonicalID,
			Score:       parentMatch.Score,
			Reason:      "parent-grid-propagation",
		}
	}
}

// ReferenceParentInference handles the second fallback pass: expose a
// matched item's canonical entry's own parent as the item's parent
// canonical id.
func ReferenceParentInference(matches map[string]entity.Match, catalog map[string]*entity.CanonicalEntry) {
	for docID, m := range matches {
		ref, ok := catalog[m.CanonicalID]
		if !ok || ref.ParentID == "" {
			continue
		}
		m.ParentCanonicalID = ref.ParentID
		matches[docID] = m
	}
}

// PrefixMatch handles the third fallback pass: for each unmatched
// item, trim trailing whitespace-delimited words from its label until
// the truncation equals some previously matched item's label, then
// adopt that item's canonical id as the parent canonical id.
//
// Unmatched items are processed in label-sorted order since the pass
// depends on iteration order and a deterministic implementation must
// not rely on map order.
func PrefixMatch(items []*entity.SourceItem, matches map[string]entity.Match, labelToDocID map[string]string) {
	var unmatched []*entity.SourceItem
	for _, it := range items {
		if _, ok := matches[it.DocID]; !ok {
			unmatched = append(unmatched, it)
		}
	}
	sort.Slice(unmatched, func(i, j int) bool { return unmatched[i].RawLabel < unmatched[j].RawLabel })

	for _, it := range unmatched {
		words := strings.Fields(it.RawLabel)
		for len(words) > 1 {
			words = words[:len(words)-1]
			truncated := strings.Join(words, " ")
			matchedDocID, ok := labelToDocID[truncated]
			if !ok {
				continue
			}
			m, ok := matches[matchedDocID]
			if !ok {
				continue
			}
			cur := matches[it.DocID]
			cur.DocID = it.DocID
			cur.ParentCanonicalID = m.CanonicalID
			matches[it.DocID] = cur
			break
		}
	}
}
