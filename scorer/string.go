// Package scorer implements the composite similarity scorer:
// character-level and token-level string ratios combined with an
// acronym shortcut into a single string score, then extended at the
// item level with acronym/country/city/URL/research-unit evidence.
//
// Grounded on original_source/grid.py's checkCandidate (the
// abs/partial/sort/set ratio cascade and its 20/30/40/50 rejection
// floors) and gridder.py's score_items (the item-level aggregate).
package scorer

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/duplau/link-fields/acronym"
	"github.com/duplau/link-fields/normalize"
)

// Rejection floors for the character and token layers.
const (
	MinAbsRatio    = 20
	MinPartRatio   = 30
	MinSortRatio   = 40
	MinSetRatio    = 50
	AggregateFloor = 60
)

// ratio is fuzzywuzzy's fuzz.ratio, reimplemented over Levenshtein
// distance: 100 * (total length - distance) / total length.
func ratio(a, b string) int {
	if a == "" && b == "" {
		return 100
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	r := 100 * (total - dist) / total
	if r < 0 {
		r = 0
	}
	return r
}

// partialRatio finds the best matching window of the longer string
// against the shorter one and scores that window, fuzzywuzzy's
// fuzz.partial_ratio.
func partialRatio(a, b string) int {
	shorter, longer := a, b
	if len(a) > len(b) {
		shorter, longer = b, a
	}
	if shorter == "" {
		if longer == "" {
			return 100
		}
		return 0
	}
	if len(longer) <= len(shorter) {
		return ratio(shorter, longer)
	}
	best := 0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		window := longer[i : i+len(shorter)]
		if r := ratio(shorter, window); r > best {
			best = r
		}
	}
	return best
}

// sortedTokenString splits on whitespace, sorts the tokens, and rejoins —
// the key step of fuzz.token_sort_ratio.
func sortedTokenString(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// tokenSortRatio computes ratio() on the whitespace-sorted forms of a
// and b, so word order differences don't depress the score.
func tokenSortRatio(a, b string) int {
	return ratio(sortedTokenString(a), sortedTokenString(b))
}

// tokenSetRatio splits a and b into token sets, and takes the best
// ratio() among (intersection vs. intersection+onlyA), (intersection
// vs. intersection+onlyB), and (intersection+onlyA vs.
// intersection+onlyB) — fuzz.token_set_ratio, robust to one string
// being a subset of the other's words.
func tokenSetRatio(a, b string) int {
	tokensA := strings.Fields(a)
	tokensB := strings.Fields(b)
	setA := make(map[string]bool, len(tokensA))
	for _, t := range tokensA {
		setA[t] = true
	}
	setB := make(map[string]bool, len(tokensB))
	for _, t := range tokensB {
		setB[t] = true
	}

	var intersection, onlyA, onlyB []string
	for t := range setA {
		if setB[t] {
			intersection = append(intersection, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range setB {
		if !setA[t] {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(intersection)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	inter := strings.Join(intersection, " ")
	t0 := inter
	t1 := strings.TrimSpace(inter + " " + strings.Join(onlyA, " "))
	t2 := strings.TrimSpace(inter + " " + strings.Join(onlyB, " "))

	best := ratio(t0, t1)
	if r := ratio(t0, t2); r > best {
		best = r
	}
	if r := ratio(t1, t2); r > best {
		best = r
	}
	return best
}

// acronymShortcut reports whether a is (up to case) an acronym of b, or
// vice versa, grid.py's checkCandidate special case that short-circuits
// straight to a score of 100.
func acronymShortcut(a, b string) bool {
	tokensA := strings.Fields(a)
	tokensB := strings.Fields(b)
	acroA := acronymOf(tokensA)
	acroB := acronymOf(tokensB)
	return acroA != "" && strings.EqualFold(acroA, strings.Join(tokensB, "")) ||
		acroB != "" && strings.EqualFold(acroB, strings.Join(tokensA, ""))
}

func acronymOf(tokens []string) string {
	pairs := acronym.Acronymize(tokens, len(tokens), len(tokens))
	if len(pairs) == 0 {
		return ""
	}
	return pairs[0].Acronym
}

// StringScoreConfig bundles the tunables of the string scorer: the
// proper-noun layer's word lists, active only when
// RequireSharedProperNoun is set.
type StringScoreConfig struct {
	RequireSharedProperNoun bool
	NonDiscriminatingWords  map[string]bool
	DictionaryWords         map[string]bool
}

// StringScore computes the composite string-level score between two
// raw phrases a and b. Returns 0 if any layer's rejection floor is
// unmet, or if the aggregate falls at or below AggregateFloor;
// otherwise returns the aggregate score and a short reason.
func StringScore(a, b string, cfg StringScoreConfig) (int, string) {
	if acronymShortcut(a, b) {
		return 100, "acronym-equality"
	}

	abs := ratio(a, b)
	if abs < MinAbsRatio {
		return 0, "rejected: abs-ratio"
	}
	part := partialRatio(a, b)
	if part < MinPartRatio {
		return 0, "rejected: partial-ratio"
	}

	tokensA := normalize.NormalizeAndTokens(a, false, nil, nil)
	tokensB := normalize.NormalizeAndTokens(b, false, nil, nil)
	a2 := strings.Join(tokensA, " ")
	b2 := strings.Join(tokensB, " ")

	sortR := tokenSortRatio(a2, b2)
	if sortR < MinSortRatio {
		return 0, "rejected: token-sort-ratio"
	}
	setR := tokenSetRatio(a2, b2)
	if setR < MinSetRatio {
		return 0, "rejected: token-set-ratio"
	}

	if cfg.RequireSharedProperNoun {
		properA := properNouns(tokensA, cfg)
		properB := properNouns(tokensB, cfg)
		joinedA := strings.Join(properA, "")
		joinedB := strings.Join(properB, "")
		if len(joinedA) < 3 || len(joinedB) < 3 {
			return 0, "rejected: no-shared-proper-noun"
		}
		pa, pb := strings.Join(properA, " "), strings.Join(properB, " ")
		if tokenSortRatio(pa, pb) < 10 || tokenSetRatio(pa, pb) < 20 {
			return 0, "rejected: proper-noun-mismatch"
		}
	}

	s := (abs * part * sortR * sortR * setR * setR * setR) / pow100(6)
	if s <= AggregateFloor {
		return 0, "rejected: aggregate-floor"
	}
	return s, "string-ratio"
}

// properNouns strips tokens that appear in the non-discriminating-word
// list or the bundled dictionary, leaving the terms most likely to be
// proper nouns.
func properNouns(tokens []string, cfg StringScoreConfig) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if cfg.NonDiscriminatingWords != nil && cfg.NonDiscriminatingWords[t] {
			continue
		}
		if cfg.DictionaryWords != nil && cfg.DictionaryWords[t] {
			continue
		}
		out = append(out, t)
	}
	return out
}

func pow100(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= 100
	}
	return p
}
