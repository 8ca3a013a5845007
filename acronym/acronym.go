// Package acronym implements the acronym model: generating,
// detecting, scoring, and expanding short upper-case forms against the
// multi-word phrases they abbreviate.
//
// Grounded on original_source/acronyms.go's acronymizeTokens/scoreAcronyms/
// acronymExpansions and gridder.py's extractAcronymsByColocation.
package acronym

import (
	"math"
	"regexp"
	"strings"
)

// Scoring weights, default values.
const (
	DefaultAmbiguityFactor = 4.0
	DefaultCapFactor       = 8.0
	DefaultCommonFactor    = 32.0
	DefaultKnownFactor     = 16.0
)

// Pair is one ⟨acronym, prefix_tokens⟩ yielded by Acronymize.
type Pair struct {
	Acronym string
	Prefix  []string
}

// Acronymize lazily yields pairs ⟨acronym, prefix_tokens⟩ where acronym
// is the upper-case concatenation of the first letters of
// tokens[0..s] for s ranging over [max(min, len(tokens)), min(max,
// len(tokens))]. The returned slice is materialized (Go has no native
// generator), but callers should treat it as consume-once since these
// sequences are not restartable.
func Acronymize(tokens []string, min, max int) []Pair {
	if len(tokens) == 0 {
		return nil
	}
	lo := min
	if lo < len(tokens) {
		lo = len(tokens)
	}
	hi := max
	if hi > len(tokens) {
		hi = len(tokens)
	}
	var out []Pair
	for s := lo; s <= hi; s++ {
		if s <= 0 || s > len(tokens) {
			continue
		}
		prefix := tokens[:s]
		var b strings.Builder
		for _, t := range prefix {
			if t == "" {
				continue
			}
			b.WriteByte(upperByte(t[0]))
		}
		out = append(out, Pair{Acronym: b.String(), Prefix: append([]string(nil), prefix...)})
	}
	return out
}

func upperByte(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

var colocationPattern = regexp.MustCompile(`[\[(]([A-Z][A-Z0-9 /]*)[\])]`)

// Colocated is one ⟨acronym, stripped_phrase⟩ pair from ExtractByColocation.
type Colocated struct {
	Acronym        string
	StrippedPhrase string
}

// ExtractByColocation yields ⟨acronym, stripped_phrase⟩ for every
// substring matching an upper-case token enclosed in [...] or (...).
func ExtractByColocation(phrase string) []Colocated {
	matches := colocationPattern.FindAllStringSubmatchIndex(phrase, -1)
	out := make([]Colocated, 0, len(matches))
	for _, m := range matches {
		full := phrase[m[0]:m[1]]
		acro := strings.TrimSpace(phrase[m[2]:m[3]])
		stripped := phrase[:m[0]] + phrase[m[1]:]
		_ = full
		out = append(out, Colocated{Acronym: acro, StrippedPhrase: strings.TrimSpace(stripped)})
	}
	return out
}

// ScoreConfig bundles the tunables of score_acronyms.
type ScoreConfig struct {
	AmbiguityFactor float64
	CapFactor       float64
	CommonFactor    float64
	KnownFactor     float64

	// TokenFreq is a general-language frequency table (e.g. most common
	// French tokens), keyed by upper-cased token.
	TokenFreq map[string]int
	// TokenFreqMean is the mean of TokenFreq's values, used to normalize.
	TokenFreqMean float64
	// KnownAcronyms is a curated set of acronyms known a priori.
	KnownAcronyms map[string]bool
}

// DefaultScoreConfig returns the default weights with no frequency
// table or known-acronym list (callers load those from the resource
// package).
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		AmbiguityFactor: DefaultAmbiguityFactor,
		CapFactor:       DefaultCapFactor,
		CommonFactor:    DefaultCommonFactor,
		KnownFactor:     DefaultKnownFactor,
	}
}

// Scored is the result for one acronym: its best (most frequent)
// expansion and its score.
type Scored struct {
	Expansion []string
	Score     float64
}

// ScoreAcronyms scores each candidate acronym A by
//
//	s(A) = f_cap(A) / (AMB^|terms(A)| · (f_cap(A) + CAP · f_nocap(A)))
//
// then applies the COMMON/KNOWN adjustments, and picks the most frequent
// token-tuple among terms(A) as the winning expansion. An acronym with
// no case-sensitive occurrence in corpus is left out of the result.
func ScoreAcronyms(phrasesByAcronym map[string][][]string, corpus []string, cfg ScoreConfig) map[string]Scored {
	out := make(map[string]Scored, len(phrasesByAcronym))
	for acro, terms := range phrasesByAcronym {
		fCap := countCaseSensitive(acro, corpus)
		if fCap < 1 {
			continue
		}
		fTotal := countCaseInsensitive(acro, corpus)
		fNoCap := fTotal - fCap
		if fNoCap < 0 {
			fNoCap = 0
		}
		s := 1.0 / math.Pow(cfg.AmbiguityFactor, float64(len(terms)))
		s *= float64(fCap) / (float64(fCap) + cfg.CapFactor*float64(fNoCap))
		if cfg.TokenFreq != nil {
			if freq, ok := cfg.TokenFreq[acro]; ok && freq > 0 {
				s = s * cfg.TokenFreqMean / (float64(freq) * cfg.CommonFactor)
			}
		}
		if cfg.KnownAcronyms != nil && cfg.KnownAcronyms[acro] {
			s *= cfg.KnownFactor
		}
		out[acro] = Scored{Expansion: mostCommon(terms), Score: s}
	}
	return out
}

func countCaseSensitive(needle string, corpus []string) int {
	n := 0
	for _, p := range corpus {
		if strings.Contains(p, needle) {
			n++
		}
	}
	return n
}

func countCaseInsensitive(needle string, corpus []string) int {
	lower := strings.ToLower(needle)
	n := 0
	for _, p := range corpus {
		if strings.Contains(strings.ToLower(p), lower) {
			n++
		}
	}
	return n
}

func mostCommon(terms [][]string) []string {
	counts := make(map[string]int, len(terms))
	byKey := make(map[string][]string, len(terms))
	for _, t := range terms {
		k := strings.Join(t, " ")
		counts[k]++
		byKey[k] = t
	}
	best := ""
	bestCount := -1
	for k, c := range counts {
		if c > bestCount {
			bestCount = c
			best = k
		}
	}
	return byKey[best]
}

// Expansions yields the tokens themselves, then, for each token that is
// itself a known acronym in range, a variant where that token is
// replaced by its best expansion. Used to broaden lookup after a direct
// match failed.
func Expansions(tokens []string, acronymMap map[string]Scored, min, max int) [][]string {
	out := [][]string{append([]string(nil), tokens...)}
	for i, t := range tokens {
		if len(t) < min || len(t) > max {
			continue
		}
		scored, ok := acronymMap[t]
		if !ok || len(scored.Expansion) == 0 {
			continue
		}
		variant := make([]string, 0, len(tokens)-1+len(scored.Expansion))
		variant = append(variant, tokens[:i]...)
		variant = append(variant, scored.Expansion...)
		variant = append(variant, tokens[i+1:]...)
		out = append(out, variant)
	}
	return out
}

// AdaptedWindow adjusts [min,max] downward for a catalog of the given
// size: both bounds are reduced by ⌊log(max(1, |catalog|/100))⌋ so
// larger catalogs require longer, less ambiguous acronyms. Per
// DESIGN.md's Open Question decision, log is natural log (math.Log),
// matching the Python original's math.log.
func AdaptedWindow(min, max, catalogSize int) (int, int) {
	ratio := float64(catalogSize) / 100.0
	if ratio < 1 {
		ratio = 1
	}
	discount := int(math.Floor(math.Log(ratio)))
	return min - discount, max - discount
}
