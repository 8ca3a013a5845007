// Package normalize implements the tokenization and normalization
// pipeline: case-folding, diacritic stripping, punctuation handling,
// stop-word filtering, and token validation. It is the single source
// of truth for comparability between two strings anywhere else in the
// engine.
//
// Grounded on original_source/vocab_lookup.go's splitAndCase/
// validateTokens and grid.py's near-identical preSplit/splitAndCase.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MinAcroSize and MaxAcroSize are the default acronym-length bounds
// referenced throughout the acronym model.
const (
	MinAcroSize = 3
	MaxAcroSize = 6
)

// punctuationToSpace is the character class replaced by a single space
// in step (2) of normalize_and_tokens. The hyphen is handled separately
// so that digit-digit hyphens survive (numeric ranges).
var punctuationToSpace = regexp.MustCompile(`[{}\[\](),."';:!?&^/*-]`)

var digitHyphenDigit = regexp.MustCompile(`(\d)-(\d)`)

// acroPattern1 matches one upper-case letter optionally followed by digits, e.g. "H2".
var acroPattern1 = regexp.MustCompile(`^[A-Z][0-9]*$`)

// acroPattern2 matches an alphanumeric upper-case run, e.g. "CO2".
var acroPattern2 = regexp.MustCompile(`^[A-Z0-9]+$`)

// TokenValidator decides whether a single candidate token survives into
// the output phrase.
type TokenValidator func(token string) bool

// PhraseValidator decides whether a whole token list is accepted as a
// valid phrase; rejection yields an empty result from normalize_and_tokens.
type PhraseValidator func(tokens []string) bool

// StopWords is the default combined French/English stop-word set used by
// DefaultTokenValidator. engine.Load replaces it via SetStopWords with
// the bundled resource lists, so normalize has no import-time dependency
// on resource (avoiding a cycle); callers that never load resources get
// this small built-in French and English list.
var StopWords = map[string]bool{
	// French prepositions (except "avec"/"sans", semantically meaningful)
	"a": true, "au": true, "aux": true, "de": true, "des": true, "du": true,
	"par": true, "pour": true, "sur": true, "chez": true, "dans": true,
	"sous": true, "vers": true,
	// French articles
	"le": true, "la": true, "les": true, "l": true, "c": true, "ce": true, "ca": true,
	// French coordinating conjunctions
	"mais": true, "et": true, "ou": true, "donc": true, "or": true, "ni": true, "car": true,
	// A short, widely used English stop list
	"the": true, "an": true, "and": true, "but": true,
	"of": true, "to": true, "in": true, "on": true, "for": true, "with": true, "at": true,
	"by": true, "from": true, "is": true, "are": true, "was": true, "were": true,
}

// SetStopWords replaces the active stop-word set, e.g. with one loaded
// from resource.StopWords().
func SetStopWords(words map[string]bool) {
	StopWords = words
}

func isStopWord(token string) bool {
	return StopWords[token]
}

// isPureDigits reports whether every rune of s is an ASCII digit.
func isPureDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isAllUpperAlpha reports whether s is non-empty, alphabetic, and
// entirely upper-case.
func isAllUpperAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
		if unicode.IsLower(r) {
			return false
		}
	}
	return true
}

// DefaultTokenValidator rejects empty/whitespace tokens, pure-digit
// tokens, short tokens (length <= 2) unless they are fully upper-case
// alphabetic, and stop words.
func DefaultTokenValidator(token string) bool {
	t := strings.TrimSpace(token)
	if t == "" {
		return false
	}
	if isPureDigits(t) {
		return false
	}
	if len(t) <= 2 && !isAllUpperAlpha(t) {
		return false
	}
	return !isStopWord(t)
}

// DefaultPhraseValidator accepts any non-empty token list that is not
// composed exclusively of single-character digit tokens.
func DefaultPhraseValidator(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		if !(len(t) == 1 && t[0] >= '0' && t[0] <= '9') {
			return true
		}
	}
	return false
}

// preSplit pads the phrase, blanks out punctuation (preserving
// digit-digit hyphens), and returns the resulting string ready to split
// on whitespace. Steps (1)-(2) of normalize_and_tokens.
func preSplit(phrase string) string {
	s := " " + strings.TrimSpace(phrase) + " "
	s = digitHyphenDigit.ReplaceAllString(s, "$1\x00$2") // protect digit-hyphen-digit
	s = punctuationToSpace.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "\x00", "-")
	return s
}

// stripEdges removes the leading/trailing cut-set from step (4).
func stripEdges(token string) string {
	return strings.Trim(token, " -_.,'?!\"")
}

// toASCII performs canonical (NFKD) decomposition and drops combining
// marks, yielding an ASCII-folded string. Step (5).
func toASCII(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue // combining mark, drop
		}
		if r > unicode.MaxASCII {
			continue // non-ASCII residue (e.g. ligatures NFKD can't fully resolve)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isAcroShape reports whether token matches [A-Z][0-9]* or [A-Z0-9]+,
// the two shapes eligible for acronym-case preservation.
func isAcroShape(token string) bool {
	return acroPattern1.MatchString(token) || acroPattern2.MatchString(token)
}

// caseToken applies step (6): preserve acronym casing in range, else
// lower-case, then ASCII-fold.
func caseToken(token string, keepAcronyms bool) string {
	if keepAcronyms && len(token) >= MinAcroSize && len(token) <= MaxAcroSize && isAcroShape(token) {
		return toASCII(token)
	}
	return toASCII(strings.ToLower(token))
}

// NormalizeAndTokens ports normalize_and_tokens.
func NormalizeAndTokens(phrase string, keepAcronyms bool, tokenValidator TokenValidator, phraseValidator PhraseValidator) []string {
	if tokenValidator == nil {
		tokenValidator = DefaultTokenValidator
	}
	if phraseValidator == nil {
		phraseValidator = DefaultPhraseValidator
	}
	if phrase == "" {
		return nil
	}
	raw := strings.Fields(preSplit(phrase))
	tokens := make([]string, 0, len(raw))
	for _, r := range raw {
		t := stripEdges(r)
		if t == "" {
			continue
		}
		t = caseToken(t, keepAcronyms)
		if !tokenValidator(t) {
			continue
		}
		tokens = append(tokens, t)
	}
	if !phraseValidator(tokens) {
		return nil
	}
	return tokens
}

// JustCase is the cheap blocking-key form: split, lower-case, ASCII-fold,
// rejoin — no validation or stop-word filtering.
func JustCase(phrase string) string {
	raw := strings.Fields(preSplit(phrase))
	tokens := make([]string, 0, len(raw))
	for _, r := range raw {
		t := stripEdges(r)
		if t == "" {
			continue
		}
		tokens = append(tokens, caseToken(t, false))
	}
	return strings.Join(tokens, " ")
}

// Translate replaces word-bounded occurrences of a source form with its
// canonical form per a synonym table. Idempotent per entry, and commutes
// with ASCII-folding because both operate on already-folded tokens.
func Translate(phrase string, synonyms map[string]string) string {
	if len(synonyms) == 0 {
		return phrase
	}
	tokens := strings.Fields(phrase)
	for i, t := range tokens {
		if main, ok := synonyms[t]; ok {
			tokens[i] = main
		}
	}
	return strings.Join(tokens, " ")
}
