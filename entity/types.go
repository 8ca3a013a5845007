// Package entity defines the data model shared by every matching stage:
// tokens, phrases, canonical catalog entries, source items, blocks, and
// the matches the engine emits.
package entity

import (
	"strings"

	"github.com/google/uuid"
)

// Token is a single comparable unit produced by the normalizer. It never
// contains whitespace and is either lower-cased or, when preserved as an
// acronym, kept in its original case.
type Token = string

// Phrase is an ordered sequence of Tokens.
type Phrase []Token

// String joins the phrase back into a space-separated form.
func (p Phrase) String() string {
	return strings.Join(p, " ")
}

// Valid reports whether the phrase is non-empty and not composed
// exclusively of single-digit tokens.
func (p Phrase) Valid() bool {
	if len(p) == 0 {
		return false
	}
	for _, t := range p {
		if !(len(t) == 1 && t[0] >= '0' && t[0] <= '9') {
			return true
		}
	}
	return false
}

// CanonicalEntry is one record of a reference catalog.
type CanonicalEntry struct {
	ID               string
	MainLabel        string
	Aliases          []string
	TranslatedLabels map[string]string // ISO-639 code -> label
	Acronym          string
	City             string
	Country          string
	URL              string
	ResearchUnitID   string
	ParentID         string // empty if none
}

// Variants returns every textual form this entry is known by: the main
// label, its aliases, and its translated labels.
func (e *CanonicalEntry) Variants() []string {
	out := make([]string, 0, 2+len(e.Aliases)+len(e.TranslatedLabels))
	out = append(out, e.MainLabel)
	out = append(out, e.Aliases...)
	for _, l := range e.TranslatedLabels {
		out = append(out, l)
	}
	return out
}

// SourceItem is one record of the input stream. Variants, Acros,
// IsAddressLabel and ResearchUnitID are derived fields populated by an
// enrichment pass and are read-only once that pass completes.
type SourceItem struct {
	DocID          string
	RawLabel       string
	ParentLabel    string
	Country        string
	City           string
	Acronym        string

	Variants        []string
	Acros           []string
	IsAddressLabel  bool
	ResearchUnitID  string
}

// EnsureDocID synthesizes a stable document id when the input stream
// did not supply one, so downstream maps keyed by DocID never collide
// on the empty string.
func (s *SourceItem) EnsureDocID() {
	if s.DocID == "" {
		s.DocID = uuid.NewString()
	}
}

// Match is one emitted linking decision.
type Match struct {
	DocID             string
	CanonicalID       string
	ParentCanonicalID string
	Score             float64
	Reason            string
}

// Block is a partition of source items and canonical entries sharing a
// blocking key.
type Block struct {
	Key             string
	SourceItems     []*SourceItem
	CanonicalIDs    []string
}

// VariantMap is an inverse index from an alternative string form to its
// canonical main form, used for synonym expansion.
type VariantMap map[string]string

// Translate replaces any key found in m with its mapped value. Lookups
// are whole-string; word-boundary replacement within a phrase is done by
// normalize.Translate, which consults this map token by token.
func (m VariantMap) Translate(s string) string {
	if main, ok := m[s]; ok {
		return main
	}
	return s
}

// NormalizeCountry folds a country name or code to a canonical short
// form, folding "GB" to "UK" the way the source reference data does.
func NormalizeCountry(raw string, codes map[string]string) string {
	c := strings.TrimSpace(raw)
	if c == "" {
		return ""
	}
	if code, ok := codes[c]; ok {
		if code == "GB" {
			return "UK"
		}
		return code
	}
	upper := strings.ToUpper(c)
	if upper == "GB" {
		return "UK"
	}
	return upper
}

// BlockKey computes the blocking key from a country: the country
// trimmed and lower-cased. City never participates, and diacritics
// are not folded.
func BlockKey(country string) string {
	return strings.ToLower(strings.TrimSpace(country))
}
