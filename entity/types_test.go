package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhraseValidRejectsDigitOnly(t *testing.T) {
	assert.False(t, Phrase{"1"}.Valid())
	assert.False(t, Phrase{"1", "2"}.Valid())
	assert.True(t, Phrase{"1", "cnrs"}.Valid())
	assert.False(t, Phrase(nil).Valid())
}

func TestPhraseString(t *testing.T) {
	assert.Equal(t, "centre national de la recherche", Phrase{"centre", "national", "de", "la", "recherche"}.String())
}

func TestCanonicalEntryVariantsIncludesAliasesAndTranslations(t *testing.T) {
	e := &CanonicalEntry{
		MainLabel:        "Centre National de la Recherche Scientifique",
		Aliases:          []string{"CNRS"},
		TranslatedLabels: map[string]string{"en": "National Centre for Scientific Research"},
	}
	variants := e.Variants()
	assert.Contains(t, variants, "Centre National de la Recherche Scientifique")
	assert.Contains(t, variants, "CNRS")
	assert.Contains(t, variants, "National Centre for Scientific Research")
	assert.Len(t, variants, 3)
}

func TestEnsureDocIDSynthesizesWhenEmpty(t *testing.T) {
	s := &SourceItem{RawLabel: "Universite de Bordeaux"}
	s.EnsureDocID()
	assert.NotEmpty(t, s.DocID)

	s2 := &SourceItem{DocID: "already-set"}
	s2.EnsureDocID()
	assert.Equal(t, "already-set", s2.DocID)
}

func TestNormalizeCountryFoldsGBToUK(t *testing.T) {
	codes := map[string]string{"United Kingdom": "GB"}
	assert.Equal(t, "UK", NormalizeCountry("United Kingdom", codes))
	assert.Equal(t, "UK", NormalizeCountry("GB", codes))
	assert.Equal(t, "", NormalizeCountry("  ", codes))
	assert.Equal(t, "FR", NormalizeCountry("fr", nil))
}

func TestBlockKeyIgnoresCity(t *testing.T) {
	assert.Equal(t, "france", BlockKey("France"))
	assert.Equal(t, "france", BlockKey(" France "))
}

func TestVariantMapTranslateFallsThroughOnMiss(t *testing.T) {
	m := VariantMap{"cnrs": "centre national de la recherche scientifique"}
	assert.Equal(t, "centre national de la recherche scientifique", m.Translate("cnrs"))
	assert.Equal(t, "inserm", m.Translate("inserm"))
}
