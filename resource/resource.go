// Package resource loads the bundled YAML fixtures the matching
// stages need but the input catalog never supplies: stop-word lists,
// a curated known-acronym set, a general-language token frequency
// table, the non-discriminating-word list, the synonym table, and a
// small English dictionary for the proper-noun layer.
//
// Grounded on original_source/acronyms.py's file-backed
// FRENCH_KNOWN_ACRONYMS/FRENCH_TOT_FREQ and grid.py's
// fileToVariantMap/NON_DISCRIMINATING_TOKENS, adapted from its
// ad hoc text-file format to YAML decoded with gopkg.in/yaml.v3,
// embedded the way db.migrate embeds its SQL migrations.
package resource

import (
	"embed"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/duplau/link-fields/errors"
)

//go:embed data/*.yaml
var data embed.FS

type wordList struct {
	Words []string `yaml:"words"`
}

type acronymList struct {
	Acronyms []string `yaml:"acronyms"`
}

type freqTable struct {
	Frequencies map[string]int `yaml:"frequencies"`
}

type synonymTable struct {
	Synonyms map[string]string `yaml:"synonyms"`
}

func load(name string, v interface{}) error {
	raw, err := data.ReadFile("data/" + name)
	if err != nil {
		return errors.Wrapf(err, "read bundled resource %q", name)
	}
	if err := yaml.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(err, "decode bundled resource %q", name)
	}
	return nil
}

func loadWordSet(name string) (map[string]bool, error) {
	var wl wordList
	if err := load(name, &wl); err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(wl.Words))
	for _, w := range wl.Words {
		out[strings.ToLower(w)] = true
	}
	return out, nil
}

// StopWordsFrench returns the bundled French stop-word set.
func StopWordsFrench() (map[string]bool, error) {
	return loadWordSet("stopwords_fr.yaml")
}

// StopWordsEnglish returns the bundled English stop-word set.
func StopWordsEnglish() (map[string]bool, error) {
	return loadWordSet("stopwords_en.yaml")
}

// NonDiscriminatingWords returns tokens with little discriminating
// power for the string scorer's proper-noun layer.
func NonDiscriminatingWords() (map[string]bool, error) {
	return loadWordSet("non_discriminating.yaml")
}

// EnglishWords returns a small bundled English dictionary, used to
// recognize common words that are unlikely to be proper nouns.
func EnglishWords() (map[string]bool, error) {
	return loadWordSet("english_words.yaml")
}

// KnownAcronyms returns the curated set of acronyms known a priori,
// keyed upper-case for direct use as acronym.ScoreConfig.KnownAcronyms.
func KnownAcronyms() (map[string]bool, error) {
	var al acronymList
	if err := load("known_acronyms.yaml", &al); err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(al.Acronyms))
	for _, a := range al.Acronyms {
		out[strings.ToUpper(a)] = true
	}
	return out, nil
}

// TokenFreq returns the general-language token frequency table
// (upper-cased keys) along with the mean of its values, both consumed
// directly by acronym.ScoreConfig.
func TokenFreq() (map[string]int, float64, error) {
	var ft freqTable
	if err := load("token_freq.yaml", &ft); err != nil {
		return nil, 0, err
	}
	out := make(map[string]int, len(ft.Frequencies))
	var sum int
	for k, v := range ft.Frequencies {
		out[strings.ToUpper(k)] = v
		sum += v
	}
	mean := 0.0
	if len(out) > 0 {
		mean = float64(sum) / float64(len(out))
	}
	return out, mean, nil
}

// Synonyms returns the word-by-word translation table consulted
// during normalization.
func Synonyms() (map[string]string, error) {
	var st synonymTable
	if err := load("synonyms.yaml", &st); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(st.Synonyms))
	for k, v := range st.Synonyms {
		out[strings.ToLower(k)] = strings.ToLower(v)
	}
	return out, nil
}
