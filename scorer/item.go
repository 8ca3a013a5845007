package scorer

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/duplau/link-fields/entity"
)

// DefaultMinStringScore is the engine-config floor below which an item
// pair is never emitted regardless of country/city agreement.
const DefaultMinStringScore = 20

// DefaultAggregateFloor is the fixed floor the combined
// string·country·city product must clear. Set equal to
// DefaultMinStringScore. With both structured fields unknown
// (UnknownFieldScore=50 each) the product is 25% of the string score,
// so a string score of at least 80 is needed to clear it; with one
// field matching and the other unknown, 40 suffices.
const DefaultAggregateFloor = DefaultMinStringScore

// UnknownFieldScore is contributed when a structured field (country or
// city) is absent on either side — neither a match nor a mismatch.
const UnknownFieldScore = 50

// FieldMatchThreshold is the ratio above which two country or city
// strings are considered equal.
const FieldMatchThreshold = 80

// ItemScoreConfig bundles the tunables consulted by ItemScore.
type ItemScoreConfig struct {
	StringScore      StringScoreConfig
	MinStringScore   int
	AggregateFloor   int
}

// DefaultItemScoreConfig returns the default thresholds with the
// proper-noun layer disabled (engine callers enable it via
// require_shared_proper_noun).
func DefaultItemScoreConfig() ItemScoreConfig {
	return ItemScoreConfig{
		MinStringScore: DefaultMinStringScore,
		AggregateFloor: DefaultAggregateFloor,
	}
}

// ItemResult is the score and explanation ItemScore returns.
type ItemResult struct {
	Score  int
	Reason string
}

// ItemScore combines the best string evidence (plain label match,
// acronym match, URL domain match, research-unit-id match) with
// structured-field agreement on country and city.
//
// Grounded on original_source/gridder.py's score_items, extended with
// URL and research-unit-id signals that gridder.py's version
// (pre-dating the full HAL/GRID integration) does not compute.
func ItemScore(src *entity.SourceItem, ref *entity.CanonicalEntry, cfg ItemScoreConfig) ItemResult {
	stringScore, stringReason := bestVariantScore(src.Variants, ref.Variants(), cfg.StringScore)

	acroScore, acroReason := acroScore(src.Acros, ref.Acronym)
	if acroScore > stringScore {
		stringScore, stringReason = acroScore, acroReason
	}

	urlScore, urlReason := urlScore(src.Variants, ref.URL)
	if urlScore > stringScore {
		stringScore, stringReason = urlScore, urlReason
	}

	ruScore, ruReason := researchUnitScore(src.ResearchUnitID, ref.ResearchUnitID)
	if ruScore > stringScore {
		stringScore, stringReason = ruScore, ruReason
	}

	if stringScore < cfg.MinStringScore {
		return ItemResult{Score: 0, Reason: "rejected: min-string-score"}
	}

	countryScore, countryReason := fieldScore(src.Country, ref.Country)
	cityScore, cityReason := fieldScore(src.City, ref.City)

	product := (stringScore * countryScore * cityScore) / 10000
	if product < cfg.AggregateFloor {
		return ItemResult{Score: 0, Reason: "rejected: item-aggregate-floor"}
	}

	reasons := []string{stringReason}
	if countryReason != "" {
		reasons = append(reasons, countryReason)
	}
	if cityReason != "" {
		reasons = append(reasons, cityReason)
	}
	return ItemResult{Score: product, Reason: strings.Join(reasons, "; ")}
}

// bestVariantScore scores the cross product of src and ref variants
// and keeps the best pair, remembering it as the reason.
func bestVariantScore(srcVariants, refVariants []string, cfg StringScoreConfig) (int, string) {
	best := 0
	reason := "no-variant-match"
	for _, a := range srcVariants {
		for _, b := range refVariants {
			if s, _ := StringScore(a, b, cfg); s > best {
				best = s
				reason = fmt.Sprintf("string-match(%q~%q)=%d", a, b, s)
			}
		}
	}
	return best, reason
}

// acroScore scores the cross product of the source's extracted
// acronyms against the reference's declared acronym by plain ratio.
func acroScore(srcAcros []string, refAcro string) (int, string) {
	if refAcro == "" || len(srcAcros) == 0 {
		return 0, ""
	}
	best := 0
	for _, a := range srcAcros {
		if r := ratio(a, refAcro); r > best {
			best = r
		}
	}
	if best == 0 {
		return 0, ""
	}
	return best, fmt.Sprintf("acronym-match(%s)=%d", refAcro, best)
}

// urlScore extracts the second-level domain from the reference's URL
// and tests it against every source variant.
func urlScore(srcVariants []string, refURL string) (int, string) {
	domain := secondLevelDomain(refURL)
	if domain == "" {
		return 0, ""
	}
	best := 0
	for _, v := range srcVariants {
		if r := ratio(strings.ToLower(v), domain); r > best {
			best = r
		}
	}
	if best < FieldMatchThreshold {
		return 0, ""
	}
	return 100, fmt.Sprintf("url-domain-match(%s)", domain)
}

// secondLevelDomain strips scheme, "www.", path, and the top-level
// suffix from a URL, returning e.g. "cnrs" from "https://www.cnrs.fr/en".
func secondLevelDomain(rawURL string) string {
	s := strings.ToLower(strings.TrimSpace(rawURL))
	if s == "" {
		return ""
	}
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimPrefix(s, "www.")
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return s
	}
	return parts[len(parts)-2]
}

// researchUnitScore rewards an exact research-unit-id match, the
// strongest single signal available.
func researchUnitScore(srcID, refID string) (int, string) {
	if srcID == "" || refID == "" || srcID != refID {
		return 0, ""
	}
	return 100, fmt.Sprintf("research-unit-id-match(%s)", refID)
}

// fieldScore scores a structured field (country or city): 100 if both
// sides agree above FieldMatchThreshold, 0 on disagreement, and
// UnknownFieldScore when either side is absent.
func fieldScore(a, b string) (int, string) {
	if a == "" || b == "" {
		return UnknownFieldScore, ""
	}
	if fuzzy.LevenshteinDistance(strings.ToLower(a), strings.ToLower(b)) == 0 {
		return 100, fmt.Sprintf("field-match(%s)", a)
	}
	if ratio(strings.ToLower(a), strings.ToLower(b)) > FieldMatchThreshold {
		return 100, fmt.Sprintf("field-match(%s~%s)", a, b)
	}
	return 0, fmt.Sprintf("field-mismatch(%s!=%s)", a, b)
}
