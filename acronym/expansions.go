package acronym

import "sort"

// TermsByAcronym maps an upper-case acronym to the distinct token-tuple
// expansions observed for it, the shape acronymizeAll/collectExpansions
// build in original_source/acronyms.py before scoring.
type TermsByAcronym map[string][][]string

// CollectExpansions walks phrases, tokenizing each with keep-acronyms
// on, and records every ⟨acronym, prefix⟩ pair Acronymize yields,
// deduplicating expansions per acronym. Grounded on acronyms.py's
// acronymizeAll.
func CollectExpansions(tokenizedPhrases [][]string, min, max int) TermsByAcronym {
	out := make(TermsByAcronym)
	for _, tokens := range tokenizedPhrases {
		for _, pair := range Acronymize(tokens, min, max) {
			out[pair.Acronym] = appendUniqueExpansion(out[pair.Acronym], pair.Prefix)
		}
	}
	return out
}

func appendUniqueExpansion(existing [][]string, candidate []string) [][]string {
	for _, e := range existing {
		if equalTokens(e, candidate) {
			return existing
		}
	}
	return append(existing, candidate)
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Ambiguous returns, in sorted order, every acronym carrying more than
// one distinct expansion — acronyms.py's showAmbiguousExpansions,
// which the original left as an unimplemented stub naming only its
// file-based signature.
func Ambiguous(terms TermsByAcronym) []string {
	var out []string
	for a, exps := range terms {
		if len(exps) > 1 {
			out = append(out, a)
		}
	}
	sort.Strings(out)
	return out
}

// DeleteAmbiguous returns a copy of terms with every ambiguous acronym
// (more than one distinct expansion) removed — deleteAmbiguousExpansions.
func DeleteAmbiguous(terms TermsByAcronym) TermsByAcronym {
	out := make(TermsByAcronym, len(terms))
	for a, exps := range terms {
		if len(exps) <= 1 {
			out[a] = exps
		}
	}
	return out
}

// Unexpected returns, in sorted order, every acronym present in src
// whose expansion set is not a subset of ref's expansion set for that
// same acronym — i.e. src observed an expansion the reference data
// never did. An acronym absent from ref entirely counts as fully
// unexpected. Grounded on acronyms.py's showUnexpectedExpansions,
// which takes both a reference (-f0) and a source (-f1) acronyms file.
func Unexpected(ref, src TermsByAcronym) []string {
	var out []string
	for a, srcExps := range src {
		refExps := ref[a]
		for _, se := range srcExps {
			if !containsExpansion(refExps, se) {
				out = append(out, a)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// DeleteUnexpected returns a copy of src with every expansion not
// present in ref's expansion set for the same acronym removed;
// acronyms that end up with no surviving expansion are dropped
// entirely — deleteUnexpectedExpansions.
func DeleteUnexpected(ref, src TermsByAcronym) TermsByAcronym {
	out := make(TermsByAcronym, len(src))
	for a, srcExps := range src {
		refExps := ref[a]
		var kept [][]string
		for _, se := range srcExps {
			if containsExpansion(refExps, se) {
				kept = append(kept, se)
			}
		}
		if len(kept) > 0 {
			out[a] = kept
		}
	}
	return out
}

func containsExpansion(exps [][]string, candidate []string) bool {
	for _, e := range exps {
		if equalTokens(e, candidate) {
			return true
		}
	}
	return false
}
