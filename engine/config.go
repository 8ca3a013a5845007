// Package engine wires the six matching components (normalize,
// acronym, lookup, scorer, candidate, assign) into the single
// configuration value and orchestration entry points spec.md §9 calls
// for: a closed engine-config struct instead of module-level mutable
// flags, and a load/enrich/link/assign pipeline the cmd/linkctl
// subcommands drive.
package engine

import "github.com/duplau/link-fields/acronym"

// LookupBackendKind selects one of C3's three approximate-match
// backends.
type LookupBackendKind string

const (
	LookupFSS         LookupBackendKind = "fss"
	LookupTokenRatio  LookupBackendKind = "token_ratio"
	LookupSparseNgram LookupBackendKind = "sparse_ngram"
)

// AssignmentMode selects C6's primary matching strategy.
type AssignmentMode string

const (
	AssignmentGreedy  AssignmentMode = "greedy"
	AssignmentMinCost AssignmentMode = "min_cost"
)

// MaxIndexed bounds the k-gram window sizes 1..MaxIndexed the lookup
// backend indexes catalog labels under, per spec.md §4.3's indexing
// step.
const MaxIndexed = 4

// Config bundles every tunable spec.md §9 requires to be an explicit
// value threaded through the API rather than module-level mutable
// state: lookup backend selection, acronym preservation, assignment
// mode, the proper-noun requirement, and the string-score floor.
type Config struct {
	LookupBackend           LookupBackendKind
	KeepAcronyms            bool
	AssignmentMode          AssignmentMode
	RequireSharedProperNoun bool
	MinStringScore          int
	ExcludeCountryBlocking  bool

	// MaxLookupWindow and MinLookupCount name a k-gram window (in
	// tokens) and a minimum tally for lookup queries. Load does not read
	// them: it queries each vocabulary token with a window of 1 and a
	// minimum count of 1.
	MaxLookupWindow int
	MinLookupCount  int

	MinAcro, MaxAcro int
	AcronymScore     acronym.ScoreConfig
}

// DefaultConfig returns spec.md's stated defaults: FSS backend,
// acronym preservation on, min-cost assignment, proper-noun layer
// off, and MIN_STRING_SCORE = 20.
func DefaultConfig() Config {
	return Config{
		LookupBackend:           LookupFSS,
		KeepAcronyms:            true,
		AssignmentMode:          AssignmentMinCost,
		RequireSharedProperNoun: false,
		MinStringScore:          20,
		MaxLookupWindow:         4,
		MinLookupCount:          1,
		MinAcro:                 3,
		MaxAcro:                 6,
		AcronymScore:            acronym.DefaultScoreConfig(),
	}
}
