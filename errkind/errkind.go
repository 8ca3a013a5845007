// Package errkind defines the closed set of sentinel errors the engine
// surfaces instead of raising exceptions: callers check failures with
// errors.Is against one of these four values rather than branching on
// exception types.
//
// Grounded on the sentinel-error convention errors.go documents
// ("Common sentinel errors can be defined like...") applied to this
// domain's four failure modes.
package errkind

import "github.com/duplau/link-fields/errors"

var (
	// CatalogIntegrity marks a structural problem in the loaded
	// reference catalog: a duplicate main label (which is also the
	// canonical id) or a row with an empty main label. The CLI also
	// marks a missing or unreadable reference or sidecar file with it.
	CatalogIntegrity = errors.New("catalog integrity violation")

	// InputDecode marks an input row that could not be read (for
	// example a malformed quoted field). Rows with differing column
	// counts are accepted and are not marked.
	InputDecode = errors.New("input decode failure")

	// BlockMissing marks a source block whose blocking key has no
	// counterpart in the reference index, even after the slash-prefix
	// fallback.
	BlockMissing = errors.New("blocking key has no matching reference block")

	// EmptyCandidates marks a source item for which the candidate
	// generator produced no candidates at all.
	EmptyCandidates = errors.New("no candidates generated for source item")
)
