package ingest

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/duplau/link-fields/entity"
	"github.com/duplau/link-fields/errkind"
	"github.com/duplau/link-fields/errors"
)

// LoadSynonyms reads the pipe-separated synonym file (column 1 the
// canonical form, column 2 an alternative form) and builds the
// reverse alt -> canonical map spec.md §6 names, retaining only
// entries whose alternative form maps to exactly one canonical form —
// an alt seen against two different canonicals is dropped entirely
// rather than picking either one arbitrarily.
func LoadSynonyms(r io.Reader) (entity.VariantMap, error) {
	reader := csv.NewReader(r)
	reader.Comma = '|'
	reader.FieldsPerRecord = -1

	canonicalByAlt := make(map[string]string)
	ambiguous := make(map[string]bool)
	idx := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			err = errors.Mark(errors.Wrap(err, "read synonym row"), errkind.InputDecode)
			return nil, errors.WithDetail(err, "row index: "+strconv.Itoa(idx))
		}
		idx++
		if len(record) < 2 {
			continue
		}
		canonical := strings.TrimSpace(record[0])
		alt := strings.TrimSpace(record[1])
		if canonical == "" || alt == "" {
			continue
		}
		if existing, ok := canonicalByAlt[alt]; ok && existing != canonical {
			ambiguous[alt] = true
			continue
		}
		canonicalByAlt[alt] = canonical
	}

	out := make(entity.VariantMap, len(canonicalByAlt))
	for alt, canonical := range canonicalByAlt {
		if ambiguous[alt] {
			continue
		}
		out[alt] = canonical
	}
	return out, nil
}
