package ingest

import (
	"encoding/csv"
	"io"

	"github.com/duplau/link-fields/entity"
)

// OutputColumns is the fixed column order spec.md §6 names for the
// match output stream.
var OutputColumns = []string{
	"doc_id", "label", "canonical_id", "parent_canonical_id",
	"canonical_label", "reason", "city", "country",
}

// OutputRow is one rendered output row, already joined against the
// source item's label and the matched canonical entry's city/country
// so the writer itself stays free of lookup logic.
type OutputRow struct {
	DocID             string
	Label             string
	CanonicalID       string
	ParentCanonicalID string
	CanonicalLabel    string
	Reason            string
	City              string
	Country           string
}

// WriteMatches writes rows in spec.md §6's fixed column order,
// delimiter-configurable so the same writer serves both CSV and TSV
// output requests.
func WriteMatches(w io.Writer, delim rune, rows []OutputRow) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim
	if err := cw.Write(OutputColumns); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.DocID, r.Label, r.CanonicalID, r.ParentCanonicalID,
			r.CanonicalLabel, r.Reason, r.City, r.Country,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// MatchToRow joins a Match against its source item and (when matched)
// the canonical catalog, producing the row WriteMatches renders.
func MatchToRow(src *entity.SourceItem, m entity.Match, catalog map[string]*entity.CanonicalEntry) OutputRow {
	row := OutputRow{
		DocID:             src.DocID,
		Label:             src.RawLabel,
		CanonicalID:       m.CanonicalID,
		ParentCanonicalID: m.ParentCanonicalID,
		Reason:            m.Reason,
		City:              src.City,
		Country:           src.Country,
	}
	if ref, ok := catalog[m.CanonicalID]; ok {
		row.CanonicalLabel = ref.MainLabel
		if row.City == "" {
			row.City = ref.City
		}
		if row.Country == "" {
			row.Country = ref.Country
		}
	}
	return row
}
