package ingest

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/duplau/link-fields/entity"
	"github.com/duplau/link-fields/errkind"
	"github.com/duplau/link-fields/errors"
)

// SourceColumns names the header columns LoadSourceItems consumes. An
// empty field means that column is absent from this input file.
type SourceColumns struct {
	DocID       string
	Label       string
	ParentLabel string
	Country     string
	City        string
	Acronym     string
}

// DefaultSourceColumns matches spec.md §6's named columns.
func DefaultSourceColumns() SourceColumns {
	return SourceColumns{
		DocID:       "doc_id",
		Label:       "label",
		ParentLabel: "parent_label",
		Country:     "country",
		City:        "city",
		Acronym:     "acronym",
	}
}

// LoadSourceItems reads a CSV or TSV source input with a header row,
// mapping the configured columns onto entity.SourceItem fields. Rows
// that fail to decode are skipped, and one errkind.InputDecode-marked
// error per skipped row is returned for the caller to log. If the
// header row cannot be read, that failure is the only error returned
// and no items are read.
func LoadSourceItems(r io.Reader, delim rune, cols SourceColumns) ([]*entity.SourceItem, []error) {
	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, []error{errors.Mark(errors.Wrap(err, "read source header"), errkind.InputDecode)}
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.ToLower(h))] = i
	}

	col := func(name string) int {
		if name == "" {
			return -1
		}
		i, ok := idx[strings.ToLower(name)]
		if !ok {
			return -1
		}
		return i
	}
	docIDCol := col(cols.DocID)
	labelCol := col(cols.Label)
	parentCol := col(cols.ParentLabel)
	countryCol := col(cols.Country)
	cityCol := col(cols.City)
	acroCol := col(cols.Acronym)

	var items []*entity.SourceItem
	var decodeErrs []error
	rowIdx := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowIdx++
		if err != nil {
			decodeErrs = append(decodeErrs, errors.Mark(errors.Wrapf(err, "read source row %d", rowIdx), errkind.InputDecode))
			continue
		}
		item := &entity.SourceItem{
			DocID:       field(record, docIDCol),
			RawLabel:    field(record, labelCol),
			ParentLabel: field(record, parentCol),
			Country:     field(record, countryCol),
			City:        field(record, cityCol),
			Acronym:     field(record, acroCol),
		}
		if strings.TrimSpace(item.RawLabel) == "" {
			continue
		}
		item.EnsureDocID()
		items = append(items, item)
	}
	return items, decodeErrs
}

func field(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[col])
}
