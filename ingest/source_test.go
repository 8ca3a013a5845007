package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSourceItemsMapsConfiguredColumns(t *testing.T) {
	csvData := "doc_id,label,parent_label,country,city,acronym\n" +
		"1,Centre National de la Recherche Scientifique,,France,Paris,CNRS\n" +
		"2,,,,,\n"
	items, errs := LoadSourceItems(strings.NewReader(csvData), ',', DefaultSourceColumns())
	assert.Empty(t, errs)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].DocID)
	assert.Equal(t, "France", items[0].Country)
	assert.Equal(t, "Paris", items[0].City)
}

func TestLoadSourceItemsSynthesizesMissingDocID(t *testing.T) {
	csvData := "label\nAgence Nationale de la Recherche\n"
	items, errs := LoadSourceItems(strings.NewReader(csvData), ',', SourceColumns{Label: "label"})
	assert.Empty(t, errs)
	require.Len(t, items, 1)
	assert.NotEmpty(t, items[0].DocID)
}

func TestLoadSourceItemsTSV(t *testing.T) {
	tsvData := "doc_id\tlabel\n1\tCNRS\n"
	items, errs := LoadSourceItems(strings.NewReader(tsvData), '\t', DefaultSourceColumns())
	assert.Empty(t, errs)
	require.Len(t, items, 1)
	assert.Equal(t, "CNRS", items[0].RawLabel)
}
