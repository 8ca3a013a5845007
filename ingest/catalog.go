// Package ingest reads the reference catalog, its sidecar files, the
// source input stream, the synonym file, and writes the final match
// output — all as CSV/TSV, the formats the external-interfaces
// section of the linking pipeline names.
//
// Grounded on teranos-QNTX/ats/so/actions/csv/handler.go's
// encoding/csv usage and error-wrapping chain (errors.Wrap +
// errors.WithDetail); the teacher reaches for the standard library's
// own CSV package rather than a third-party one, so this does too.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/duplau/link-fields/entity"
	"github.com/duplau/link-fields/errkind"
	"github.com/duplau/link-fields/errors"
)

// LoadCatalog reads the pipe-separated reference catalog: column 1 is
// the main label, columns 2..N alternative labels. The catalog map and
// every entry's ID are keyed on the main label itself (there is no
// separate catalog_id column in the reference file), so sidecar rows
// that name a "catalog_id" are expected to carry that same main label.
// A duplicate main label is a catalog-integrity failure, fatal per the
// caller's contract.
func LoadCatalog(r io.Reader) (map[string]*entity.CanonicalEntry, error) {
	reader := csv.NewReader(r)
	reader.Comma = '|'
	reader.FieldsPerRecord = -1

	out := make(map[string]*entity.CanonicalEntry)
	seenMain := make(map[string]bool)
	idx := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			err = errors.Mark(errors.Wrap(err, "read catalog row"), errkind.InputDecode)
			return nil, errors.WithDetail(err, fmt.Sprintf("row index: %d", idx))
		}
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			err := errors.Mark(errors.New("catalog row has empty main label"), errkind.CatalogIntegrity)
			return nil, errors.WithDetail(err, fmt.Sprintf("row index: %d", idx))
		}
		main := strings.TrimSpace(record[0])
		if seenMain[main] {
			err := errors.Mark(errors.Newf("duplicate main variant %q", main), errkind.CatalogIntegrity)
			return nil, errors.WithDetail(err, fmt.Sprintf("row index: %d", idx))
		}
		seenMain[main] = true

		entry := &entity.CanonicalEntry{
			ID:               main,
			MainLabel:        main,
			Aliases:          append([]string{}, record[1:]...),
			TranslatedLabels: make(map[string]string),
		}
		out[main] = entry
		idx++
	}
	return out, nil
}

// SidecarAliases applies a sidecar CSV of (catalog_id, alias) pairs.
func SidecarAliases(r io.Reader, catalog map[string]*entity.CanonicalEntry) error {
	return applySidecar(r, catalog, func(entry *entity.CanonicalEntry, fields []string) error {
		if len(fields) < 1 {
			return errors.New("alias sidecar row missing alias column")
		}
		entry.Aliases = append(entry.Aliases, strings.TrimSpace(fields[0]))
		return nil
	})
}

// SidecarLocalizedLabels applies a sidecar CSV of (catalog_id, iso639,
// label) triples.
func SidecarLocalizedLabels(r io.Reader, catalog map[string]*entity.CanonicalEntry) error {
	return applySidecar(r, catalog, func(entry *entity.CanonicalEntry, fields []string) error {
		if len(fields) < 2 {
			return errors.New("localized-label sidecar row missing iso639 or label column")
		}
		entry.TranslatedLabels[strings.ToLower(strings.TrimSpace(fields[0]))] = strings.TrimSpace(fields[1])
		return nil
	})
}

// SidecarAcronyms applies a sidecar CSV of (catalog_id, acronym) pairs.
func SidecarAcronyms(r io.Reader, catalog map[string]*entity.CanonicalEntry) error {
	return applySidecar(r, catalog, func(entry *entity.CanonicalEntry, fields []string) error {
		if len(fields) < 1 {
			return errors.New("acronym sidecar row missing acronym column")
		}
		entry.Acronym = strings.TrimSpace(fields[0])
		return nil
	})
}

// SidecarLinks applies a sidecar CSV of (catalog_id, link) pairs.
func SidecarLinks(r io.Reader, catalog map[string]*entity.CanonicalEntry) error {
	return applySidecar(r, catalog, func(entry *entity.CanonicalEntry, fields []string) error {
		if len(fields) < 1 {
			return errors.New("link sidecar row missing link column")
		}
		entry.URL = strings.TrimSpace(fields[0])
		return nil
	})
}

// RelationshipKind is one of the two relationship kinds the
// relationship sidecar names.
type RelationshipKind string

const (
	RelationshipParent RelationshipKind = "Parent"
	RelationshipChild  RelationshipKind = "Child"
)

// SidecarRelationships applies a sidecar CSV of (catalog_id,
// related_catalog_id, relationship_type) triples, setting ParentID on
// whichever side of the pair the relationship names as the child.
func SidecarRelationships(r io.Reader, catalog map[string]*entity.CanonicalEntry) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	idx := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			err = errors.Mark(errors.Wrap(err, "read relationship sidecar row"), errkind.InputDecode)
			return errors.WithDetail(err, fmt.Sprintf("row index: %d", idx))
		}
		idx++
		if len(record) < 3 {
			continue
		}
		id, relatedID, kind := strings.TrimSpace(record[0]), strings.TrimSpace(record[1]), RelationshipKind(strings.TrimSpace(record[2]))
		switch kind {
		case RelationshipParent:
			if child, ok := catalog[id]; ok {
				child.ParentID = relatedID
			}
		case RelationshipChild:
			if child, ok := catalog[relatedID]; ok {
				child.ParentID = id
			}
		}
	}
	return nil
}

func applySidecar(r io.Reader, catalog map[string]*entity.CanonicalEntry, apply func(*entity.CanonicalEntry, []string) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	idx := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			err = errors.Mark(errors.Wrap(err, "read sidecar row"), errkind.InputDecode)
			return errors.WithDetail(err, fmt.Sprintf("row index: %d", idx))
		}
		idx++
		if len(record) < 1 {
			continue
		}
		entry, ok := catalog[strings.TrimSpace(record[0])]
		if !ok {
			continue
		}
		if err := apply(entry, record[1:]); err != nil {
			return errors.WithDetail(err, fmt.Sprintf("row index: %d", idx))
		}
	}
	return nil
}
