package ingest

import (
	"encoding/csv"
	"io"
	"sort"
	"strings"

	"github.com/duplau/link-fields/acronym"
)

// LoadAcronymFile reads a pipe-separated acronym expansion file: column
// 1 the upper-case acronym, column 2 the space-joined expansion
// tokens. Rows sharing an acronym accumulate as distinct expansions,
// the on-disk shape for acronyms.py's -f0/-f1 reference/source files
// consumed by collect_expansions / show_ambiguous / show_unexpected.
func LoadAcronymFile(r io.Reader) (acronym.TermsByAcronym, error) {
	reader := csv.NewReader(r)
	reader.Comma = '|'
	reader.FieldsPerRecord = -1

	out := make(acronym.TermsByAcronym)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 2 {
			continue
		}
		acro := strings.ToUpper(strings.TrimSpace(record[0]))
		expansion := strings.Fields(strings.TrimSpace(record[1]))
		if acro == "" || len(expansion) == 0 {
			continue
		}
		out[acro] = appendExpansionIfNew(out[acro], expansion)
	}
	return out, nil
}

func appendExpansionIfNew(existing [][]string, candidate []string) [][]string {
	for _, e := range existing {
		if len(e) != len(candidate) {
			continue
		}
		match := true
		for i := range e {
			if e[i] != candidate[i] {
				match = false
				break
			}
		}
		if match {
			return existing
		}
	}
	return append(existing, candidate)
}

// WriteAcronymFile writes terms back out in the same pipe-separated
// acronym|expansion format LoadAcronymFile reads, one row per distinct
// expansion, acronyms in sorted order.
func WriteAcronymFile(w io.Writer, terms acronym.TermsByAcronym) error {
	cw := csv.NewWriter(w)
	cw.Comma = '|'
	acros := make([]string, 0, len(terms))
	for a := range terms {
		acros = append(acros, a)
	}
	sort.Strings(acros)
	for _, a := range acros {
		for _, expansion := range terms[a] {
			if err := cw.Write([]string{a, strings.Join(expansion, " ")}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
