// Package commands implements the cobra subcommands link, assign,
// collect_expansions, ambiguous, unexpected and version. ambiguous and
// unexpected each cover both a show and a delete mode, selected by
// whether --out is set; there are no separate show_* / delete_*
// subcommands.
//
// Grounded on teranos-QNTX/cmd/qntx/commands's one-file-per-subcommand
// layout and its package-level flag variables bound in each file's init.
package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/duplau/link-fields/engine"
	"github.com/duplau/link-fields/entity"
	"github.com/duplau/link-fields/errkind"
	"github.com/duplau/link-fields/errors"
	"github.com/duplau/link-fields/ingest"
)

// Global flags shared by every subcommand that touches the matching
// pipeline, bound once on the root command in main.go.
var (
	ReferenceFile   string
	SidecarAliases  string
	SidecarLabels   string
	SidecarAcronyms string
	SidecarLinks    string
	SidecarRelation string
	SynonymsFile    string
	InputFile       string
	OutputFile      string
	Delimiter       string
	Acronyms        bool
	Stats           bool
	ExcludeCountry  bool
	LookupBackend   string
	AssignmentMode  string
	MinStringScore  int
)

// BindFlags registers the global flags named in spec.md §6 on root.
func BindFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&ReferenceFile, "reference", "", "path to the pipe-separated reference catalog file")
	root.PersistentFlags().StringVar(&SidecarAliases, "sidecar-aliases", "", "path to the aliases sidecar CSV (grid_id,alias)")
	root.PersistentFlags().StringVar(&SidecarLabels, "sidecar-labels", "", "path to the localized-labels sidecar CSV (grid_id,iso639,label)")
	root.PersistentFlags().StringVar(&SidecarAcronyms, "sidecar-acronyms", "", "path to the acronyms sidecar CSV (grid_id,acronym)")
	root.PersistentFlags().StringVar(&SidecarLinks, "sidecar-links", "", "path to the links sidecar CSV (grid_id,link)")
	root.PersistentFlags().StringVar(&SidecarRelation, "sidecar-relationships", "", "path to the relationships sidecar CSV (grid_id,related_grid_id,relationship_type)")
	root.PersistentFlags().StringVar(&SynonymsFile, "synonyms", "", "path to the pipe-separated synonym file")
	root.PersistentFlags().StringVar(&InputFile, "input", "", "path to the source input CSV/TSV file")
	root.PersistentFlags().StringVar(&OutputFile, "output", "", "path to write output to (default stdout)")
	root.PersistentFlags().StringVar(&Delimiter, "delimiter", ",", "source/output field delimiter (\",\" or \"\\t\")")
	root.PersistentFlags().BoolVar(&Acronyms, "acronyms", true, "preserve and match acronyms during normalization")
	root.PersistentFlags().BoolVar(&Stats, "stats", false, "print a tallies-only summary instead of full output")
	root.PersistentFlags().BoolVar(&ExcludeCountry, "exclude-country-blocking", false, "disable country-based blocking; match against the whole catalog")
	root.PersistentFlags().StringVar(&LookupBackend, "lookup-backend", "fss", "approximate lookup backend: fss, token_ratio, or sparse_ngram")
	root.PersistentFlags().StringVar(&AssignmentMode, "assignment-mode", "min_cost", "assignment strategy: greedy or min_cost")
	root.PersistentFlags().IntVar(&MinStringScore, "min-string-score", 20, "floor below which an item pair is never emitted")

	_ = viper.BindPFlags(root.PersistentFlags())
}

// delimiterRune resolves the --delimiter flag to its rune, honoring
// the literal "\t" spelling a shell alias would otherwise pass through
// as two characters.
func delimiterRune() rune {
	switch Delimiter {
	case "\\t", "tab":
		return '\t'
	case "":
		return ','
	default:
		return rune(Delimiter[0])
	}
}

// EngineConfigFromFlags builds an engine.Config from the bound global
// flags, spec.md §9's explicit engine-config value.
func EngineConfigFromFlags() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.KeepAcronyms = Acronyms
	cfg.ExcludeCountryBlocking = ExcludeCountry
	cfg.MinStringScore = MinStringScore
	switch LookupBackend {
	case "token_ratio":
		cfg.LookupBackend = engine.LookupTokenRatio
	case "sparse_ngram":
		cfg.LookupBackend = engine.LookupSparseNgram
	default:
		cfg.LookupBackend = engine.LookupFSS
	}
	switch AssignmentMode {
	case "greedy":
		cfg.AssignmentMode = engine.AssignmentGreedy
	default:
		cfg.AssignmentMode = engine.AssignmentMinCost
	}
	return cfg
}

// LoadEngine opens the reference catalog and its configured sidecar
// files, applies them, and builds a ready-to-use *engine.Engine. Catalog
// integrity failures are marked errkind.CatalogIntegrity so main.go can
// map them to exit code 1.
func LoadEngine() (*engine.Engine, error) {
	if ReferenceFile == "" {
		return nil, errors.Mark(errors.New("--reference is required"), errkind.CatalogIntegrity)
	}
	f, err := os.Open(ReferenceFile)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "open reference file"), errkind.CatalogIntegrity)
	}
	defer f.Close()

	catalog, err := ingest.LoadCatalog(f)
	if err != nil {
		return nil, err
	}

	if err := applySidecar(SidecarAliases, catalog, ingest.SidecarAliases); err != nil {
		return nil, err
	}
	if err := applySidecar(SidecarLabels, catalog, ingest.SidecarLocalizedLabels); err != nil {
		return nil, err
	}
	if err := applySidecar(SidecarAcronyms, catalog, ingest.SidecarAcronyms); err != nil {
		return nil, err
	}
	if err := applySidecar(SidecarLinks, catalog, ingest.SidecarLinks); err != nil {
		return nil, err
	}
	if err := applySidecar(SidecarRelation, catalog, ingest.SidecarRelationships); err != nil {
		return nil, err
	}

	var synonyms entity.VariantMap
	if SynonymsFile != "" {
		sf, err := os.Open(SynonymsFile)
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "open synonyms file"), errkind.InputDecode)
		}
		defer sf.Close()
		synonyms, err = ingest.LoadSynonyms(sf)
		if err != nil {
			return nil, err
		}
	}

	return engine.Load(catalog, EngineConfigFromFlags(), synonyms)
}

func applySidecar(path string, catalog map[string]*entity.CanonicalEntry, apply func(r io.Reader, c map[string]*entity.CanonicalEntry) error) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "open sidecar file %s", path), errkind.CatalogIntegrity)
	}
	defer f.Close()
	return apply(f, catalog)
}

// LoadSourceItems opens --input and parses it with the default source
// columns, returning decode errors for the caller to log rather than
// abort on (spec.md §7: input decode failures are logged, not fatal).
func LoadSourceItems() ([]*entity.SourceItem, []error, error) {
	if InputFile == "" {
		return nil, nil, errors.Mark(errors.New("--input is required"), errkind.InputDecode)
	}
	f, err := os.Open(InputFile)
	if err != nil {
		return nil, nil, errors.Mark(errors.Wrap(err, "open input file"), errkind.InputDecode)
	}
	defer f.Close()
	items, decodeErrs := ingest.LoadSourceItems(f, delimiterRune(), ingest.DefaultSourceColumns())
	return items, decodeErrs, nil
}

// OutputWriter opens --output, or stdout when unset.
func OutputWriter() (*os.File, error) {
	if OutputFile == "" {
		return os.Stdout, nil
	}
	return os.Create(OutputFile)
}
