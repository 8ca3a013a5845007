package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/duplau/link-fields/acronym"
	"github.com/duplau/link-fields/ingest"
)

var (
	ambiguousIn  string
	ambiguousOut string
)

// AmbiguousCmd implements both show_ambiguous and delete_ambiguous
// against a single acronym file: with --out unset it lists every
// acronym carrying more than one distinct expansion; with --out set it
// writes a copy of the file with those acronyms removed.
var AmbiguousCmd = &cobra.Command{
	Use:   "ambiguous",
	Short: "Show or delete acronyms with more than one distinct expansion",
	RunE: func(cmd *cobra.Command, args []string) error {
		terms, err := loadAcronymFile(ambiguousIn)
		if err != nil {
			return err
		}

		if ambiguousOut == "" {
			for _, a := range acronym.Ambiguous(terms) {
				pterm.Println(a)
			}
			return nil
		}

		cleaned := acronym.DeleteAmbiguous(terms)
		w, err := os.Create(ambiguousOut)
		if err != nil {
			return err
		}
		defer w.Close()
		return ingest.WriteAcronymFile(w, cleaned)
	},
}

func init() {
	AmbiguousCmd.Flags().StringVar(&ambiguousIn, "file", "", "path to the acronym file to inspect")
	AmbiguousCmd.Flags().StringVar(&ambiguousOut, "out", "", "if set, write a copy with ambiguous acronyms removed instead of listing them")
	AmbiguousCmd.MarkFlagRequired("file")
}

func loadAcronymFile(path string) (acronym.TermsByAcronym, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ingest.LoadAcronymFile(f)
}
