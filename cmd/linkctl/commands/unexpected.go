package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/duplau/link-fields/acronym"
	"github.com/duplau/link-fields/ingest"
)

var (
	unexpectedRef string
	unexpectedSrc string
	unexpectedOut string
)

// UnexpectedCmd implements both show_unexpected and delete_unexpected:
// acronyms (or expansions) --src carries that --ref never observed for
// the same acronym. With --out unset it lists the affected acronyms;
// with --out set it writes a copy of --src with those expansions
// removed.
var UnexpectedCmd = &cobra.Command{
	Use:   "unexpected",
	Short: "Show or delete expansions in a source acronym file absent from a reference acronym file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := loadAcronymFile(unexpectedRef)
		if err != nil {
			return err
		}
		src, err := loadAcronymFile(unexpectedSrc)
		if err != nil {
			return err
		}

		if unexpectedOut == "" {
			for _, a := range acronym.Unexpected(ref, src) {
				pterm.Println(a)
			}
			return nil
		}

		cleaned := acronym.DeleteUnexpected(ref, src)
		w, err := os.Create(unexpectedOut)
		if err != nil {
			return err
		}
		defer w.Close()
		return ingest.WriteAcronymFile(w, cleaned)
	},
}

func init() {
	UnexpectedCmd.Flags().StringVar(&unexpectedRef, "ref", "", "path to the reference acronym file")
	UnexpectedCmd.Flags().StringVar(&unexpectedSrc, "src", "", "path to the source acronym file")
	UnexpectedCmd.Flags().StringVar(&unexpectedOut, "out", "", "if set, write a copy of --src with unexpected expansions removed instead of listing them")
	UnexpectedCmd.MarkFlagRequired("ref")
	UnexpectedCmd.MarkFlagRequired("src")
}
