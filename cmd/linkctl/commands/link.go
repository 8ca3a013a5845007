package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/duplau/link-fields/logger"
)

// LinkCmd runs the candidate generator over every source item and
// prints its full ranked candidate list, with no one-to-one
// constraint applied — useful for inspecting C5's recall in isolation
// from C6's assignment layer.
var LinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Generate ranked candidate matches for each source item, without one-to-one assignment",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := LoadEngine()
		if err != nil {
			return err
		}
		items, decodeErrs, err := LoadSourceItems()
		if err != nil {
			return err
		}
		for _, derr := range decodeErrs {
			logger.Errorw("skipping source row", "error", derr)
		}

		e.Enrich(items)
		candidates := e.Link(items)

		if logger.ShouldShowCandidateCounts(logger.Verbosity) {
			for _, item := range items {
				logger.CandidateInfow("candidates generated", logger.FieldDocID, item.DocID, logger.FieldCount, len(candidates[item.DocID]))
			}
		}

		if Stats {
			withCandidates := 0
			for _, item := range items {
				if len(candidates[item.DocID]) > 0 {
					withCandidates++
				}
			}
			pterm.Info.Printfln("items: %d  with candidates: %d  without: %d", len(items), withCandidates, len(items)-withCandidates)
			return nil
		}

		w, err := OutputWriter()
		if err != nil {
			return err
		}
		if OutputFile != "" {
			defer w.Close()
		}
		for _, item := range items {
			cands := candidates[item.DocID]
			if len(cands) == 0 {
				fmt.Fprintf(w, "%s\t%s\t(no candidates)\n", item.DocID, item.RawLabel)
				continue
			}
			for rank, c := range cands {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%s\n", item.DocID, item.RawLabel, rank+1, c.CanonicalID, c.Result.Score, c.Result.Reason)
			}
		}
		return nil
	},
}
