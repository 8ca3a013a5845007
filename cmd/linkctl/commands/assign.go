package commands

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/duplau/link-fields/ingest"
	"github.com/duplau/link-fields/logger"
)

// AssignCmd runs the full decision layer: blocking, primary assignment
// (greedy or min-cost per --assignment-mode), then the three fallback
// passes, and writes the resulting one-to-one matches.
var AssignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Resolve each source item to at most one canonical catalog entry",
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
		start := time.Now()
		matches := e.Assign(items)
		durationMS := time.Since(start).Milliseconds()
		if logger.ShouldShowTiming(logger.Verbosity, durationMS) {
			logger.Infow("assignment complete", logger.FieldDurationMS, durationMS, logger.FieldCount, len(matches))
		}

		if Stats {
			pterm.Info.Printfln("items: %d  matched: %d  unmatched: %d", len(items), len(matches), len(items)-len(matches))
			return nil
		}

		w, err := OutputWriter()
		if err != nil {
			return err
		}
		if OutputFile != "" {
			defer w.Close()
		}

		rows := make([]ingest.OutputRow, 0, len(items))
		for _, item := range items {
			m, ok := matches[item.DocID]
			if !ok {
				continue
			}
			rows = append(rows, ingest.MatchToRow(item, m, e.Catalog))
		}
		return ingest.WriteMatches(w, delimiterRune(), rows)
	},
}
