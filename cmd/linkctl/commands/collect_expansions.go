package commands

import (
	"bufio"
	"os"

	"github.com/spf13/cobra"

	"github.com/duplau/link-fields/ingest"
	"github.com/duplau/link-fields/logger"
)

var collectExpansionsOut string

// CollectExpansionsCmd harvests every ⟨acronym, expansion⟩ pair
// appearing in --input's labels and writes them to an acronym file,
// acronyms.py's collectExpansions operation.
var CollectExpansionsCmd = &cobra.Command{
	Use:   "collect_expansions",
	Short: "Harvest acronym/expansion pairs from a label file into an acronym file",
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

		labels := make([]string, 0, len(items))
		for _, item := range items {
			labels = append(labels, item.RawLabel)
		}

		terms := e.CollectExpansions(labels)

		w, err := outFile(collectExpansionsOut)
		if err != nil {
			return err
		}
		if collectExpansionsOut != "" {
			defer w.Close()
		}
		bw := bufio.NewWriter(w)
		if err := ingest.WriteAcronymFile(bw, terms); err != nil {
			return err
		}
		return bw.Flush()
	},
}

func init() {
	CollectExpansionsCmd.Flags().StringVar(&collectExpansionsOut, "out", "", "path to write the collected acronym file to (default stdout)")
}

func outFile(path string) (*os.File, error) {
	if path == "" {
		return os.Stdout, nil
	}
	return os.Create(path)
}
