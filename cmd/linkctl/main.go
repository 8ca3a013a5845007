// Command linkctl drives the entity-resolution pipeline: loading a
// reference catalog, enriching and linking a source stream against it,
// and the acronym-maintenance operations (collect_expansions,
// show/delete_ambiguous, show/delete_unexpected) the catalog curation
// workflow needs.
//
// Grounded on teranos-QNTX/cmd/qntx/main.go's root-command-plus-
// PersistentPreRunE shape: a single cobra.Command tree, one file per
// subcommand under commands/, logger initialization deferred until
// flags are parsed.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/duplau/link-fields/cmd/linkctl/commands"
	"github.com/duplau/link-fields/errkind"
	"github.com/duplau/link-fields/errors"
	"github.com/duplau/link-fields/logger"
)

var (
	jsonOutput bool
	verbosity  int
)

var rootCmd = &cobra.Command{
	Use:   "linkctl",
	Short: "Resolve noisy free-text organization mentions against a reference catalog",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Initialize(jsonOutput, verbosity)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json-logs", false, "emit structured JSON logs instead of console output")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase output verbosity (repeat for more detail: -v, -vv, -vvv, -vvvv)")
	commands.BindFlags(rootCmd)

	rootCmd.AddCommand(
		commands.LinkCmd,
		commands.AssignCmd,
		commands.CollectExpansionsCmd,
		commands.AmbiguousCmd,
		commands.UnexpectedCmd,
		commands.VersionCmd,
	)
}

// Exit codes per the linking pipeline's external contract: 0 success,
// 1 catalog integrity failure, 2 input decode failure, 3 any other
// runtime failure.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	switch {
	case errors.Is(err, errkind.CatalogIntegrity):
		return 1
	case errors.Is(err, errkind.InputDecode):
		return 2
	default:
		return 3
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
