package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexicon/internal/vocab"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "lexicon", version)
		fmt.Fprintln(cmd.OutOrStdout(), "export format", vocab.FormatVersion)
	},
}
