package cmd

import (
	"github.com/spf13/cobra"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Start a learning session",
	Long: "Opens the TUI directly in a learning session. Filters: default, hard, medium, easy, " +
		"new, learned, all, today. Quiz types: dynamic, mcq-en-bn, mcq-bn-en, spelling, " +
		"fill-blanks, verb-form, synonym-antonym.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, true)
	},
}

func init() {
	learnCmd.Flags().StringP("filter", "f", "default", "Word filter for the session")
	learnCmd.Flags().StringP("quiz", "q", "dynamic", "Quiz type, or dynamic to adapt per word")
}
