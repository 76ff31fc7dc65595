package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Adaptive vocabulary trainer",
	Long: "Lexicon is a terminal vocabulary trainer. It quizzes you on your word list, " +
		"moves words between difficulty tiers as you answer, and tracks your mistakes.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides data.path and LEXICON_DATA_PATH)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/lexicon/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides log.level)")

	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(enrichCmd)
	rootCmd.AddCommand(harvestCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
