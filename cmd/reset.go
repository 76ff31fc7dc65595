package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learning progress",
	Long:  "Moves every word back to New and clears its exam and mistake counters. Words and notes are kept.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Reset progress for every word?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}

		_, log, st, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.WordRepo().ResetProgress(cmd.Context())
		if err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		log.WithField("words", n).Info("progress reset")
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %d words.\n", n)
		return nil
	},
}

// confirm asks a yes/no question and reports whether the answer was yes.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
