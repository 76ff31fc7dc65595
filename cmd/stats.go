package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexicon/internal/stats"
	"github.com/abhisek/lexicon/internal/store"
	"github.com/abhisek/lexicon/internal/vocab"
)

// activityDays is how far back the stats command reports answer activity.
const activityDays = 7

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, st, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		now := time.Now()
		words, err := st.WordRepo().All(ctx)
		if err != nil {
			return fmt.Errorf("load words: %w", err)
		}
		daily, err := st.EventRepo().DailyAnswerAccuracy(ctx, activityDays, now)
		if err != nil {
			// The word table alone still makes a useful report.
			log.WithError(err).Warn("load answer activity")
		}

		writeStatsReport(cmd.OutOrStdout(), stats.Compute(words, now), daily)
		return nil
	},
}

func writeStatsReport(out io.Writer, r stats.Report, daily []store.DailyAccuracy) {
	sep := strings.Repeat("─", 48)

	if r.Counts.Words == 0 {
		fmt.Fprintln(out, "No words yet. Add some with `lexicon words import <file>`.")
		return
	}

	fmt.Fprintln(out, "Words")
	fmt.Fprintln(out, sep)
	fmt.Fprintf(out, "%-14s %6d\n", "Total", r.Counts.Words)
	fmt.Fprintf(out, "%-14s %6d\n", "Learned", r.Counts.Learned)
	fmt.Fprintf(out, "%-14s %6d\n", "To review", r.Counts.ToReview)
	for _, t := range vocab.Tiers {
		fmt.Fprintf(out, "  %-12s %6d\n", t, r.Counts.ByTier[t])
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Exams")
	fmt.Fprintln(out, sep)
	fmt.Fprintf(out, "%-14s %6d\n", "Answered", r.Totals.Exams)
	fmt.Fprintf(out, "%-14s %6d\n", "Correct", r.Totals.Correct)
	fmt.Fprintf(out, "%-14s %6d\n", "Wrong", r.Totals.Wrong)
	fmt.Fprintf(out, "%-14s %5.0f%%\n", "Accuracy", r.Totals.Accuracy*100)

	if r.Errors.Total() > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Mistakes by category")
		fmt.Fprintln(out, sep)
		for _, c := range vocab.Categories {
			n := r.Errors.Get(c)
			fmt.Fprintf(out, "%-14s %6d  %s\n", c.Label(), n, bar(n, r.Errors.Total(), 20))
		}
	}

	if len(r.MostMistaken) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Most mistaken")
		fmt.Fprintln(out, sep)
		for _, m := range r.MostMistaken {
			fmt.Fprintf(out, "%-20s %6d  %s\n", truncate(m.Word.Text, 20), m.Wrong, m.Word.Tier)
		}
	}

	if len(daily) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Last %d days\n", activityDays)
		fmt.Fprintln(out, sep)
		for _, d := range daily {
			pct := 0.0
			if d.Total > 0 {
				pct = float64(d.Correct) / float64(d.Total) * 100
			}
			fmt.Fprintf(out, "%-14s %3d/%-3d %4.0f%%\n", d.Date.Format("Mon Jan 02"), d.Correct, d.Total, pct)
		}
	}
}

// bar renders n/total as a fixed-width block bar.
func bar(n, total, width int) string {
	if total <= 0 {
		return ""
	}
	filled := n * width / total
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
