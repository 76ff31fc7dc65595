package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/lexicon/internal/enrich"
	"github.com/abhisek/lexicon/internal/harvest"
	"github.com/abhisek/lexicon/internal/store"
	"github.com/abhisek/lexicon/internal/vocab"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest <url|file>",
	Short: "Find words worth learning in an article",
	Long: "Extracts the readable text of a web page or local HTML file and lists the words " +
		"that are not in your word list yet, most frequent first. With --add each candidate " +
		"is drafted with the configured LLM and stored.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		add, _ := cmd.Flags().GetBool("add")
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, log, st, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		article, err := harvest.Load(ctx, nil, args[0])
		if err != nil {
			return fmt.Errorf("load article: %w", err)
		}

		words, err := st.WordRepo().All(ctx)
		if err != nil {
			return fmt.Errorf("load words: %w", err)
		}
		known := lo.Map(words, func(w *vocab.Word, _ int) string { return w.Text })
		cands := harvest.Candidates(article.Text, known, limit)

		out := cmd.OutOrStdout()
		printCandidates(out, article, cands)
		if !add || len(cands) == 0 {
			return nil
		}

		svc, err := newEnricher(ctx, cfg, st, log)
		if err != nil {
			return err
		}
		added, failed := addCandidates(ctx, svc, st.WordRepo(), cands, log)
		fmt.Fprintf(out, "\nAdded %d words, %d failed\n", added, failed)
		return nil
	},
}

// wordEnricher drafts a word entry.
type wordEnricher interface {
	Enrich(ctx context.Context, in enrich.Input) (*vocab.Word, error)
}

// addCandidates enriches and stores each candidate in order. A failure
// is logged and skipped; cancelling ctx stops the run.
func addCandidates(ctx context.Context, svc wordEnricher, repo store.WordRepo, cands []harvest.Candidate, log logrus.FieldLogger) (added, failed int) {
	for _, c := range cands {
		if ctx.Err() != nil {
			break
		}
		entry := log.WithField("word", c.Word)

		w, err := svc.Enrich(ctx, enrich.Input{Word: c.Word, Context: c.Context})
		if err == nil {
			err = addWord(ctx, repo, w)
		}
		if err != nil {
			entry.WithError(err).Warn("skipped candidate")
			failed++
			continue
		}
		entry.Info("added candidate")
		added++
	}
	return added, failed
}

func printCandidates(out io.Writer, a harvest.Article, cands []harvest.Candidate) {
	if a.Title != "" {
		fmt.Fprintln(out, a.Title)
		fmt.Fprintln(out, strings.Repeat("─", 72))
	}
	if len(cands) == 0 {
		fmt.Fprintln(out, "No new words found.")
		return
	}

	fmt.Fprintf(out, "%-20s  %5s  %s\n", "Word", "Count", "Context")
	for _, c := range cands {
		fmt.Fprintf(out, "%-20s  %5d  %s\n", truncate(c.Word, 20), c.Count, truncate(strings.TrimSpace(c.Context), 44))
	}
}

func init() {
	harvestCmd.Flags().Bool("add", false, "Enrich and store every candidate")
	harvestCmd.Flags().IntP("limit", "n", 20, "Maximum number of candidates (0 = all)")
}
