package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/lexicon/internal/config"
	"github.com/abhisek/lexicon/internal/enrich"
	"github.com/abhisek/lexicon/internal/llm"
	"github.com/abhisek/lexicon/internal/store"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich <word>",
	Short: "Draft a full entry for a word with the configured LLM",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		add, _ := cmd.Flags().GetBool("add")
		sentence, _ := cmd.Flags().GetString("context")

		cfg, log, st, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		svc, err := newEnricher(ctx, cfg, st, log)
		if err != nil {
			return err
		}

		w, err := svc.Enrich(ctx, enrich.Input{Word: args[0], Context: sentence})
		if err != nil {
			return err
		}
		printWord(cmd.OutOrStdout(), w)

		if !add {
			return nil
		}
		if err := addWord(ctx, st.WordRepo(), w); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nAdded %q (%s)\n", w.Text, w.ID)
		return nil
	},
}

// newEnricher builds the enrichment service over the configured provider.
// Calls are recorded in st's event log.
func newEnricher(ctx context.Context, cfg *config.Config, st *store.Store, log logrus.FieldLogger) (*enrich.Service, error) {
	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log)
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	log.WithFields(logrus.Fields{
		"provider": provider.Name(),
		"model":    provider.ModelID(),
	}).Debug("llm provider ready")
	return enrich.NewService(provider, enrich.DefaultConfig(), log), nil
}

func init() {
	enrichCmd.Flags().Bool("add", false, "Store the drafted word")
	enrichCmd.Flags().StringP("context", "c", "", "A sentence using the word, to pick the right sense")
}
