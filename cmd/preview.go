package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexicon/internal/quiz"
	"github.com/abhisek/lexicon/internal/vocab"
)

var previewCmd = &cobra.Command{
	Use:   "preview <word>",
	Short: "Try every quiz type for one word without recording progress",
	Long: `Render and interactively answer the questions a session could ask for a word.

Nothing is written back: tiers, counters and the answer log are untouched.
Useful for checking that a newly imported or enriched entry quizzes well.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringP("quiz", "q", "", "Only this quiz type (default: every applicable type)")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	modalities := quiz.Modalities
	if q, _ := cmd.Flags().GetString("quiz"); q != "" {
		m, err := quiz.ParseModality(q)
		if err != nil {
			return err
		}
		modalities = []quiz.Modality{m}
	}

	_, _, st, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	word, err := st.WordRepo().FindByText(ctx, args[0])
	if err != nil {
		return err
	}
	pool, err := st.WordRepo().All(ctx)
	if err != nil {
		return fmt.Errorf("load words: %w", err)
	}

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	p := &previewer{in: bufio.NewScanner(cmd.InOrStdin()), out: cmd.OutOrStdout()}
	return p.run(word, pool, modalities, rng)
}

// previewer asks questions on out and reads answers from in.
type previewer struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *previewer) run(word *vocab.Word, pool []*vocab.Word, modalities []quiz.Modality, rng *rand.Rand) error {
	var asked, correct int
	for _, m := range modalities {
		q, err := quiz.Build(m, word, pool, rng)
		if errors.Is(err, quiz.ErrNotApplicable) || errors.Is(err, quiz.ErrNotEnoughWords) {
			fmt.Fprintf(p.out, "── %s: skipped (%v) ──\n\n", m.Label(), err)
			continue
		}
		if err != nil {
			return err
		}

		asked++
		fmt.Fprintf(p.out, "── %s ──\n", m.Label())
		fmt.Fprintln(p.out, q.Prompt)
		if q.Hint != "" {
			fmt.Fprintf(p.out, "(%s)\n", q.Hint)
		}
		for j, c := range q.Choices {
			fmt.Fprintf(p.out, "  %d) %s\n", j+1, c)
		}

		fmt.Fprint(p.out, "\nYour answer: ")
		if !p.in.Scan() {
			fmt.Fprintln(p.out, "\n(input closed)")
			break
		}
		answer := choiceAnswer(q, strings.TrimSpace(p.in.Text()))
		if answer == "" {
			fmt.Fprint(p.out, "(skipped)\n\n")
			continue
		}

		if v := q.Check(answer); v.Correct {
			correct++
			fmt.Fprintln(p.out, "✓ Correct!")
		} else {
			fmt.Fprintf(p.out, "✗ Wrong. Answer: %s\n", v.Expected)
		}
		fmt.Fprintln(p.out)
	}

	fmt.Fprintf(p.out, "── Summary: %d/%d correct ──\n", correct, asked)
	return nil
}

// choiceAnswer maps a 1-based choice number to its option text. Other
// input is returned unchanged.
func choiceAnswer(q *quiz.Question, input string) string {
	if len(q.Choices) == 0 {
		return input
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(q.Choices) {
		return q.Choices[n-1]
	}
	return input
}
