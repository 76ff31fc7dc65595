package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/lexicon/internal/store"
	"github.com/abhisek/lexicon/internal/vocab"
	"github.com/abhisek/lexicon/internal/wordquery"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Manage the word list",
}

var wordsAddCmd = &cobra.Command{
	Use:   "add <word>",
	Short: "Add a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := vocab.ImportRecord{Word: args[0]}.ToWord()
		if err != nil {
			return err
		}
		if err := wordEditFromFlags(cmd).apply(w); err != nil {
			return err
		}

		_, _, st, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := addWord(cmd.Context(), st.WordRepo(), w); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %q (%s)\n", w.Text, w.ID)
		return nil
	},
}

var wordsEditCmd = &cobra.Command{
	Use:   "edit <word>",
	Short: "Change the stored fields of a word",
	Long: "Only the flags given are changed. List flags replace the whole list; " +
		"an empty verb form flag clears that form. Progress is kept.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := wordEditFromFlags(cmd)
		if e.empty() {
			return errors.New("nothing to change; see --help for the editable fields")
		}

		_, log, st, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer st.Close()

		w, err := editWord(cmd.Context(), st.WordRepo(), args[0], e, time.Now())
		if err != nil {
			return err
		}
		log.WithField("word", w.Text).Debug("edited word")
		printWord(cmd.OutOrStdout(), w)
		return nil
	},
}

var wordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List words",
	Long: "List words, optionally filtered. --where takes a CEL expression over the fields " +
		strings.Join(wordquery.Fields(), ", ") + `, e.g. 'wrong.spelling >= 2 && tier == "Hard"'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts listOptions
		opts.Tier, _ = cmd.Flags().GetString("tier")
		opts.POS, _ = cmd.Flags().GetString("pos")
		opts.Search, _ = cmd.Flags().GetString("search")
		opts.Where, _ = cmd.Flags().GetString("where")
		opts.Limit, _ = cmd.Flags().GetInt("limit")

		_, _, st, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer st.Close()

		words, err := st.WordRepo().All(cmd.Context())
		if err != nil {
			return fmt.Errorf("list words: %w", err)
		}
		selected, err := selectWords(words, opts)
		if err != nil {
			return err
		}
		printWordTable(cmd.OutOrStdout(), selected)
		return nil
	},
}

var wordsShowCmd = &cobra.Command{
	Use:   "show <word>",
	Short: "Show everything stored for a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, st, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer st.Close()

		w, err := st.WordRepo().FindByText(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printWord(cmd.OutOrStdout(), w)
		return nil
	},
}

var wordsDeleteCmd = &cobra.Command{
	Use:   "delete <word>",
	Short: "Delete a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, st, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		w, err := st.WordRepo().FindByText(ctx, args[0])
		if err != nil {
			return err
		}
		if err := st.WordRepo().Delete(ctx, w.ID); err != nil {
			return err
		}
		log.WithField("word", w.Text).Debug("deleted word")
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", w.Text)
		return nil
	},
}

var wordsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import words from a JSON word list or export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()

		_, log, st, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer st.Close()

		rep, err := importFile(cmd.Context(), st.WordRepo(), st.NoteRepo(), f)
		if err != nil {
			return err
		}
		for _, e := range append(rep.Words.Errors, rep.Notes.Errors...) {
			log.WithField("item", e.Item).WithError(e.Err).Warn("skipped")
		}
		printImportReport(cmd.OutOrStdout(), rep)
		return nil
	},
}

var wordsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export words and notes as JSON (stdout when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, st, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer st.Close()

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			out = f
		}
		return exportAll(cmd.Context(), out, st.WordRepo(), st.NoteRepo(), time.Now())
	},
}

func plainTerms(texts []string) vocab.Terms {
	return lo.FilterMap(texts, func(s string, _ int) (vocab.Term, bool) {
		s = strings.TrimSpace(s)
		return vocab.PlainTerm(s), s != ""
	})
}

// addWord inserts w unless a word with the same text already exists.
func addWord(ctx context.Context, repo store.WordRepo, w *vocab.Word) error {
	if _, err := repo.FindByText(ctx, w.Text); err == nil {
		return fmt.Errorf("word %q already exists", w.Text)
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return repo.Insert(ctx, w)
}

// wordEdit holds the word fields given on the command line. A nil field
// was not given.
type wordEdit struct {
	Text     *string
	Meaning  *string
	POS      *string
	Tier     *string
	Synonyms *[]string
	Antonyms *[]string
	Examples *[]string
	V1       *string
	V2       *string
	V3       *string
}

func wordEditFromFlags(cmd *cobra.Command) wordEdit {
	str := func(name string) *string {
		if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetString(name)
		return &v
	}
	list := func(name string) *[]string {
		if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetStringSlice(name)
		return &v
	}
	return wordEdit{
		Text:     str("text"),
		Meaning:  str("meaning"),
		POS:      str("pos"),
		Tier:     str("tier"),
		Synonyms: list("synonym"),
		Antonyms: list("antonym"),
		Examples: list("example"),
		V1:       str("v1"),
		V2:       str("v2"),
		V3:       str("v3"),
	}
}

func (e wordEdit) empty() bool {
	return e == wordEdit{}
}

// apply writes the given fields onto w. Setting a verb form on a word
// without an explicit --pos makes it a verb.
func (e wordEdit) apply(w *vocab.Word) error {
	if e.Text != nil {
		text := strings.TrimSpace(*e.Text)
		if text == "" {
			return errors.New("word text cannot be empty")
		}
		w.Text = text
	}
	if e.Meaning != nil {
		w.Meaning = strings.TrimSpace(*e.Meaning)
	}
	if e.POS != nil {
		w.PartOfSpeech = vocab.ParsePartOfSpeech(*e.POS)
	}
	if e.Tier != nil {
		tier, err := vocab.ParseTier(*e.Tier)
		if err != nil {
			return err
		}
		w.Tier = tier
	}
	if e.Synonyms != nil {
		w.Synonyms = plainTerms(*e.Synonyms)
	}
	if e.Antonyms != nil {
		w.Antonyms = plainTerms(*e.Antonyms)
	}
	if e.Examples != nil {
		w.Examples = lo.Compact(lo.Map(*e.Examples, func(s string, _ int) string { return strings.TrimSpace(s) }))
	}

	forms := []struct {
		value *string
		slot  func(*vocab.VerbForms) **vocab.VerbFormDetail
	}{
		{e.V1, func(v *vocab.VerbForms) **vocab.VerbFormDetail { return &v.V1 }},
		{e.V2, func(v *vocab.VerbForms) **vocab.VerbFormDetail { return &v.V2 }},
		{e.V3, func(v *vocab.VerbForms) **vocab.VerbFormDetail { return &v.V3 }},
	}
	var setForm bool
	for _, f := range forms {
		if f.value == nil {
			continue
		}
		if w.VerbForms == nil {
			w.VerbForms = &vocab.VerbForms{}
		}
		slot := f.slot(w.VerbForms)
		form := strings.TrimSpace(*f.value)
		switch {
		case form == "":
			*slot = nil
		case *slot == nil:
			*slot = &vocab.VerbFormDetail{Word: form}
		default:
			(*slot).Word = form
		}
		setForm = setForm || form != ""
	}
	if setForm && e.POS == nil {
		w.PartOfSpeech = vocab.Verb
	}
	return nil
}

// editWord applies e to the word stored as text and writes it back with
// UpdatedAt set to now. Renaming onto another stored word is refused.
func editWord(ctx context.Context, repo store.WordRepo, text string, e wordEdit, now time.Time) (*vocab.Word, error) {
	w, err := repo.FindByText(ctx, text)
	if err != nil {
		return nil, err
	}
	if e.Text != nil && !strings.EqualFold(strings.TrimSpace(*e.Text), w.Text) {
		other, err := repo.FindByText(ctx, *e.Text)
		switch {
		case err == nil && other.ID != w.ID:
			return nil, fmt.Errorf("word %q already exists", other.Text)
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return nil, err
		}
	}
	if err := e.apply(w); err != nil {
		return nil, err
	}
	w.UpdatedAt = now.UTC()
	if err := repo.Put(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

type listOptions struct {
	Tier   string
	POS    string
	Search string
	Where  string
	Limit  int
}

// selectWords applies the list filters in order: tier, part of speech,
// substring search, CEL expression, limit.
func selectWords(words []*vocab.Word, opts listOptions) ([]*vocab.Word, error) {
	if opts.Tier != "" {
		tier, err := vocab.ParseTier(opts.Tier)
		if err != nil {
			return nil, err
		}
		words = lo.Filter(words, func(w *vocab.Word, _ int) bool { return w.Tier == tier })
	}
	if opts.POS != "" {
		pos := vocab.ParsePartOfSpeech(opts.POS)
		words = lo.Filter(words, func(w *vocab.Word, _ int) bool { return w.PartOfSpeech == pos })
	}
	if s := strings.ToLower(strings.TrimSpace(opts.Search)); s != "" {
		words = lo.Filter(words, func(w *vocab.Word, _ int) bool {
			return strings.Contains(strings.ToLower(w.Text), s) ||
				strings.Contains(strings.ToLower(w.Meaning), s)
		})
	}
	if opts.Where != "" {
		q, err := wordquery.Compile(opts.Where)
		if err != nil {
			return nil, err
		}
		if words, err = q.Filter(words); err != nil {
			return nil, err
		}
	}
	if opts.Limit > 0 && len(words) > opts.Limit {
		words = words[:opts.Limit]
	}
	return words, nil
}

func printWordTable(out io.Writer, words []*vocab.Word) {
	if len(words) == 0 {
		fmt.Fprintln(out, "No words found.")
		return
	}

	fmt.Fprintf(out, "%-20s  %-6s  %-11s  %5s  %5s  %5s  %s\n",
		"Word", "Tier", "POS", "Exams", "Acc", "Wrong", "Meaning")
	fmt.Fprintln(out, strings.Repeat("─", 90))
	for _, w := range words {
		fmt.Fprintf(out, "%-20s  %-6s  %-11s  %5d  %4.0f%%  %5d  %s\n",
			truncate(w.Text, 20),
			w.Tier,
			w.PartOfSpeech,
			w.TotalExams,
			w.Accuracy()*100,
			w.Wrong.Total(),
			truncate(w.Meaning, 30),
		)
	}
	fmt.Fprintf(out, "\n%d words\n", len(words))
}

func printWord(out io.Writer, w *vocab.Word) {
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(out, "%-12s %s\n", label+":", value)
		}
	}

	field("Word", w.Text)
	field("ID", w.ID)
	field("Meaning", w.Meaning)
	field("Explanation", w.MeaningExplanation)
	field("POS", string(w.PartOfSpeech))
	field("Syllables", strings.Join(w.Syllables, "·"))
	field("Synonyms", strings.Join(w.Synonyms.Texts(), ", "))
	field("Antonyms", strings.Join(w.Antonyms.Texts(), ", "))
	field("Usage", w.UsageDistinction)
	if w.IsVerb() {
		forms := lo.Filter([]string{w.VerbForms.Present(), w.VerbForms.Past(), w.VerbForms.PastParticiple()},
			func(s string, _ int) bool { return s != "" })
		field("Verb forms", strings.Join(forms, " / "))
	}
	for i, ex := range w.Examples {
		field(fmt.Sprintf("Example %d", i+1), ex)
	}

	fmt.Fprintln(out)
	field("Tier", w.Tier.String())
	fmt.Fprintf(out, "%-12s %d/%d correct, streak %d\n", "Exams:", w.CorrectCount, w.TotalExams, w.CorrectStreak)
	fmt.Fprintf(out, "%-12s spelling %d, meaning %d, synonym %d, antonym %d\n", "Mistakes:",
		w.Wrong.Spelling, w.Wrong.Meaning, w.Wrong.Synonym, w.Wrong.Antonym)
	if !w.CreatedAt.IsZero() {
		field("Added", w.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

// importReport summarizes an import run.
type importReport struct {
	Words store.BulkResult
	Notes store.BulkResult
}

// importFile loads a word list or export document from r. Plain word
// lists start every word at New; export documents keep progress.
func importFile(ctx context.Context, words store.WordRepo, notes store.NoteRepo, r io.Reader) (importReport, error) {
	payload, err := vocab.ReadImport(r)
	if err != nil {
		return importReport{}, err
	}

	var rep importReport
	batch := payload.Words
	for _, rec := range payload.Records {
		w, err := rec.ToWord()
		if err != nil {
			rep.Words.Failed++
			rep.Words.Errors = append(rep.Words.Errors, store.BulkError{Item: rec.Word, Err: err})
			continue
		}
		batch = append(batch, w)
	}

	res := words.BulkInsert(ctx, batch)
	rep.Words.Success += res.Success
	rep.Words.Failed += res.Failed
	rep.Words.Errors = append(rep.Words.Errors, res.Errors...)

	if len(payload.Notes) > 0 {
		rep.Notes = notes.BulkInsert(ctx, payload.Notes)
	}
	return rep, nil
}

func printImportReport(out io.Writer, rep importReport) {
	fmt.Fprintf(out, "Words: %d imported, %d skipped\n", rep.Words.Success, rep.Words.Failed)
	if rep.Notes.Success+rep.Notes.Failed > 0 {
		fmt.Fprintf(out, "Notes: %d imported, %d skipped\n", rep.Notes.Success, rep.Notes.Failed)
	}
}

func exportAll(ctx context.Context, out io.Writer, words store.WordRepo, notes store.NoteRepo, now time.Time) error {
	ws, err := words.All(ctx)
	if err != nil {
		return fmt.Errorf("load words: %w", err)
	}
	ns, err := notes.All(ctx)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	return vocab.WriteExport(out, vocab.NewExport(ws, ns, now))
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func init() {
	wordsAddCmd.Flags().StringP("meaning", "m", "", "Meaning (translation)")
	wordsAddCmd.Flags().String("pos", "", "Part of speech")
	wordsAddCmd.Flags().StringSlice("synonym", nil, "Synonym (repeatable)")
	wordsAddCmd.Flags().StringSlice("antonym", nil, "Antonym (repeatable)")
	wordsAddCmd.Flags().StringSlice("example", nil, "Example sentence (repeatable)")
	addVerbFormFlags(wordsAddCmd)

	wordsEditCmd.Flags().String("text", "", "New spelling of the word")
	wordsEditCmd.Flags().StringP("meaning", "m", "", "Meaning (translation)")
	wordsEditCmd.Flags().String("pos", "", "Part of speech")
	wordsEditCmd.Flags().String("tier", "", "Tier (new, easy, medium, hard)")
	wordsEditCmd.Flags().StringSlice("synonym", nil, "Synonyms, replacing the stored list")
	wordsEditCmd.Flags().StringSlice("antonym", nil, "Antonyms, replacing the stored list")
	wordsEditCmd.Flags().StringSlice("example", nil, "Example sentences, replacing the stored list")
	addVerbFormFlags(wordsEditCmd)

	wordsListCmd.Flags().String("tier", "", "Only words at this tier (new, easy, medium, hard)")
	wordsListCmd.Flags().String("pos", "", "Only words with this part of speech")
	wordsListCmd.Flags().StringP("search", "s", "", "Substring to match in the word or meaning")
	wordsListCmd.Flags().StringP("where", "w", "", "CEL filter expression")
	wordsListCmd.Flags().IntP("limit", "n", 0, "Maximum number of words to show (0 = all)")

	wordsCmd.AddCommand(wordsAddCmd)
	wordsCmd.AddCommand(wordsEditCmd)
	wordsCmd.AddCommand(wordsListCmd)
	wordsCmd.AddCommand(wordsShowCmd)
	wordsCmd.AddCommand(wordsDeleteCmd)
	wordsCmd.AddCommand(wordsImportCmd)
	wordsCmd.AddCommand(wordsExportCmd)
}

func addVerbFormFlags(c *cobra.Command) {
	c.Flags().String("v1", "", "Present form (V1)")
	c.Flags().String("v2", "", "Past form (V2)")
	c.Flags().String("v3", "", "Past participle (V3)")
}
