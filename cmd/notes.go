package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/lexicon/internal/store"
	"github.com/abhisek/lexicon/internal/vocab"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage study notes",
}

var notesAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := &vocab.Note{Title: strings.TrimSpace(args[0])}
		n.Content, _ = cmd.Flags().GetString("content")
		n.Category, _ = cmd.Flags().GetString("category")

		_, _, st, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.NoteRepo().Insert(cmd.Context(), n); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added note %d\n", n.ID)
		return nil
	},
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes grouped by category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		_, _, st, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer st.Close()

		notes, err := loadNotes(cmd.Context(), st.NoteRepo(), category)
		if err != nil {
			return err
		}
		printNotes(cmd.OutOrStdout(), notes)
		return nil
	},
}

var notesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a note's title, content or category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}
		var e noteEdit
		for name, field := range map[string]**string{"title": &e.Title, "content": &e.Content, "category": &e.Category} {
			if cmd.Flags().Changed(name) {
				v, _ := cmd.Flags().GetString(name)
				*field = &v
			}
		}
		if e == (noteEdit{}) {
			return errors.New("nothing to change; pass --title, --content or --category")
		}

		_, _, st, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := editNote(cmd.Context(), st.NoteRepo(), id, e)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated note %d (%s)\n", n.ID, noteCategory(n))
		return nil
	},
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		_, _, st, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.NoteRepo().Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted note %d\n", id)
		return nil
	},
}

var notesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import the notes of an export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()

		payload, err := vocab.ReadImport(f)
		if err != nil {
			return err
		}
		if len(payload.Notes) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No notes in file.")
			return nil
		}

		_, log, st, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer st.Close()

		res := st.NoteRepo().BulkInsert(cmd.Context(), payload.Notes)
		for _, e := range res.Errors {
			log.WithField("item", e.Item).WithError(e.Err).Warn("skipped")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Notes: %d imported, %d skipped\n", res.Success, res.Failed)
		return nil
	},
}

func loadNotes(ctx context.Context, repo store.NoteRepo, category string) ([]*vocab.Note, error) {
	if category != "" {
		return repo.ByCategory(ctx, category)
	}
	return repo.All(ctx)
}

// noteEdit holds the note fields to change. A nil field is kept.
type noteEdit struct {
	Title    *string
	Content  *string
	Category *string
}

func editNote(ctx context.Context, repo store.NoteRepo, id int64, e noteEdit) (*vocab.Note, error) {
	notes, err := repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	n, ok := lo.Find(notes, func(n *vocab.Note) bool { return n.ID == id })
	if !ok {
		return nil, fmt.Errorf("note %d: %w", id, store.ErrNotFound)
	}

	if e.Title != nil {
		title := strings.TrimSpace(*e.Title)
		if title == "" {
			return nil, errors.New("note title cannot be empty")
		}
		n.Title = title
	}
	if e.Content != nil {
		n.Content = *e.Content
	}
	if e.Category != nil {
		n.Category = strings.TrimSpace(*e.Category)
	}
	if err := repo.Put(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func printNotes(out io.Writer, notes []*vocab.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(out, "No notes found.")
		return
	}

	groups := lo.GroupBy(notes, noteCategory)
	// Categories in first-seen order.
	order := lo.Uniq(lo.Map(notes, func(n *vocab.Note, _ int) string { return noteCategory(n) }))

	for i, cat := range order {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, cat)
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, n := range groups[cat] {
			fmt.Fprintf(out, "%-5d  %s\n", n.ID, n.Title)
			if c := strings.TrimSpace(n.Content); c != "" {
				fmt.Fprintf(out, "       %s\n", truncate(strings.ReplaceAll(c, "\n", " "), 70))
			}
		}
	}
}

func noteCategory(n *vocab.Note) string {
	if n.Category == "" {
		return "Uncategorized"
	}
	return n.Category
}

func init() {
	notesAddCmd.Flags().StringP("content", "c", "", "Note body")
	notesAddCmd.Flags().String("category", "", "Category")
	notesListCmd.Flags().String("category", "", "Only notes in this category")
	notesEditCmd.Flags().String("title", "", "New title")
	notesEditCmd.Flags().StringP("content", "c", "", "New body")
	notesEditCmd.Flags().String("category", "", "New category (empty for none)")

	notesCmd.AddCommand(notesAddCmd)
	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesEditCmd)
	notesCmd.AddCommand(notesDeleteCmd)
	notesCmd.AddCommand(notesImportCmd)
}
