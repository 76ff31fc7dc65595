package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lexicon/internal/vocab"
)

// noteRepo implements NoteRepo.
type noteRepo struct {
	s *Store
}

func (r *noteRepo) selectNotes() *entsql.Selector {
	b := r.s.builder()
	return b.Select("id", "title", "content", "category", "created_at", "updated_at").
		From(b.Table(NotesTable.Name))
}

func (r *noteRepo) All(ctx context.Context) ([]*vocab.Note, error) {
	return r.query(ctx, r.selectNotes().OrderBy(entsql.Desc("updated_at"), "id"))
}

func (r *noteRepo) ByCategory(ctx context.Context, category string) ([]*vocab.Note, error) {
	return r.query(ctx, r.selectNotes().
		Where(entsql.EQ("category", category)).
		OrderBy(entsql.Desc("updated_at"), "id"))
}

func (r *noteRepo) Categories(ctx context.Context) ([]string, error) {
	b := r.s.builder()
	query, args := b.Select("category").
		From(b.Table(NotesTable.Name)).
		Where(entsql.NEQ("category", "")).
		Distinct().
		OrderBy("category").
		Query()
	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *noteRepo) Insert(ctx context.Context, n *vocab.Note) error {
	if strings.TrimSpace(n.Title) == "" {
		return errors.New("insert note: title is empty")
	}
	now := time.Now().UTC()
	n.CreatedAt, n.UpdatedAt = now, now

	query, args := r.s.builder().Insert(NotesTable.Name).
		Columns("title", "content", "category", "created_at", "updated_at").
		Values(n.Title, n.Content, n.Category, n.CreatedAt, n.UpdatedAt).
		Returning("id").
		Query()
	if err := r.s.db.QueryRowContext(ctx, query, args...).Scan(&n.ID); err != nil {
		return fmt.Errorf("insert note %q: %w", n.Title, err)
	}
	return nil
}

func (r *noteRepo) BulkInsert(ctx context.Context, notes []*vocab.Note) BulkResult {
	var res BulkResult
	for _, n := range notes {
		if err := r.Insert(ctx, n); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, BulkError{Item: n.Title, Err: err})
			continue
		}
		res.Success++
	}
	return res
}

func (r *noteRepo) Put(ctx context.Context, n *vocab.Note) error {
	n.UpdatedAt = time.Now().UTC()
	query, args := r.s.builder().Update(NotesTable.Name).
		Set("title", n.Title).
		Set("content", n.Content).
		Set("category", n.Category).
		Set("updated_at", n.UpdatedAt).
		Where(entsql.EQ("id", n.ID)).
		Query()
	res, err := r.s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update note %d: %w", n.ID, err)
	}
	if c, _ := res.RowsAffected(); c == 0 {
		return fmt.Errorf("note %d: %w", n.ID, ErrNotFound)
	}
	return nil
}

func (r *noteRepo) Delete(ctx context.Context, id int64) error {
	query, args := r.s.builder().Delete(NotesTable.Name).Where(entsql.EQ("id", id)).Query()
	res, err := r.s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	if c, _ := res.RowsAffected(); c == 0 {
		return fmt.Errorf("note %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *noteRepo) query(ctx context.Context, sel *entsql.Selector) ([]*vocab.Note, error) {
	query, args := sel.Query()
	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var out []*vocab.Note
	for rows.Next() {
		var n vocab.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Category, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}
