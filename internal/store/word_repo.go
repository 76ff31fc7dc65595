package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/abhisek/lexicon/internal/vocab"
)

var wordColumns = lo.Map(WordsColumns, func(c *schema.Column, _ int) string { return c.Name })

// wordRepo implements WordRepo with ent's SQL builders.
type wordRepo struct {
	s *Store
}

func (r *wordRepo) selectWords() *entsql.Selector {
	b := r.s.builder()
	return b.Select(wordColumns...).From(b.Table(WordsTable.Name))
}

func (r *wordRepo) All(ctx context.Context) ([]*vocab.Word, error) {
	return r.query(ctx, r.selectWords().OrderBy("created_at", "id"))
}

func (r *wordRepo) ByTiers(ctx context.Context, tiers ...vocab.Tier) ([]*vocab.Word, error) {
	names := lo.Map(tiers, func(t vocab.Tier, _ int) any { return t.String() })
	return r.query(ctx, r.selectWords().
		Where(entsql.In("tier", names...)).
		OrderBy("created_at", "id"))
}

func (r *wordRepo) CreatedBetween(ctx context.Context, from, to time.Time) ([]*vocab.Word, error) {
	return r.query(ctx, r.selectWords().
		Where(entsql.And(
			entsql.GTE("created_at", from.UTC()),
			entsql.LT("created_at", to.UTC()),
		)).
		OrderBy("created_at", "id"))
}

func (r *wordRepo) Get(ctx context.Context, id string) (*vocab.Word, error) {
	words, err := r.query(ctx, r.selectWords().Where(entsql.EQ("id", id)).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word %s: %w", id, ErrNotFound)
	}
	return words[0], nil
}

func (r *wordRepo) FindByText(ctx context.Context, text string) (*vocab.Word, error) {
	words, err := r.query(ctx, r.selectWords().
		Where(entsql.EqualFold("text", strings.TrimSpace(text))).
		Limit(1))
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word %q: %w", text, ErrNotFound)
	}
	return words[0], nil
}

func (r *wordRepo) Put(ctx context.Context, w *vocab.Word) error {
	if w.ID == "" {
		return errors.New("put word: missing id")
	}
	if w.UpdatedAt.IsZero() {
		w.UpdatedAt = time.Now().UTC()
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = w.UpdatedAt
	}
	vals, err := wordValues(w)
	if err != nil {
		return err
	}
	query, args := r.s.builder().Insert(WordsTable.Name).
		Columns(wordColumns...).
		Values(vals...).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put word %s: %w", w.ID, err)
	}
	return nil
}

func (r *wordRepo) Insert(ctx context.Context, w *vocab.Word) error {
	if strings.TrimSpace(w.Text) == "" {
		return errors.New("insert word: text is empty")
	}
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now
	if !w.Tier.Valid() {
		w.Tier = vocab.New
	}
	if w.PartOfSpeech == "" {
		w.PartOfSpeech = vocab.OtherPOS
	}

	vals, err := wordValues(w)
	if err != nil {
		return err
	}
	query, args := r.s.builder().Insert(WordsTable.Name).
		Columns(wordColumns...).
		Values(vals...).
		Query()
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert word %q: %w", w.Text, err)
	}
	return nil
}

func (r *wordRepo) BulkInsert(ctx context.Context, words []*vocab.Word) BulkResult {
	var res BulkResult
	for _, w := range words {
		if err := r.Insert(ctx, w); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, BulkError{Item: w.Text, Err: err})
			continue
		}
		res.Success++
	}
	return res
}

func (r *wordRepo) Delete(ctx context.Context, id string) error {
	query, args := r.s.builder().Delete(WordsTable.Name).Where(entsql.EQ("id", id)).Query()
	res, err := r.s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete word %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("word %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *wordRepo) ResetProgress(ctx context.Context) (int, error) {
	query, args := r.s.builder().Update(WordsTable.Name).
		Set("tier", vocab.New.String()).
		Set("wrong_spelling", 0).
		Set("wrong_meaning", 0).
		Set("wrong_synonym", 0).
		Set("wrong_antonym", 0).
		Set("correct_count", 0).
		Set("total_exams", 0).
		Set("correct_streak", 0).
		Set("updated_at", time.Now().UTC()).
		Query()
	res, err := r.s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("reset progress: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *wordRepo) query(ctx context.Context, sel *entsql.Selector) ([]*vocab.Word, error) {
	query, args := sel.Query()
	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var out []*vocab.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}
	return out, nil
}

// wordValues returns the column values for w in wordColumns order.
func wordValues(w *vocab.Word) ([]any, error) {
	syllables, err := marshalList(w.Syllables)
	if err != nil {
		return nil, err
	}
	synonyms, err := marshalList(w.Synonyms)
	if err != nil {
		return nil, err
	}
	antonyms, err := marshalList(w.Antonyms)
	if err != nil {
		return nil, err
	}
	examples, err := marshalList(w.Examples)
	if err != nil {
		return nil, err
	}
	verbForms := ""
	if w.VerbForms != nil {
		b, err := json.Marshal(w.VerbForms)
		if err != nil {
			return nil, fmt.Errorf("encode verb forms: %w", err)
		}
		verbForms = string(b)
	}
	return []any{
		w.ID,
		w.Text,
		w.Meaning,
		w.MeaningExplanation,
		string(w.PartOfSpeech),
		syllables,
		w.UsageDistinction,
		synonyms,
		antonyms,
		examples,
		verbForms,
		w.Tier.String(),
		w.Wrong.Spelling,
		w.Wrong.Meaning,
		w.Wrong.Synonym,
		w.Wrong.Antonym,
		w.CorrectCount,
		w.TotalExams,
		w.CorrectStreak,
		w.CreatedAt.UTC(),
		w.UpdatedAt.UTC(),
	}, nil
}

func marshalList[T any](v []T) (string, error) {
	if v == nil {
		return "[]", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(b), nil
}

func scanWord(rows *sql.Rows) (*vocab.Word, error) {
	var (
		w                                       vocab.Word
		pos, tier                               string
		syllables, synonyms, antonyms, examples string
		verbForms                               string
	)
	err := rows.Scan(
		&w.ID,
		&w.Text,
		&w.Meaning,
		&w.MeaningExplanation,
		&pos,
		&syllables,
		&w.UsageDistinction,
		&synonyms,
		&antonyms,
		&examples,
		&verbForms,
		&tier,
		&w.Wrong.Spelling,
		&w.Wrong.Meaning,
		&w.Wrong.Synonym,
		&w.Wrong.Antonym,
		&w.CorrectCount,
		&w.TotalExams,
		&w.CorrectStreak,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan word: %w", err)
	}

	w.PartOfSpeech = vocab.ParsePartOfSpeech(pos)
	if w.Tier, err = vocab.ParseTier(tier); err != nil {
		return nil, fmt.Errorf("word %s: %w", w.ID, err)
	}
	for _, f := range []struct {
		raw string
		dst any
	}{
		{syllables, &w.Syllables},
		{synonyms, &w.Synonyms},
		{antonyms, &w.Antonyms},
		{examples, &w.Examples},
	} {
		if f.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(f.raw), f.dst); err != nil {
			return nil, fmt.Errorf("word %s: decode list: %w", w.ID, err)
		}
	}
	if verbForms != "" {
		w.VerbForms = &vocab.VerbForms{}
		if err := json.Unmarshal([]byte(verbForms), w.VerbForms); err != nil {
			return nil, fmt.Errorf("word %s: decode verb forms: %w", w.ID, err)
		}
	}
	return &w, nil
}
