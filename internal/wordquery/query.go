// Package wordquery filters words with CEL boolean expressions such as
//
//	wrong.spelling >= 2 && tier == "Hard"
//
// Each word is exposed to the expression through the variables declared
// in fields.
package wordquery

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/abhisek/lexicon/internal/vocab"
)

// ErrNotBool is returned when an expression does not evaluate to a bool.
var ErrNotBool = errors.New("expression must evaluate to a bool")

type field struct {
	name string
	typ  *cel.Type
	get  func(w *vocab.Word) any
}

var fields = []field{
	{"word", cel.StringType, func(w *vocab.Word) any { return w.Text }},
	{"meaning", cel.StringType, func(w *vocab.Word) any { return w.Meaning }},
	{"pos", cel.StringType, func(w *vocab.Word) any { return string(w.PartOfSpeech) }},
	{"tier", cel.StringType, func(w *vocab.Word) any { return w.Tier.String() }},
	{"learned", cel.BoolType, func(w *vocab.Word) any { return w.Learned() }},
	{"length", cel.IntType, func(w *vocab.Word) any { return int64(w.Length()) }},
	{"correct", cel.IntType, func(w *vocab.Word) any { return int64(w.CorrectCount) }},
	{"exams", cel.IntType, func(w *vocab.Word) any { return int64(w.TotalExams) }},
	{"streak", cel.IntType, func(w *vocab.Word) any { return int64(w.CorrectStreak) }},
	{"accuracy", cel.DoubleType, func(w *vocab.Word) any { return w.Accuracy() }},
	{"synonyms", cel.ListType(cel.StringType), func(w *vocab.Word) any { return w.Synonyms.Texts() }},
	{"antonyms", cel.ListType(cel.StringType), func(w *vocab.Word) any { return w.Antonyms.Texts() }},
	{"created", cel.TimestampType, func(w *vocab.Word) any { return w.CreatedAt }},
	{"wrong", cel.MapType(cel.StringType, cel.IntType), func(w *vocab.Word) any {
		m := make(map[string]int64, len(vocab.Categories)+1)
		for _, c := range vocab.Categories {
			m[string(c)] = int64(w.Wrong.Get(c))
		}
		m["total"] = int64(w.Wrong.Total())
		return m
	}},
}

// Fields lists the variable names an expression may reference.
func Fields() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

// Query is a compiled filter expression.
type Query struct {
	expr string
	prg  cel.Program
}

// Compile parses and type-checks expr.
func Compile(expr string) (*Query, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errors.New("empty expression")
	}

	opts := make([]cel.EnvOption, 0, len(fields)+1)
	for _, f := range fields {
		opts = append(opts, cel.Variable(f.name, f.typ))
	}
	opts = append(opts, cel.CrossTypeNumericComparisons(true))

	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("build cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w, got %s", ErrNotBool, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build program: %w", err)
	}
	return &Query{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (q *Query) String() string { return q.expr }

// Match evaluates the query against w.
func (q *Query) Match(w *vocab.Word) (bool, error) {
	out, _, err := q.prg.Eval(activation(w))
	if err != nil {
		return false, fmt.Errorf("evaluate %q for %q: %w", q.expr, w.Text, err)
	}
	ok, isBool := out.Value().(bool)
	if !isBool {
		return false, ErrNotBool
	}
	return ok, nil
}

// Filter returns the words matching q, stopping at the first evaluation
// error.
func (q *Query) Filter(words []*vocab.Word) ([]*vocab.Word, error) {
	var out []*vocab.Word
	for _, w := range words {
		ok, err := q.Match(w)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func activation(w *vocab.Word) map[string]any {
	vars := make(map[string]any, len(fields))
	for _, f := range fields {
		vars[f.name] = f.get(w)
	}
	return vars
}
