package vocab

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Term is a synonym or antonym entry. Stored records hold either a bare
// string or a {word, bangla} object; both decode into a Term.
type Term interface {
	// Text returns the display text regardless of variant.
	Text() string
	isTerm()
}

// PlainTerm is a term without a translation.
type PlainTerm string

func (p PlainTerm) Text() string { return strings.TrimSpace(string(p)) }
func (PlainTerm) isTerm()        {}

// AnnotatedTerm is a term with its translation.
type AnnotatedTerm struct {
	Word        string `json:"word"`
	Translation string `json:"bangla,omitempty"`
}

func (a AnnotatedTerm) Text() string { return strings.TrimSpace(a.Word) }
func (AnnotatedTerm) isTerm()        {}

// TermTexts returns the display text of every term, skipping blanks.
func TermTexts(terms []Term) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == nil {
			continue
		}
		if s := t.Text(); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Terms is a JSON-aware list of terms.
type Terms []Term

// Texts is shorthand for TermTexts.
func (ts Terms) Texts() []string {
	return TermTexts(ts)
}

func (ts Terms) MarshalJSON() ([]byte, error) {
	raw := make([]any, 0, len(ts))
	for _, t := range ts {
		switch v := t.(type) {
		case PlainTerm:
			raw = append(raw, string(v))
		case AnnotatedTerm:
			raw = append(raw, v)
		case nil:
		default:
			raw = append(raw, t.Text())
		}
	}
	return json.Marshal(raw)
}

func (ts *Terms) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*ts = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("terms: %w", err)
	}
	out := make(Terms, 0, len(raw))
	for i, r := range raw {
		r = bytes.TrimSpace(r)
		if len(r) == 0 {
			continue
		}
		switch r[0] {
		case '"':
			var s string
			if err := json.Unmarshal(r, &s); err != nil {
				return fmt.Errorf("terms[%d]: %w", i, err)
			}
			out = append(out, PlainTerm(s))
		case '{':
			var a AnnotatedTerm
			if err := json.Unmarshal(r, &a); err != nil {
				return fmt.Errorf("terms[%d]: %w", i, err)
			}
			out = append(out, a)
		case 'n':
			// null entries are dropped
		default:
			return fmt.Errorf("terms[%d]: unsupported value %s", i, r)
		}
	}
	*ts = out
	return nil
}
