package vocab

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// FormatVersion is the version written into export documents.
const FormatVersion = "v1.0.0"

// ErrUnsupportedFormat is returned when an export document was written by
// an incompatible format version.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ImportRecord is the shape of one entry in a bulk word list.
type ImportRecord struct {
	Word               string     `json:"word"`
	Meaning            string     `json:"meaning"`
	MeaningExplanation string     `json:"meaning_explanation,omitempty"`
	PartOfSpeech       string     `json:"parts_of_speech,omitempty"`
	Syllables          []string   `json:"syllables,omitempty"`
	UsageDistinction   string     `json:"usage_distinction,omitempty"`
	Examples           []string   `json:"example_sentences,omitempty"`
	Synonyms           Terms      `json:"synonyms,omitempty"`
	Antonyms           Terms      `json:"antonyms,omitempty"`
	VerbForms          *VerbForms `json:"verb_forms,omitempty"`
}

// ToWord converts the record into a fresh word at tier New. ID and
// timestamps are left for the store to assign.
func (r ImportRecord) ToWord() (*Word, error) {
	text := strings.TrimSpace(r.Word)
	if text == "" {
		return nil, errors.New("word is empty")
	}
	return &Word{
		Text:               text,
		Meaning:            strings.TrimSpace(r.Meaning),
		MeaningExplanation: r.MeaningExplanation,
		PartOfSpeech:       ParsePartOfSpeech(r.PartOfSpeech),
		Syllables:          r.Syllables,
		UsageDistinction:   r.UsageDistinction,
		Examples:           r.Examples,
		Synonyms:           r.Synonyms,
		Antonyms:           r.Antonyms,
		VerbForms:          r.VerbForms,
		Tier:               New,
	}, nil
}

// ExportDocument is a full backup of words and notes.
type ExportDocument struct {
	Format     string    `json:"format"`
	ExportedAt time.Time `json:"exported_at"`
	Words      []*Word   `json:"words"`
	Notes      []*Note   `json:"notes,omitempty"`
}

// NewExport builds an export document stamped with the current format.
func NewExport(words []*Word, notes []*Note, now time.Time) ExportDocument {
	return ExportDocument{
		Format:     FormatVersion,
		ExportedAt: now.UTC(),
		Words:      words,
		Notes:      notes,
	}
}

// WriteExport encodes doc as indented JSON.
func WriteExport(w io.Writer, doc ExportDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// CompatibleFormat reports whether an export written with version v can be
// read by this build.
func CompatibleFormat(v string) bool {
	if !semver.IsValid(v) {
		return false
	}
	return semver.Major(v) == semver.Major(FormatVersion)
}

// Payload is the decoded content of an import file.
type Payload struct {
	Records []ImportRecord
	Words   []*Word
	Notes   []*Note
}

// ReadImport decodes either a bare array of ImportRecord or an
// ExportDocument. Words from an export keep their progress.
func ReadImport(r io.Reader) (*Payload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("import file is empty")
	}

	if data[0] == '[' {
		var recs []ImportRecord
		if err := json.Unmarshal(data, &recs); err != nil {
			return nil, fmt.Errorf("decode word list: %w", err)
		}
		return &Payload{Records: recs}, nil
	}

	var doc ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode export document: %w", err)
	}
	if !CompatibleFormat(doc.Format) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, doc.Format)
	}
	return &Payload{Words: doc.Words, Notes: doc.Notes}, nil
}
