package store

import (
	"math"

	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions follow the layout ent's code generator emits into
// migrate/schema.go. They are declared by hand and applied with the same
// Atlas-backed migrator at Open.

const longText = math.MaxInt32

var (
	// WordsColumns holds the columns for the "words" table.
	WordsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36},
		{Name: "text", Type: field.TypeString},
		{Name: "meaning", Type: field.TypeString, Size: longText, Default: ""},
		{Name: "meaning_explanation", Type: field.TypeString, Size: longText, Default: ""},
		{Name: "part_of_speech", Type: field.TypeString, Default: "other"},
		{Name: "syllables", Type: field.TypeString, Size: longText, Default: "[]"},
		{Name: "usage_distinction", Type: field.TypeString, Size: longText, Default: ""},
		{Name: "synonyms", Type: field.TypeString, Size: longText, Default: "[]"},
		{Name: "antonyms", Type: field.TypeString, Size: longText, Default: "[]"},
		{Name: "examples", Type: field.TypeString, Size: longText, Default: "[]"},
		{Name: "verb_forms", Type: field.TypeString, Size: longText, Default: ""},
		{Name: "tier", Type: field.TypeString, Default: "New"},
		{Name: "wrong_spelling", Type: field.TypeInt, Default: 0},
		{Name: "wrong_meaning", Type: field.TypeInt, Default: 0},
		{Name: "wrong_synonym", Type: field.TypeInt, Default: 0},
		{Name: "wrong_antonym", Type: field.TypeInt, Default: 0},
		{Name: "correct_count", Type: field.TypeInt, Default: 0},
		{Name: "total_exams", Type: field.TypeInt, Default: 0},
		{Name: "correct_streak", Type: field.TypeInt, Default: 0},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// WordsTable holds the schema information for the "words" table.
	WordsTable = &schema.Table{
		Name:       "words",
		Columns:    WordsColumns,
		PrimaryKey: []*schema.Column{WordsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "word_tier", Unique: false, Columns: []*schema.Column{WordsColumns[11]}},
			{Name: "word_created_at", Unique: false, Columns: []*schema.Column{WordsColumns[19]}},
			{Name: "word_text", Unique: false, Columns: []*schema.Column{WordsColumns[1]}},
		},
	}

	// NotesColumns holds the columns for the "notes" table.
	NotesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "title", Type: field.TypeString},
		{Name: "content", Type: field.TypeString, Size: longText, Default: ""},
		{Name: "category", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// NotesTable holds the schema information for the "notes" table.
	NotesTable = &schema.Table{
		Name:       "notes",
		Columns:    NotesColumns,
		PrimaryKey: []*schema.Column{NotesColumns[0]},
		Indexes: []*schema.Index{
			{Name: "note_category", Unique: false, Columns: []*schema.Column{NotesColumns[3]}},
		},
	}

	// AnswerEventsColumns holds the columns for the "answer_events" table.
	AnswerEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "word_id", Type: field.TypeString},
		{Name: "word", Type: field.TypeString},
		{Name: "modality", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool},
		{Name: "given_answer", Type: field.TypeString, Size: longText, Default: ""},
		{Name: "expected_answer", Type: field.TypeString, Size: longText, Default: ""},
		{Name: "tier_before", Type: field.TypeString},
		{Name: "tier_after", Type: field.TypeString},
		{Name: "time_ms", Type: field.TypeInt, Default: 0},
	}
	// AnswerEventsTable holds the schema information for the "answer_events" table.
	AnswerEventsTable = &schema.Table{
		Name:       "answer_events",
		Columns:    AnswerEventsColumns,
		PrimaryKey: []*schema.Column{AnswerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answerevent_timestamp", Unique: false, Columns: []*schema.Column{AnswerEventsColumns[2]}},
			{Name: "answerevent_session_id", Unique: false, Columns: []*schema.Column{AnswerEventsColumns[3]}},
			{Name: "answerevent_word_id", Unique: false, Columns: []*schema.Column{AnswerEventsColumns[4]}},
		},
	}

	// SessionEventsColumns holds the columns for the "session_events" table.
	SessionEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "filter", Type: field.TypeString, Default: ""},
		{Name: "quiz", Type: field.TypeString, Default: ""},
		{Name: "pool_size", Type: field.TypeInt, Default: 0},
		{Name: "answered", Type: field.TypeInt, Default: 0},
		{Name: "correct", Type: field.TypeInt, Default: 0},
	}
	// SessionEventsTable holds the schema information for the "session_events" table.
	SessionEventsTable = &schema.Table{
		Name:       "session_events",
		Columns:    SessionEventsColumns,
		PrimaryKey: []*schema.Column{SessionEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "sessionevent_session_id", Unique: false, Columns: []*schema.Column{SessionEventsColumns[3]}},
		},
	}

	// LlmRequestEventsColumns holds the columns for the "llm_request_events" table.
	LlmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: longText, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: longText, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: longText, Default: ""},
	}
	// LlmRequestEventsTable holds the schema information for the "llm_request_events" table.
	LlmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Unique: false, Columns: []*schema.Column{LlmRequestEventsColumns[5]}},
		},
	}

	// GlobalSequenceColumns holds the columns for the "global_sequence" table.
	GlobalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	// GlobalSequenceTable holds the schema information for the "global_sequence" table.
	GlobalSequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    GlobalSequenceColumns,
		PrimaryKey: []*schema.Column{GlobalSequenceColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		WordsTable,
		NotesTable,
		AnswerEventsTable,
		SessionEventsTable,
		LlmRequestEventsTable,
		GlobalSequenceTable,
	}
)
