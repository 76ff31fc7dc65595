package store

import (
	"context"
	"time"

	"github.com/abhisek/lexicon/internal/vocab"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// WordRepo persists vocabulary words.
type WordRepo interface {
	// All returns every word, oldest first.
	All(ctx context.Context) ([]*vocab.Word, error)

	// ByTiers returns the words currently at any of the given tiers.
	ByTiers(ctx context.Context, tiers ...vocab.Tier) ([]*vocab.Word, error)

	// CreatedBetween returns words created in [from, to).
	CreatedBetween(ctx context.Context, from, to time.Time) ([]*vocab.Word, error)

	// Get returns the word with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*vocab.Word, error)

	// FindByText looks a word up by its text, ignoring case. Returns
	// ErrNotFound when absent.
	FindByText(ctx context.Context, text string) (*vocab.Word, error)

	// Put overwrites the stored record, inserting it if missing. The
	// caller owns UpdatedAt; only a zero value is stamped with the
	// current time.
	Put(ctx context.Context, w *vocab.Word) error

	// Insert stores a new word, assigning its id and timestamps.
	Insert(ctx context.Context, w *vocab.Word) error

	// BulkInsert inserts each word independently and reports per-word
	// failures instead of aborting.
	BulkInsert(ctx context.Context, words []*vocab.Word) BulkResult

	// Delete removes a word. Deleting a missing id returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// ResetProgress puts every word back at New with zeroed counters.
	ResetProgress(ctx context.Context) (int, error)
}

// NoteRepo persists study notes.
type NoteRepo interface {
	All(ctx context.Context) ([]*vocab.Note, error)
	ByCategory(ctx context.Context, category string) ([]*vocab.Note, error)
	Categories(ctx context.Context) ([]string, error)
	Insert(ctx context.Context, n *vocab.Note) error
	BulkInsert(ctx context.Context, notes []*vocab.Note) BulkResult
	Put(ctx context.Context, n *vocab.Note) error
	Delete(ctx context.Context, id int64) error
}

// BulkError describes one record that failed to import.
type BulkError struct {
	Item string
	Err  error
}

// BulkResult summarizes a bulk insert.
type BulkResult struct {
	Success int
	Failed  int
	Errors  []BulkError
}

// AnswerEventData captures one answered question.
type AnswerEventData struct {
	SessionID      string
	WordID         string
	Word           string
	Modality       string
	Correct        bool
	GivenAnswer    string
	ExpectedAnswer string
	TierBefore     string
	TierAfter      string
	TimeMs         int
}

// AnswerEvent is a stored answer event.
type AnswerEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID string
	Action    string // "start" or "finish"
	Filter    string
	Quiz      string
	PoolSize  int
	Answered  int
	Correct   int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// DailyAccuracy is the answer tally for one calendar day.
type DailyAccuracy struct {
	Date    time.Time
	Total   int
	Correct int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswer records an answered question.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// AppendSession records a session start or end.
	AppendSession(ctx context.Context, data SessionEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryAnswers returns answer events, newest first.
	QueryAnswers(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error)

	// DailyAnswerAccuracy tallies answers per local day for the last n days,
	// oldest first. Days without answers are omitted.
	DailyAnswerAccuracy(ctx context.Context, days int, now time.Time) ([]DailyAccuracy, error)

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one LLM event by id, or nil if missing.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)
}
