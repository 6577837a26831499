package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/italiano/internal/vocab"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// predicates turns the options into WHERE clauses over the event mixin
// columns.
func (o QueryOpts) predicates() []*entsql.Predicate {
	var ps []*entsql.Predicate
	if o.After > 0 {
		ps = append(ps, entsql.GT("sequence", o.After))
	}
	if o.Before > 0 {
		ps = append(ps, entsql.LT("sequence", o.Before))
	}
	if !o.From.IsZero() {
		ps = append(ps, entsql.GTE("timestamp", o.From))
	}
	if !o.To.IsZero() {
		ps = append(ps, entsql.LTE("timestamp", o.To))
	}
	return ps
}

// ImportResult counts the rows written by an import.
type ImportResult struct {
	Nouns        int
	Adjectives   int
	Verbs        int
	Conjugations int
}

// VocabRepo lists and imports practice items.
type VocabRepo interface {
	Nouns(ctx context.Context) ([]vocab.Noun, error)
	Adjectives(ctx context.Context) ([]vocab.Adjective, error)
	Verbs(ctx context.Context) ([]vocab.Verb, error)

	// Conjugations expands every verb's stored tables for the enabled
	// mood/tense pairs. Empty enabled uses vocab.DefaultMoodTenses.
	Conjugations(ctx context.Context, enabled []vocab.MoodTense) ([]vocab.Conjugation, error)

	// Import upserts every entry of doc in one transaction.
	Import(ctx context.Context, doc *vocab.Document) (ImportResult, error)
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

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM events sharing a purpose or a model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// AttemptEvent is one graded attempt as recorded by a statistics write.
type AttemptEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionID string
	Kind      vocab.Kind
	Item      string
	Mood      string
	Tense     string
	Person    string
	Correct   bool
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// QueryAttempts returns attempt events, newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error)
}

// builder starts a SQLite-flavored query.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// exec runs a built statement.
func exec(ctx context.Context, q querier, stmt interface{ Query() (string, []any) }) error {
	query, args := stmt.Query()
	_, err := q.ExecContext(ctx, query, args...)
	return err
}

// query runs a built selector and calls scan for every row.
func query(ctx context.Context, q querier, sel *entsql.Selector, scan func(*sql.Rows) error) error {
	stmt, args := sel.Query()
	rows, err := q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
