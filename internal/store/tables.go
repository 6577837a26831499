package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// NounsColumns holds the columns for the "nouns" table.
	NounsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt, Default: 0},
		{Name: "english", Type: field.TypeString},
		{Name: "singular", Type: field.TypeString},
		{Name: "plural", Type: field.TypeString},
		{Name: "gender", Type: field.TypeString, Default: ""},
	}
	// NounsTable holds the schema information for the "nouns" table.
	NounsTable = &schema.Table{
		Name:       "nouns",
		Columns:    NounsColumns,
		PrimaryKey: []*schema.Column{NounsColumns[0]},
	}

	// AdjectivesColumns holds the columns for the "adjectives" table.
	AdjectivesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt, Default: 0},
		{Name: "english", Type: field.TypeString},
		{Name: "masculine_singular", Type: field.TypeString},
		{Name: "masculine_plural", Type: field.TypeString},
		{Name: "feminine_singular", Type: field.TypeString},
		{Name: "feminine_plural", Type: field.TypeString},
	}
	// AdjectivesTable holds the schema information for the "adjectives" table.
	AdjectivesTable = &schema.Table{
		Name:       "adjectives",
		Columns:    AdjectivesColumns,
		PrimaryKey: []*schema.Column{AdjectivesColumns[0]},
	}

	// VerbsColumns holds the columns for the "verbs" table.
	VerbsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt, Default: 0},
		{Name: "english", Type: field.TypeString},
		{Name: "infinitive", Type: field.TypeString},
		{Name: "reflexive", Type: field.TypeBool, Default: false},
	}
	// VerbsTable holds the schema information for the "verbs" table.
	VerbsTable = &schema.Table{
		Name:       "verbs",
		Columns:    VerbsColumns,
		PrimaryKey: []*schema.Column{VerbsColumns[0]},
	}

	// ConjugationsColumns holds the columns for the "conjugations" table.
	ConjugationsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "verb_id", Type: field.TypeString},
		{Name: "mood", Type: field.TypeString},
		{Name: "tense", Type: field.TypeString},
		{Name: "person", Type: field.TypeString, Default: ""},
		{Name: "form", Type: field.TypeString},
	}
	// ConjugationsTable holds the schema information for the "conjugations" table.
	ConjugationsTable = &schema.Table{
		Name:       "conjugations",
		Columns:    ConjugationsColumns,
		PrimaryKey: []*schema.Column{ConjugationsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "conjugation_verb_id_mood_tense_person",
				Unique:  true,
				Columns: []*schema.Column{ConjugationsColumns[1], ConjugationsColumns[2], ConjugationsColumns[3], ConjugationsColumns[4]},
			},
		},
	}

	// StatisticsColumns holds the columns for the "statistics" table.
	StatisticsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "kind", Type: field.TypeString},
		{Name: "item", Type: field.TypeString},
		{Name: "mood", Type: field.TypeString, Default: ""},
		{Name: "tense", Type: field.TypeString, Default: ""},
		{Name: "person", Type: field.TypeString, Default: ""},
		{Name: "correct", Type: field.TypeInt, Default: 0},
		{Name: "wrong", Type: field.TypeInt, Default: 0},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// StatisticsTable holds the schema information for the "statistics" table.
	StatisticsTable = &schema.Table{
		Name:       "statistics",
		Columns:    StatisticsColumns,
		PrimaryKey: []*schema.Column{StatisticsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "statistic_kind_item_mood_tense_person",
				Unique:  true,
				Columns: []*schema.Column{StatisticsColumns[1], StatisticsColumns[2], StatisticsColumns[3], StatisticsColumns[4], StatisticsColumns[5]},
			},
		},
	}

	// AttemptEventsColumns holds the columns for the "attempt_events" table.
	AttemptEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "item", Type: field.TypeString},
		{Name: "mood", Type: field.TypeString, Default: ""},
		{Name: "tense", Type: field.TypeString, Default: ""},
		{Name: "person", Type: field.TypeString, Default: ""},
		{Name: "correct", Type: field.TypeBool},
	}
	// AttemptEventsTable holds the schema information for the "attempt_events" table.
	AttemptEventsTable = &schema.Table{
		Name:       "attempt_events",
		Columns:    AttemptEventsColumns,
		PrimaryKey: []*schema.Column{AttemptEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "attemptevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{AttemptEventsColumns[2]},
			},
			{
				Name:    "attemptevent_kind_item",
				Unique:  false,
				Columns: []*schema.Column{AttemptEventsColumns[4], AttemptEventsColumns[5]},
			},
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
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LlmRequestEventsTable holds the schema information for the "llm_request_events" table.
	LlmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequestevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[2]},
			},
			{
				Name:    "llmrequestevent_purpose",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[5]},
			},
		},
	}

	// SequencesColumns holds the columns for the "sequences" table.
	SequencesColumns = []*schema.Column{
		{Name: "name", Type: field.TypeString},
		{Name: "value", Type: field.TypeInt64, Default: 0},
	}
	// SequencesTable holds named monotonic counters.
	SequencesTable = &schema.Table{
		Name:       "sequences",
		Columns:    SequencesColumns,
		PrimaryKey: []*schema.Column{SequencesColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		NounsTable,
		AdjectivesTable,
		VerbsTable,
		ConjugationsTable,
		StatisticsTable,
		AttemptEventsTable,
		LlmRequestEventsTable,
		SequencesTable,
	}
)

// migrate creates or updates every table.
func (s *Store) migrate(ctx context.Context) error {
	m, err := schema.NewMigrate(s.drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
