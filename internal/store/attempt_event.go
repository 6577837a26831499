package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/italiano/internal/vocab"
)

func (r *eventRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error) {
	sel := builder().Select("id", "sequence", "timestamp", "session_id", "kind",
		"item", "mood", "tense", "person", "correct").
		From(entsql.Table(AttemptEventsTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	if ps := opts.predicates(); len(ps) > 0 {
		sel.Where(entsql.And(ps...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	var out []AttemptEvent
	err := query(ctx, r.db, sel, func(rows *sql.Rows) error {
		var e AttemptEvent
		var kind string
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &kind,
			&e.Item, &e.Mood, &e.Tense, &e.Person, &e.Correct); err != nil {
			return err
		}
		e.Kind = vocab.Kind(kind)
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	return out, nil
}
