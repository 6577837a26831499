package store

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/italiano/internal/stats"
	"github.com/abhisek/italiano/internal/vocab"
)

// StatsRepo stores the attempt counters of one practice kind. It implements
// stats.Source.
type StatsRepo struct {
	kind      vocab.Kind
	db        *sql.DB
	sessionID string
}

var _ stats.Source = (*StatsRepo)(nil)

// ItemStats is the aggregate of every counter of one item.
type ItemStats struct {
	Item string
	stats.Record
}

func (r *StatsRepo) Statistics(ctx context.Context) (map[stats.Key]stats.Record, error) {
	sel := builder().Select("item", "mood", "tense", "person", "correct", "wrong").
		From(entsql.Table(StatisticsTable.Name)).
		Where(entsql.EQ("kind", string(r.kind)))

	out := make(map[stats.Key]stats.Record)
	err := query(ctx, r.db, sel, func(rows *sql.Rows) error {
		var k stats.Key
		var rec stats.Record
		if err := rows.Scan(&k.Item, &k.Mood, &k.Tense, &k.Person, &rec.Correct, &rec.Wrong); err != nil {
			return err
		}
		out[k] = rec
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query %s statistics: %w", r.kind, err)
	}
	return out, nil
}

// RecordAttempt bumps one counter and appends an attempt event.
func (r *StatsRepo) RecordAttempt(ctx context.Context, key stats.Key, correct bool) error {
	var c, w int
	if correct {
		c = 1
	} else {
		w = 1
	}
	now := time.Now().UTC()

	err := appendEvent(ctx, r.db, func(tx *sql.Tx, seq int64) error {
		upsert := builder().Insert(StatisticsTable.Name).
			Columns("kind", "item", "mood", "tense", "person", "correct", "wrong", "updated_at").
			Values(string(r.kind), key.Item, key.Mood, key.Tense, key.Person, c, w, now).
			OnConflict(
				entsql.ConflictColumns("kind", "item", "mood", "tense", "person"),
				entsql.ResolveWith(func(u *entsql.UpdateSet) {
					u.Add("correct", c)
					u.Add("wrong", w)
					u.Set("updated_at", now)
				}),
			)
		if err := exec(ctx, tx, upsert); err != nil {
			return fmt.Errorf("upsert statistics: %w", err)
		}

		event := builder().Insert(AttemptEventsTable.Name).
			Columns("sequence", "timestamp", "session_id", "kind", "item", "mood", "tense", "person", "correct").
			Values(seq, now, r.sessionID, string(r.kind), key.Item, key.Mood, key.Tense, key.Person, correct)
		if err := exec(ctx, tx, event); err != nil {
			return fmt.Errorf("save attempt event: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("record %s attempt %s: %w", r.kind, key, err)
	}
	return nil
}

// ResetStatistics deletes every counter of a top-level item. Attempt events
// are kept.
func (r *StatsRepo) ResetStatistics(ctx context.Context, item string) error {
	del := builder().Delete(StatisticsTable.Name).
		Where(entsql.And(
			entsql.EQ("kind", string(r.kind)),
			entsql.EQ("item", item),
		))
	if err := exec(ctx, r.db, del); err != nil {
		return fmt.Errorf("reset statistics %s %q: %w", r.kind, item, err)
	}
	return nil
}

// Worst returns per-item aggregates ordered by wrong minus correct, then by
// wrong, highest first. A limit of zero returns every item.
func (r *StatsRepo) Worst(ctx context.Context, limit int) ([]ItemStats, error) {
	sel := builder().Select(
		"item",
		entsql.As(entsql.Sum("correct"), "total_correct"),
		entsql.As(entsql.Sum("wrong"), "total_wrong"),
	).
		From(entsql.Table(StatisticsTable.Name)).
		Where(entsql.EQ("kind", string(r.kind))).
		GroupBy("item").
		OrderBy("item")

	var out []ItemStats
	err := query(ctx, r.db, sel, func(rows *sql.Rows) error {
		var s ItemStats
		if err := rows.Scan(&s.Item, &s.Correct, &s.Wrong); err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query %s item statistics: %w", r.kind, err)
	}

	slices.SortStableFunc(out, func(a, b ItemStats) int {
		if c := cmp.Compare(b.Score(), a.Score()); c != 0 {
			return c
		}
		return cmp.Compare(b.Wrong, a.Wrong)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
