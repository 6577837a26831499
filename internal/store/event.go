package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// eventCounter names the sequences row shared by attempt and LLM events,
// so both kinds interleave in one order.
const eventCounter = "events"

// appendEvent runs fn in a transaction together with the allocation of the
// next event sequence. A failed fn leaves the counter untouched.
func appendEvent(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx, seq int64) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin event: %w", err)
	}
	defer tx.Rollback()

	seq, err := nextSequence(ctx, tx)
	if err != nil {
		return err
	}
	if err := fn(tx, seq); err != nil {
		return err
	}
	return tx.Commit()
}

// nextSequence bumps the event counter and returns its new value. The
// first event gets 1. The bump takes SQLite's write lock, which holds
// until the surrounding transaction ends.
func nextSequence(ctx context.Context, q querier) (int64, error) {
	bump := builder().Insert(SequencesTable.Name).
		Columns("name", "value").
		Values(eventCounter, 1).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) { u.Add("value", 1) }),
		)
	if err := exec(ctx, q, bump); err != nil {
		return 0, fmt.Errorf("bump event sequence: %w", err)
	}

	var seq int64
	sel := builder().Select("value").
		From(entsql.Table(SequencesTable.Name)).
		Where(entsql.EQ("name", eventCounter))
	err := query(ctx, q, sel, func(rows *sql.Rows) error { return rows.Scan(&seq) })
	if err == nil && seq == 0 {
		err = errors.New("counter row missing")
	}
	if err != nil {
		return 0, fmt.Errorf("read event sequence: %w", err)
	}
	return seq, nil
}
