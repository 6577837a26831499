package practice

import (
	"context"
	"fmt"
)

// ResetDialog is the confirmation state for clearing an item's statistics.
type ResetDialog struct {
	Open   bool
	ItemID string
	Label  string
	Err    error
}

// ResetDialog returns the dialog state.
func (e *Engine[T]) ResetDialog() ResetDialog {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dialog
}

// OpenReset opens the dialog for the item with the given id. The dialog
// targets the item's top-level statistics id, which for conjugations is the
// verb. Unknown ids are ignored.
func (e *Engine[T]) OpenReset(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.lookupLocked(id)
	if !ok {
		return
	}
	e.dialog = ResetDialog{
		Open:   true,
		ItemID: e.kind.Key(item, "").Item,
		Label:  e.kind.label(item),
	}
}

// CancelReset closes the dialog without touching statistics.
func (e *Engine[T]) CancelReset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dialog = ResetDialog{}
}

// ConfirmReset clears the target's statistics. On failure the dialog stays
// open with the error attached and nothing is retried. A dialog cancelled or
// retargeted while the reset was running is left alone. On success the dialog
// closes and, when the order depends on statistics, statistics are reloaded
// and the visible list recomputed.
func (e *Engine[T]) ConfirmReset(ctx context.Context) error {
	e.mu.Lock()
	d := e.dialog
	e.mu.Unlock()
	if !d.Open {
		return nil
	}

	if err := e.cache.Reset(ctx, d.ItemID); err != nil {
		err = fmt.Errorf("could not reset statistics for %q: %w", d.Label, err)
		e.mu.Lock()
		if e.dialog.Open && e.dialog.ItemID == d.ItemID {
			e.dialog.Err = err
		}
		e.mu.Unlock()
		return err
	}

	e.mu.Lock()
	if e.dialog.ItemID == d.ItemID {
		e.dialog = ResetDialog{}
	}
	mode := e.order.Mode
	e.mu.Unlock()

	if !mode.UsesStatistics() {
		return nil
	}
	e.cache.Invalidate()
	if err := e.cache.Refetch(ctx); err != nil {
		e.log.Warn("statistics reload after reset failed", "error", err)
		e.Notify("Statistics were reset but could not be reloaded")
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recomputeLocked()
	return nil
}
