// Package practice holds the state of one practice session: typed answers,
// verdicts, the ordered visible list, focus and the reset dialog.
package practice

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/abhisek/italiano/internal/answer"
	"github.com/abhisek/italiano/internal/ordering"
	"github.com/abhisek/italiano/internal/stats"
	"github.com/abhisek/italiano/internal/vocab"
)

// Verdict is the grading state of one field.
type Verdict int

const (
	Unvalidated Verdict = iota
	Correct
	Incorrect
)

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "unvalidated"
	}
}

// CommitKey is the key that grades and advances.
const CommitKey = "enter"

// NotificationTTL is how long a notification stays visible.
const NotificationTTL = 5 * time.Second

const recordTimeout = 10 * time.Second

// Notification is a transient, non-blocking message.
type Notification struct {
	Message string
	Expires time.Time
}

// Focus points at one field of one item.
type Focus struct {
	ID    string
	Field string
}

// Clock abstracts time for debouncing and notification expiry.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type slot struct {
	id    string
	field string
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	clock Clock
	sched Scheduler
	goFn  func(func())
	log   *slog.Logger
	lang  language.Tag
	order ordering.State
}

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithScheduler sets where deferred focus changes run.
func WithScheduler(s Scheduler) Option {
	return func(o *options) { o.sched = s }
}

// WithGo sets how statistics writes are started. The default runs each write
// on its own goroutine.
func WithGo(fn func(func())) Option {
	return func(o *options) { o.goFn = fn }
}

// WithLogger sets the logger for failed background writes.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithLanguage sets the collation language for alphabetical ordering.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) { o.lang = tag }
}

// WithOrdering sets the initial ordering state. A random mode without a seed
// gets a fresh one.
func WithOrdering(st ordering.State) Option {
	return func(o *options) { o.order = st }
}

// Engine is the state of one practice session over items of type T.
// Methods are safe to call from any goroutine but are meant to be driven by a
// single event loop; statistics writes complete in the background.
type Engine[T any] struct {
	kind  Kind[T]
	cache *stats.Cache
	clock Clock
	sched Scheduler
	goFn  func(func())
	log   *slog.Logger
	lang  language.Tag

	mu      sync.Mutex
	items   []T
	index   map[string]int
	visible []T
	input   map[slot]string
	verdict map[slot]Verdict
	last    map[slot]time.Time
	shown   map[slot]bool
	order   ordering.State
	filter  string
	focus   Focus
	dialog  ResetDialog
	note    Notification

	inflight sync.WaitGroup
}

// New creates an engine over items. Statistics are read from cache; call
// Refresh to load them before using a statistics-based ordering.
func New[T any](kind Kind[T], items []T, cache *stats.Cache, opts ...Option) *Engine[T] {
	o := options{
		clock: realClock{},
		sched: timerScheduler{},
		goFn:  func(fn func()) { go fn() },
		log:   slog.Default(),
		lang:  language.English,
		order: ordering.State{Mode: ordering.ModeNone, Cap: ordering.All},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.order.Mode == ordering.ModeRandom && o.order.Seed == 0 {
		o.order.Seed = ordering.NewSeed()
	}

	e := &Engine[T]{
		kind:    kind,
		cache:   cache,
		clock:   o.clock,
		sched:   o.sched,
		goFn:    o.goFn,
		log:     o.log.With("kind", string(kind.Name)),
		lang:    o.lang,
		input:   make(map[slot]string),
		verdict: make(map[slot]Verdict),
		last:    make(map[slot]time.Time),
		shown:   make(map[slot]bool),
		order:   o.order,
	}
	e.setItemsLocked(items)
	if len(e.visible) > 0 {
		if fields := kind.Fields(e.visible[0]); len(fields) > 0 {
			e.focus = Focus{ID: kind.ID(e.visible[0]), Field: fields[0].Key}
		}
	}
	return e
}

// Kind returns the kind the engine was built with.
func (e *Engine[T]) Kind() Kind[T] {
	return e.kind
}

// SetItems replaces the practice items, keeping typed input and the ordering
// state. The visible list is recomputed.
func (e *Engine[T]) SetItems(items []T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setItemsLocked(items)
}

func (e *Engine[T]) setItemsLocked(items []T) {
	e.items = slices.Clone(items)
	e.index = make(map[string]int, len(items))
	for i, it := range e.items {
		e.index[e.kind.ID(it)] = i
	}
	e.recomputeLocked()
}

func (e *Engine[T]) recomputeLocked() {
	e.visible = ordering.Apply(e.items, e.kind.Prompt, e.itemStats, e.order,
		ordering.WithLanguage(e.lang),
		ordering.WithFilter(e.filter),
	)
}

// itemStats is the per-item aggregate used for ordering.
func (e *Engine[T]) itemStats(item T) stats.Record {
	if e.kind.Grading == GradeItem {
		return e.cache.Get(e.kind.Key(item, ""))
	}
	var total stats.Record
	for _, f := range e.kind.Fields(item) {
		r := e.cache.Get(e.kind.Key(item, f.Key))
		total.Correct += r.Correct
		total.Wrong += r.Wrong
	}
	return total
}

func (e *Engine[T]) lookupLocked(id string) (T, bool) {
	i, ok := e.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return e.items[i], true
}

// Item returns the item with the given id.
func (e *Engine[T]) Item(id string) (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lookupLocked(id)
}

// Fields returns the answer fields of an item, or nil when unknown.
func (e *Engine[T]) Fields(id string) []vocab.Field {
	item, ok := e.Item(id)
	if !ok {
		return nil
	}
	return e.kind.Fields(item)
}

// Visible returns the filtered, ordered and capped items.
func (e *Engine[T]) Visible() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.visible)
}

// Input returns what the learner typed into a field.
func (e *Engine[T]) Input(id, field string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.input[slot{id, field}]
}

// Verdict returns the grading state of a field.
func (e *Engine[T]) Verdict(id, field string) Verdict {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.verdict[slot{id, field}]
}

// Focus returns the focused field.
func (e *Engine[T]) Focus() Focus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focus
}

// SetFocus moves focus, e.g. after Tab or a mouse click.
func (e *Engine[T]) SetFocus(f Focus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.focus = f
}

// InputChange stores typed text. Any verdict on the field is cleared.
func (e *Engine[T]) InputChange(id, field, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := slot{id, field}
	e.input[s] = value
	e.verdict[s] = Unvalidated
	delete(e.shown, s)
}

type write struct {
	key     stats.Key
	correct bool
}

// Validate grades an item. An empty field grades every field of the item.
//
// Items graded per item validate all filled fields regardless of field and
// record one attempt, only when no field is blank, that is correct when every
// field is. Items graded per field record one attempt per non-blank field.
// Requests for a key validated less than the kind's window ago are dropped.
// When persist is false nothing is recorded.
func (e *Engine[T]) Validate(id, field string, persist bool) {
	e.mu.Lock()
	writes := e.validateLocked(id, field, persist)
	e.mu.Unlock()

	for _, w := range writes {
		e.record(w)
	}
}

func (e *Engine[T]) validateLocked(id, field string, persist bool) []write {
	item, ok := e.lookupLocked(id)
	if !ok {
		return nil
	}
	now := e.clock.Now()

	if e.kind.Grading == GradeItem {
		return e.validateItemLocked(item, id, persist, now)
	}

	var writes []write
	for _, f := range e.kind.Fields(item) {
		if field != "" && f.Key != field {
			continue
		}
		if w, ok := e.validateFieldLocked(item, id, f, persist, now); ok {
			writes = append(writes, w)
		}
	}
	return writes
}

func (e *Engine[T]) debouncedLocked(s slot, now time.Time) bool {
	last, ok := e.last[s]
	return ok && now.Sub(last) < e.kind.Window
}

func (e *Engine[T]) validateItemLocked(item T, id string, persist bool, now time.Time) []write {
	s := slot{id: id}
	if e.debouncedLocked(s, now) {
		return nil
	}

	fields := e.kind.Fields(item)
	all, filled, shown := true, 0, false
	for _, f := range fields {
		fs := slot{id, f.Key}
		shown = shown || e.shown[fs]
		in := e.input[fs]
		if answer.IsBlank(in) {
			e.verdict[fs] = Unvalidated
			continue
		}
		filled++
		if answer.IsCorrect(in, f.Answer) {
			e.verdict[fs] = Correct
		} else {
			e.verdict[fs] = Incorrect
			all = false
		}
	}
	if filled == 0 {
		return nil
	}
	e.last[s] = now

	if !persist || shown || filled < len(fields) {
		return nil
	}
	return []write{{key: e.kind.Key(item, ""), correct: all}}
}

func (e *Engine[T]) validateFieldLocked(item T, id string, f vocab.Field, persist bool, now time.Time) (write, bool) {
	s := slot{id, f.Key}
	in := e.input[s]
	blank := answer.IsBlank(in)

	if e.kind.Once && (blank || e.verdict[s] != Unvalidated) {
		return write{}, false
	}
	if e.debouncedLocked(s, now) {
		return write{}, false
	}
	e.last[s] = now

	correct := answer.IsCorrect(in, f.Answer)
	if correct {
		e.verdict[s] = Correct
	} else {
		e.verdict[s] = Incorrect
	}
	if !persist || blank || e.shown[s] {
		return write{}, false
	}
	return write{key: e.kind.Key(item, f.Key), correct: correct}, true
}

// record writes one attempt in the background. A failure is logged and
// surfaced as a notification; verdicts stay as graded.
func (e *Engine[T]) record(w write) {
	e.inflight.Add(1)
	e.goFn(func() {
		defer e.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := e.cache.Record(ctx, w.key, w.correct); err != nil {
			e.log.Warn("statistics write failed", "key", w.key.String(), "error", err)
			e.Notify("Could not save your result: " + err.Error())
		}
	})
}

// Wait blocks until every in-flight statistics write has finished.
func (e *Engine[T]) Wait() {
	e.inflight.Wait()
}

// Clear blanks a field, drops its verdict and returns focus to it once the
// current update has been applied.
func (e *Engine[T]) Clear(id, field string) {
	e.mu.Lock()
	s := slot{id, field}
	e.input[s] = ""
	e.verdict[s] = Unvalidated
	delete(e.shown, s)
	e.mu.Unlock()

	e.sched.Defer(func() {
		e.SetFocus(Focus{ID: id, Field: field})
	})
}

// ShowAnswer fills every field with its answer and marks it correct. Nothing
// is recorded, and a revealed field is not graded into statistics until the
// user edits or clears it. Unknown ids are ignored.
func (e *Engine[T]) ShowAnswer(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.lookupLocked(id)
	if !ok {
		return
	}
	for _, f := range e.kind.Fields(item) {
		s := slot{id, f.Key}
		e.input[s] = f.Answer
		e.verdict[s] = Correct
		e.shown[s] = true
	}
}

// KeyDown handles a key press on a field of the item at index in the visible
// list and returns the resulting focus. Only CommitKey acts: on a field
// followed by another field of the same item it moves there (grading the
// field first when grading per field); on the last field it grades and moves
// to the first field of the next visible item. The end of the list is a
// no-op.
func (e *Engine[T]) KeyDown(key, id, field string, index int) Focus {
	if key != CommitKey {
		return e.Focus()
	}

	e.mu.Lock()
	item, ok := e.lookupLocked(id)
	if !ok {
		f := e.focus
		e.mu.Unlock()
		return f
	}
	fields := e.kind.Fields(item)
	pos := slices.IndexFunc(fields, func(f vocab.Field) bool { return f.Key == field })
	lastField := pos < 0 || pos == len(fields)-1

	var writes []write
	switch {
	case e.kind.Grading == GradeField:
		writes = e.validateLocked(id, field, true)
	case lastField:
		writes = e.validateLocked(id, "", true)
	}

	if !lastField {
		e.focus = Focus{ID: id, Field: fields[pos+1].Key}
	} else if next, ok := e.nextVisibleLocked(id, index); ok {
		e.focus = next
	}
	f := e.focus
	e.mu.Unlock()

	for _, w := range writes {
		e.record(w)
	}
	return f
}

// nextVisibleLocked finds the first field of the item after id. index is
// trusted when it points at id; otherwise id is looked up.
func (e *Engine[T]) nextVisibleLocked(id string, index int) (Focus, bool) {
	if index < 0 || index >= len(e.visible) || e.kind.ID(e.visible[index]) != id {
		index = slices.IndexFunc(e.visible, func(it T) bool { return e.kind.ID(it) == id })
		if index < 0 {
			return Focus{}, false
		}
	}
	for i := index + 1; i < len(e.visible); i++ {
		if fields := e.kind.Fields(e.visible[i]); len(fields) > 0 {
			return Focus{ID: e.kind.ID(e.visible[i]), Field: fields[0].Key}, true
		}
	}
	return Focus{}, false
}

// Statistics returns the cached counters of a field, or the item aggregate
// when field is empty. Unknown ids read as zero.
func (e *Engine[T]) Statistics(id, field string) stats.Record {
	item, ok := e.Item(id)
	if !ok {
		return stats.Record{}
	}
	if field == "" {
		return e.itemStats(item)
	}
	return e.cache.Get(e.kind.Key(item, field))
}

// Ordering returns the current ordering state.
func (e *Engine[T]) Ordering() ordering.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.order
}

// SetSortMode changes the sort mode. Switching to random draws a new seed.
func (e *Engine[T]) SetSortMode(m ordering.Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if m == ordering.ModeRandom && e.order.Mode != ordering.ModeRandom {
		e.order.Seed = ordering.NewSeed()
	}
	e.order.Mode = m
	e.recomputeLocked()
}

// SetDisplayCap limits the visible list.
func (e *Engine[T]) SetDisplayCap(c ordering.Cap) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.order.Cap = c
	e.recomputeLocked()
}

// Filter returns the active prompt filter.
func (e *Engine[T]) Filter() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filter
}

// SetFilter keeps only items whose prompt contains q.
func (e *Engine[T]) SetFilter(q string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filter = q
	e.recomputeLocked()
}

// Refresh recomputes the visible list: random mode draws a new seed and the
// statistics-based modes reload statistics first. A failed reload keeps the
// previous order.
func (e *Engine[T]) Refresh(ctx context.Context) error {
	e.mu.Lock()
	mode := e.order.Mode
	if mode == ordering.ModeRandom {
		e.order.Seed = ordering.NewSeed()
	}
	e.mu.Unlock()

	if mode.UsesStatistics() {
		e.cache.Invalidate()
		if err := e.cache.Refetch(ctx); err != nil {
			return err
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.recomputeLocked()
	return nil
}

// Notify shows a message for NotificationTTL.
func (e *Engine[T]) Notify(msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.note = Notification{Message: msg, Expires: e.clock.Now().Add(NotificationTTL)}
}

// Notification returns the current notification unless it expired.
func (e *Engine[T]) Notification() (Notification, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.note.Message == "" || !e.clock.Now().Before(e.note.Expires) {
		return Notification{}, false
	}
	return e.note, true
}

// Progress counts graded fields across the visible list.
func (e *Engine[T]) Progress() (correct, incorrect, total int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, it := range e.visible {
		id := e.kind.ID(it)
		for _, f := range e.kind.Fields(it) {
			total++
			switch e.verdict[slot{id, f.Key}] {
			case Correct:
				correct++
			case Incorrect:
				incorrect++
			}
		}
	}
	return correct, incorrect, total
}
