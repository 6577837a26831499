package practice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/italiano/internal/ordering"
	"github.com/abhisek/italiano/internal/stats"
	"github.com/abhisek/italiano/internal/vocab"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func syncGo(fn func()) { fn() }

var testNouns = []vocab.Noun{
	{ID: "house", English: "House", Singular: "casa", Plural: "case", Gender: vocab.Feminine},
	{ID: "book", English: "Book", Singular: "libro", Plural: "libri", Gender: vocab.Masculine},
	{ID: "tree", English: "Tree", Singular: "albero", Plural: "alberi", Gender: vocab.Masculine},
}

var testVerbs = []vocab.Verb{
	{ID: "eat", English: "to eat", Infinitive: "mangiare"},
	{ID: "drink", English: "to drink", Infinitive: "bere"},
}

var testConjugations = []vocab.Conjugation{
	{
		VerbID: "be", English: "to be", Infinitive: "essere",
		Mood: vocab.MoodIndicativo, Tense: vocab.TensePresente,
		Forms: map[vocab.Person]string{
			vocab.PersonIo: "sono", vocab.PersonTu: "sei", vocab.PersonLuiLei: "è",
			vocab.PersonNoi: "siamo", vocab.PersonVoi: "siete", vocab.PersonLoro: "sono",
		},
	},
	{
		VerbID: "be", English: "to be", Infinitive: "essere",
		Mood: vocab.MoodIndicativo, Tense: vocab.TenseImperfetto,
		Forms: map[vocab.Person]string{
			vocab.PersonIo: "ero", vocab.PersonTu: "eri", vocab.PersonLuiLei: "era",
			vocab.PersonNoi: "eravamo", vocab.PersonVoi: "eravate", vocab.PersonLoro: "erano",
		},
	},
}

type harness[T any] struct {
	engine *Engine[T]
	src    *stats.MemorySource
	cache  *stats.Cache
	clock  *fakeClock
	queue  *Queue
}

func newHarness[T any](t *testing.T, kind Kind[T], items []T, seed map[stats.Key]stats.Record, opts ...Option) *harness[T] {
	t.Helper()
	src := stats.NewMemorySource(seed)
	cache := stats.NewCache(src)
	require.NoError(t, cache.Refetch(context.Background()))

	h := &harness[T]{src: src, cache: cache, clock: newFakeClock(), queue: &Queue{}}
	opts = append([]Option{WithClock(h.clock), WithScheduler(h.queue), WithGo(syncGo)}, opts...)
	h.engine = New(kind, items, cache, opts...)
	return h
}

func TestNewFocusesFirstField(t *testing.T) {
	h := newHarness(t, NounKind, testNouns, nil)
	assert.Equal(t, Focus{ID: "house", Field: vocab.FieldSingular}, h.engine.Focus())

	empty := newHarness(t, NounKind, nil, nil)
	assert.Equal(t, Focus{}, empty.engine.Focus())
	assert.Empty(t, empty.engine.Visible())
}

func TestInputChangeClearsVerdict(t *testing.T) {
	h := newHarness(t, VerbKind, testVerbs, nil)
	e := h.engine

	e.InputChange("eat", vocab.FieldInfinitive, "mangiare")
	assert.Equal(t, Unvalidated, e.Verdict("eat", vocab.FieldInfinitive))

	e.Validate("eat", vocab.FieldInfinitive, true)
	require.Equal(t, Correct, e.Verdict("eat", vocab.FieldInfinitive))

	e.InputChange("eat", vocab.FieldInfinitive, "mangiar")
	assert.Equal(t, Unvalidated, e.Verdict("eat", vocab.FieldInfinitive))
	assert.Equal(t, "mangiar", e.Input("eat", vocab.FieldInfinitive))

	e.InputChange("eat", vocab.FieldInfinitive, "")
	assert.Equal(t, Unvalidated, e.Verdict("eat", vocab.FieldInfinitive))
}

func TestValidateDebounce(t *testing.T) {
	h := newHarness(t, VerbKind, testVerbs, nil)
	e := h.engine

	e.InputChange("eat", vocab.FieldInfinitive, "Mangiàre ")
	e.Validate("eat", vocab.FieldInfinitive, true)
	h.clock.Advance(50 * time.Millisecond)
	e.Validate("eat", vocab.FieldInfinitive, true)
	assert.Len(t, h.src.Calls(), 1)

	h.clock.Advance(TranslationWindow)
	e.Validate("eat", vocab.FieldInfinitive, true)

	calls := h.src.Calls()
	require.Len(t, calls, 2)
	for _, c := range calls {
		assert.Equal(t, stats.RecordCall{Key: stats.ItemKey("eat"), Correct: true}, c)
	}
	assert.Equal(t, stats.Record{Correct: 2}, e.Statistics("eat", ""))
}

func TestValidateDebounceIsPerKey(t *testing.T) {
	h := newHarness(t, VerbKind, testVerbs, nil)
	e := h.engine

	e.InputChange("eat", vocab.FieldInfinitive, "mangiare")
	e.InputChange("drink", vocab.FieldInfinitive, "bevere")
	e.Validate("eat", vocab.FieldInfinitive, true)
	e.Validate("drink", vocab.FieldInfinitive, true)

	assert.Equal(t, []stats.RecordCall{
		{Key: stats.ItemKey("eat"), Correct: true},
		{Key: stats.ItemKey("drink"), Correct: false},
	}, h.src.Calls())
	assert.Equal(t, Incorrect, e.Verdict("drink", vocab.FieldInfinitive))
}

func TestValidateSingleFieldBlank(t *testing.T) {
	h := newHarness(t, VerbKind, testVerbs, nil)
	e := h.engine

	e.Validate("eat", vocab.FieldInfinitive, true)
	assert.Equal(t, Incorrect, e.Verdict("eat", vocab.FieldInfinitive))
	assert.Empty(t, h.src.Calls())
}

func TestValidateWithoutPersist(t *testing.T) {
	h := newHarness(t, VerbKind, testVerbs, nil)
	e := h.engine

	e.InputChange("eat", vocab.FieldInfinitive, "mangiare")
	e.Validate("eat", vocab.FieldInfinitive, false)
	assert.Equal(t, Correct, e.Verdict("eat", vocab.FieldInfinitive))
	assert.Empty(t, h.src.Calls())
}

func TestValidateUnknownItem(t *testing.T) {
	h := newHarness(t, NounKind, testNouns, nil)
	h.engine.Validate("dog", "", true)
	assert.Empty(t, h.src.Calls())
}

func TestValidateMultiFieldAnd(t *testing.T) {
	h := newHarness(t, NounKind, testNouns, nil)
	e := h.engine

	e.InputChange("house", vocab.FieldSingular, "casa")
	e.InputChange("house", vocab.FieldPlural, "casi")
	e.Validate("house", "", true)

	assert.Equal(t, Correct, e.Verdict("house", vocab.FieldSingular))
	assert.Equal(t, Incorrect, e.Verdict("house", vocab.FieldPlural))
	assert.Equal(t, []stats.RecordCall{{Key: stats.ItemKey("house"), Correct: false}}, h.src.Calls())
}

func TestValidateMultiFieldAllCorrect(t *testing.T) {
	h := newHarness(t, AdjectiveKind, []vocab.Adjective{{
		ID: "beautiful", English: "beautiful",
		MasculineSingular: "bello", MasculinePlural: "belli",
		FeminineSingular: "bella", FemininePlural: "belle",
	}}, nil)
	e := h.engine

	e.InputChange("beautiful", vocab.FieldMasculineSingular, "BELLO")
	e.InputChange("beautiful", vocab.FieldMasculinePlural, "belli")
	e.InputChange("beautiful", vocab.FieldFeminineSingular, " bella")
	e.InputChange("beautiful", vocab.FieldFemininePlural, "belle")
	e.Validate("beautiful", vocab.FieldFemininePlural, true)

	assert.Equal(t, []stats.RecordCall{{Key: stats.ItemKey("beautiful"), Correct: true}}, h.src.Calls())
	for _, f := range e.Fields("beautiful") {
		assert.Equal(t, Correct, e.Verdict("beautiful", f.Key), f.Key)
	}
}

func TestValidateMultiFieldSkipsBlank(t *testing.T) {
	h := newHarness(t, NounKind, testNouns, nil)
	e := h.engine

	e.InputChange("house", vocab.FieldSingular, "casa")
	e.InputChange("house", vocab.FieldPlural, "   ")
	e.Validate("house", "", true)

	assert.Equal(t, Correct, e.Verdict("house", vocab.FieldSingular))
	assert.Equal(t, Unvalidated, e.Verdict("house", vocab.FieldPlural))
	assert.Empty(t, h.src.Calls())

	// Nothing was graded, so an all-blank validation does not arm the debounce.
	e.Validate("book", "", true)
	e.InputChange("book", vocab.FieldSingular, "libro")
	e.InputChange("book", vocab.FieldPlural, "libri")
	e.Validate("book", "", true)
	assert.Equal(t, []stats.RecordCall{{Key: stats.ItemKey("book"), Correct: true}}, h.src.Calls())
}

func TestShowAnswer(t *testing.T) {
	h := newHarness(t, NounKind, testNouns, nil)
	e := h.engine

	e.InputChange("book", vocab.FieldSingular, "libra")
	e.Validate("book", "", true)
	require.Equal(t, Incorrect, e.Verdict("book", vocab.FieldSingular))
	h.clock.Advance(time.Second)

	e.ShowAnswer("book")
	assert.Equal(t, "libro", e.Input("book", vocab.FieldSingular))
	assert.Equal(t, "libri", e.Input("book", vocab.FieldPlural))
	assert.Equal(t, Correct, e.Verdict("book", vocab.FieldSingular))
	assert.Equal(t, Correct, e.Verdict("book", vocab.FieldPlural))
	assert.Empty(t, h.src.Calls())

	e.ShowAnswer("dog")
	assert.Empty(t, h.src.Calls())
}

func TestShowAnswerThenCommitRecordsNothing(t *testing.T) {
	h := newHarness(t, NounKind, testNouns, nil)
	e := h.engine

	e.ShowAnswer("house")
	f := e.KeyDown(CommitKey, "house", vocab.FieldPlural, 0)
	assert.Equal(t, Focus{ID: "book", Field: vocab.FieldSingular}, f)
	e.Validate("house", vocab.FieldPlural, true)

	assert.Equal(t, Correct, e.Verdict("house", vocab.FieldSingular))
	assert.Equal(t, Correct, e.Verdict("house", vocab.FieldPlural))
	assert.Empty(t, h.src.Calls())
	assert.Equal(t, stats.Record{}, e.Statistics("house", ""))
}

func TestShowAnswerThenCommitRecordsNothing_Verb(t *testing.T) {
	h := newHarness(t, VerbKind, testVerbs, nil)
	e := h.engine

	e.ShowAnswer("eat")
	f := e.KeyDown(CommitKey, "eat", vocab.FieldInfinitive, 0)
	assert.Equal(t, Focus{ID: "drink", Field: vocab.FieldInfinitive}, f)
	h.clock.Advance(TranslationWindow)
	e.Validate("eat", vocab.FieldInfinitive, true)

	assert.Equal(t, Correct, e.Verdict("eat", vocab.FieldInfinitive))
	assert.Empty(t, h.src.Calls())
	assert.Equal(t, stats.Record{}, e.Statistics("eat", ""))
}

func TestEditAfterShowAnswerRecordsAgain(t *testing.T) {
	h := newHarness(t, VerbKind, testVerbs, nil)
	e := h.engine

	e.ShowAnswer("eat")
	e.Validate("eat", vocab.FieldInfinitive, true)
	require.Empty(t, h.src.Calls())

	h.clock.Advance(TranslationWindow)
	e.InputChange("eat", vocab.FieldInfinitive, "mangiare")
	e.KeyDown(CommitKey, "eat", vocab.FieldInfinitive, 0)
	assert.Equal(t, []stats.RecordCall{{Key: stats.ItemKey("eat"), Correct: true}}, h.src.Calls())

	h.clock.Advance(TranslationWindow)
	e.ShowAnswer("eat")
	e.Clear("eat", vocab.FieldInfinitive)
	e.InputChange("eat", vocab.FieldInfinitive, "bere")
	e.Validate("eat", vocab.FieldInfinitive, true)
	assert.Len(t, h.src.Calls(), 2)
	assert.Equal(t, stats.Record{Correct: 1, Wrong: 1}, e.Statistics("eat", ""))
}

func TestShowAnswerPartOfItemRecordsNothing(t *testing.T) {
	h := newHarness(t, NounKind, testNouns, nil)
	e := h.engine

	e.ShowAnswer("tree")
	e.InputChange("tree", vocab.FieldSingular, "albero")
	e.Validate("tree", "", true)
	assert.Empty(t, h.src.Calls())
}

func TestClearDefersFocus(t *testing.T) {
	h := newHarness(t, NounKind, testNouns, nil)
	e := h.engine

	e.InputChange("tree", vocab.FieldPlural, "alberi")
	e.Validate("tree", "", true)
	e.Clear("tree", vocab.FieldPlural)

	assert.Equal(t, "", e.Input("tree", vocab.FieldPlural))
	assert.Equal(t, Unvalidated, e.Verdict("tree", vocab.FieldPlural))
	assert.Equal(t, Focus{ID: "house", Field: vocab.FieldSingular}, e.Focus())
	assert.Equal(t, 1, h.queue.Len())

	assert.Equal(t, 1, h.queue.Drain())
	assert.Equal(t, Focus{ID: "tree", Field: vocab.FieldPlural}, e.Focus())
}

func TestKeyDownMultiField(t *testing.T) {
	h := newHarness(t, NounKind, testNouns, nil)
	e := h.engine

	e.InputChange("house", vocab.FieldSingular, "casa")
	f := e.KeyDown(CommitKey, "house", vocab.FieldSingular, 0)
	assert.Equal(t, Focus{ID: "house", Field: vocab.FieldPlural}, f)
	assert.Equal(t, Unvalidated, e.Verdict("house", vocab.FieldSingular))
	assert.Empty(t, h.src.Calls())

	e.InputChange("house", vocab.FieldPlural, "case")
	f = e.KeyDown(CommitKey, "house", vocab.FieldPlural, 0)
	assert.Equal(t, Focus{ID: "book", Field: vocab.FieldSingular}, f)
	assert.Equal(t, Correct, e.Verdict("house", vocab.FieldSingular))
	assert.Equal(t, Correct, e.Verdict("house", vocab.FieldPlural))
	assert.Equal(t, []stats.RecordCall{{Key: stats.ItemKey("house"), Correct: true}}, h.src.Calls())
}

func TestKeyDownIgnoresOtherKeys(t *testing.T) {
	h := newHarness(t, NounKind, testNouns, nil)
	e := h.engine

	e.InputChange("house", vocab.FieldPlural, "case")
	f := e.KeyDown("a", "house", vocab.FieldPlural, 0)
	assert.Equal(t, Focus{ID: "house", Field: vocab.FieldSingular}, f)
	assert.Equal(t, Unvalidated, e.Verdict("house", vocab.FieldPlural))
}

func TestKeyDownEndOfList(t *testing.T) {
	h := newHarness(t, VerbKind, testVerbs, nil)
	e := h.engine

	e.InputChange("eat", vocab.FieldInfinitive, "mangiare")
	f := e.KeyDown(CommitKey, "eat", vocab.FieldInfinitive, 0)
	assert.Equal(t, Focus{ID: "drink", Field: vocab.FieldInfinitive}, f)

	e.InputChange("drink", vocab.FieldInfinitive, "bere")
	assert.NotPanics(t, func() {
		f = e.KeyDown(CommitKey, "drink", vocab.FieldInfinitive, 1)
	})
	assert.Equal(t, Focus{ID: "drink", Field: vocab.FieldInfinitive}, f)
	assert.Equal(t, Correct, e.Verdict("drink", vocab.FieldInfinitive))
	assert.Len(t, h.src.Calls(), 2)
}

func TestKeyDownFollowsVisibleOrder(t *testing.T) {
	h := newHarness(t, NounKind, testNouns, nil,
		WithOrdering(ordering.State{Mode: ordering.ModeAlphabetical}))
	e := h.engine

	// Book, House, Tree
	f := e.KeyDown(CommitKey, "book", vocab.FieldPlural, 0)
	assert.Equal(t, Focus{ID: "house", Field: vocab.FieldSingular}, f)

	// A stale index falls back to looking the item up.
	f = e.KeyDown(CommitKey, "house", vocab.FieldPlural, 0)
	assert.Equal(t, Focus{ID: "tree", Field: vocab.FieldSingular}, f)
}

func TestConjugationValidatesOnce(t *testing.T) {
	h := newHarness(t, ConjugationKind, testConjugations, nil)
	e := h.engine
	id := testConjugations[0].ID()
	io := string(vocab.PersonIo)

	e.InputChange(id, io, "sono")
	e.Validate(id, io, true)
	h.clock.Advance(time.Minute)
	e.Validate(id, io, true)

	key := stats.ConjugationKey("be", "indicativo", "presente", "io")
	assert.Equal(t, []stats.RecordCall{{Key: key, Correct: true}}, h.src.Calls())

	// Editing makes the field gradable again, once the window has passed.
	e.InputChange(id, io, "sonoo")
	e.Validate(id, io, true)
	assert.Len(t, h.src.Calls(), 2)
	assert.Equal(t, Incorrect, e.Verdict(id, io))
}

func TestConjugationWindow(t *testing.T) {
	h := newHarness(t, ConjugationKind, testConjugations, nil)
	e := h.engine
	id := testConjugations[0].ID()
	tu := string(vocab.PersonTu)

	e.InputChange(id, tu, "sai")
	e.Validate(id, tu, true)
	require.Equal(t, Incorrect, e.Verdict(id, tu))

	e.InputChange(id, tu, "sei")
	h.clock.Advance(200 * time.Millisecond)
	e.Validate(id, tu, true)
	assert.Equal(t, Unvalidated, e.Verdict(id, tu))
	assert.Len(t, h.src.Calls(), 1)

	h.clock.Advance(ConjugationWindow)
	e.Validate(id, tu, true)
	assert.Equal(t, Correct, e.Verdict(id, tu))
	assert.Len(t, h.src.Calls(), 2)
}

func TestConjugationIgnoresBlank(t *testing.T) {
	h := newHarness(t, ConjugationKind, testConjugations, nil)
	e := h.engine
	id := testConjugations[0].ID()

	e.InputChange(id, string(vocab.PersonNoi), "siamo")
	e.Validate(id, "", true)

	assert.Equal(t, Correct, e.Verdict(id, string(vocab.PersonNoi)))
	assert.Equal(t, Unvalidated, e.Verdict(id, string(vocab.PersonIo)))
	assert.Equal(t, []stats.RecordCall{
		{Key: stats.ConjugationKey("be", "indicativo", "presente", "noi"), Correct: true},
	}, h.src.Calls())
}

func TestConjugationKeyDown(t *testing.T) {
	h := newHarness(t, ConjugationKind, testConjugations, nil)
	e := h.engine
	present, imperfect := testConjugations[0].ID(), testConjugations[1].ID()

	e.InputChange(present, string(vocab.PersonIo), "sono")
	f := e.KeyDown(CommitKey, present, string(vocab.PersonIo), 0)
	assert.Equal(t, Focus{ID: present, Field: string(vocab.PersonTu)}, f)
	assert.Equal(t, Correct, e.Verdict(present, string(vocab.PersonIo)))
	// A person is graded on its own commit, not when the last person is reached.
	assert.Equal(t, []stats.RecordCall{{
		Key:     ConjugationKind.Key(testConjugations[0], string(vocab.PersonIo)),
		Correct: true,
	}}, h.src.Calls())

	f = e.KeyDown(CommitKey, present, string(vocab.PersonLoro), 0)
	assert.Equal(t, Focus{ID: imperfect, Field: string(vocab.PersonIo)}, f)
	assert.Len(t, h.src.Calls(), 1)
}

func TestStatisticsPassThrough(t *testing.T) {
	seed := map[stats.Key]stats.Record{
		stats.ConjugationKey("be", "indicativo", "presente", "io"): {Correct: 2, Wrong: 1},
		stats.ConjugationKey("be", "indicativo", "presente", "tu"): {Wrong: 4},
	}
	h := newHarness(t, ConjugationKind, testConjugations, seed)
	e := h.engine
	id := testConjugations[0].ID()

	assert.Equal(t, stats.Record{Correct: 2, Wrong: 1}, e.Statistics(id, "io"))
	assert.Equal(t, stats.Record{}, e.Statistics(id, "noi"))
	assert.Equal(t, stats.Record{Correct: 2, Wrong: 5}, e.Statistics(id, ""))
	assert.Equal(t, stats.Record{}, e.Statistics("missing", "io"))
}

func TestRecordFailureNotifies(t *testing.T) {
	h := newHarness(t, VerbKind, testVerbs, nil)
	e := h.engine
	h.src.SetRecordErr(errors.New("connection refused"))

	e.InputChange("eat", vocab.FieldInfinitive, "mangiare")
	e.Validate("eat", vocab.FieldInfinitive, true)

	assert.Equal(t, Correct, e.Verdict("eat", vocab.FieldInfinitive))
	n, ok := e.Notification()
	require.True(t, ok)
	assert.Contains(t, n.Message, "connection refused")
	assert.Equal(t, stats.Record{}, e.Statistics("eat", ""))

	h.clock.Advance(NotificationTTL - time.Millisecond)
	_, ok = e.Notification()
	assert.True(t, ok)

	h.clock.Advance(time.Millisecond)
	_, ok = e.Notification()
	assert.False(t, ok)

	// No retry happens on its own.
	assert.Len(t, h.src.Calls(), 1)
}

func TestBackgroundWrites(t *testing.T) {
	src := stats.NewMemorySource(nil)
	cache := stats.NewCache(src)
	items := make([]vocab.Verb, 20)
	for i := range items {
		items[i] = vocab.Verb{ID: string(rune('a' + i)), English: "verb", Infinitive: "fare"}
	}
	e := New(VerbKind, items, cache)

	for _, it := range items {
		e.InputChange(it.ID, vocab.FieldInfinitive, "fare")
		e.Validate(it.ID, vocab.FieldInfinitive, true)
	}
	e.Wait()

	assert.Len(t, src.Calls(), len(items))
	for _, it := range items {
		assert.Equal(t, stats.Record{Correct: 1}, cache.Get(stats.ItemKey(it.ID)))
	}
}

func visibleIDs[T any](e *Engine[T]) []string {
	var out []string
	for _, it := range e.Visible() {
		out = append(out, e.Kind().ID(it))
	}
	return out
}

func TestSortModes(t *testing.T) {
	seed := map[stats.Key]stats.Record{
		stats.ItemKey("house"): {Correct: 5, Wrong: 1},
		stats.ItemKey("book"):  {Correct: 1, Wrong: 3},
		stats.ItemKey("tree"):  {Wrong: 0},
	}
	h := newHarness(t, NounKind, testNouns, seed)
	e := h.engine

	assert.Equal(t, []string{"house", "book", "tree"}, visibleIDs(e))

	e.SetSortMode(ordering.ModeAlphabetical)
	assert.Equal(t, []string{"book", "house", "tree"}, visibleIDs(e))

	e.SetSortMode(ordering.ModeMostErrors)
	assert.Equal(t, []string{"book", "house", "tree"}, visibleIDs(e))

	e.SetSortMode(ordering.ModeWorstPerformance)
	assert.Equal(t, []string{"book", "tree", "house"}, visibleIDs(e))

	e.SetDisplayCap(2)
	assert.Equal(t, []string{"book", "tree"}, visibleIDs(e))
	assert.Equal(t, ordering.Cap(2), e.Ordering().Cap)

	e.SetDisplayCap(ordering.All)
	e.SetFilter("OUS")
	assert.Equal(t, []string{"house"}, visibleIDs(e))
	assert.Equal(t, "OUS", e.Filter())
}

func TestSortModeRandomDrawsSeed(t *testing.T) {
	h := newHarness(t, NounKind, testNouns, nil)
	e := h.engine

	e.SetSortMode(ordering.ModeRandom)
	st := e.Ordering()
	assert.Equal(t, ordering.ModeRandom, st.Mode)
	assert.ElementsMatch(t, []string{"house", "book", "tree"}, visibleIDs(e))

	// Reselecting random keeps the seed; only Refresh reshuffles.
	e.SetSortMode(ordering.ModeRandom)
	assert.Equal(t, st.Seed, e.Ordering().Seed)

	want := ordering.Apply(testNouns, NounKind.Prompt, func(vocab.Noun) stats.Record { return stats.Record{} }, st)
	assert.Equal(t, want, e.Visible())

	require.NoError(t, e.Refresh(context.Background()))
	seed := e.Ordering().Seed
	assert.GreaterOrEqual(t, seed, int64(0))
	assert.Less(t, seed, int64(233280))
}

func TestRefreshReloadsStatistics(t *testing.T) {
	h := newHarness(t, NounKind, testNouns, nil,
		WithOrdering(ordering.State{Mode: ordering.ModeMostErrors}))
	e := h.engine
	ctx := context.Background()
	assert.Equal(t, []string{"house", "book", "tree"}, visibleIDs(e))

	// Another session records mistakes for "tree".
	require.NoError(t, h.src.RecordAttempt(ctx, stats.ItemKey("tree"), false))
	assert.Equal(t, []string{"house", "book", "tree"}, visibleIDs(e))

	reads := h.src.ReadCalls
	require.NoError(t, e.Refresh(ctx))
	assert.Equal(t, reads+1, h.src.ReadCalls)
	assert.Equal(t, []string{"tree", "house", "book"}, visibleIDs(e))
}

func TestRefreshFailureKeepsOrder(t *testing.T) {
	h := newHarness(t, NounKind, testNouns, nil,
		WithOrdering(ordering.State{Mode: ordering.ModeWorstPerformance}))
	e := h.engine
	h.src.ReadErr = errors.New("offline")

	err := e.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offline")
	assert.Equal(t, []string{"house", "book", "tree"}, visibleIDs(e))
}

func TestRecordDoesNotReorder(t *testing.T) {
	h := newHarness(t, NounKind, testNouns, nil,
		WithOrdering(ordering.State{Mode: ordering.ModeMostErrors}))
	e := h.engine

	e.InputChange("tree", vocab.FieldSingular, "x")
	e.InputChange("tree", vocab.FieldPlural, "y")
	e.Validate("tree", "", true)

	assert.Equal(t, stats.Record{Wrong: 1}, e.Statistics("tree", ""))
	assert.Equal(t, []string{"house", "book", "tree"}, visibleIDs(e))
}

func TestProgress(t *testing.T) {
	h := newHarness(t, NounKind, testNouns, nil)
	e := h.engine

	e.ShowAnswer("house")
	e.InputChange("book", vocab.FieldSingular, "libra")
	e.Validate("book", "", false)

	correct, incorrect, total := e.Progress()
	assert.Equal(t, 2, correct)
	assert.Equal(t, 1, incorrect)
	assert.Equal(t, 6, total)
}

func TestSetItemsKeepsState(t *testing.T) {
	h := newHarness(t, NounKind, testNouns[:2], nil)
	e := h.engine

	e.InputChange("book", vocab.FieldSingular, "libro")
	e.SetItems(testNouns)

	assert.Equal(t, "libro", e.Input("book", vocab.FieldSingular))
	assert.Equal(t, []string{"house", "book", "tree"}, visibleIDs(e))
	_, ok := e.Item("tree")
	assert.True(t, ok)
}

func TestQueueDrainRunsNestedTasks(t *testing.T) {
	var q Queue
	var order []int
	q.Defer(func() {
		order = append(order, 1)
		q.Defer(func() { order = append(order, 3) })
	})
	q.Defer(func() { order = append(order, 2) })

	assert.Equal(t, 3, q.Drain())
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 0, q.Len())
}

func TestTimerSchedulerRunsLater(t *testing.T) {
	done := make(chan struct{})
	timerScheduler{}.Defer(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("deferred callback did not run")
	}
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "unvalidated", Unvalidated.String())
	assert.Equal(t, "correct", Correct.String())
	assert.Equal(t, "incorrect", Incorrect.String())
}
