package stats

import (
	"context"
	"strings"
)

// Key addresses one statistics counter: an item, or for conjugation practice
// an item+mood+tense+person composite.
type Key struct {
	Item   string
	Mood   string
	Tense  string
	Person string
}

// ItemKey builds a key for per-item statistics.
func ItemKey(id string) Key {
	return Key{Item: id}
}

// ConjugationKey builds a key for one person of a conjugation table.
func ConjugationKey(verbID, mood, tense, person string) Key {
	return Key{Item: verbID, Mood: mood, Tense: tense, Person: person}
}

// String renders the key as a stable "/"-joined path, dropping empty parts
// after the item.
func (k Key) String() string {
	parts := []string{k.Item}
	for _, p := range []string{k.Mood, k.Tense, k.Person} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "/")
}

// Record is a pair of attempt counters.
type Record struct {
	Correct int
	Wrong   int
}

// Score is wrong minus correct; higher means worse performance.
func (r Record) Score() int {
	return r.Wrong - r.Correct
}

// Attempts returns the total number of graded attempts.
func (r Record) Attempts() int {
	return r.Correct + r.Wrong
}

// Source is the remote statistics store for one practice kind.
type Source interface {
	// Statistics returns every counter the store holds for the kind.
	Statistics(ctx context.Context) (map[Key]Record, error)

	// RecordAttempt increments the correct or wrong counter of key.
	RecordAttempt(ctx context.Context, key Key, correct bool) error

	// ResetStatistics clears all counters of a top-level item.
	ResetStatistics(ctx context.Context, item string) error
}
