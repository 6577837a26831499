package practice

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/abhisek/italiano/internal/explain"
	"github.com/abhisek/italiano/internal/ordering"
	prac "github.com/abhisek/italiano/internal/practice"
	"github.com/abhisek/italiano/internal/screen"
	"github.com/abhisek/italiano/internal/stats"
	"github.com/abhisek/italiano/internal/store"
	"github.com/abhisek/italiano/internal/vocab"
)

// Deps are the collaborators of a practice screen.
type Deps struct {
	Vocab      store.VocabRepo
	Source     func(vocab.Kind) stats.Source
	Explain    *explain.Service
	Order      ordering.State
	Locale     language.Tag
	MoodTenses []vocab.MoodTense
	Logger     *slog.Logger

	// EngineOptions are appended to the options the screen passes to the
	// engine.
	EngineOptions []prac.Option
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// Open loads the items of kind and its statistics and returns a ready
// screen. A statistics read failure is not fatal: the screen starts with
// zero counters and shows a notification.
func Open(ctx context.Context, kind vocab.Kind, d Deps) (screen.Screen, error) {
	cache := stats.NewCache(d.Source(kind))
	statsErr := cache.Refetch(ctx)
	if statsErr != nil {
		d.logger().Warn("statistics load failed", "kind", string(kind), "error", statsErr)
	}

	var s interface {
		screen.Screen
		notify(string)
	}
	switch kind {
	case vocab.KindNoun:
		items, err := d.Vocab.Nouns(ctx)
		if err != nil {
			return nil, fmt.Errorf("load nouns: %w", err)
		}
		s = newScreen(prac.NounKind, items, cache, d)
	case vocab.KindAdjective:
		items, err := d.Vocab.Adjectives(ctx)
		if err != nil {
			return nil, fmt.Errorf("load adjectives: %w", err)
		}
		s = newScreen(prac.AdjectiveKind, items, cache, d)
	case vocab.KindVerb:
		items, err := d.Vocab.Verbs(ctx)
		if err != nil {
			return nil, fmt.Errorf("load verbs: %w", err)
		}
		s = newScreen(prac.VerbKind, items, cache, d)
	case vocab.KindConjugation:
		items, err := d.Vocab.Conjugations(ctx, d.MoodTenses)
		if err != nil {
			return nil, fmt.Errorf("load conjugations: %w", err)
		}
		s = newScreen(prac.ConjugationKind, items, cache, d)
	default:
		return nil, fmt.Errorf("unknown practice kind %q", kind)
	}

	if statsErr != nil {
		s.notify("Could not load statistics: " + statsErr.Error())
	}
	return s, nil
}
