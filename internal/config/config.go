// Package config holds application settings read from ITALIANO_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/language"

	"github.com/abhisek/italiano/internal/ordering"
	"github.com/abhisek/italiano/internal/store"
	"github.com/abhisek/italiano/internal/vocab"
)

// Config is the resolved application configuration.
type Config struct {
	DBPath     string
	LogLevel   slog.Level
	LogFile    string // empty discards logs while the TUI owns the terminal
	Sort       ordering.Mode
	DisplayCap ordering.Cap
	Locale     language.Tag
	MoodTenses []vocab.MoodTense
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:   slog.LevelInfo,
		Sort:       ordering.ModeNone,
		DisplayCap: ordering.All,
		Locale:     language.English,
		MoodTenses: vocab.DefaultMoodTenses,
	}
}

// ConfigFromEnv overlays ITALIANO_* variables onto the defaults. Malformed
// values are collected and returned together; well-formed ones still apply.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	var errs []error

	cfg.DBPath = os.Getenv("ITALIANO_DB")
	cfg.LogFile = os.Getenv("ITALIANO_LOG_FILE")

	if v := os.Getenv("ITALIANO_LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, fmt.Errorf("ITALIANO_LOG_LEVEL: %w", err))
		}
	}
	if v := os.Getenv("ITALIANO_SORT"); v != "" {
		m, err := ordering.ParseMode(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("ITALIANO_SORT: %w", err))
		} else {
			cfg.Sort = m
		}
	}
	if v := os.Getenv("ITALIANO_DISPLAY_CAP"); v != "" {
		c, err := ordering.ParseCap(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("ITALIANO_DISPLAY_CAP: %w", err))
		} else {
			cfg.DisplayCap = c
		}
	}
	if v := os.Getenv("ITALIANO_LOCALE"); v != "" {
		tag, err := language.Parse(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("ITALIANO_LOCALE: %w", err))
		} else {
			cfg.Locale = tag
		}
	}
	if v := os.Getenv("ITALIANO_TENSES"); v != "" {
		mts, err := parseMoodTenses(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("ITALIANO_TENSES: %w", err))
		} else {
			cfg.MoodTenses = mts
		}
	}

	return cfg, errors.Join(errs...)
}

func parseMoodTenses(s string) ([]vocab.MoodTense, error) {
	var out []vocab.MoodTense
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		mt, err := vocab.ParseMoodTense(part)
		if err != nil {
			return nil, err
		}
		out = append(out, mt)
	}
	if len(out) == 0 {
		return nil, errors.New("no mood/tense given")
	}
	return out, nil
}

// ResolveDBPath returns the database path: explicit flag, then
// ITALIANO_DB, then the XDG default.
func (c Config) ResolveDBPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	return store.DefaultDBPath()
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	for _, mt := range c.MoodTenses {
		if !mt.Valid() {
			return fmt.Errorf("invalid mood/tense %s", mt)
		}
	}
	if c.Locale == language.Und {
		return errors.New("locale must not be empty")
	}
	return nil
}
