package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/italiano/internal/app"
	"github.com/abhisek/italiano/internal/config"
	"github.com/abhisek/italiano/internal/explain"
	"github.com/abhisek/italiano/internal/llm"
	"github.com/abhisek/italiano/internal/logging"
	"github.com/abhisek/italiano/internal/ordering"
	"github.com/abhisek/italiano/internal/screens/practice"
	"github.com/abhisek/italiano/internal/stats"
	"github.com/abhisek/italiano/internal/store"
	"github.com/abhisek/italiano/internal/vocab"
)

// runApp opens the store, builds dependencies, and launches the TUI. A
// non-empty start kind skips the menu.
func runApp(cmd *cobra.Command, start vocab.Kind) error {
	ctx := cmd.Context()

	cfg, err := config.ConfigFromEnv()
	if err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	logger, closer, err := logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer closer.Close()

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	logger.Info("store opened", "path", dbPath, "session", st.SessionID())

	eventRepo := st.EventRepo()
	deps := practice.Deps{
		Vocab:      st.VocabRepo(),
		Source:     func(k vocab.Kind) stats.Source { return st.StatsRepo(k) },
		Order:      ordering.State{Mode: cfg.Sort, Cap: cfg.DisplayCap},
		Locale:     cfg.Locale,
		MoodTenses: cfg.MoodTenses,
		Logger:     logger,
	}

	llmCfg := llm.ResolveConfig()
	if llmCfg.Enabled() {
		provider, err := llm.NewProvider(ctx, llmCfg, eventRepo, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Explanations will be unavailable.")
		} else {
			deps.Explain = explain.NewService(provider, explain.DefaultConfig())
		}
	}

	return app.Run(app.Options{Practice: deps, Events: eventRepo, Start: start})
}
