package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/italiano/internal/config"
	"github.com/abhisek/italiano/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "italiano",
	Short: "Practice Italian vocabulary in the terminal",
	Long:  "italiano drills nouns, adjectives, verbs and conjugations and keeps per-word statistics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ITALIANO_DB env var)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ITALIANO_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	flag, _ := cmd.Flags().GetString("db")
	p, err := cfg.ResolveDBPath(flag)
	if err != nil {
		return "", err
	}
	return p, store.EnsureDir(p)
}

// openStore loads the environment configuration and opens the database.
func openStore(cmd *cobra.Command) (*store.Store, config.Config, error) {
	cfg, err := config.ConfigFromEnv()
	if err != nil {
		return nil, cfg, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, cfg, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, cfg, fmt.Errorf("open database: %w", err)
	}
	return st, cfg, nil
}
