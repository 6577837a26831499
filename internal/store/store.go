// Package store persists vocabulary, attempt statistics and the event log in
// a single SQLite file. Queries are built with ent's SQL builder and the
// schema is migrated with ent's migrate package; there is no generated
// client.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/italiano/internal/vocab"

	_ "modernc.org/sqlite"
)

// pragmas are set on every pooled connection through the DSN.
var pragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"foreign_keys(1)",
	"synchronous(NORMAL)",
}

type Store struct {
	db  *sql.DB
	drv *entsql.Driver

	// session tags the attempt events written by this process.
	session string
}

// Open opens (creating if needed) the database at dsn and migrates it.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Store{
		db:      db,
		drv:     entsql.OpenDB(dialect.SQLite, db),
		session: uuid.NewString(),
	}
	if err := s.migrate(context.Background()); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}
	return s, nil
}

func withPragmas(dsn string) string {
	q := make(url.Values)
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + q.Encode()
}

func (s *Store) DB() *sql.DB { return s.db }

// SessionID identifies this process in attempt events.
func (s *Store) SessionID() string { return s.session }

func (s *Store) Close() error { return s.drv.Close() }

func (s *Store) VocabRepo() VocabRepo { return &vocabRepo{db: s.db} }

// StatsRepo returns the statistics of one practice kind.
func (s *Store) StatsRepo(kind vocab.Kind) *StatsRepo {
	return &StatsRepo{kind: kind, db: s.db, sessionID: s.session}
}

func (s *Store) EventRepo() EventRepo { return &eventRepo{db: s.db} }

// DefaultDBPath is $XDG_DATA_HOME/italiano/italiano.db, falling back to
// ~/.local/share. The parent directory is created.
func DefaultDBPath() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	p := filepath.Join(base, "italiano", "italiano.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
