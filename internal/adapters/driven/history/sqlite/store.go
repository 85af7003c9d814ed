// Package sqlite provides a SQLite-backed search history store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/kotae-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// schema holds the history table definition. The log is append-only.
const schema = `
	CREATE TABLE IF NOT EXISTS search_history (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		query         TEXT    NOT NULL,
		results       INTEGER NOT NULL,
		fallback_used INTEGER NOT NULL,
		elapsed_ms    INTEGER NOT NULL,
		at            INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_search_history_at ON search_history(at DESC);
`

// Store is a SQLite-based implementation of driven.HistoryStore.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new history store at the specified path.
// If path is empty, defaults to ~/.kotae/data/history.db.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".kotae", "data", "history.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Record appends one entry to the log.
func (s *Store) Record(ctx context.Context, entry driven.HistoryEntry) error {
	at := entry.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO search_history (query, results, fallback_used, elapsed_ms, at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.Query,
		entry.Results,
		boolToInt(entry.FallbackUsed),
		entry.Elapsed.Milliseconds(),
		at.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("recording history entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]driven.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT query, results, fallback_used, elapsed_ms, at
		FROM search_history
		ORDER BY at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []driven.HistoryEntry
	for rows.Next() {
		var entry driven.HistoryEntry
		var fallback, elapsedMS, atMS int64
		if err := rows.Scan(&entry.Query, &entry.Results, &fallback, &elapsedMS, &atMS); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entry.FallbackUsed = fallback != 0
		entry.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		entry.At = time.UnixMilli(atMS)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}

	return entries, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
