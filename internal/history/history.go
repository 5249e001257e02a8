// Package history persists the selections made through option fields to a
// local SQLite database so a host can show recently used values.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver, WAL-friendly

	appErrors "optionfield/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS selections (
	id TEXT PRIMARY KEY,
	field TEXT NOT NULL,
	value TEXT NOT NULL,
	silent INTEGER NOT NULL DEFAULT 0,
	custom INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_selections_field_created
	ON selections(field, created_at);
`

// timeLayout is fixed width so created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Event is one selection emitted by a field.
type Event struct {
	ID        string
	Field     string
	Value     string
	Silent    bool
	Custom    bool
	CreatedAt time.Time
}

// Store records selection events.
type Store struct {
	db     *sql.DB
	mu     sync.Mutex
	closed bool
	now    func() time.Time
}

// Open creates (or reuses) the database at path and ensures the schema.
// ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, appErrors.New(appErrors.CodeStorageFailed, "history path is required", nil)
	}
	if trimmed != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
			return nil, appErrors.New(appErrors.CodeStorageFailed, "create history directory", err)
		}
	}

	db, err := sql.Open("sqlite", buildDSN(trimmed))
	if err != nil {
		return nil, appErrors.New(appErrors.CodeStorageFailed, "open history db", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, appErrors.New(appErrors.CodeStorageFailed, "ping history db", err)
	}
	if trimmed != ":memory:" {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, appErrors.New(appErrors.CodeStorageFailed, "enable WAL mode", err)
		}
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=3000"); err != nil {
		_ = db.Close()
		return nil, appErrors.New(appErrors.CodeStorageFailed, "set busy timeout", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, appErrors.New(appErrors.CodeStorageFailed, "create schema", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func buildDSN(path string) string {
	if path == ":memory:" {
		return path
	}
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(path),
	}
	return u.String()
}

// Record stores ev, filling in ID and CreatedAt when they are empty, and
// returns the stored event.
func (s *Store) Record(ctx context.Context, ev Event) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Event{}, errClosed()
	}
	if strings.TrimSpace(ev.Field) == "" {
		return Event{}, appErrors.New(appErrors.CodeStorageFailed, "event field is required", nil)
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = s.now()
	}
	ev.CreatedAt = ev.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO selections (id, field, value, silent, custom, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, ev.ID, ev.Field, ev.Value, boolToInt(ev.Silent), boolToInt(ev.Custom),
		ev.CreatedAt.Format(timeLayout))
	if err != nil {
		return Event{}, appErrors.New(appErrors.CodeStorageFailed, "record selection", err)
	}
	return ev, nil
}

// Recent returns up to limit user-driven selections for field, newest first.
// Silent clears are never returned. limit <= 0 means no limit.
func (s *Store) Recent(ctx context.Context, field string, limit int) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errClosed()
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, field, value, silent, custom, created_at
		FROM selections
		WHERE field = ? AND silent = 0
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, field, limit)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeStorageFailed, "query recent selections", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			ev             Event
			silent, custom int
			created        string
		)
		if err := rows.Scan(&ev.ID, &ev.Field, &ev.Value, &silent, &custom, &created); err != nil {
			return nil, appErrors.New(appErrors.CodeStorageFailed, "scan selection", err)
		}
		ev.Silent = silent != 0
		ev.Custom = custom != 0
		ev.CreatedAt, _ = time.Parse(timeLayout, created)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.New(appErrors.CodeStorageFailed, "iterate selections", err)
	}
	return events, nil
}

// Count returns how many selections were recorded for field.
func (s *Store) Count(ctx context.Context, field string, includeSilent bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, errClosed()
	}
	query := `SELECT COUNT(*) FROM selections WHERE field = ?`
	if !includeSilent {
		query += ` AND silent = 0`
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, field).Scan(&n); err != nil {
		return 0, appErrors.New(appErrors.CodeStorageFailed, "count selections", err)
	}
	return n, nil
}

// Close releases the database. It is safe to call more than once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close history db: %w", err)
	}
	return nil
}

func errClosed() error {
	return appErrors.New(appErrors.CodeStorageFailed, "history store is closed", nil)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
