// Package cache keeps a local snapshot of the last fetched board so the UI
// renders instantly on startup, before the first network round-trip. The
// server stays authoritative: every successful fetch overwrites the
// snapshot, and the snapshot is never written back to the server.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/quadroqm/quadro/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key        TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	fetched_at TIMESTAMP NOT NULL
);
`

const tasksKey = "tasks"

// Snapshot is the on-disk board cache.
type Snapshot struct {
	db *sql.DB
}

// DefaultPath returns the standard cache location under the user's home
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".quadro", "cache.db"), nil
}

// Open creates or opens the snapshot database. Use ":memory:" in tests.
func Open(path string) (*Snapshot, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Snapshot{db: db}, nil
}

// Close releases the database handle.
func (s *Snapshot) Close() error {
	return s.db.Close()
}

// SaveTasks overwrites the stored board with a fresh fetch.
func (s *Snapshot) SaveTasks(ctx context.Context, tasks []*models.Task) error {
	payload, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		tasksKey, payload, time.Now().UTC())
	return err
}

// LoadTasks returns the stored board and when it was fetched. A missing
// snapshot returns an empty list and a zero time, not an error.
func (s *Snapshot) LoadTasks(ctx context.Context) ([]*models.Task, time.Time, error) {
	var payload []byte
	var fetchedAt time.Time
	err := s.db.QueryRowContext(ctx,
		"SELECT payload, fetched_at FROM snapshots WHERE key = ?", tasksKey).
		Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	var tasks []*models.Task
	if err := json.Unmarshal(payload, &tasks); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return tasks, fetchedAt, nil
}
