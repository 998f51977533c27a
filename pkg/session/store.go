// Package session persists per-visitor console state to SQLite: the
// landing-seen flag consumed by the gate and API tokens for the intel client.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database holding visitor state.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and ensures the schema
// exists.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("session: database path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("session: ensure dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("session: open: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS visitors (
    visitor_id TEXT PRIMARY KEY,
    landing_seen INTEGER NOT NULL DEFAULT 0,
    seen_at INTEGER
);
CREATE TABLE IF NOT EXISTS api_tokens (
    visitor_id TEXT PRIMARY KEY,
    token TEXT NOT NULL,
    issued_at INTEGER NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("session: init schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// LandingSeen reports whether the visitor completed the landing page. Unknown
// visitors read false.
func (s *Store) LandingSeen(ctx context.Context, visitorID string) (bool, error) {
	if visitorID == "" {
		return false, errors.New("session: visitor id is required")
	}
	var seen int
	err := s.db.QueryRowContext(ctx,
		`SELECT landing_seen FROM visitors WHERE visitor_id = ?`, visitorID,
	).Scan(&seen)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("session: read landing flag: %w", err)
	}
	return seen != 0, nil
}

// SetLandingSeen marks the visitor as having completed the landing page.
func (s *Store) SetLandingSeen(ctx context.Context, visitorID string) error {
	if visitorID == "" {
		return errors.New("session: visitor id is required")
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO visitors (visitor_id, landing_seen, seen_at) VALUES (?, 1, ?)
ON CONFLICT(visitor_id) DO UPDATE SET landing_seen = 1, seen_at = excluded.seen_at`,
		visitorID, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("session: set landing flag: %w", err)
	}
	return nil
}

// Token returns the stored API token for the visitor, empty when none exists.
func (s *Store) Token(ctx context.Context, visitorID string) (string, error) {
	if visitorID == "" {
		return "", errors.New("session: visitor id is required")
	}
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT token FROM api_tokens WHERE visitor_id = ?`, visitorID,
	).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: read token: %w", err)
	}
	return token, nil
}

// SaveToken stores or replaces the visitor's API token.
func (s *Store) SaveToken(ctx context.Context, visitorID, token string) error {
	if visitorID == "" {
		return errors.New("session: visitor id is required")
	}
	if token == "" {
		return errors.New("session: token is required")
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO api_tokens (visitor_id, token, issued_at) VALUES (?, ?, ?)
ON CONFLICT(visitor_id) DO UPDATE SET token = excluded.token, issued_at = excluded.issued_at`,
		visitorID, token, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("session: save token: %w", err)
	}
	return nil
}
