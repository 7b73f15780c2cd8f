// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists lexical service responses in SQLite so that
// repeated runs over the same topics do not re-query the service.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/essay-engine/pkg/types"
)

const (
	dbFile = "lexicon.db"

	// timeFormat is fixed-width so fetched_at sorts chronologically as text.
	timeFormat = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store is an on-disk cache of word lists keyed by query.
type Store struct {
	db   *sql.DB
	path string
	ttl  time.Duration
	now  func() time.Time
}

// Stats summarizes the cache contents.
type Stats struct {
	Path    string    `json:"path" yaml:"path"`
	Entries int       `json:"entries" yaml:"entries"`
	Expired int       `json:"expired" yaml:"expired"`
	Oldest  time.Time `json:"oldest,omitempty" yaml:"oldest,omitempty"`
	Newest  time.Time `json:"newest,omitempty" yaml:"newest,omitempty"`
}

// Open opens or creates the cache database at cfg.Dir/lexicon.db and
// creates the schema if it does not exist.
func Open(cfg types.CacheConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("cache directory not configured")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	path := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db, path: path, ttl: cfg.TTL, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS responses (
			key TEXT PRIMARY KEY,
			words TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_responses_fetched_at ON responses(fetched_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Get returns the cached words for key. Entries older than the TTL are
// reported as misses.
func (s *Store) Get(ctx context.Context, key string) ([]string, bool, error) {
	var wordsJSON, fetchedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT words, fetched_at FROM responses WHERE key = ?`, key,
	).Scan(&wordsJSON, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying cache: %w", err)
	}

	if s.expired(fetchedAt) {
		return nil, false, nil
	}

	var words []string
	if err := json.Unmarshal([]byte(wordsJSON), &words); err != nil {
		return nil, false, fmt.Errorf("decoding cached words for %s: %w", key, err)
	}
	return words, true, nil
}

// Put stores words for key, replacing any earlier entry.
func (s *Store) Put(ctx context.Context, key string, words []string) error {
	if words == nil {
		words = []string{}
	}
	wordsJSON, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("encoding words: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO responses (key, words, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET words=excluded.words, fetched_at=excluded.fetched_at`,
		key, string(wordsJSON), s.now().UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Stats counts entries and reports the fetch time range.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	st := Stats{Path: s.path}

	rows, err := s.db.QueryContext(ctx, `SELECT fetched_at FROM responses ORDER BY fetched_at`)
	if err != nil {
		return st, fmt.Errorf("querying cache stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var fetchedAt string
		if err := rows.Scan(&fetchedAt); err != nil {
			return st, fmt.Errorf("scanning cache row: %w", err)
		}
		st.Entries++
		if s.expired(fetchedAt) {
			st.Expired++
		}
		t, err := time.Parse(timeFormat, fetchedAt)
		if err != nil {
			continue
		}
		if st.Oldest.IsZero() {
			st.Oldest = t
		}
		st.Newest = t
	}
	return st, rows.Err()
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM responses`)
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	return res.RowsAffected()
}

// Prune deletes entries older than the TTL. It is a no-op without a TTL.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-s.ttl).UTC().Format(timeFormat)
	res, err := s.db.ExecContext(ctx, `DELETE FROM responses WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) expired(fetchedAt string) bool {
	if s.ttl <= 0 {
		return false
	}
	t, err := time.Parse(timeFormat, fetchedAt)
	if err != nil {
		return true
	}
	return s.now().Sub(t) > s.ttl
}
