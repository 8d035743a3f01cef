// Package kvstore implements the local durable key-value layer. Values are
// JSON payloads keyed by string, persisted to a single SQLite table so the
// server state survives restarts without an external database.
package kvstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// ErrAbsent is returned by Get when no usable value exists for a key. A key
// with an empty, sentinel or unparseable payload is reported absent, not
// failed: callers always fall back to their defaults.
var ErrAbsent = errors.New("kvstore: value absent")

// Store is a durable string-keyed JSON store backed by SQLite.
type Store struct {
	db  *sql.DB
	log zerolog.Logger

	mu      sync.Mutex
	pending sync.WaitGroup
}

// Open creates or opens the store at path, creating parent directories as
// needed.
func Open(path string, log zerolog.Logger) (*Store, error) {
	if path == "" {
		path = "klinikos.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &Store{db: db, log: log.With().Str("component", "kvstore").Logger()}, nil
}

// Get unmarshals the payload stored under key into dest. Missing keys, empty
// payloads, the literal sentinels "undefined" and "null", and payloads that
// fail to unmarshal all yield ErrAbsent; a corrupt payload is additionally
// deleted so the next read is a clean miss.
func (s *Store) Get(ctx context.Context, key string, dest any) error {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAbsent
	}
	if err != nil {
		return fmt.Errorf("select %s: %w", key, err)
	}
	switch string(payload) {
	case "", "undefined", "null":
		return ErrAbsent
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		s.log.Warn().Str("key", key).Err(err).Msg("clearing corrupt payload")
		if _, derr := s.db.ExecContext(ctx, `DELETE FROM state WHERE key = ?`, key); derr != nil {
			s.log.Error().Str("key", key).Err(derr).Msg("failed to clear corrupt payload")
		}
		return ErrAbsent
	}
	return nil
}

// Put marshals value and writes it under key synchronously.
func (s *Store) Put(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO state (key, payload) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`,
		key, payload); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// PutAsync writes value under key on a background goroutine. Reads reflect
// in-memory state immediately; the durable copy catches up. Errors are
// logged, not surfaced.
func (s *Store) PutAsync(key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.log.Error().Str("key", key).Err(err).Msg("marshal for async write")
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, err := s.db.Exec(
			`INSERT INTO state (key, payload) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`,
			key, payload); err != nil {
			s.log.Error().Str("key", key).Err(err).Msg("async write failed")
		}
	}()
}

// Delete removes the value under key. Deleting a missing key is not an
// error.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close waits for pending async writes and closes the database.
func (s *Store) Close() error {
	s.pending.Wait()
	return s.db.Close()
}

// putRaw writes an arbitrary payload without marshaling. Test hook for
// exercising corrupt and sentinel payloads.
func (s *Store) putRaw(ctx context.Context, key string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO state (key, payload) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`,
		key, payload)
	return err
}
