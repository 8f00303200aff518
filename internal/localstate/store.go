// Package localstate persists the small pieces of client-side state that
// survive restarts: the access/refresh credential pair and the explicit
// theme preference, each under a well-known key.
package localstate

import (
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Well-known storage keys. Absent by default.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyTheme        = "theme"
)

// Store is the key-value surface consumers program against. Reads report
// presence rather than failing; write failures are returned so callers can
// decide whether to degrade.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// FileStore is a Store backed by a single-table SQLite database file.
type FileStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens (creating if needed) the state database at path.
func Open(path string, logger *zap.Logger) (*FileStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	// A single connection avoids SQLITE_BUSY on concurrent writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS client_state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize state schema: %w", err)
	}

	return &FileStore{db: db, logger: logger}, nil
}

// Get returns the value stored under key and whether it was present.
// Read failures are logged and reported as absence.
func (s *FileStore) Get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM client_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		s.logger.Warn("failed to read client state", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, true
}

// Set stores value under key, replacing any previous value.
func (s *FileStore) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO client_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write client state %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *FileStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM client_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete client state %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *FileStore) Close() error {
	return s.db.Close()
}
