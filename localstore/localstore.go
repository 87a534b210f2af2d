// Package localstore persists the small client-side state the application
// keeps between runs: the access/refresh token pair and UI preferences. It
// backs the api.TokenStore interface with a local SQLite file.
package localstore

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyViewMode     = "forum_view_mode"
)

// ViewMode is the persisted forum listing preference.
type ViewMode string

const (
	ViewModeCards ViewMode = "cards"
	ViewModeTable ViewMode = "table"
)

type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (or creates) the settings database at path. Use ":memory:" for
// a throwaway store.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("localstore path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(key string) string {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return ""
	}
	return value
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (s *Store) delete(keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
			return err
		}
	}
	return nil
}

// ==================== api.TokenStore ====================

func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(keyAccessToken)
}

func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(keyRefreshToken)
}

func (s *Store) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.set(keyAccessToken, access); err != nil {
		return err
	}
	if refresh != "" {
		return s.set(keyRefreshToken, refresh)
	}
	return nil
}

func (s *Store) ClearTokens() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delete(keyAccessToken, keyRefreshToken)
}

// ==================== Preferences ====================

// ViewMode returns the persisted forum view mode, defaulting to the table
// layout when nothing valid is stored.
func (s *Store) ViewMode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch ViewMode(s.get(keyViewMode)) {
	case ViewModeCards:
		return ViewModeCards
	case ViewModeTable:
		return ViewModeTable
	}
	return ViewModeTable
}

func (s *Store) SetViewMode(mode ViewMode) error {
	if mode != ViewModeCards && mode != ViewModeTable {
		return fmt.Errorf("invalid view mode %q", mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(keyViewMode, string(mode))
}
