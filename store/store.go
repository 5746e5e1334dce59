// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: store/store.go
// Summary: SQLite-backed persistence of per-file reading positions.

// Package store remembers where the reader left off in each file, keyed by
// absolute path. Persistence is best effort: the viewer works fine when
// the database cannot be opened, it just forgets positions between runs.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// Store is an open position database. A nil *Store is valid and remembers
// nothing, so callers never need to branch on open failure.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path, applying the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("store: read version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS positions (
			path       TEXT PRIMARY KEY,
			offset     INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("store: create schema: %w", err)
		}
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("store: set version: %w", err)
	}
	return nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Position returns the saved scroll offset for a file path.
func (s *Store) Position(path string) (int, bool) {
	if s == nil || s.db == nil {
		return 0, false
	}
	var offset int
	err := s.db.QueryRow("SELECT offset FROM positions WHERE path = ?", path).Scan(&offset)
	if err != nil {
		return 0, false
	}
	return offset, true
}

// SavePosition upserts the scroll offset for a file path.
func (s *Store) SavePosition(path string, offset int) error {
	if s == nil || s.db == nil {
		return nil
	}
	_, err := s.db.Exec(`
		INSERT INTO positions (path, offset, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET offset = excluded.offset, updated_at = excluded.updated_at`,
		path, offset, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("store: save %s: %w", path, err)
	}
	return nil
}

// Theme returns the last theme the reader used, if one was recorded.
func (s *Store) Theme() (string, bool) {
	if s == nil || s.db == nil {
		return "", false
	}
	var name string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = 'theme'").Scan(&name)
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

// SaveTheme records the theme to restore on the next run.
func (s *Store) SaveTheme(name string) error {
	if s == nil || s.db == nil {
		return nil
	}
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES ('theme', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, name)
	if err != nil {
		return fmt.Errorf("store: save theme: %w", err)
	}
	return nil
}

// Forget removes the saved position for a file path.
func (s *Store) Forget(path string) error {
	if s == nil || s.db == nil {
		return nil
	}
	if _, err := s.db.Exec("DELETE FROM positions WHERE path = ?", path); err != nil {
		return fmt.Errorf("store: forget %s: %w", path, err)
	}
	return nil
}
