// Package storage provides SQLite-based persistence for game state and
// finished games. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the CLI keeps its database.
const DefaultPath = "~/.kinderwordle/kinderwordle.db"

// Keys under which a game in progress is persisted.
const (
	KeySecret  = "secret"
	KeyHistory = "history"
	KeyGameID  = "game_id"
	KeyPack    = "pack"
)

// GameKeys lists every key of a game in progress.
var GameKeys = []string{KeySecret, KeyHistory, KeyGameID, KeyPack}

// LocalNamespace is the namespace used for games played on this machine.
const LocalNamespace = "local"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// SQLite has a single writer; one connection keeps transactions from
	// failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			namespace TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (namespace, key)
		);

		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL UNIQUE,
			namespace TEXT NOT NULL,
			pack_id TEXT NOT NULL,
			secret TEXT NOT NULL,
			attempts INTEGER NOT NULL,
			won INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_namespace ON results(namespace);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Persist stores value as JSON under (namespace, key), replacing any
// previous value.
func (s *Store) Persist(namespace, key string, value any) error {
	return s.PersistAll(namespace, map[string]any{key: value})
}

// PersistAll stores several values of one namespace in a single
// transaction: either all of them are written or none.
func (s *Store) PersistAll(namespace string, values map[string]any) error {
	encoded := make(map[string]string, len(values))
	for key, value := range values {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("storage: cannot encode %s: %w", key, err)
		}
		encoded[key] = string(data)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	for key, data := range encoded {
		_, err := tx.Exec(
			`INSERT INTO kv (namespace, key, value) VALUES (?, ?, ?)
			 ON CONFLICT(namespace, key) DO UPDATE SET
			   value = excluded.value,
			   updated_at = CURRENT_TIMESTAMP`,
			namespace, key, data,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot persist %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit %s: %w", namespace, err)
	}
	return nil
}

// Restore decodes the value stored under (namespace, key) into dst.
// It reports false when nothing (or JSON null) is stored.
func (s *Store) Restore(namespace, key string, dst any) (bool, error) {
	var data string
	err := s.db.QueryRow(
		"SELECT value FROM kv WHERE namespace = ? AND key = ?",
		namespace, key,
	).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: cannot query %s: %w", key, err)
	}
	if data == "null" {
		return false, nil
	}

	if err := json.Unmarshal([]byte(data), dst); err != nil {
		return false, fmt.Errorf("storage: cannot decode %s: %w", key, err)
	}
	return true, nil
}

// Forget deletes the values stored under keys of namespace.
func (s *Store) Forget(namespace string, keys ...string) error {
	for _, key := range keys {
		_, err := s.db.Exec("DELETE FROM kv WHERE namespace = ? AND key = ?", namespace, key)
		if err != nil {
			return fmt.Errorf("storage: cannot forget %s: %w", key, err)
		}
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
