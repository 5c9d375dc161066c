package storage

import (
	"fmt"
	"time"
)

// Result is one finished game.
type Result struct {
	ID        int64
	GameID    string
	Namespace string
	PackID    string
	Secret    string
	Attempts  int
	Won       bool
	CreatedAt time.Time
}

// Stats contains aggregated statistics for a namespace.
type Stats struct {
	Played        int
	Won           int
	CurrentStreak int
	MaxStreak     int
	Distribution  map[int]int // attempts -> number of games won in that many
	LastPlayed    time.Time
}

// WinRate returns the percentage of games won, 0 when nothing was played.
func (st Stats) WinRate() int {
	if st.Played == 0 {
		return 0
	}
	return st.Won * 100 / st.Played
}

// SaveResult records a finished game. Saving the same game ID twice is a
// no-op and returns ID 0.
func (s *Store) SaveResult(r Result) (int64, error) {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO results (game_id, namespace, pack_id, secret, attempts, won)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Namespace, r.PackID, r.Secret, r.Attempts, r.Won,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, nil
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentResults retrieves the most recent finished games, newest first.
func (s *Store) RecentResults(namespace string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT id, game_id, namespace, pack_id, secret, attempts, won, created_at
		 FROM results
		 WHERE namespace = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		namespace, limit,
	)
}

// Stats aggregates every finished game of a namespace.
func (s *Store) Stats(namespace string) (*Stats, error) {
	results, err := s.queryResults(
		`SELECT id, game_id, namespace, pack_id, secret, attempts, won, created_at
		 FROM results
		 WHERE namespace = ?
		 ORDER BY id ASC`,
		namespace,
	)
	if err != nil {
		return nil, err
	}

	st := &Stats{Distribution: make(map[int]int)}
	streak := 0
	for _, r := range results {
		st.Played++
		if r.Won {
			st.Won++
			st.Distribution[r.Attempts]++
			streak++
			st.MaxStreak = max(st.MaxStreak, streak)
		} else {
			streak = 0
		}
		st.LastPlayed = r.CreatedAt
	}
	st.CurrentStreak = streak

	return st, nil
}

// Namespaces returns every namespace with at least one finished game.
func (s *Store) Namespaces() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT namespace FROM results ORDER BY namespace")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query namespaces: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var ns string
		if err := rows.Scan(&ns); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, ns)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ClearResults deletes all finished games of a namespace.
func (s *Store) ClearResults(namespace string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE namespace = ?", namespace)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

func (s *Store) queryResults(query string, args ...any) ([]Result, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Namespace, &r.PackID, &r.Secret, &r.Attempts, &r.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}
