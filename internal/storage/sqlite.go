// Package storage provides SQLite-backed persistence for saved games and
// finished-game results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/t2048/internal/persist"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

var (
	_ persist.KV          = (*Store)(nil)
	_ persist.ResultSaver = (*Store)(nil)
)

// ResultEntry is a stored finished game.
type ResultEntry struct {
	ID      int64
	RunID   string
	Score   int
	MaxTile int
	Won     bool
	EndedAt time.Time
}

// Stats aggregates all stored results.
type Stats struct {
	Games      int
	Wins       int
	HighScore  int
	AvgScore   float64
	BestTile   int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	path, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Writes come from the persister goroutine while commands read.
	db.SetMaxOpenConns(1)

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

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(p string) (string, error) {
	if p == "" || p[0] != '~' {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(score DESC);
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

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete %q: %w", key, err)
	}
	return nil
}

// UpdatedAt reports when key was last written.
func (s *Store) UpdatedAt(key string) (time.Time, bool, error) {
	var ms int64
	err := s.db.QueryRow("SELECT updated_at FROM kv WHERE key = ?", key).Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("storage: cannot read %q: %w", key, err)
	}
	return time.UnixMilli(ms), true, nil
}

// SaveResult records a finished game. A run is stored at most once; a later
// result for the same run id replaces the earlier one.
func (s *Store) SaveResult(r persist.Result) error {
	endedAt := r.EndedAt
	if endedAt.IsZero() {
		endedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO results (run_id, score, max_tile, won, ended_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(run_id) DO UPDATE SET
		   score = excluded.score, max_tile = excluded.max_tile,
		   won = excluded.won, ended_at = excluded.ended_at`,
		r.RunID, r.Score, r.MaxTile, r.Won, endedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save result: %w", err)
	}
	return nil
}

// TopResults retrieves the best N results, highest score first.
func (s *Store) TopResults(limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, score, max_tile, won, ended_at
		 FROM results
		 ORDER BY score DESC, ended_at ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var endedAt int64
		if err := rows.Scan(&e.ID, &e.RunID, &e.Score, &e.MaxTile, &e.Won, &endedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.EndedAt = time.UnixMilli(endedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest recorded result, 0 if none.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM results").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats aggregates every recorded result.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}
	var lastPlayed sql.NullInt64

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(MAX(max_tile), 0), MAX(ended_at)
		 FROM results`,
	).Scan(&stats.Games, &stats.Wins, &stats.HighScore, &stats.AvgScore, &stats.BestTile, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	if lastPlayed.Valid {
		stats.LastPlayed = time.UnixMilli(lastPlayed.Int64)
	}

	return stats, nil
}

// ClearResults deletes all recorded results.
func (s *Store) ClearResults() error {
	if _, err := s.db.Exec("DELETE FROM results"); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}
