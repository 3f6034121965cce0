// Package persist saves and restores 2048 sessions through a key-value store.
//
// A Persister is both a game.Loader (read once at start-up) and a
// game.Observer (written after every committed change). Writes run on a
// background goroutine and never block the caller; failures are logged and
// leave the in-memory game untouched.
package persist

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/t2048/internal/game"
)

// Default store keys.
const (
	DefaultStateKey = "2048-game-state"
	DefaultBestKey  = "2048-best-score"
)

// KV is a string key-value store.
type KV interface {
	// Get returns the value for key and whether it exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Record is the JSON layout stored under the state key.
type Record struct {
	Grid      [][]int `json:"grid"`
	Score     int     `json:"score"`
	GameOver  bool    `json:"gameOver"`
	Won       bool    `json:"won"`
	Continued bool    `json:"continued,omitempty"`
	// Timestamp is milliseconds since the Unix epoch.
	Timestamp int64  `json:"timestamp"`
	RunID     string `json:"runId,omitempty"`
}

// EncodeState serializes s as a Record.
func EncodeState(s game.State, runID string, now time.Time) (string, error) {
	rec := Record{
		Grid:      make([][]int, game.Size),
		Score:     s.Score,
		GameOver:  s.GameOver,
		Won:       s.Won,
		Continued: s.Continued,
		Timestamp: now.UnixMilli(),
		RunID:     runID,
	}
	for r := range game.Size {
		rec.Grid[r] = append([]int(nil), s.Grid[r][:]...)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("persist: encode state: %w", err)
	}
	return string(data), nil
}

// DecodeState parses a Record. A grid that is not 4x4 or breaks the board
// invariants is rejected with game.ErrCorruptState.
func DecodeState(data string) (game.State, Record, error) {
	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return game.State{}, rec, fmt.Errorf("persist: decode state: %w", err)
	}

	if len(rec.Grid) != game.Size {
		return game.State{}, rec, fmt.Errorf("persist: %w: grid has %d rows", game.ErrCorruptState, len(rec.Grid))
	}

	s := game.State{
		Score:     rec.Score,
		GameOver:  rec.GameOver,
		Won:       rec.Won,
		Continued: rec.Continued,
	}
	for r, row := range rec.Grid {
		if len(row) != game.Size {
			return game.State{}, rec, fmt.Errorf("persist: %w: row %d has %d cells", game.ErrCorruptState, r, len(row))
		}
		copy(s.Grid[r][:], row)
	}

	if err := s.Validate(); err != nil {
		return game.State{}, rec, fmt.Errorf("persist: %w", err)
	}
	return s, rec, nil
}

// DecodeBest parses the best-score value. Anything that is not a
// non-negative integer reads as 0.
func DecodeBest(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
