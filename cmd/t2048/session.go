package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/game"
	"github.com/vovakirdan/t2048/internal/persist"
	"github.com/vovakirdan/t2048/internal/storage"
)

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return cfg, fmt.Errorf("--log-level: %w", err)
		}
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// newLogger logs to stderr, or to the configured file while a full-screen
// UI owns the terminal.
func newLogger(cfg config.Config, toFile bool) (*log.Logger, io.Closer, error) {
	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)

	if toFile {
		w = io.Discard
		if cfg.Log.File != "" {
			path, err := storage.ExpandPath(cfg.Log.File)
			if err != nil {
				return nil, nil, err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
			}
			f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err != nil {
				return nil, nil, fmt.Errorf("cannot open log file: %w", err)
			}
			w, closer = f, f
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
		Level:           cfg.LogLevel(),
	})
	return logger, closer, nil
}

// session wires a controller to its persistence.
type session struct {
	cfg       config.Config
	logger    *log.Logger
	store     *storage.Store // nil for ephemeral sessions
	persister *persist.Persister
	ctrl      *game.Controller
}

// openSession restores the saved game. Changes are written back when
// track is set.
func openSession(cfg config.Config, logger *log.Logger, ephemeral, track bool) (*session, error) {
	s := &session{cfg: cfg, logger: logger}

	var kv persist.KV = persist.NewMemory()
	var results persist.ResultSaver
	if !ephemeral {
		store, err := storage.Open(cfg.Storage.DBPath)
		if err != nil {
			return nil, err
		}
		s.store = store
		kv, results = store, store
	}

	s.persister = persist.New(kv, persist.Options{
		StateKey: cfg.Storage.StateKey,
		BestKey:  cfg.Storage.BestKey,
		Results:  results,
		Logger:   logger,
	})

	rc := core.RuntimeConfig{Seed: flagSeed}
	s.ctrl = game.NewController(rand.New(rand.NewSource(rc.ResolvedSeed())), cfg.Options())
	if track {
		// Subscribed first so a freshly dealt board is saved right away.
		s.ctrl.Subscribe(s.persister)
	}
	s.ctrl.Initialize(s.persister)

	logger.Debug("session opened",
		"db", cfg.Storage.DBPath,
		"ephemeral", ephemeral,
		"run", s.persister.RunID(),
		"score", s.ctrl.State().Score,
	)
	return s, nil
}

// Close flushes pending writes and closes the database.
func (s *session) Close() {
	if err := s.persister.Close(); err != nil {
		s.logger.Warn("flush failed", "err", err)
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("close database failed", "err", err)
		}
	}
}

// printState writes the board and scores in plain text.
func printState(w io.Writer, st game.State, best, winTile int) {
	fmt.Fprint(w, st.Grid.String())
	fmt.Fprintf(w, "Score: %d  Best: %d  Status: %s\n", st.Score, best, st.Status())
	switch st.Status() {
	case game.StatusWon:
		fmt.Fprintf(w, "You reached %d! Run 't2048 move continue' to keep going.\n", winTile)
	case game.StatusGameOver:
		fmt.Fprintln(w, "No moves left. Run 't2048 move new' to start over.")
	}
}
