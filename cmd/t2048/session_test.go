package main

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/game"
)

func TestOpenSessionSavesDealtBoard(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "t2048.db")
	logger := log.New(io.Discard)

	first, err := openSession(cfg, logger, false, true)
	if err != nil {
		t.Fatalf("openSession: %v", err)
	}
	if first.persister.Restored() {
		t.Error("empty database reported a restored game")
	}
	dealt := first.ctrl.State()
	first.Close()

	second, err := openSession(cfg, logger, false, false)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	if !second.persister.Restored() {
		t.Fatal("board dealt without a move was not saved")
	}
	if diff := cmp.Diff(dealt, second.ctrl.State()); diff != "" {
		t.Errorf("resumed board differs (-want +got):\n%s", diff)
	}
}

func TestOpenSessionSeedDealsSameBoard(t *testing.T) {
	old := flagSeed
	flagSeed = 42
	t.Cleanup(func() { flagSeed = old })

	cfg := config.Default()
	logger := log.New(io.Discard)

	deal := func() game.Grid {
		s, err := openSession(cfg, logger, true, true)
		if err != nil {
			t.Fatalf("openSession: %v", err)
		}
		defer s.Close()
		return s.ctrl.State().Grid
	}

	if diff := cmp.Diff(deal(), deal()); diff != "" {
		t.Errorf("same seed dealt different boards (-first +second):\n%s", diff)
	}
}
