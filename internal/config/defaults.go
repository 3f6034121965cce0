package config

import (
	_ "embed"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/game"
	"github.com/vovakirdan/t2048/internal/persist"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			WinTile:         game.DefaultWinTile,
			HistoryLimit:    game.DefaultHistoryLimit,
			FourProbability: game.DefaultFourProbability,
		},
		Storage: StorageConfig{
			DBPath:   "~/.t2048/t2048.db",
			StateKey: persist.DefaultStateKey,
			BestKey:  persist.DefaultBestKey,
		},
		Input: InputConfig{
			SwipeThreshold:  core.DefaultSwipeThreshold,
			MouseSwipeCells: 3,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.t2048/t2048.log",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
