// Package config provides YAML-based configuration loading and difficulty
// presets for t2048.
package config

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/t2048/internal/game"
)

// Config contains all t2048 settings.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Input   InputConfig   `yaml:"input"`
	Log     LogConfig     `yaml:"log"`
}

// GameConfig defines the rules of play.
type GameConfig struct {
	WinTile         int     `yaml:"win_tile"`         // 0 disables the win check
	HistoryLimit    int     `yaml:"history_limit"`    // 0 disables undo
	FourProbability float64 `yaml:"four_probability"` // chance a spawned tile is a 4
}

// StorageConfig defines where sessions are kept.
type StorageConfig struct {
	DBPath   string `yaml:"db_path"`
	StateKey string `yaml:"state_key"`
	BestKey  string `yaml:"best_key"`
}

// InputConfig tunes gesture detection.
type InputConfig struct {
	SwipeThreshold  float64 `yaml:"swipe_threshold"`   // pixels, for touch-style input
	MouseSwipeCells int     `yaml:"mouse_swipe_cells"` // terminal cells, for mouse drags
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // used while the TUI owns the terminal
}

// Options converts the game section to controller options.
func (c Config) Options() game.Options {
	return game.Options{
		HistoryLimit:    c.Game.HistoryLimit,
		WinTile:         c.Game.WinTile,
		FourProbability: c.Game.FourProbability,
	}
}

// Validate checks the values a YAML file could get wrong.
func (c Config) Validate() error {
	if c.Game.HistoryLimit < 0 {
		return fmt.Errorf("config: history_limit must not be negative, got %d", c.Game.HistoryLimit)
	}
	if p := c.Game.FourProbability; p < 0 || p > 1 {
		return fmt.Errorf("config: four_probability must be in [0, 1], got %v", p)
	}
	if w := c.Game.WinTile; w > 0 && w&(w-1) != 0 {
		return fmt.Errorf("config: win_tile must be a power of two, got %d", w)
	}
	if c.Input.SwipeThreshold < 0 || c.Input.MouseSwipeCells < 0 {
		return fmt.Errorf("config: swipe thresholds must not be negative")
	}
	if _, err := log.ParseLevel(c.Log.Level); c.Log.Level != "" && err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// LogLevel parses the configured level, defaulting to info.
func (c Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
