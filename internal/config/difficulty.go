package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the accepted preset names.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset parses a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// FourProbabilityForPreset returns the spawn chance of a 4 for a preset.
func FourProbabilityForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.05
	case DifficultyHard:
		return 0.25
	default:
		return 0.1
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the configured values alone.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Game.FourProbability = FourProbabilityForPreset(preset)
		cfg.Game.HistoryLimit = max(cfg.Game.HistoryLimit, 10)
	case DifficultyHard:
		cfg.Game.FourProbability = FourProbabilityForPreset(preset)
		cfg.Game.HistoryLimit = min(cfg.Game.HistoryLimit, 1)
	}
}
