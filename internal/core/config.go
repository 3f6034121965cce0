package core

import "time"

// RuntimeConfig contains settings passed to a front end at start-up.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed, 0 means seed from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}

// ResolvedSeed returns Seed, or a clock-derived seed when Seed is 0.
func (c RuntimeConfig) ResolvedSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
