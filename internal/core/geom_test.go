package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 5, 4, 3)

	tests := []struct {
		name     string
		p        Point
		expected bool
	}{
		{"top-left corner", Point{10, 5}, true},
		{"inside", Point{12, 6}, true},
		{"last cell", Point{13, 7}, true},
		{"right edge is exclusive", Point{14, 6}, false},
		{"bottom edge is exclusive", Point{12, 8}, false},
		{"left of rect", Point{9, 6}, false},
		{"above rect", Point{12, 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.expected {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.expected)
			}
		})
	}
}

func TestRectCentered(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)

	got := outer.Centered(30, 10)
	if want := NewRect(25, 7, 30, 10); got != want {
		t.Errorf("Centered = %+v, want %+v", got, want)
	}

	// Too large to fit: pinned to the top-left corner.
	got = NewRect(2, 3, 10, 5).Centered(20, 9)
	if got.X != 2 || got.Y != 3 {
		t.Errorf("oversized Centered = %+v, want origin (2, 3)", got)
	}
}

func TestRuntimeConfigSeed(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ScreenW != 80 || cfg.ScreenH != 24 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
	if cfg.ResolvedSeed() == 0 {
		t.Error("ResolvedSeed() = 0 for clock seed")
	}

	cfg.Seed = 42
	if cfg.ResolvedSeed() != 42 {
		t.Errorf("ResolvedSeed() = %d, want 42", cfg.ResolvedSeed())
	}
}
