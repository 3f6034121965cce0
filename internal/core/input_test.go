package core

import (
	"testing"

	"github.com/vovakirdan/t2048/internal/game"
)

func TestActionForKey(t *testing.T) {
	tests := []struct {
		keys     []string
		expected Action
	}{
		{[]string{"up", "w", "W", "k"}, ActionUp},
		{[]string{"down", "s", "S", "j"}, ActionDown},
		{[]string{"left", "a", "A", "h"}, ActionLeft},
		{[]string{"right", "d", "D", "l"}, ActionRight},
		{[]string{"u", "z"}, ActionUndo},
		{[]string{"n", "r"}, ActionNewGame},
		{[]string{"c", "enter"}, ActionContinue},
		{[]string{"?"}, ActionHelp},
		{[]string{"q", "ctrl+c", "esc"}, ActionQuit},
		{[]string{"x", "", "space", "tab"}, ActionNone},
	}

	for _, tt := range tests {
		for _, key := range tt.keys {
			if got := ActionForKey(key); got != tt.expected {
				t.Errorf("ActionForKey(%q) = %v, want %v", key, got, tt.expected)
			}
		}
	}
}

func TestActionDirection(t *testing.T) {
	want := map[Action]game.Direction{
		ActionUp:    game.DirUp,
		ActionDown:  game.DirDown,
		ActionLeft:  game.DirLeft,
		ActionRight: game.DirRight,
	}
	for a, dir := range want {
		got, ok := a.Direction()
		if !ok || got != dir {
			t.Errorf("%v.Direction() = %v, %v; want %v", a, got, ok, dir)
		}
	}

	for _, a := range []Action{ActionNone, ActionUndo, ActionNewGame, ActionQuit} {
		if _, ok := a.Direction(); ok {
			t.Errorf("%v.Direction() reported a direction", a)
		}
	}
}

func TestSwipeAction(t *testing.T) {
	tests := []struct {
		name     string
		dx, dy   float64
		expected Action
	}{
		{"long right", 120, 10, ActionRight},
		{"long left", -80, -30, ActionLeft},
		{"long down", 5, 60, ActionDown},
		{"long up", -20, -51, ActionUp},
		{"exactly threshold is ignored", 50, 0, ActionNone},
		{"just over threshold", 50.5, 0, ActionRight},
		{"short tap", 10, -12, ActionNone},
		{"diagonal tie goes vertical", 70, 70, ActionDown},
		{"horizontal dominant but short", 40, 20, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SwipeAction(tt.dx, tt.dy, DefaultSwipeThreshold); got != tt.expected {
				t.Errorf("SwipeAction(%v, %v) = %v, want %v", tt.dx, tt.dy, got, tt.expected)
			}
		})
	}
}

func TestSwipeGesture(t *testing.T) {
	var s Swipe

	if got := s.End(Point{10, 0}, 2); got != ActionNone {
		t.Errorf("End without Begin = %v, want None", got)
	}

	s.Begin(Point{5, 5})
	if !s.Active() {
		t.Fatal("Active() = false after Begin")
	}
	if got := s.End(Point{1, 6}, 2); got != ActionLeft {
		t.Errorf("End = %v, want Left", got)
	}
	if s.Active() {
		t.Error("Active() = true after End")
	}

	s.Begin(Point{5, 5})
	s.Cancel()
	if got := s.End(Point{5, 20}, 2); got != ActionNone {
		t.Errorf("End after Cancel = %v, want None", got)
	}
}
