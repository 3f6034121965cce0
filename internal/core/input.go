package core

import (
	"math"

	"github.com/vovakirdan/t2048/internal/game"
)

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // Up arrow, W, K
	ActionDown            // Down arrow, S, J
	ActionLeft            // Left arrow, A, H
	ActionRight           // Right arrow, D, L
	ActionUndo            // U, Z
	ActionNewGame         // N, R
	ActionContinue        // C, Enter - keep playing after a win
	ActionHelp            // ?
	ActionQuit            // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUndo:
		return "Undo"
	case ActionNewGame:
		return "NewGame"
	case ActionContinue:
		return "Continue"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction maps a movement action to its board direction.
func (a Action) Direction() (game.Direction, bool) {
	switch a {
	case ActionUp:
		return game.DirUp, true
	case ActionDown:
		return game.DirDown, true
	case ActionLeft:
		return game.DirLeft, true
	case ActionRight:
		return game.DirRight, true
	default:
		return 0, false
	}
}

// ActionForKey translates a key name, as Bubble Tea reports it, to an action.
func ActionForKey(key string) Action {
	switch key {
	case "up", "w", "W", "k":
		return ActionUp
	case "down", "s", "S", "j":
		return ActionDown
	case "left", "a", "A", "h":
		return ActionLeft
	case "right", "d", "D", "l":
		return ActionRight
	case "u", "z":
		return ActionUndo
	case "n", "r":
		return ActionNewGame
	case "c", "enter":
		return ActionContinue
	case "?":
		return ActionHelp
	case "q", "ctrl+c", "esc":
		return ActionQuit
	default:
		return ActionNone
	}
}

// DefaultSwipeThreshold is the minimum travel, in pixels, of a swipe.
const DefaultSwipeThreshold = 50.0

// SwipeAction classifies a drag from its displacement. The dominant axis
// wins, ties go to the vertical axis, and travel along it must exceed
// threshold. Positive dy points down.
func SwipeAction(dx, dy, threshold float64) Action {
	if math.Abs(dx) > math.Abs(dy) {
		if math.Abs(dx) <= threshold {
			return ActionNone
		}
		if dx > 0 {
			return ActionRight
		}
		return ActionLeft
	}

	if math.Abs(dy) <= threshold {
		return ActionNone
	}
	if dy > 0 {
		return ActionDown
	}
	return ActionUp
}

// Swipe tracks one press-drag-release gesture.
type Swipe struct {
	start  Point
	active bool
}

// Begin records where the gesture started.
func (s *Swipe) Begin(p Point) {
	s.start = p
	s.active = true
}

// Active reports whether a gesture is in progress.
func (s *Swipe) Active() bool {
	return s.active
}

// End finishes the gesture at p and classifies it.
func (s *Swipe) End(p Point, threshold float64) Action {
	if !s.active {
		return ActionNone
	}
	s.active = false
	return SwipeAction(float64(p.X-s.start.X), float64(p.Y-s.start.Y), threshold)
}

// Cancel drops a gesture in progress.
func (s *Swipe) Cancel() {
	s.active = false
}
