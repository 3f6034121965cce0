package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/t2048/internal/core"
)

// KeyMap defines the key bindings for the game screen.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Undo     key.Binding
	NewGame  key.Binding
	Continue key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Undo, k.NewGame, k.Continue, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Undo, k.NewGame, k.Continue},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "W", "k"),
			key.WithHelp("↑/w/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "S", "j"),
			key.WithHelp("↓/s/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "A", "h"),
			key.WithHelp("←/a/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "D", "l"),
			key.WithHelp("→/d/l", "right"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "z"),
			key.WithHelp("u", "undo"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("n", "r"),
			key.WithHelp("n", "new game"),
		),
		Continue: key.NewBinding(
			key.WithKeys("c", "enter"),
			key.WithHelp("c", "keep going"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a game action. Disabled bindings
// never match.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Undo):
		return core.ActionUndo
	case key.Matches(msg, k.NewGame):
		return core.ActionNewGame
	case key.Matches(msg, k.Continue):
		return core.ActionContinue
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}
