// Package tui provides the Bubble Tea front end for t2048.
// It handles the terminal UI loop, input mapping and board rendering.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// flashDuration is how long a status message stays on screen.
const flashDuration = 2 * time.Second

// clearFlashMsg expires the status message with the matching id.
type clearFlashMsg struct {
	id int
}

// clearFlashCmd returns a Bubble Tea command that expires flash id after d.
func clearFlashCmd(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearFlashMsg{id: id}
	})
}
