package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/game"
)

// cellAspect scales vertical mouse travel; a terminal cell is about twice
// as tall as it is wide.
const cellAspect = 2

// Options configures the game screen.
type Options struct {
	// SwipeCells is the horizontal drag distance, in cells, that counts
	// as a swipe.
	SwipeCells int
	Logger     *log.Logger
}

// Model is the Bubble Tea model for a 2048 session.
type Model struct {
	ctrl       *game.Controller
	keys       KeyMap
	help       help.Model
	swipe      core.Swipe
	swipeCells int
	logger     *log.Logger
	width      int
	height     int
	flash      string
	flashID    int
	quitting   bool
}

// NewModel creates a model driving ctrl. The controller should already be
// initialized.
func NewModel(ctrl *game.Controller, cfg core.RuntimeConfig, opts Options) Model {
	if opts.SwipeCells <= 0 {
		opts.SwipeCells = 3
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	m := Model{
		ctrl:       ctrl,
		keys:       DefaultKeyMap(),
		help:       h,
		swipeCells: opts.SwipeCells,
		logger:     opts.Logger,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
	}
	m.syncBindings()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.apply(m.keys.Action(msg))

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case clearFlashMsg:
		if msg.id == m.flashID {
			m.flash = ""
		}
		return m, nil
	}

	return m, nil
}

// apply performs one action against the controller.
func (m Model) apply(a core.Action) (tea.Model, tea.Cmd) {
	if dir, ok := a.Direction(); ok {
		return m.move(dir)
	}

	var cmd tea.Cmd
	switch a {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionUndo:
		if !m.ctrl.CanUndo() {
			m, cmd = m.setFlash("Nothing to undo")
			break
		}
		s := m.ctrl.Undo()
		m, cmd = m.setFlash("Undone")
		m.logger.Debug("undo", "score", s.Score, "history", m.ctrl.HistoryLen())

	case core.ActionNewGame:
		m.ctrl.NewGame()
		m.logger.Info("new game")
		m, cmd = m.setFlash("New game")

	case core.ActionContinue:
		if m.ctrl.Status() == game.StatusWon {
			m.ctrl.ContinueAfterWin()
			m.logger.Info("continuing after win", "score", m.ctrl.State().Score)
		}

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	m.syncBindings()
	return m, cmd
}

func (m Model) move(dir game.Direction) (tea.Model, tea.Cmd) {
	before := m.ctrl.State()
	after, err := m.ctrl.Move(dir)
	if err != nil {
		m.logger.Error("move failed", "dir", dir, "err", err)
		return m, nil
	}

	if after != before {
		m.logger.Debug("move", "dir", dir, "score", after.Score, "status", after.Status())
		switch after.Status() {
		case game.StatusWon:
			m.logger.Info("win", "score", after.Score)
		case game.StatusGameOver:
			m.logger.Info("game over", "score", after.Score, "max_tile", after.Grid.MaxTile())
		}
	}

	m.syncBindings()
	return m, nil
}

// handleMouse turns a left-button press and release over the board into a
// swipe.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := core.Point{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && m.contentRect().Contains(p) {
			m.swipe.Begin(scaled(p))
		}
	case tea.MouseActionRelease:
		if m.swipe.Active() {
			return m.apply(m.swipe.End(scaled(p), float64(m.swipeCells)))
		}
	}
	return m, nil
}

func scaled(p core.Point) core.Point {
	return core.Point{X: p.X, Y: p.Y * cellAspect}
}

func (m Model) setFlash(text string) (Model, tea.Cmd) {
	m.flashID++
	m.flash = text
	return m, clearFlashCmd(m.flashID, flashDuration)
}

// syncBindings shows the continue binding only while a win is pending.
func (m *Model) syncBindings() {
	m.keys.Continue.SetEnabled(m.ctrl.Status() == game.StatusWon)
}

// contentRect is where the centered content sits on screen.
func (m Model) contentRect() core.Rect {
	content := m.content()
	screen := core.NewRect(0, 0, m.width, m.height)
	return screen.Centered(lipgloss.Width(content), lipgloss.Height(content))
}

func (m Model) content() string {
	s := m.ctrl.State()

	parts := []string{
		renderHUD(s.Score, m.ctrl.Best()),
		renderBoard(s.Grid),
	}
	if line := statusLine(s, m.ctrl.Options().WinTile); line != "" {
		parts = append(parts, statusStyle.Render(line))
	}
	if m.flash != "" {
		parts = append(parts, flashStyle.Render(m.flash))
	}
	parts = append(parts, helpStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	content := m.content()
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// State returns the controller state.
func (m Model) State() game.State {
	return m.ctrl.State()
}

// Run starts the Bubble Tea program for ctrl.
func Run(ctrl *game.Controller, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(ctrl, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Mouse drags become swipes
	)

	_, err := p.Run()
	return err
}
