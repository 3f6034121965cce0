package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/t2048/internal/game"
)

const (
	tileWidth  = 7 // Width of each tile in cells
	tileHeight = 3 // Height of each tile in cells
)

type tileColor struct {
	bg, fg lipgloss.Color
}

var (
	darkText  = lipgloss.Color("#776e65")
	lightText = lipgloss.Color("#f9f6f2")

	emptyTile = tileColor{bg: lipgloss.Color("#cdc1b4")}
	superTile = tileColor{bg: lipgloss.Color("#3c3a32"), fg: lightText}
)

// tileColors maps tile values to the classic 2048 palette.
var tileColors = map[int]tileColor{
	2:    {bg: lipgloss.Color("#eee4da"), fg: darkText},
	4:    {bg: lipgloss.Color("#ede0c8"), fg: darkText},
	8:    {bg: lipgloss.Color("#f2b179"), fg: lightText},
	16:   {bg: lipgloss.Color("#f59563"), fg: lightText},
	32:   {bg: lipgloss.Color("#f67c5f"), fg: lightText},
	64:   {bg: lipgloss.Color("#f65e3b"), fg: lightText},
	128:  {bg: lipgloss.Color("#edcf72"), fg: lightText},
	256:  {bg: lipgloss.Color("#edcc61"), fg: lightText},
	512:  {bg: lipgloss.Color("#edc850"), fg: lightText},
	1024: {bg: lipgloss.Color("#edc53f"), fg: lightText},
	2048: {bg: lipgloss.Color("#edc22e"), fg: lightText},
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	scoreBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Align(lipgloss.Center)

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	flashStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// colorFor returns the palette entry for a tile value.
func colorFor(v int) tileColor {
	if v == 0 {
		return emptyTile
	}
	if c, ok := tileColors[v]; ok {
		return c
	}
	return superTile
}

// renderTile draws one tile, value centered.
func renderTile(v int) string {
	c := colorFor(v)
	style := lipgloss.NewStyle().
		Width(tileWidth).
		Height(tileHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Background(c.bg).
		Bold(true)
	if c.fg != "" {
		style = style.Foreground(c.fg)
	}

	label := ""
	if v != 0 {
		label = strconv.Itoa(v)
	}
	return style.Render(label)
}

// renderBoard draws the 4x4 grid with tiles.
func renderBoard(g game.Grid) string {
	rows := make([]string, 0, game.Size)
	for r := range game.Size {
		tiles := make([]string, 0, game.Size*2-1)
		for c := range game.Size {
			if c > 0 {
				tiles = append(tiles, " ")
			}
			tiles = append(tiles, renderTile(g[r][c]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return boardStyle.Render(strings.Join(rows, "\n\n"))
}

// renderHUD draws the title and the score boxes.
func renderHUD(score, best int) string {
	box := func(label string, v int) string {
		return scoreBoxStyle.Render(fmt.Sprintf("%s\n%d", label, v))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("2048"), "   ",
		box("SCORE", score), " ",
		box("BEST", best),
	)
}

// statusLine describes the controller state, empty while playing.
func statusLine(s game.State, winTile int) string {
	switch s.Status() {
	case game.StatusWon:
		return fmt.Sprintf("You reached %d!  c: keep going  n: new game", winTile)
	case game.StatusGameOver:
		return fmt.Sprintf("Game over! Max tile %d.  u: undo  n: new game", s.Grid.MaxTile())
	case game.StatusContinuing:
		return "Keep going!"
	default:
		return ""
	}
}
