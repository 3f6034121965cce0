// Package game implements the 2048 engine: the board, the move resolver and
// the controller that turns moves into committed game states.
//
// Nothing in this package performs I/O. Persistence hooks in through
// Observer and Loader.
package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is the board dimension.
const Size = 4

// DefaultFourProbability is the chance that a spawned tile is a 4 instead of a 2.
const DefaultFourProbability = 0.1

// Grid is a 4x4 board. Zero means empty; every other value is a power of two.
// Grid is a value type: assigning or passing it copies the board.
type Grid [Size][Size]int

// Cell is a board coordinate.
type Cell struct {
	Row, Col int
}

// Random supplies uniformly distributed floats in [0, 1).
// *math/rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// NewGrid returns an empty board.
func NewGrid() Grid {
	return Grid{}
}

// InitializeGrid returns an empty board with two spawned tiles.
func InitializeGrid(rnd Random, fourProb float64) Grid {
	g := NewGrid()
	g = SpawnTile(g, rnd, fourProb)
	return SpawnTile(g, rnd, fourProb)
}

// SpawnTile places a 2 or a 4 in a random empty cell and returns the new board.
// A full board is returned unchanged.
func SpawnTile(g Grid, rnd Random, fourProb float64) Grid {
	empty := g.EmptyCells()
	if len(empty) == 0 {
		return g
	}

	idx := int(rnd.Float64() * float64(len(empty)))
	if idx >= len(empty) {
		idx = len(empty) - 1
	}
	cell := empty[idx]

	value := 2
	if rnd.Float64() >= 1-fourProb {
		value = 4
	}

	g[cell.Row][cell.Col] = value
	return g
}

// EmptyCells returns the empty cells in row-major order.
func (g Grid) EmptyCells() []Cell {
	var cells []Cell
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasAvailableMoves reports whether any move can change the board.
func HasAvailableMoves(g Grid) bool {
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				return true
			}
		}
	}

	for r := range Size {
		for c := range Size {
			v := g[r][c]
			if r < Size-1 && g[r+1][c] == v {
				return true
			}
			if c < Size-1 && g[r][c+1] == v {
				return true
			}
		}
	}
	return false
}

// MaxTile returns the largest tile on the board.
func (g Grid) MaxTile() int {
	maxVal := 0
	for r := range Size {
		for c := range Size {
			maxVal = max(maxVal, g[r][c])
		}
	}
	return maxVal
}

// Contains reports whether any cell holds value.
func (g Grid) Contains(value int) bool {
	for r := range Size {
		for c := range Size {
			if g[r][c] == value {
				return true
			}
		}
	}
	return false
}

// Validate checks that every cell is empty or a power of two.
func (g Grid) Validate() error {
	for r := range Size {
		for c := range Size {
			v := g[r][c]
			if v < 0 || (v != 0 && !isPowerOfTwo(v)) {
				return fmt.Errorf("%w: cell (%d,%d) holds %d", ErrCorruptState, r, c, v)
			}
			// 1 is a power of two but never a tile
			if v == 1 {
				return fmt.Errorf("%w: cell (%d,%d) holds 1", ErrCorruptState, r, c)
			}
		}
	}
	return nil
}

// String renders the board as right-aligned rows, "." for empty cells.
func (g Grid) String() string {
	width := len(strconv.Itoa(g.MaxTile()))
	width = max(width, 4)

	var sb strings.Builder
	for r := range Size {
		for c := range Size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := "."
			if g[r][c] != 0 {
				cell = strconv.Itoa(g[r][c])
			}
			fmt.Fprintf(&sb, "%*s", width, cell)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}
