package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidDirection is returned for a direction outside the four moves.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrCorruptState marks a restored state that violates board invariants.
	ErrCorruptState = errors.New("corrupt game state")
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every valid direction.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Valid reports whether d is one of the four moves.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection converts "up", "down", "left" or "right" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Outcome is the result of resolving one move. It is never persisted.
type Outcome struct {
	Grid          Grid
	ScoreIncrease int
	Moved         bool
}

// rotations maps a direction to the clockwise quarter turns applied before
// and after the left resolution.
var rotations = map[Direction][2]int{
	DirLeft:  {0, 0},
	DirRight: {2, 2},
	DirUp:    {3, 1},
	DirDown:  {1, 3},
}

// Resolve slides and merges the board in the given direction.
// Every direction is reduced to a left move on a rotated board.
func Resolve(g Grid, dir Direction) (Outcome, error) {
	rot, ok := rotations[dir]
	if !ok {
		return Outcome{Grid: g}, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}

	out := ResolveLeft(RotateGrid(g, rot[0]))
	out.Grid = RotateGrid(out.Grid, rot[1])
	return out, nil
}

// ResolveLeft slides all tiles left and merges equal neighbours.
// Each tile merges at most once per move; ties resolve left to right.
func ResolveLeft(g Grid) Outcome {
	out := Outcome{Grid: g}
	for r := range Size {
		row, gained := resolveRow(g[r])
		out.Grid[r] = row
		out.ScoreIncrease += gained
		if row != g[r] {
			out.Moved = true
		}
	}
	return out
}

// resolveRow compacts a row to the left, merges adjacent equal pairs in a
// single pass and pads the result with zeros.
func resolveRow(row [Size]int) (result [Size]int, score int) {
	writePos := 0
	// merged marks result[writePos-1] as already produced by a merge
	merged := false

	for _, v := range row {
		if v == 0 {
			continue
		}

		if writePos > 0 && !merged && result[writePos-1] == v {
			result[writePos-1] *= 2
			score += result[writePos-1]
			merged = true
			continue
		}

		result[writePos] = v
		writePos++
		merged = false
	}

	return result, score
}

// RotateGrid rotates the board 90 degrees clockwise, times times.
func RotateGrid(g Grid, times int) Grid {
	times = ((times % 4) + 4) % 4
	for range times {
		var rotated Grid
		for i := range Size {
			for j := range Size {
				rotated[j][Size-1-i] = g[i][j]
			}
		}
		g = rotated
	}
	return g
}
