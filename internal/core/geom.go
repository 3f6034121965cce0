// Package core provides input translation and layout helpers shared by the
// t2048 front ends. It contains no Bubble Tea dependency so it stays
// testable without a terminal.
package core

// Point is a terminal cell position.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned area of the terminal.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if p is inside this rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Centered returns a w by h rectangle centered inside r, clamped to r's
// top-left corner when it does not fit.
func (r Rect) Centered(w, h int) Rect {
	return Rect{
		X: r.X + max((r.W-w)/2, 0),
		Y: r.Y + max((r.H-h)/2, 0),
		W: w,
		H: h,
	}
}
