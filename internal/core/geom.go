// Package core provides fundamental types shared by the puzzle session and
// the platform layer. It has no Bubble Tea dependency so game logic stays
// pure and testable.
package core

// Point is a cell position on the board, column X and row Y.
type Point struct {
	X, Y int
}

// Index returns the row-major index of p on a board n cells wide.
func (p Point) Index(n int) int {
	return p.Y*n + p.X
}

// PointAt is the inverse of Index.
func PointAt(i, n int) Point {
	return Point{X: i % n, Y: i / n}
}

// Rect is an axis-aligned area of the screen.
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

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
