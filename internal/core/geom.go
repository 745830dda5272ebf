// Package core provides fundamental types and utilities for the sandbox
// platform. It contains no external dependencies (especially no Bubble Tea)
// to keep game logic pure and testable.
package core

// Rect is an axis-aligned region of screen cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle from its corner and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// CenterIn returns a w×h rectangle centred in area. When it does not fit
// the result overhangs area on the right and bottom sides.
func CenterIn(w, h int, area Rect) Rect {
	return Rect{
		X: area.X + (area.W-w)/2,
		Y: area.Y + (area.H-h)/2,
		W: w,
		H: h,
	}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether the cell (x, y) is inside.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Fits reports whether a w×h region fits inside.
func (r Rect) Fits(w, h int) bool {
	return w <= r.W && h <= r.H
}

// Grow returns the rectangle extended by n cells on every side.
func (r Rect) Grow(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// Local converts screen coordinates to coordinates relative to the corner.
func (r Rect) Local(x, y int) (int, int) {
	return x - r.X, y - r.Y
}

// Screen converts corner-relative coordinates back to screen coordinates.
func (r Rect) Screen(x, y int) (int, int) {
	return r.X + x, r.Y + y
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
