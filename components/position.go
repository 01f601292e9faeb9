// Package components defines the plain value types shared by the simulation.
package components

import "math"

// Bounds is the world extent. Valid positions lie in [0,Width) x [0,Height).
type Bounds struct {
	Width, Height int
}

// Contains reports whether (x, y) lies inside the bounds.
func (b Bounds) Contains(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Center returns the middle of the bounds.
func (b Bounds) Center() Position {
	return Position{X: b.Width / 2, Y: b.Height / 2}
}

// Position is an integer point inside the world bounds.
type Position struct {
	X, Y int
}

// NewPosition returns the point (x, y) if it lies inside b.
func NewPosition(x, y int, b Bounds) (Position, bool) {
	if !b.Contains(x, y) {
		return Position{}, false
	}
	return Position{X: x, Y: y}, true
}

// Set assigns (x, y) if it lies inside b. An out of bounds assignment
// leaves p unchanged and returns false.
func (p *Position) Set(x, y int, b Bounds) bool {
	if !b.Contains(x, y) {
		return false
	}
	p.X, p.Y = x, y
	return true
}

// Distance returns the Euclidean distance to q.
func (p Position) Distance(q Position) float64 {
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}
