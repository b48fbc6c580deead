// Package screen defines the perception and actuation port contracts the
// decision core uses to see and touch the game, plus the coordinate guards
// that keep clicks inside the playable area.
package screen

// #region constants

// Expected game resolution. All port coordinates are absolute pixels at
// this resolution.
const (
	Width  = 1920
	Height = 1080

	// edgeMargin rejects coordinates near a screen edge. Clicking the
	// extreme corners trips the actuation layer's fail-safe abort.
	edgeMargin = 10
)

// #endregion

// #region point

// Point is an absolute screen coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Valid reports whether the point is inside the guarded screen bounds.
func (p Point) Valid() bool {
	return p.X >= edgeMargin && p.Y >= edgeMargin &&
		p.X <= Width-edgeMargin && p.Y <= Height-edgeMargin
}

// DistanceSq returns the squared pixel distance to q.
func (p Point) DistanceSq(q Point) int {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// #endregion

// #region box

// Box is a screen rectangle. The zero Box means "whole screen".
type Box struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Center returns the box's center point.
func (b Box) Center() Point {
	return Point{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Empty reports whether the box has no area.
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// Contains reports whether p lies inside the box.
func (b Box) Contains(p Point) bool {
	return p.X >= b.X && p.X < b.X+b.W && p.Y >= b.Y && p.Y < b.Y+b.H
}

// #endregion
