package events

import (
	"fmt"

	"github.com/HandrianD/umamusume-auto-train/internal/screen"
)

// #region layout

// Layout maps a choice count to the on-screen positions of each option
// button. Positions are absolute pixels at the reference resolution and
// ordered top to bottom, matching option index 1..N.
type Layout struct {
	positions map[int][]screen.Point
}

// DefaultLayout returns the measured option positions for 2 through 5
// choices. The column shifts left by 10 px for the two-option variant.
func DefaultLayout() *Layout {
	return &Layout{positions: map[int][]screen.Point{
		2: {
			{X: 290, Y: 644},
			{X: 290, Y: 755},
		},
		3: {
			{X: 300, Y: 532},
			{X: 300, Y: 644},
			{X: 300, Y: 755},
		},
		4: {
			{X: 300, Y: 421},
			{X: 300, Y: 532},
			{X: 300, Y: 644},
			{X: 300, Y: 755},
		},
		5: {
			{X: 300, Y: 310},
			{X: 300, Y: 421},
			{X: 300, Y: 532},
			{X: 300, Y: 644},
			{X: 300, Y: 755},
		},
	}}
}

// #endregion

// #region lookup

// Positions returns the ordered option positions for n choices.
func (l *Layout) Positions(n int) ([]screen.Point, error) {
	pts, ok := l.positions[n]
	if !ok {
		return nil, fmt.Errorf("no position table for %d choices", n)
	}
	return pts, nil
}

// Point resolves a 1-based option index against the n-choice table and
// validates it against screen bounds.
func (l *Layout) Point(n, index int) (screen.Point, error) {
	pts, err := l.Positions(n)
	if err != nil {
		return screen.Point{}, err
	}
	if index < 1 || index > len(pts) {
		return screen.Point{}, fmt.Errorf("choice index %d out of range 1..%d", index, len(pts))
	}
	p := pts[index-1]
	if !p.Valid() {
		return screen.Point{}, fmt.Errorf("choice %d/%d position %v outside safe screen area", index, n, p)
	}
	return p, nil
}

// Nearest returns the 1-based index of the option position closest to p,
// or 0 when none is within maxDist pixels.
func (l *Layout) Nearest(n int, p screen.Point, maxDist int) int {
	pts, err := l.Positions(n)
	if err != nil {
		return 0
	}
	best := 0
	bestSq := maxDist * maxDist
	for i, opt := range pts {
		if d := opt.DistanceSq(p); d <= bestSq {
			bestSq = d
			best = i + 1
		}
	}
	return best
}

// #endregion
