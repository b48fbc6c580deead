package events

import (
	"time"

	"github.com/HandrianD/umamusume-auto-train/internal/screen"
)

// #region fake-perception

// fakeFrame is a scripted perception source for resolver and detector
// tests.
type fakeFrame struct {
	hits      map[string][]screen.Box
	titleText string
	findCalls int
}

func (f *fakeFrame) Find(template string, _ screen.Box, _ float64) []screen.Box {
	f.findCalls++
	return f.hits[template]
}

func (f *fakeFrame) ReadText(_ screen.Box) string { return f.titleText }

func (f *fakeFrame) LocateCenter(template string, _ float64, _ time.Duration) (screen.Point, bool) {
	hits := f.hits[template]
	if len(hits) == 0 {
		return screen.Point{}, false
	}
	return hits[0].Center(), true
}

func choiceBoxes(n int) []screen.Box {
	boxes := make([]screen.Box, n)
	for i := range boxes {
		boxes[i] = screen.Box{X: 280, Y: 300 + 110*i, W: 40, H: 40}
	}
	return boxes
}

// #endregion

// #region fake-actuation

type fakeHand struct {
	pointer screen.Point
	clicks  []screen.Point
}

func (f *fakeHand) MoveTo(p screen.Point, _ time.Duration) error {
	f.pointer = p
	return nil
}

func (f *fakeHand) Click(p screen.Point, _ int) error {
	f.clicks = append(f.clicks, p)
	return nil
}

func (f *fakeHand) Scroll(_ int) error { return nil }

func (f *fakeHand) Position() screen.Point { return f.pointer }

// #endregion
