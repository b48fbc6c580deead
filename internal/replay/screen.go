// Package replay feeds recorded screen frames through the career loop
// entirely in-memory, for tests and offline debugging.
package replay

import (
	"fmt"
	"time"

	"github.com/HandrianD/umamusume-auto-train/internal/screen"
)

// #region frame

// Frame is one recorded screen state. Template hits are keyed by
// template name; OCR text and brightness are keyed by region.
type Frame struct {
	Hits       map[string][]screen.Box `json:"hits"`
	Text       map[string]string       `json:"text"`
	Brightness map[string]float64      `json:"brightness"`
}

// RegionKey renders a region the way Frame.Text keys it.
func RegionKey(b screen.Box) string {
	return fmt.Sprintf("%d,%d,%d,%d", b.X, b.Y, b.W, b.H)
}

// SetText scripts the OCR result for a region.
func (f *Frame) SetText(region screen.Box, text string) {
	if f.Text == nil {
		f.Text = map[string]string{}
	}
	f.Text[RegionKey(region)] = text
}

// AddHit scripts a template match.
func (f *Frame) AddHit(template string, b screen.Box) {
	if f.Hits == nil {
		f.Hits = map[string][]screen.Box{}
	}
	f.Hits[template] = append(f.Hits[template], b)
}

// SetBrightness scripts the measured brightness of a region.
func (f *Frame) SetBrightness(region screen.Box, v float64) {
	if f.Brightness == nil {
		f.Brightness = map[string]float64{}
	}
	f.Brightness[RegionKey(region)] = v
}

// #endregion

// #region screen

// Action is one recorded actuation call.
type Action struct {
	Kind  string // "move", "click", "scroll"
	Point screen.Point
	Arg   int
}

// Screen replays frames through the perception and actuation ports.
// Every actuation is recorded for assertions.
type Screen struct {
	frames  []Frame
	idx     int
	pointer screen.Point

	Actions []Action
}

// NewScreen builds a replay screen over recorded frames. An empty frame
// list behaves as a blank screen.
func NewScreen(frames []Frame) *Screen {
	return &Screen{frames: frames}
}

// Advance moves to the next recorded frame. The last frame repeats.
func (s *Screen) Advance() {
	if s.idx < len(s.frames)-1 {
		s.idx++
	}
}

// FrameIndex returns the current frame position.
func (s *Screen) FrameIndex() int { return s.idx }

func (s *Screen) frame() Frame {
	if len(s.frames) == 0 {
		return Frame{}
	}
	return s.frames[s.idx]
}

// #endregion

// #region perception-impl

func (s *Screen) Find(template string, region screen.Box, _ float64) []screen.Box {
	hits := s.frame().Hits[template]
	if region.Empty() {
		return hits
	}
	var out []screen.Box
	for _, h := range hits {
		if region.Contains(h.Center()) {
			out = append(out, h)
		}
	}
	return out
}

func (s *Screen) ReadText(region screen.Box) string {
	return s.frame().Text[RegionKey(region)]
}

func (s *Screen) LocateCenter(template string, conf float64, _ time.Duration) (screen.Point, bool) {
	hits := s.Find(template, screen.Box{}, conf)
	if len(hits) == 0 {
		return screen.Point{}, false
	}
	c := hits[0].Center()
	if !c.Valid() {
		return screen.Point{}, false
	}
	return c, true
}

func (s *Screen) Brightness(region screen.Box) (float64, bool) {
	v, ok := s.frame().Brightness[RegionKey(region)]
	return v, ok
}

// #endregion

// #region actuation-impl

func (s *Screen) MoveTo(p screen.Point, _ time.Duration) error {
	s.pointer = p
	s.Actions = append(s.Actions, Action{Kind: "move", Point: p})
	return nil
}

func (s *Screen) Click(p screen.Point, count int) error {
	if !p.Valid() {
		return fmt.Errorf("click %v outside safe screen area", p)
	}
	s.pointer = p
	s.Actions = append(s.Actions, Action{Kind: "click", Point: p, Arg: count})
	return nil
}

func (s *Screen) Scroll(delta int) error {
	s.Actions = append(s.Actions, Action{Kind: "scroll", Arg: delta})
	return nil
}

func (s *Screen) Position() screen.Point { return s.pointer }

// Clicks returns only the recorded clicks.
func (s *Screen) Clicks() []screen.Point {
	var out []screen.Point
	for _, a := range s.Actions {
		if a.Kind == "click" {
			out = append(out, a.Point)
		}
	}
	return out
}

// #endregion
