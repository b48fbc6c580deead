package events

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/HandrianD/umamusume-auto-train/internal/knowledge"
	"github.com/HandrianD/umamusume-auto-train/internal/screen"
)

// #region templates

const (
	tmplChoice = "event_choice_1"
	tmplNext   = "next_btn"
)

// TitleRegion is where the event name renders above the option list.
var TitleRegion = screen.Box{X: 240, Y: 200, W: 365, H: 45}

const (
	detectCooldown  = 5 * time.Second
	detectPerMinute = 10
	choiceConf      = 0.8
	dedupePx        = 20
)

// #endregion

// #region event

// Event is a detected story event awaiting a choice.
type Event struct {
	Title   string
	Choices []screen.Point // option click targets, top to bottom
}

// ChoiceCount returns the number of detected options.
func (e Event) ChoiceCount() int { return len(e.Choices) }

// #endregion

// #region detector

// Detector decides whether the current frame shows a story event. False
// positives cost a wrong click, so every guard errs toward "no event".
type Detector struct {
	percept screen.Perception
	paced   bool

	lastDetect time.Time
	recent     []time.Time

	now func() time.Time // test hook
}

// NewDetector wires a detector to a perception source.
func NewDetector(p screen.Perception) *Detector {
	return &Detector{percept: p, paced: true, now: time.Now}
}

// DisablePacing turns off the cooldown and rate limit, for replay runs
// where frames do not advance in real time.
func (d *Detector) DisablePacing() {
	d.paced = false
}

// Detect scans the frame for a story event. A false return means
// "continue the lobby loop", never an error.
func (d *Detector) Detect() (Event, bool) {
	ts := d.now()
	if d.paced {
		if !d.lastDetect.IsZero() && ts.Sub(d.lastDetect) < detectCooldown {
			return Event{}, false
		}
		if d.ratePerMinute(ts) >= detectPerMinute {
			log.Printf("[EVENT] detection rate limit hit, backing off")
			return Event{}, false
		}
	}

	// A visible next button means a result screen, not a choice.
	if hits := d.percept.Find(tmplNext, screen.Box{}, choiceConf); len(hits) > 0 {
		return Event{}, false
	}

	choices := DedupeChoices(d.percept.Find(tmplChoice, screen.Box{}, choiceConf))
	if len(choices) < 2 {
		return Event{}, false
	}

	title := strings.TrimSpace(d.percept.ReadText(TitleRegion))
	if !knowledge.PlausibleTitle(title) {
		log.Printf("[EVENT] choices visible but title %q implausible, skipping", title)
		return Event{}, false
	}

	d.lastDetect = ts
	d.recent = append(d.recent, ts)
	log.Printf("[EVENT] detected %q with %d choices", title, len(choices))
	return Event{Title: title, Choices: choices}, true
}

func (d *Detector) ratePerMinute(ts time.Time) int {
	cutoff := ts.Add(-time.Minute)
	kept := d.recent[:0]
	for _, t := range d.recent {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	d.recent = kept
	return len(kept)
}

// #endregion

// #region dedupe

// DedupeChoices collapses overlapping template hits into one point per
// option and orders them top to bottom.
func DedupeChoices(hits []screen.Box) []screen.Point {
	pts := make([]screen.Point, 0, len(hits))
	for _, b := range hits {
		c := b.Center()
		dup := false
		for _, p := range pts {
			if abs(p.Y-c.Y) < dedupePx && abs(p.X-c.X) < dedupePx {
				dup = true
				break
			}
		}
		if !dup {
			pts = append(pts, c)
		}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].Y < pts[j].Y })
	return pts
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// #endregion
