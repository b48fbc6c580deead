// Package skills automates skill purchases from the skill list screen.
package skills

import (
	"log"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/HandrianD/umamusume-auto-train/internal/config"
	"github.com/HandrianD/umamusume-auto-train/internal/screen"
)

// #region templates

const (
	tmplBuyButton = "buy_skill"
	buyConf       = 0.85
	scrollStep    = -300
)

// labelOffset places the skill name region relative to a buy button.
// The name renders in a fixed column to the button's left.
var labelOffset = screen.Box{X: -420, Y: -45, W: 275, H: 40}

// pointsRegion is where the remaining skill points render.
var pointsRegion = screen.Box{X: 1060, Y: 160, W: 130, H: 40}

// #endregion

// #region advisor

// Advisor walks the skill list and buys wanted skills the run can afford.
type Advisor struct {
	cfg     config.SkillConfig
	percept screen.Perception
	actuate screen.Actuation

	sleep func(time.Duration) // test hook
}

// New builds an advisor from the skill section of the config.
func New(cfg config.SkillConfig, p screen.Perception, a screen.Actuation) *Advisor {
	return &Advisor{cfg: cfg, percept: p, actuate: a, sleep: time.Sleep}
}

// Buy scrolls through the skill list in bounded passes and purchases
// every affordable want-list match. It returns how many skills were
// bought; perception trouble shows up as zero purchases, not an error.
func (a *Advisor) Buy() int {
	if !a.cfg.AutoBuy || len(a.cfg.WantList) == 0 {
		return 0
	}
	if pts, ok := a.readPoints(); ok && pts < a.cfg.PointsCheck {
		log.Printf("[SKILL] %d points below floor %d, skipping", pts, a.cfg.PointsCheck)
		return 0
	}

	bought := 0
	for pass := 0; pass < a.cfg.ScrollPasses; pass++ {
		for _, btn := range a.percept.Find(tmplBuyButton, screen.Box{}, buyConf) {
			name := strings.TrimSpace(a.percept.ReadText(labelRegion(btn)))
			if name == "" {
				continue
			}
			want, ratio := a.bestWant(name)
			if ratio < a.cfg.MatchRatio {
				continue
			}
			if !screen.ButtonActive(a.percept, btn) {
				log.Printf("[SKILL] %q matched %q but button inactive", name, want)
				continue
			}
			if err := a.actuate.Click(btn.Center(), 1); err != nil {
				log.Printf("[SKILL] click %q: %v", name, err)
				continue
			}
			a.confirmPurchase()
			log.Printf("[SKILL] bought %q (matched %q, %.2f)", name, want, ratio)
			bought++
		}
		if err := a.actuate.Scroll(scrollStep); err != nil {
			log.Printf("[SKILL] scroll: %v", err)
			break
		}
		a.sleep(300 * time.Millisecond)
	}
	return bought
}

// #endregion

// #region matching

// bestWant returns the closest want-list entry to the OCR'd name and
// its similarity ratio.
func (a *Advisor) bestWant(name string) (string, float64) {
	lower := strings.ToLower(name)
	best := ""
	bestRatio := 0.0
	for _, want := range a.cfg.WantList {
		r := ratio(lower, strings.ToLower(want))
		if r > bestRatio {
			bestRatio = r
			best = want
		}
	}
	return best, bestRatio
}

// ratio converts edit distance into a 0..1 similarity.
func ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

// #endregion

// #region screen-helpers

func labelRegion(btn screen.Box) screen.Box {
	c := btn.Center()
	r := screen.Box{
		X: c.X + labelOffset.X,
		Y: c.Y + labelOffset.Y,
		W: labelOffset.W,
		H: labelOffset.H,
	}
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	return r
}

func (a *Advisor) readPoints() (int, bool) {
	text := a.percept.ReadText(pointsRegion)
	pts := 0
	seen := false
	for _, r := range text {
		if r >= '0' && r <= '9' {
			pts = pts*10 + int(r-'0')
			seen = true
		}
	}
	return pts, seen
}

func (a *Advisor) confirmPurchase() {
	if p, ok := a.percept.LocateCenter("learn_btn", buyConf, time.Second); ok {
		if err := a.actuate.Click(p, 1); err != nil {
			log.Printf("[SKILL] confirm click: %v", err)
		}
	}
}

// #endregion
