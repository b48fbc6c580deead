package career

import (
	"log"
	"time"

	"github.com/HandrianD/umamusume-auto-train/internal/screen"
)

// #region race-day

// raceDaySequence runs a scheduled race from the lobby: ok through the
// schedule dialog, into the race, then through the result screens.
func (l *Loop) raceDaySequence() bool {
	if !clickTemplate(l.percept, l.actuate, tmplRaceDay, defaultConf, 2*time.Second) {
		return false
	}
	l.sleep(time.Second)
	clickTemplate(l.percept, l.actuate, tmplOKButton, defaultConf, 2*time.Second)
	return l.runRace()
}

// runRace drives the in-race screens. The race button is pressed twice:
// once to enter, once to confirm the lineup.
func (l *Loop) runRace() bool {
	for i := 0; i < 2; i++ {
		if !clickTemplate(l.percept, l.actuate, tmplRaceButton, defaultConf, 5*time.Second) {
			log.Printf("[RACE] race button press %d missed", i+1)
			return false
		}
		l.sleep(time.Second)
	}
	l.finishRace()
	return true
}

// finishRace skips the result playback and the after-race screens.
func (l *Loop) finishRace() {
	if clickTemplate(l.percept, l.actuate, tmplViewResults, defaultConf, 10*time.Second) {
		// Playback skip needs a few clicks anywhere on the screen.
		center := screen.Point{X: screen.Width / 2, Y: screen.Height / 2}
		for i := 0; i < 3; i++ {
			if err := l.actuate.Click(center, 3); err != nil {
				break
			}
			l.sleep(400 * time.Millisecond)
		}
	}
	deadline := time.Now().Add(15 * time.Second)
	for time.Now().Before(deadline) {
		clicked := false
		for _, tmpl := range []string{tmplAfterRace, tmplNext, tmplOKButton} {
			if clickTemplate(l.percept, l.actuate, tmpl, defaultConf, time.Second) {
				clicked = true
				l.sleep(500 * time.Millisecond)
			}
		}
		if !clicked {
			return
		}
	}
}

// #endregion

// #region race-picker

// seekRace opens the race list and enters the first aptitude-matched
// race, restricted to G1 when g1Only is set. Scrolls the list a bounded
// number of times; a miss backs out to the lobby.
func (l *Loop) seekRace(g1Only bool) bool {
	if !clickTemplate(l.percept, l.actuate, tmplRaces, defaultConf, 2*time.Second) {
		return false
	}
	l.sleep(time.Second)
	// Consecutive-race warning can appear before the list does.
	if !l.confirmConsecutive() {
		return false
	}

	for pass := 0; pass < 4; pass++ {
		if p, ok := l.findSuitableRace(g1Only); ok {
			if err := clickWithJitter(l.actuate, p); err != nil {
				log.Printf("[RACE] select race: %v", err)
				break
			}
			l.sleep(500 * time.Millisecond)
			if clickTemplate(l.percept, l.actuate, tmplRaceButton, defaultConf, 2*time.Second) {
				l.sleep(time.Second)
				return l.runRace()
			}
			break
		}
		if err := l.actuate.Scroll(-300); err != nil {
			break
		}
		l.sleep(300 * time.Millisecond)
	}

	l.backOut()
	return false
}

// findSuitableRace scans the visible race list for an aptitude match.
func (l *Loop) findSuitableRace(g1Only bool) (screen.Point, bool) {
	matches := l.percept.Find(tmplMatchTrack, screen.Box{}, defaultConf)
	if len(matches) == 0 {
		return screen.Point{}, false
	}
	if !g1Only {
		return matches[0].Center(), true
	}
	badges := l.percept.Find(tmplG1Badge, screen.Box{}, defaultConf)
	for _, m := range matches {
		for _, b := range badges {
			// Badge and aptitude icon sit on the same list row.
			if abs(m.Center().Y-b.Center().Y) < 40 {
				return m.Center(), true
			}
		}
	}
	return screen.Point{}, false
}

// confirmConsecutive handles the too-many-races-in-a-row warning. The
// return value is false when the race was aborted per config.
func (l *Loop) confirmConsecutive() bool {
	pt, ok := l.percept.LocateCenter(tmplCancel, defaultConf, 500*time.Millisecond)
	if !ok {
		return true
	}
	if l.cfg.CancelConsecutiveRace {
		log.Printf("[RACE] consecutive race warning, cancelling per config")
		if err := clickWithJitter(l.actuate, pt); err != nil {
			log.Printf("[RACE] cancel click: %v", err)
		}
		return false
	}
	clickTemplate(l.percept, l.actuate, tmplOKButton, defaultConf, time.Second)
	return true
}

// backOut returns to the lobby after an aborted race search.
func (l *Loop) backOut() {
	for i := 0; i < 3; i++ {
		if !clickTemplate(l.percept, l.actuate, tmplBackButton, defaultConf, time.Second) {
			return
		}
		l.sleep(400 * time.Millisecond)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// #endregion
