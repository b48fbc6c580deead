package career

import (
	"log"
	"strings"
	"time"

	"github.com/HandrianD/umamusume-auto-train/internal/config"
	"github.com/HandrianD/umamusume-auto-train/internal/screen"
	"github.com/HandrianD/umamusume-auto-train/internal/training"
)

// #region measure

const (
	supportIconConf  = 0.75
	measureHoverWait = 300 * time.Millisecond
)

// supportIconTemplates identify support cards on a facility by type.
var supportIconTemplates = map[config.Stat]string{
	config.StatSpeed:   "support_spd",
	config.StatStamina: "support_sta",
	config.StatPower:   "support_pwr",
	config.StatGuts:    "support_guts",
	config.StatWit:     "support_wit",
}

// measureFacilities hovers each facility and reads its support cards and
// failure chance. A facility whose button cannot be located is skipped.
func (l *Loop) measureFacilities(st RunState, maxFailure int) []training.Option {
	opts := make([]training.Option, 0, len(config.Stats))
	for _, stat := range config.Stats {
		tmpl := facilityTemplates[string(stat)]
		pt, ok := l.percept.LocateCenter(tmpl, defaultConf, time.Second)
		if !ok {
			log.Printf("[TRAIN] facility %s not found, skipping", stat)
			continue
		}
		if err := l.actuate.MoveTo(pt, 150*time.Millisecond); err != nil {
			log.Printf("[TRAIN] hover %s: %v", stat, err)
			continue
		}
		l.sleep(measureHoverWait)

		opt := training.Option{
			Stat:    stat,
			Gain:    l.cfg.Training.DefaultStatGain,
			Failure: parseFailure(l.percept.ReadText(RegionFailure)),
		}
		opt.Support, opt.SameType = countSupports(l.percept, stat)
		opts = append(opts, opt)

		// Safe high-support facility in the first phase decides the turn
		// outright, so skip the remaining hovers.
		if st.FirstPhase() && opt.Support >= 3 && opt.Failure >= 0 && opt.Failure <= maxFailure {
			log.Printf("[TRAIN] %s has %d supports at %d%% failure, short-circuit", stat, opt.Support, opt.Failure)
			break
		}
	}
	return opts
}

// countSupports counts all support icons on the hovered facility and how
// many match the facility's own type.
func countSupports(p screen.Perception, stat config.Stat) (total, sameType int) {
	for iconStat, tmpl := range supportIconTemplates {
		n := len(p.Find(tmpl, RegionSupports, supportIconConf))
		total += n
		if iconStat == stat {
			sameType = n
		}
	}
	return total, sameType
}

// parseFailure reads the "Failure N%" readout. -1 means unreadable, which
// the scorer treats as unsafe.
func parseFailure(text string) int {
	up := strings.ToUpper(text)
	i := strings.Index(up, "FAIL")
	if i < 0 {
		return -1
	}
	n, ok := digits(up[i:])
	if !ok || n > 100 {
		return -1
	}
	return n
}

// #endregion
