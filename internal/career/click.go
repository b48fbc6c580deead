package career

import (
	"fmt"
	"log"
	"time"

	"github.com/HandrianD/umamusume-auto-train/internal/screen"
)

// #region click-retry

// jitterOffsets are tried in order after a failed click. Small nudges
// recover from template centers that land on a button's dead border.
var jitterOffsets = []screen.Point{
	{X: 0, Y: 0},
	{X: 10, Y: 5},
	{X: -10, Y: -5},
}

// clickWithJitter clicks p, retrying with small offsets. Failure after
// every offset abandons the action for the tick.
func clickWithJitter(a screen.Actuation, p screen.Point) error {
	var lastErr error
	for i, off := range jitterOffsets {
		target := screen.Point{X: p.X + off.X, Y: p.Y + off.Y}
		if !target.Valid() {
			lastErr = fmt.Errorf("target %v outside safe screen area", target)
			continue
		}
		if err := a.Click(target, 1); err != nil {
			lastErr = err
			log.Printf("[BOT] click attempt %d at %v: %v", i+1, target, err)
			continue
		}
		return nil
	}
	return fmt.Errorf("click abandoned after %d attempts: %w", len(jitterOffsets), lastErr)
}

// clickTemplate locates a template and clicks its center.
func clickTemplate(p screen.Perception, a screen.Actuation, template string, conf float64, wait time.Duration) bool {
	pt, ok := p.LocateCenter(template, conf, wait)
	if !ok {
		return false
	}
	if err := clickWithJitter(a, pt); err != nil {
		log.Printf("[BOT] %s: %v", template, err)
		return false
	}
	return true
}

// #endregion
