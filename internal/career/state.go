package career

import (
	"strings"
	"unicode"

	"github.com/HandrianD/umamusume-auto-train/internal/config"
	"github.com/HandrianD/umamusume-auto-train/internal/knowledge"
	"github.com/HandrianD/umamusume-auto-train/internal/screen"
)

// #region run-state

// RunState is one tick's OCR snapshot of the lobby header.
type RunState struct {
	Year     string
	Turn     int // turns until the current goal; -1 when unreadable
	RaceDay  bool
	Mood     string
	Criteria string
	Energy   int // percent; -1 when unreadable or disabled
	Stats    map[config.Stat]int
}

// ReadState OCRs the lobby header. Unreadable fields come back as their
// zero/unknown values; callers branch on what they got.
func ReadState(p screen.Perception, energyEnabled bool) RunState {
	st := RunState{
		Year:     cleanLine(p.ReadText(RegionYear)),
		Mood:     parseMood(p.ReadText(RegionMood)),
		Criteria: cleanLine(p.ReadText(RegionCriteria)),
		Energy:   -1,
		Stats:    readStats(p),
	}
	st.Turn, st.RaceDay = parseTurn(p.ReadText(RegionTurn))
	if energyEnabled {
		st.Energy = parsePercent(p.ReadText(RegionEnergy))
	}
	return st
}

// Snapshot converts the tick state for the choice log.
func (st RunState) Snapshot() knowledge.RunSnapshot {
	stats := make(map[string]int, len(st.Stats))
	for k, v := range st.Stats {
		stats[string(k)] = v
	}
	return knowledge.RunSnapshot{
		Stats:  stats,
		Mood:   st.Mood,
		Year:   st.Year,
		Turn:   st.Turn,
		Energy: st.Energy,
	}
}

// #endregion

// #region year-phase

// PreDebut reports whether the run is still before the first race.
func (st RunState) PreDebut() bool {
	return strings.Contains(st.Year, "Pre-Debut") || strings.Contains(st.Year, "PreDebut")
}

// FirstPhase covers the junior year, where bond building outweighs raw
// stat gain.
func (st RunState) FirstPhase() bool {
	return strings.Contains(st.Year, "Junior") || st.PreDebut()
}

// SummerBreak reports the months with no scheduled G1 races.
func (st RunState) SummerBreak() bool {
	return strings.Contains(st.Year, "Jul") || strings.Contains(st.Year, "Aug")
}

// CriteriaMet reports whether the current goal reads as achieved.
func (st RunState) CriteriaMet() bool {
	c := strings.ToLower(st.Criteria)
	return strings.Contains(c, "achieved") || strings.Contains(c, "goal met")
}

// MoodBelow reports whether the detected mood is worse than minimum.
// Unreadable mood never triggers recreation.
func (st RunState) MoodBelow(minimum string) bool {
	cur := config.MoodIndex(st.Mood)
	min := config.MoodIndex(minimum)
	return cur >= 0 && min >= 0 && cur < min
}

// #endregion

// #region parsing

// parseTurn extracts the turn counter. The region shows either a number
// or the words "Race Day".
func parseTurn(text string) (int, bool) {
	up := strings.ToUpper(text)
	if strings.Contains(up, "RACE") {
		return -1, true
	}
	n, ok := digits(text)
	if !ok {
		return -1, false
	}
	return n, false
}

// parseMood maps noisy OCR text onto the closest known mood label.
func parseMood(text string) string {
	up := strings.ToUpper(strings.TrimSpace(text))
	for _, m := range config.MoodList {
		if strings.Contains(up, m) {
			return m
		}
	}
	best := ""
	bestScore := 0.0
	for _, m := range config.MoodList {
		if s := knowledge.Similarity(up, m); s > bestScore && s >= 0.6 {
			bestScore = s
			best = m
		}
	}
	return best
}

// parsePercent reads "52/100"-style energy text. -1 means unreadable.
func parsePercent(text string) int {
	head := text
	if i := strings.IndexByte(text, '/'); i >= 0 {
		head = text[:i]
	}
	n, ok := digits(head)
	if !ok || n > 100 {
		return -1
	}
	return n
}

// digits pulls a single non-negative integer out of noisy text.
func digits(text string) (int, bool) {
	n := 0
	seen := false
	for _, r := range text {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
			seen = true
		} else if seen {
			break
		}
	}
	return n, seen
}

// cleanLine strips OCR artifacts that are never part of the real text.
func cleanLine(text string) string {
	var b strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '/' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// #endregion

// #region stat-regions

// StatRegions are the five stat readouts along the bottom of the lobby.
var StatRegions = map[config.Stat]screen.Box{
	config.StatSpeed:   {X: 310, Y: 723, W: 55, H: 25},
	config.StatStamina: {X: 405, Y: 723, W: 55, H: 25},
	config.StatPower:   {X: 500, Y: 723, W: 55, H: 25},
	config.StatGuts:    {X: 595, Y: 723, W: 55, H: 25},
	config.StatWit:     {X: 690, Y: 723, W: 55, H: 25},
}

func readStats(p screen.Perception) map[config.Stat]int {
	out := make(map[config.Stat]int, len(StatRegions))
	for stat, region := range StatRegions {
		if n, ok := digits(p.ReadText(region)); ok {
			out[stat] = n
		}
	}
	return out
}

// #endregion
