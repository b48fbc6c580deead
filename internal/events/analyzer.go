package events

import (
	"strings"

	"github.com/HandrianD/umamusume-auto-train/internal/knowledge"
)

// #region keywords

// skillHintKeywords strongly suggest an option grants a skill hint.
var skillHintKeywords = []string{
	"skill hint", "hint", "skill pt", "skill point",
}

// positiveKeywords mark generally good outcomes.
var positiveKeywords = []string{
	"energy", "mood", "stat", "bond", "friendship",
	"speed", "stamina", "power", "guts", "wit", "wisdom",
	"recover", "heal", "motivation", "all stats",
}

// negativeKeywords mark outcomes worth avoiding.
var negativeKeywords = []string{
	"lose", "decrease", "drop", "down", "fail", "bad",
	"tired", "injur", "sick", "worse", "negative", "risk",
}

// #endregion

// #region scoring

// scoreOptionText rates one option's text: skill hints dominate, then
// positive mentions, with penalties for negative mentions.
func scoreOptionText(text string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, kw := range skillHintKeywords {
		if strings.Contains(lower, kw) {
			score += 3
		}
	}
	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(lower, kw) {
			score--
		}
	}
	return score
}

// scoreOption folds declared stat effects into the text score so that
// scraped entries with structured effects outrank bare strings.
func scoreOption(opt knowledge.Option) int {
	score := scoreOptionText(opt.Text)
	for _, delta := range opt.Effects {
		if delta > 0 {
			score++
		} else if delta < 0 {
			score--
		}
	}
	return score
}

// AnalyzeOptions picks the best option index (1-based) from catalog
// option texts. Requires at least two options to discriminate; ties go
// to the earliest index.
func AnalyzeOptions(opts []knowledge.Option) (int, bool) {
	if len(opts) < 2 {
		return 0, false
	}
	bestIdx := 1
	bestScore := scoreOption(opts[0])
	for i := 1; i < len(opts); i++ {
		if s := scoreOption(opts[i]); s > bestScore {
			bestScore = s
			bestIdx = i + 1
		}
	}
	return bestIdx, true
}

// #endregion
