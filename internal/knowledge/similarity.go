// Package knowledge holds everything the bot knows about narrative
// events: the static pre-scraped catalog, the append-only log of choices
// made by the human or the agent, and the fuzzy title matching that ties
// OCR'd text back to both.
package knowledge

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// #region thresholds

// Similarity thresholds used around the codebase. Titles arrive through
// OCR and routinely lose punctuation or a character or two, so the
// thresholds are loose.
const (
	// LearnedMatchThreshold gates reuse of a previously logged choice.
	LearnedMatchThreshold = 0.6

	// CatalogMatchThreshold gates a static catalog hit.
	CatalogMatchThreshold = 0.6
)

// #endregion

// #region normalize

// Normalize produces the fingerprint form of an event title: lowercased,
// punctuation stripped, whitespace collapsed.
func Normalize(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	lastSpace := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case !lastSpace:
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// #endregion

// #region similarity

// Similarity scores two titles in [0,1]. It is reflexive (1.0 for equal
// inputs) and symmetric but NOT transitive: a may match b and b match c
// without a matching c. Lookups must therefore scan for the best match
// above a threshold rather than bucket by equality.
//
// The score is the better of word-set overlap (robust to reordering and
// dropped words) and normalized edit distance (robust to OCR character
// noise inside words).
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1.0
	}

	jac := jaccard(strings.Fields(na), strings.Fields(nb))
	lev := levenshteinRatio(na, nb)
	if lev > jac {
		return lev
	}
	return jac
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, w := range a {
		set[w] = true
	}
	inter := 0
	union := len(set)
	seen := make(map[string]bool, len(b))
	for _, w := range b {
		if seen[w] {
			continue
		}
		seen[w] = true
		if set[w] {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}

func levenshteinRatio(a, b string) float64 {
	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

// #endregion
