package knowledge

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// #region option

// Option is one selectable choice of a catalog event. Scraped files mix
// two shapes: a bare string, or an object with text and stat effects.
type Option struct {
	Text    string
	Effects map[string]int
}

// UnmarshalJSON accepts both the string and the object form.
func (o *Option) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		o.Text = s
		return nil
	}
	var obj struct {
		Text    string         `json:"text"`
		Name    string         `json:"name"`
		Effects map[string]int `json:"effects"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	o.Text = obj.Text
	if o.Text == "" {
		o.Text = obj.Name
	}
	o.Effects = obj.Effects
	return nil
}

// #endregion

// #region catalog-event

// CatalogEvent is one pre-scraped event entry.
type CatalogEvent struct {
	Name       string    `json:"name"`
	Type       EventType `json:"-"`
	AutoChoice int       `json:"auto_choice,omitempty"`
	Choices    []Option  `json:"choices,omitempty"`
	Options    []Option  `json:"options,omitempty"`
}

// CandidateOptions returns the event's option list regardless of which
// key the scraper used.
func (e CatalogEvent) CandidateOptions() []Option {
	if len(e.Choices) > 0 {
		return e.Choices
	}
	return e.Options
}

// #endregion

// #region catalog

// Catalog is the static, read-only event knowledge loaded at startup for
// the configured character, support card roster, and scenario.
type Catalog struct {
	events []CatalogEvent
}

type catalogFile struct {
	Name   string         `json:"name"`
	Events []CatalogEvent `json:"events"`
}

// LoadCatalog reads the per-character, per-support-card, and per-scenario
// files from dir. Missing files are logged and skipped; an empty catalog
// just means every lookup falls through to the next resolver tier.
func LoadCatalog(dir, characterID string, supportCards []string, scenario string) *Catalog {
	c := &Catalog{}
	c.loadFile(filepath.Join(dir, "character", characterID+".json"), EventCharacter)
	for _, card := range supportCards {
		c.loadFile(filepath.Join(dir, "support", card+".json"), EventSupport)
	}
	if scenario != "" {
		c.loadFile(filepath.Join(dir, "scenario", scenario+".json"), EventScenario)
	}
	log.Printf("[CATALOG] loaded %d events", len(c.events))
	return c
}

func (c *Catalog) loadFile(path string, typ EventType) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[CATALOG] skip %s: %v", path, err)
		return
	}
	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		log.Printf("[CATALOG] skip %s: %v", path, err)
		return
	}
	for _, ev := range file.Events {
		ev.Type = typ
		c.events = append(c.events, ev)
	}
}

// NewCatalogFromEvents builds a catalog directly from entries. Test hook.
func NewCatalogFromEvents(events []CatalogEvent) *Catalog {
	return &Catalog{events: events}
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int { return len(c.events) }

// #endregion

// #region catalog-lookup

// BestMatch finds the catalog event most similar to title above the
// catalog threshold. Preference on equal scores follows load order:
// character, then supports, then scenario.
func (c *Catalog) BestMatch(title string) (CatalogEvent, float64, bool) {
	var best CatalogEvent
	bestScore := 0.0
	found := false

	for _, ev := range c.events {
		score := Similarity(title, ev.Name)
		if score > bestScore {
			bestScore = score
			best = ev
			found = true
		}
	}
	if !found || bestScore < CatalogMatchThreshold {
		return CatalogEvent{}, bestScore, false
	}
	return best, bestScore, true
}

// VictoryAutoChoice recognizes victory-style titles that always take the
// top option regardless of catalog coverage.
func VictoryAutoChoice(title string) (int, bool) {
	lower := strings.ToLower(title)
	for _, kw := range []string{"victor", "victory", " win", "won "} {
		if strings.Contains(lower, kw) {
			return 1, true
		}
	}
	return 0, false
}

// #endregion

// #region validation

// PlausibleTitle filters OCR noise before treating text as an event
// title: too short, mostly symbols, or a known UI phrase means "not an
// event" rather than an error.
func PlausibleTitle(title string) bool {
	n := Normalize(title)
	if len(n) < 4 {
		return false
	}
	if !strings.ContainsAny(n, "abcdefghijklmnopqrstuvwxyz") {
		return false
	}
	for _, ui := range uiPhrases {
		if Similarity(n, ui) >= 0.8 {
			return false
		}
	}
	return true
}

// uiPhrases are non-event texts that show up in the title region.
var uiPhrases = []string{
	"race results",
	"next goal",
	"goals achieved",
	"training menu",
	"career lobby",
	"back to training",
}

// #endregion

