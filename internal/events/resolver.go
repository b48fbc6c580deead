package events

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/HandrianD/umamusume-auto-train/internal/knowledge"
	"github.com/HandrianD/umamusume-auto-train/internal/screen"
)

// #region decision

// Source names which resolver tier produced a decision.
type Source string

const (
	SourceAuto     Source = "auto"
	SourceLearned  Source = "learned"
	SourceCatalog  Source = "catalog"
	SourceOverride Source = "override"
	SourceFallback Source = "fallback"
	SourceDefault  Source = "default"
)

// Decision is a committed answer for one event.
type Decision struct {
	Index   int // 1-based option index; 0 when the human pick could not be inferred
	Point   screen.Point
	Source  Source
	ByHuman bool

	// SessionID identifies the logged ChoiceRecord, for the outcome
	// update on the next tick. Empty when nothing was recorded.
	SessionID string
}

// NeedsClick reports whether the caller still has to perform the click.
func (d Decision) NeedsClick() bool {
	return !d.ByHuman && d.Index > 0
}

// #endregion

// #region resolver

const (
	pollInterval    = 500 * time.Millisecond
	pointerInferPx  = 50
	defaultOverride = 20 * time.Second
)

// strategy is one resolver tier. A false return means "no answer, try
// the next tier"; tiers never error.
type strategy interface {
	name() Source
	resolve(ev Event, match *knowledge.CatalogEvent) (Decision, bool)
}

// Resolver walks the tier chain for each detected event and records the
// outcome so later runs can reuse it.
type Resolver struct {
	store   *knowledge.Store
	catalog *knowledge.Catalog
	layout  *Layout

	percept screen.Perception
	actuate screen.Actuation

	overrideWindow time.Duration
	collectData    bool
	stopped        func() bool

	character string
	supports  []string

	chain []strategy
	sleep func(time.Duration) // test hook
}

// ResolverOptions carries the per-run wiring for a Resolver.
type ResolverOptions struct {
	Store          *knowledge.Store
	Catalog        *knowledge.Catalog
	Layout         *Layout
	Perception     screen.Perception
	Actuation      screen.Actuation
	OverrideWindow time.Duration
	CollectData    bool
	Stopped        func() bool
	Character      string
	SupportCards   []string
	Sleep          func(time.Duration) // nil = time.Sleep
}

// NewResolver builds the tier chain in priority order.
func NewResolver(opts ResolverOptions) *Resolver {
	r := &Resolver{
		store:          opts.Store,
		catalog:        opts.Catalog,
		layout:         opts.Layout,
		percept:        opts.Perception,
		actuate:        opts.Actuation,
		overrideWindow: opts.OverrideWindow,
		collectData:    opts.CollectData,
		stopped:        opts.Stopped,
		character:      opts.Character,
		supports:       opts.SupportCards,
		sleep:          opts.Sleep,
	}
	if r.sleep == nil {
		r.sleep = time.Sleep
	}
	if r.layout == nil {
		r.layout = DefaultLayout()
	}
	if r.overrideWindow <= 0 {
		r.overrideWindow = defaultOverride
	}
	if r.stopped == nil {
		r.stopped = func() bool { return false }
	}
	r.chain = []strategy{
		&autoChoiceStrategy{r},
		&learnedStrategy{r},
		&catalogStrategy{r},
		&overrideStrategy{r},
		&fallbackStrategy{r},
		&defaultStrategy{r},
	}
	return r
}

// Resolve walks the chain until a tier commits, then persists the
// outcome. The final tier always answers; Index is 0 only when a human
// handled the event and the pick could not be inferred.
func (r *Resolver) Resolve(ev Event, snap knowledge.RunSnapshot) Decision {
	var match *knowledge.CatalogEvent
	if r.catalog != nil {
		if m, score, ok := r.catalog.BestMatch(ev.Title); ok {
			log.Printf("[EVENT] catalog match %q (%.2f)", m.Name, score)
			match = &m
		}
	}

	for _, tier := range r.chain {
		dec, ok := tier.resolve(ev, match)
		if !ok {
			continue
		}
		dec.Source = tier.name()
		log.Printf("[EVENT] %q resolved by %s tier: choice %d", ev.Title, dec.Source, dec.Index)
		dec.SessionID = r.record(ev, snap, match, dec)
		return dec
	}

	// Unreachable: the default tier always answers.
	dec := Decision{Index: 1, Source: SourceDefault}
	dec.SessionID = r.record(ev, snap, match, dec)
	return dec
}

// #endregion

// #region persistence

// record logs the decision and returns the new record's session ID, or
// "" when nothing was written.
func (r *Resolver) record(ev Event, snap knowledge.RunSnapshot, match *knowledge.CatalogEvent, dec Decision) string {
	if r.store == nil || !r.collectData {
		return ""
	}
	// Learned answers came out of the log; re-appending them only bloats it.
	if dec.Source == SourceLearned {
		return ""
	}
	typ := knowledge.EventUnknown
	if match != nil {
		typ = match.Type
	}
	choiceMade := "unknown"
	if dec.Index > 0 {
		choiceMade = fmt.Sprintf("%d", dec.Index)
	}
	detected := make([]string, 0, len(ev.Choices))
	for i := range ev.Choices {
		detected = append(detected, fmt.Sprintf("%d", i+1))
	}
	rec := knowledge.ChoiceRecord{
		SessionID:        uuid.NewString(),
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		EventText:        ev.Title,
		EventType:        typ,
		DetectedChoices:  detected,
		ChoiceMade:       choiceMade,
		Character:        r.character,
		SupportCards:     r.supports,
		Snapshot:         snap,
		UserIntervention: dec.ByHuman,
	}
	if err := r.store.Append(rec); err != nil {
		log.Printf("[STORE] record event choice: %v", err)
		return ""
	}
	return rec.SessionID
}

// #endregion

// #region tier-auto

// autoChoiceStrategy answers from forced picks: a catalog auto_choice or
// a victory-style title.
type autoChoiceStrategy struct{ r *Resolver }

func (s *autoChoiceStrategy) name() Source { return SourceAuto }

func (s *autoChoiceStrategy) resolve(ev Event, match *knowledge.CatalogEvent) (Decision, bool) {
	idx := 0
	if match != nil && match.AutoChoice > 0 {
		idx = match.AutoChoice
	} else if auto, ok := knowledge.VictoryAutoChoice(ev.Title); ok {
		idx = auto
	}
	if idx == 0 {
		return Decision{}, false
	}
	return s.r.commit(ev, idx)
}

// #endregion

// #region tier-learned

// learnedStrategy reuses a choice from the log when the title matches a
// previous session closely enough. A learned answer skips the override
// window entirely.
type learnedStrategy struct{ r *Resolver }

func (s *learnedStrategy) name() Source { return SourceLearned }

func (s *learnedStrategy) resolve(ev Event, _ *knowledge.CatalogEvent) (Decision, bool) {
	if s.r.store == nil {
		return Decision{}, false
	}
	rec, score, ok := s.r.store.BestMatch(ev.Title, knowledge.LearnedMatchThreshold)
	if !ok {
		return Decision{}, false
	}
	idx := parseChoice(rec.ChoiceMade)
	if idx == 0 {
		return Decision{}, false
	}
	log.Printf("[EVENT] learned %q → choice %d (%.2f)", rec.EventText, idx, score)
	return s.r.commit(ev, idx)
}

func parseChoice(s string) int {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0
	}
	return int(s[0] - '0')
}

// #endregion

// #region tier-catalog

// catalogStrategy scores the matched catalog entry's option texts.
type catalogStrategy struct{ r *Resolver }

func (s *catalogStrategy) name() Source { return SourceCatalog }

func (s *catalogStrategy) resolve(ev Event, match *knowledge.CatalogEvent) (Decision, bool) {
	if match == nil {
		return Decision{}, false
	}
	idx, ok := AnalyzeOptions(match.CandidateOptions())
	if !ok {
		return Decision{}, false
	}
	return s.r.commit(ev, idx)
}

// #endregion

// #region tier-override

// overrideStrategy holds the event open so a human can take it. The
// window polls both the stop flag and option visibility; when the
// options disappear, the human clicked, and the pick is inferred from
// the pointer position.
type overrideStrategy struct{ r *Resolver }

func (s *overrideStrategy) name() Source { return SourceOverride }

func (s *overrideStrategy) resolve(ev Event, _ *knowledge.CatalogEvent) (Decision, bool) {
	r := s.r
	if r.percept == nil {
		return Decision{}, false
	}
	log.Printf("[EVENT] unknown event %q, waiting %s for manual choice", ev.Title, r.overrideWindow)

	deadline := time.Now().Add(r.overrideWindow)
	for time.Now().Before(deadline) {
		if r.stopped() {
			return Decision{}, false
		}
		hits := r.percept.Find(tmplChoice, screen.Box{}, choiceConf)
		if len(hits) == 0 {
			idx := 0
			if r.actuate != nil {
				idx = r.layout.Nearest(ev.ChoiceCount(), r.actuate.Position(), pointerInferPx)
			}
			if idx == 0 {
				log.Printf("[EVENT] manual choice taken, pick not inferred")
			}
			return Decision{Index: idx, ByHuman: true}, true
		}
		r.sleep(pollInterval)
	}
	return Decision{}, false
}

// #endregion

// #region tier-fallback

// fallbackStrategy re-detects the option buttons directly when the
// layout has no table for the observed count.
type fallbackStrategy struct{ r *Resolver }

func (s *fallbackStrategy) name() Source { return SourceFallback }

func (s *fallbackStrategy) resolve(ev Event, _ *knowledge.CatalogEvent) (Decision, bool) {
	if s.r.percept == nil {
		return Decision{}, false
	}
	pts := DedupeChoices(s.r.percept.Find(tmplChoice, screen.Box{}, choiceConf))
	if len(pts) == 0 {
		return Decision{}, false
	}
	p := pts[0]
	if !p.Valid() {
		return Decision{}, false
	}
	return Decision{Index: 1, Point: p}, true
}

// #endregion

// #region tier-default

// defaultStrategy is the terminal tier: take the top option.
type defaultStrategy struct{ r *Resolver }

func (s *defaultStrategy) name() Source { return SourceDefault }

func (s *defaultStrategy) resolve(ev Event, _ *knowledge.CatalogEvent) (Decision, bool) {
	return s.r.commit(ev, 1)
}

// #endregion

// #region commit

// commit maps an option index to a click target, preferring detected
// positions over the static table.
func (r *Resolver) commit(ev Event, idx int) (Decision, bool) {
	if idx >= 1 && idx <= len(ev.Choices) && ev.Choices[idx-1].Valid() {
		return Decision{Index: idx, Point: ev.Choices[idx-1]}, true
	}
	p, err := r.layout.Point(ev.ChoiceCount(), idx)
	if err != nil {
		log.Printf("[EVENT] choice %d unplaceable: %v", idx, err)
		return Decision{}, false
	}
	return Decision{Index: idx, Point: p}, true
}

// #endregion
