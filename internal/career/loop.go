// Package career drives the management loop: one tick reads the screen,
// walks a fixed priority list of handlers, and lets the first matching
// handler act.
package career

import (
	"log"
	"strconv"
	"time"

	"github.com/HandrianD/umamusume-auto-train/internal/config"
	"github.com/HandrianD/umamusume-auto-train/internal/events"
	"github.com/HandrianD/umamusume-auto-train/internal/history"
	"github.com/HandrianD/umamusume-auto-train/internal/knowledge"
	"github.com/HandrianD/umamusume-auto-train/internal/runctl"
	"github.com/HandrianD/umamusume-auto-train/internal/screen"
	"github.com/HandrianD/umamusume-auto-train/internal/skills"
	"github.com/HandrianD/umamusume-auto-train/internal/training"
)

// #region loop-struct

const tickInterval = time.Second

// handler is one rung of the tick's priority ladder. acted=true ends
// the tick.
type handler struct {
	name string
	fn   func(st RunState) (action, reason string, acted bool)
}

// Loop owns one career run from lobby to finale.
type Loop struct {
	ctx     *runctl.Context
	percept screen.Perception
	actuate screen.Actuation

	detector *events.Detector
	store    *knowledge.Store
	catalog  *knowledge.Catalog
	hist     *history.Store // nil disables provenance logging

	cfg      config.Config // refreshed each tick
	handlers []handler

	runID      string
	tick       int
	wasRunning bool
	noWaits    bool
	pending    *pendingOutcome

	sleep func(time.Duration) // test hook
}

// New wires a loop. hist may be nil.
func New(ctx *runctl.Context, p screen.Perception, a screen.Actuation, store *knowledge.Store, catalog *knowledge.Catalog, hist *history.Store) *Loop {
	l := &Loop{
		ctx:      ctx,
		percept:  p,
		actuate:  a,
		detector: events.NewDetector(p),
		store:    store,
		catalog:  catalog,
		hist:     hist,
		sleep:    time.Sleep,
	}
	l.handlers = []handler{
		{"event", l.handleEvent},
		{"dialog", l.handleDialogs},
		{"lobby_wait", l.handleLobbyWait},
		{"infirmary", l.handleInfirmary},
		{"finale", l.handleFinale},
		{"race_day", l.handleRaceDay},
		{"mood", l.handleMood},
		{"goal_race", l.handleGoalRace},
		{"g1_race", l.handleG1Race},
		{"training", l.handleTraining},
	}
	return l
}

// DisableWaits removes real-time pacing, for replay and tests. The
// human-override window shrinks to one poll.
func (l *Loop) DisableWaits() {
	l.noWaits = true
	l.sleep = func(time.Duration) {}
	l.detector.DisablePacing()
}

// #endregion

// #region run

// Run drives ticks while the controller is running and idles otherwise.
// It returns when quit is closed.
func (l *Loop) Run(quit <-chan struct{}) {
	for {
		select {
		case <-quit:
			l.endRun()
			return
		default:
		}
		if !l.ctx.Running() {
			l.endRun()
			time.Sleep(200 * time.Millisecond)
			continue
		}
		l.beginRun()
		l.Tick()
		time.Sleep(tickInterval)
	}
}

func (l *Loop) beginRun() {
	if l.wasRunning {
		return
	}
	l.wasRunning = true
	l.tick = 0
	if l.hist != nil {
		cfg := l.ctx.Snapshot()
		id, err := l.hist.BeginRun(cfg.Catalog.CharacterID, cfg.Catalog.Scenario)
		if err != nil {
			log.Printf("[BOT] begin run log: %v", err)
			return
		}
		l.runID = id
	}
}

func (l *Loop) endRun() {
	if !l.wasRunning {
		return
	}
	l.wasRunning = false
	if l.hist != nil && l.runID != "" {
		if err := l.hist.FinishRun(l.runID); err != nil {
			log.Printf("[BOT] finish run log: %v", err)
		}
	}
}

// TickResult reports which handler acted during a tick.
type TickResult struct {
	Tick    int
	Handler string
	Action  string
	Reason  string
}

// Tick performs one observe-decide-act pass. Nothing escapes a tick: a
// handler that panics is logged and the tick simply ends.
func (l *Loop) Tick() (res TickResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[BOT] tick %d panic: %v", l.tick, r)
			res = TickResult{Tick: l.tick, Handler: "panic", Action: "abandoned"}
		}
	}()

	l.cfg = l.ctx.Snapshot()
	l.tick++
	st := ReadState(l.percept, l.cfg.Energy.Enabled)
	l.settleOutcome(st)

	for _, h := range l.handlers {
		action, reason, acted := h.fn(st)
		if !acted {
			continue
		}
		log.Printf("[CAREER] tick %d: %s → %s (%s)", l.tick, h.name, action, reason)
		l.record(h.name, action, reason, st)
		return TickResult{Tick: l.tick, Handler: h.name, Action: action, Reason: reason}
	}
	l.record("idle", "wait", "no handler matched", st)
	return TickResult{Tick: l.tick, Handler: "idle", Action: "wait", Reason: "no handler matched"}
}

func (l *Loop) record(handler, action, reason string, st RunState) {
	if l.hist == nil || l.runID == "" {
		return
	}
	err := l.hist.Append(history.TickRecord{
		RunID:    l.runID,
		Tick:     l.tick,
		Handler:  handler,
		Action:   action,
		Reason:   reason,
		Snapshot: st.Snapshot(),
	})
	if err != nil {
		log.Printf("[BOT] record tick: %v", err)
	}
}

// #endregion

// #region outcome

// pendingOutcome holds the pre-event state until the next tick's
// snapshot reveals what the choice did.
type pendingOutcome struct {
	sessionID string
	stats     map[config.Stat]int
	mood      string
}

// settleOutcome compares the current snapshot against the one captured
// before the last event and writes the deltas into the choice log.
func (l *Loop) settleOutcome(st RunState) {
	if l.pending == nil {
		return
	}
	p := l.pending
	l.pending = nil
	if l.store == nil {
		return
	}
	deltas := make(map[string]int)
	for stat, cur := range st.Stats {
		if prev, ok := p.stats[stat]; ok && cur != prev {
			deltas[string(stat)] = cur - prev
		}
	}
	moodDelta := 0
	if ci, pi := config.MoodIndex(st.Mood), config.MoodIndex(p.mood); ci >= 0 && pi >= 0 {
		moodDelta = ci - pi
	}
	if err := l.store.UpdateOutcome(p.sessionID, deltas, moodDelta); err != nil {
		log.Printf("[STORE] settle outcome %s: %v", p.sessionID, err)
	}
}

// #endregion

// #region handler-event

func (l *Loop) handleEvent(st RunState) (string, string, bool) {
	ev, ok := l.detector.Detect()
	if !ok {
		return "", "", false
	}
	window := time.Duration(l.cfg.Event.InterventionTimeoutSec) * time.Second
	if l.noWaits {
		window = time.Millisecond
	}
	resolver := events.NewResolver(events.ResolverOptions{
		Store:          l.store,
		Catalog:        l.catalog,
		Perception:     l.percept,
		Actuation:      l.actuate,
		OverrideWindow: window,
		CollectData:    l.cfg.Event.CollectData,
		Stopped:        func() bool { return !l.ctx.Running() },
		Character:      l.cfg.Catalog.CharacterID,
		SupportCards:   l.cfg.Catalog.SupportCards,
		Sleep:          l.sleep,
	})
	dec := resolver.Resolve(ev, st.Snapshot())
	if dec.SessionID != "" {
		l.pending = &pendingOutcome{sessionID: dec.SessionID, stats: st.Stats, mood: st.Mood}
	}
	if dec.NeedsClick() {
		if err := clickWithJitter(l.actuate, dec.Point); err != nil {
			return "abandoned", err.Error(), true
		}
	}
	return "choice " + strconv.Itoa(dec.Index), string(dec.Source), true
}

// #endregion

// #region handler-dialogs

// handleDialogs clears transient one-button screens.
func (l *Loop) handleDialogs(RunState) (string, string, bool) {
	for _, tmpl := range []string{tmplInspiration, tmplNext, tmplCancel, tmplRetry} {
		if clickTemplate(l.percept, l.actuate, tmpl, defaultConf, 300*time.Millisecond) {
			return "clicked", tmpl, true
		}
	}
	return "", "", false
}

// #endregion

// #region handler-lobby

// handleLobbyWait suspends the tick until the lobby anchor is visible.
// Every downstream handler assumes the lobby layout.
func (l *Loop) handleLobbyWait(RunState) (string, string, bool) {
	if _, ok := l.percept.LocateCenter(tmplLobbyAnchor, lobbyConf, time.Second); ok {
		return "", "", false
	}
	l.sleep(time.Second)
	return "wait", "lobby anchor not visible", true
}

// #endregion

// #region handler-infirmary

func (l *Loop) handleInfirmary(st RunState) (string, string, bool) {
	boxes := l.percept.Find(tmplInfirmary, screen.Box{}, defaultConf)
	if len(boxes) == 0 || !screen.ButtonActive(l.percept, boxes[0]) {
		return "", "", false
	}
	if l.cfg.Energy.Enabled && l.cfg.Energy.SkipInfirmaryHealthy &&
		st.Energy >= 0 && st.Energy >= l.cfg.Energy.SkipTraining {
		return "", "", false
	}
	if err := clickWithJitter(l.actuate, boxes[0].Center()); err != nil {
		return "abandoned", err.Error(), true
	}
	return "infirmary", "debuff indicator active", true
}

// #endregion

// #region handler-races

func (l *Loop) handleFinale(st RunState) (string, string, bool) {
	if !st.RaceDay {
		return "", "", false
	}
	if _, ok := l.percept.LocateCenter(tmplURAFinale, defaultConf, 500*time.Millisecond); !ok {
		return "", "", false
	}
	if l.cfg.Skill.AutoBuy {
		l.buySkills()
	}
	if l.raceDaySequence() {
		return "finale race", "finale banner visible", true
	}
	return "abandoned", "finale race sequence missed", true
}

func (l *Loop) handleRaceDay(st RunState) (string, string, bool) {
	if !st.RaceDay {
		return "", "", false
	}
	if l.cfg.Skill.AutoBuy && !st.FirstPhase() {
		l.buySkills()
	}
	if l.raceDaySequence() {
		return "race", "scheduled race day", true
	}
	return "abandoned", "race day sequence missed", true
}

func (l *Loop) handleGoalRace(st RunState) (string, string, bool) {
	if st.CriteriaMet() || st.PreDebut() || st.Turn < 0 || st.Turn >= 10 {
		return "", "", false
	}
	if l.seekRace(false) {
		return "race", "goal criteria unmet", true
	}
	return "", "", false
}

func (l *Loop) handleG1Race(st RunState) (string, string, bool) {
	if !l.cfg.PrioritizeG1 || st.FirstPhase() || st.SummerBreak() {
		return "", "", false
	}
	if l.seekRace(true) {
		return "race", "g1 available", true
	}
	return "", "", false
}

// #endregion

// #region handler-mood

func (l *Loop) handleMood(st RunState) (string, string, bool) {
	if !st.MoodBelow(l.cfg.MinimumMood) {
		return "", "", false
	}
	if !clickTemplate(l.percept, l.actuate, tmplRecreation, defaultConf, time.Second) {
		return "", "", false
	}
	return "recreation", "mood " + st.Mood + " below " + l.cfg.MinimumMood, true
}

// #endregion

// #region handler-training

func (l *Loop) handleTraining(st RunState) (string, string, bool) {
	if !clickTemplate(l.percept, l.actuate, tmplTraining, defaultConf, time.Second) {
		return "", "", false
	}
	l.sleep(500 * time.Millisecond)

	opts := l.measureFacilities(st, l.cfg.MaxFailure)
	dec := training.New(l.cfg).Decide(opts, training.Snapshot{
		Stats:      st.Stats,
		Energy:     st.Energy,
		FirstPhase: st.FirstPhase(),
	})

	if dec.Train {
		tmpl := facilityTemplates[string(dec.Stat)]
		if pt, ok := l.percept.LocateCenter(tmpl, defaultConf, time.Second); ok {
			if err := l.actuate.Click(pt, 3); err == nil {
				return "train " + string(dec.Stat), dec.Reason, true
			}
		}
		return "abandoned", "facility " + string(dec.Stat) + " unclickable", true
	}

	l.backOut()
	return l.restAction(st, dec.Reason)
}

// restAction picks the right rest button for the season.
func (l *Loop) restAction(st RunState, reason string) (string, string, bool) {
	tmpl := tmplRest
	if st.SummerBreak() {
		tmpl = tmplRestSummer
	}
	if clickTemplate(l.percept, l.actuate, tmpl, defaultConf, 2*time.Second) {
		return "rest", reason, true
	}
	return "abandoned", "rest button missing", true
}

// #endregion

// #region skills-nav

// buySkills detours through the skill screen and back.
func (l *Loop) buySkills() {
	if !clickTemplate(l.percept, l.actuate, tmplSkillsButton, defaultConf, 2*time.Second) {
		return
	}
	l.sleep(time.Second)
	bought := skills.New(l.cfg.Skill, l.percept, l.actuate).Buy()
	if bought > 0 {
		clickTemplate(l.percept, l.actuate, tmplConfirmButton, defaultConf, time.Second)
	}
	l.backOut()
}

// #endregion

