package events

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/HandrianD/umamusume-auto-train/internal/knowledge"
	"github.com/HandrianD/umamusume-auto-train/internal/screen"
)

// #region helpers

func testEvent(n int) Event {
	return Event{Title: "Dance Lesson", Choices: DedupeChoices(choiceBoxes(n))}
}

func newTestResolver(t *testing.T, frame *fakeFrame, hand *fakeHand, catalog *knowledge.Catalog) *Resolver {
	t.Helper()
	store := knowledge.NewStore(filepath.Join(t.TempDir(), "event_data.json"))
	r := NewResolver(ResolverOptions{
		Store:          store,
		Catalog:        catalog,
		Perception:     frame,
		Actuation:      hand,
		OverrideWindow: 50 * time.Millisecond,
		CollectData:    true,
		Character:      "char-1",
	})
	r.sleep = func(time.Duration) {}
	return r
}

// #endregion

// #region auto-tier

func TestResolveAutoChoiceShortCircuits(t *testing.T) {
	catalog := knowledge.NewCatalogFromEvents([]knowledge.CatalogEvent{
		{Name: "Dance Lesson", AutoChoice: 2, Choices: []knowledge.Option{{Text: "A"}, {Text: "B"}, {Text: "C"}}},
	})
	frame := &fakeFrame{hits: map[string][]screen.Box{}}
	r := newTestResolver(t, frame, &fakeHand{}, catalog)

	dec := r.Resolve(testEvent(3), knowledge.RunSnapshot{})
	if dec.Source != SourceAuto || dec.Index != 2 {
		t.Fatalf("decision = %+v, want auto choice 2", dec)
	}
	if frame.findCalls != 0 {
		t.Errorf("auto tier polled perception %d times", frame.findCalls)
	}
	if !dec.NeedsClick() {
		t.Error("auto decision should need a click")
	}
}

func TestResolveVictoryTitle(t *testing.T) {
	r := newTestResolver(t, &fakeFrame{hits: map[string][]screen.Box{}}, &fakeHand{}, nil)
	ev := Event{Title: "A Hard-Won Victory", Choices: DedupeChoices(choiceBoxes(2))}

	dec := r.Resolve(ev, knowledge.RunSnapshot{})
	if dec.Source != SourceAuto || dec.Index != 1 {
		t.Fatalf("decision = %+v, want auto choice 1", dec)
	}
}

// #endregion

// #region learned-tier

func TestResolveLearnedBypassesOverrideWindow(t *testing.T) {
	frame := &fakeFrame{hits: map[string][]screen.Box{}}
	r := newTestResolver(t, frame, &fakeHand{}, nil)
	if err := r.store.Append(knowledge.ChoiceRecord{
		SessionID:  "prev",
		EventText:  "Dance Lesson!",
		ChoiceMade: "3",
	}); err != nil {
		t.Fatal(err)
	}

	dec := r.Resolve(testEvent(3), knowledge.RunSnapshot{})
	if dec.Source != SourceLearned || dec.Index != 3 {
		t.Fatalf("decision = %+v, want learned choice 3", dec)
	}
	if frame.findCalls != 0 {
		t.Errorf("learned tier should skip the override window, saw %d polls", frame.findCalls)
	}
	// Learned resolutions are not re-appended.
	if got := r.store.Len(); got != 1 {
		t.Errorf("store Len = %d, want 1", got)
	}
}

// #endregion

// #region catalog-tier

func TestResolveCatalogAnalysis(t *testing.T) {
	catalog := knowledge.NewCatalogFromEvents([]knowledge.CatalogEvent{
		{Name: "Dance Lesson", Choices: []knowledge.Option{
			{Text: "Nothing special"},
			{Text: "Get a skill hint"},
		}},
	})
	r := newTestResolver(t, &fakeFrame{hits: map[string][]screen.Box{}}, &fakeHand{}, catalog)

	dec := r.Resolve(testEvent(2), knowledge.RunSnapshot{})
	if dec.Source != SourceCatalog || dec.Index != 2 {
		t.Fatalf("decision = %+v, want catalog choice 2", dec)
	}
	if got := r.store.Len(); got != 1 {
		t.Errorf("store Len = %d, want 1 recorded resolution", got)
	}
	recs := r.store.All()
	if dec.SessionID == "" || dec.SessionID != recs[0].SessionID {
		t.Errorf("SessionID = %q, want the logged record's %q", dec.SessionID, recs[0].SessionID)
	}
}

// #endregion

// #region override-tier

func TestResolveOverrideInfersHumanPick(t *testing.T) {
	// No choice hits: from the window's perspective the human already
	// clicked and the options vanished.
	frame := &fakeFrame{hits: map[string][]screen.Box{}}
	hand := &fakeHand{pointer: screen.Point{X: 305, Y: 650}}
	r := newTestResolver(t, frame, hand, nil)

	dec := r.Resolve(testEvent(3), knowledge.RunSnapshot{})
	if dec.Source != SourceOverride || !dec.ByHuman {
		t.Fatalf("decision = %+v, want human override", dec)
	}
	if dec.Index != 2 {
		t.Errorf("inferred index = %d, want 2 (pointer near second option)", dec.Index)
	}
	if dec.NeedsClick() {
		t.Error("human override must not be clicked again")
	}

	recs := r.store.All()
	if len(recs) != 1 || !recs[0].UserIntervention {
		t.Fatalf("records = %+v, want one intervention record", recs)
	}
}

func TestResolveOverrideTimeoutFallsThrough(t *testing.T) {
	// Choices stay visible for the whole window, so the human never
	// acted and the resolver falls to the terminal default.
	frame := &fakeFrame{hits: map[string][]screen.Box{tmplChoice: choiceBoxes(3)}}
	r := newTestResolver(t, frame, &fakeHand{}, nil)

	dec := r.Resolve(testEvent(3), knowledge.RunSnapshot{})
	if dec.Source != SourceDefault && dec.Source != SourceFallback {
		t.Fatalf("decision = %+v, want fallback or default after timeout", dec)
	}
	if dec.Index != 1 {
		t.Errorf("index = %d, want safe default 1", dec.Index)
	}
}

func TestResolveOverrideStopFlag(t *testing.T) {
	frame := &fakeFrame{hits: map[string][]screen.Box{tmplChoice: choiceBoxes(3)}}
	store := knowledge.NewStore(filepath.Join(t.TempDir(), "event_data.json"))
	r := NewResolver(ResolverOptions{
		Store:          store,
		Perception:     frame,
		Actuation:      &fakeHand{},
		OverrideWindow: time.Hour,
		Stopped:        func() bool { return true },
	})
	r.sleep = func(time.Duration) {}

	done := make(chan Decision, 1)
	go func() { done <- r.Resolve(testEvent(3), knowledge.RunSnapshot{}) }()
	select {
	case dec := <-done:
		if dec.Index != 1 {
			t.Errorf("index = %d, want default 1", dec.Index)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("resolver ignored the stop flag")
	}
}

// #endregion

// #region commit

func TestCommitPrefersDetectedPositions(t *testing.T) {
	r := newTestResolver(t, &fakeFrame{hits: map[string][]screen.Box{}}, &fakeHand{}, nil)
	ev := testEvent(3)

	dec, ok := r.commit(ev, 2)
	if !ok {
		t.Fatal("commit failed")
	}
	if dec.Point != ev.Choices[1] {
		t.Errorf("Point = %v, want detected %v", dec.Point, ev.Choices[1])
	}
}

func TestCommitFallsBackToLayout(t *testing.T) {
	r := newTestResolver(t, &fakeFrame{hits: map[string][]screen.Box{}}, &fakeHand{}, nil)
	ev := Event{Title: "Dance Lesson", Choices: DedupeChoices(choiceBoxes(3))}
	ev.Choices[1] = screen.Point{X: 2, Y: 2} // detection noise near the edge

	dec, ok := r.commit(ev, 2)
	if !ok {
		t.Fatal("commit failed")
	}
	want, _ := DefaultLayout().Point(3, 2)
	if dec.Point != want {
		t.Errorf("Point = %v, want layout %v", dec.Point, want)
	}
}

// #endregion
