package knowledge

// #region event-type

// EventType classifies the source of a narrative event.
type EventType string

const (
	EventCharacter EventType = "character"
	EventSupport   EventType = "support"
	EventScenario  EventType = "scenario"
	EventUnknown   EventType = "unknown"
)

// #endregion

// #region run-snapshot

// RunSnapshot is the game situation captured just before an event choice,
// stored with the record so outcomes can later be interpreted in context.
type RunSnapshot struct {
	Stats  map[string]int `json:"stats,omitempty"`
	Mood   string         `json:"mood,omitempty"`
	Year   string         `json:"year,omitempty"`
	Turn   int            `json:"turn,omitempty"`
	Energy int            `json:"energy,omitempty"`
}

// #endregion

// #region outcome

// Outcome records what an event choice actually did, filled in lazily on
// the tick after the event resolves.
type Outcome struct {
	StatDeltas map[string]int `json:"stat_gains,omitempty"`
	MoodDelta  int            `json:"mood_delta,omitempty"`
	Recorded   bool           `json:"recorded"`
}

// #endregion

// #region choice-record

// ChoiceRecord is one entry of the append-only learning log. Records are
// never deleted; lookup is best-fingerprint-match above a threshold.
type ChoiceRecord struct {
	SessionID        string      `json:"session_id"`
	Timestamp        string      `json:"timestamp"` // RFC3339
	EventText        string      `json:"event_text"`
	EventType        EventType   `json:"event_type"`
	DetectedChoices  []string    `json:"detected_choices,omitempty"`
	ChoiceMade       string      `json:"choice_made"` // option index, or "unknown"
	Character        string      `json:"character,omitempty"`
	SupportCards     []string    `json:"support_cards,omitempty"`
	Snapshot         RunSnapshot `json:"snapshot"`
	UserIntervention bool        `json:"user_intervention,omitempty"`
	Outcome          Outcome     `json:"outcome"`
}

// #endregion
