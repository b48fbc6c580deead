package knowledge

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// #region document

const storeVersion = "1.0"

type storeMetadata struct {
	Created     time.Time `json:"created"`
	LastUpdated time.Time `json:"last_updated"`
	TotalEvents int       `json:"total_events"`
	Version     string    `json:"version"`
}

type storeDocument struct {
	Metadata storeMetadata  `json:"metadata"`
	Events   []ChoiceRecord `json:"events"`
}

// #endregion

// #region store

// Store is the append-only choice log, persisted as a single JSON
// document. Every query re-reads the file in full; every append rewrites
// it atomically. All access happens from the single core thread, so the
// only discipline needed is the atomic replace.
type Store struct {
	path string
}

// NewStore returns a Store backed by the given file path. The file need
// not exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// #endregion

// #region load

// load reads the whole document. A missing or corrupt file yields a
// fresh empty store, never an error.
func (s *Store) load() storeDocument {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[STORE] read %s: %v (starting fresh)", s.path, err)
		}
		return freshDocument()
	}
	var doc storeDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Printf("[STORE] %s corrupted: %v (starting fresh)", s.path, err)
		return freshDocument()
	}
	return doc
}

func freshDocument() storeDocument {
	now := time.Now()
	return storeDocument{
		Metadata: storeMetadata{Created: now, Version: storeVersion},
	}
}

// #endregion

// #region append

// Append adds a record to the log and rewrites the file atomically.
func (s *Store) Append(rec ChoiceRecord) error {
	doc := s.load()
	doc.Events = append(doc.Events, rec)
	return s.save(doc)
}

func (s *Store) save(doc storeDocument) error {
	doc.Metadata.TotalEvents = len(doc.Events)
	doc.Metadata.LastUpdated = time.Now()
	if doc.Metadata.Version == "" {
		doc.Metadata.Version = storeVersion
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".choice-log-*")
	if err != nil {
		return fmt.Errorf("temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// #endregion

// #region queries

// All returns every record in log order.
func (s *Store) All() []ChoiceRecord {
	return s.load().Events
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.load().Events)
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// BestMatch scans the log for the record whose fingerprint is most
// similar to title, returning it only when the similarity clears
// threshold. On ties the earliest record wins, which keeps lookups
// deterministic even though the similarity relation is not transitive.
func (s *Store) BestMatch(title string, threshold float64) (ChoiceRecord, float64, bool) {
	var best ChoiceRecord
	bestScore := 0.0
	found := false

	for _, rec := range s.load().Events {
		score := Similarity(title, rec.EventText)
		if score > bestScore {
			bestScore = score
			best = rec
			found = true
		}
	}
	if !found || bestScore < threshold {
		return ChoiceRecord{}, bestScore, false
	}
	return best, bestScore, true
}

// #endregion

// #region outcome-update

// UpdateOutcome fills in the outcome block of the record with the given
// session ID. Missing sessions are not an error; the event may have been
// logged by an older run that is no longer on disk.
func (s *Store) UpdateOutcome(sessionID string, deltas map[string]int, moodDelta int) error {
	doc := s.load()
	for i := range doc.Events {
		if doc.Events[i].SessionID != sessionID {
			continue
		}
		doc.Events[i].Outcome = Outcome{
			StatDeltas: deltas,
			MoodDelta:  moodDelta,
			Recorded:   true,
		}
		return s.save(doc)
	}
	log.Printf("[STORE] outcome for unknown session %s dropped", sessionID)
	return nil
}

// #endregion
