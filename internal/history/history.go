// Package history persists a provenance log of every career-loop
// decision to SQLite so a run can be audited after the fact.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	character   TEXT,
	scenario    TEXT,
	started_at  TEXT NOT NULL,
	finished_at TEXT
);

CREATE TABLE IF NOT EXISTS tick_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        TEXT NOT NULL,
	tick          INTEGER NOT NULL,
	handler       TEXT NOT NULL,
	action        TEXT NOT NULL,
	reason        TEXT,
	snapshot_json TEXT,
	created_at    TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE INDEX IF NOT EXISTS idx_tick_log_run ON tick_log(run_id, tick);
`

// #endregion schema

// #region records

// TickRecord is one career-loop decision.
type TickRecord struct {
	RunID     string
	Tick      int
	Handler   string
	Action    string
	Reason    string
	Snapshot  any // marshaled to JSON; nil allowed
	CreatedAt time.Time
}

// RunSummary aggregates one run's log for inspection.
type RunSummary struct {
	RunID        string
	Character    string
	Scenario     string
	StartedAt    time.Time
	FinishedAt   time.Time
	Ticks        int
	HandlerCount map[string]int
}

// #endregion records

// #region store-struct

// Store manages the decision log in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor

// NewStore opens the database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion constructor

// #region runs

// BeginRun registers a new run and returns its ID.
func (s *Store) BeginRun(character, scenario string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, character, scenario, started_at) VALUES (?, ?, ?, ?)`,
		id, character, scenario, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return id, nil
}

// FinishRun stamps a run's end time.
func (s *Store) FinishRun(runID string) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ? WHERE run_id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// #endregion runs

// #region append

// Append writes one decision row.
func (s *Store) Append(rec TickRecord) error {
	var snapJSON []byte
	if rec.Snapshot != nil {
		b, err := json.Marshal(rec.Snapshot)
		if err != nil {
			return fmt.Errorf("marshal snapshot: %w", err)
		}
		snapJSON = b
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO tick_log (run_id, tick, handler, action, reason, snapshot_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Tick, rec.Handler, rec.Action, rec.Reason,
		string(snapJSON), created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append tick: %w", err)
	}
	return nil
}

// #endregion append

// #region queries

// Ticks returns a run's decisions in tick order.
func (s *Store) Ticks(runID string) ([]TickRecord, error) {
	rows, err := s.db.Query(
		`SELECT tick, handler, action, reason, snapshot_json, created_at
		 FROM tick_log WHERE run_id = ? ORDER BY tick, id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query ticks: %w", err)
	}
	defer rows.Close()

	var out []TickRecord
	for rows.Next() {
		var rec TickRecord
		var reason, snapJSON sql.NullString
		var created string
		if err := rows.Scan(&rec.Tick, &rec.Handler, &rec.Action, &reason, &snapJSON, &created); err != nil {
			return nil, fmt.Errorf("scan tick: %w", err)
		}
		rec.RunID = runID
		rec.Reason = reason.String
		if snapJSON.Valid && snapJSON.String != "" {
			var snap map[string]any
			if err := json.Unmarshal([]byte(snapJSON.String), &snap); err == nil {
				rec.Snapshot = snap
			}
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			rec.CreatedAt = ts
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Summarize aggregates a run's log by handler.
func (s *Store) Summarize(runID string) (RunSummary, error) {
	sum := RunSummary{RunID: runID, HandlerCount: map[string]int{}}

	var started string
	var finished, character, scenario sql.NullString
	err := s.db.QueryRow(
		`SELECT character, scenario, started_at, finished_at FROM runs WHERE run_id = ?`,
		runID,
	).Scan(&character, &scenario, &started, &finished)
	if err != nil {
		return RunSummary{}, fmt.Errorf("query run: %w", err)
	}
	sum.Character = character.String
	sum.Scenario = scenario.String
	if ts, err := time.Parse(time.RFC3339Nano, started); err == nil {
		sum.StartedAt = ts
	}
	if finished.Valid {
		if ts, err := time.Parse(time.RFC3339Nano, finished.String); err == nil {
			sum.FinishedAt = ts
		}
	}

	rows, err := s.db.Query(
		`SELECT handler, COUNT(*) FROM tick_log WHERE run_id = ? GROUP BY handler`,
		runID,
	)
	if err != nil {
		return RunSummary{}, fmt.Errorf("query handlers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var handler string
		var n int
		if err := rows.Scan(&handler, &n); err != nil {
			return RunSummary{}, fmt.Errorf("scan handler: %w", err)
		}
		sum.HandlerCount[handler] = n
		sum.Ticks += n
	}
	return sum, rows.Err()
}

// Runs lists every recorded run ID, newest first.
func (s *Store) Runs() ([]string, error) {
	rows, err := s.db.Query(`SELECT run_id FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// #endregion queries
