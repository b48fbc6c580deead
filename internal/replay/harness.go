package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/HandrianD/umamusume-auto-train/internal/career"
	"github.com/HandrianD/umamusume-auto-train/internal/config"
	"github.com/HandrianD/umamusume-auto-train/internal/knowledge"
	"github.com/HandrianD/umamusume-auto-train/internal/runctl"
)

// #region fixture

// Fixture is the top-level JSON structure for a recorded run.
type Fixture struct {
	Description string        `json:"description"`
	Config      config.Config `json:"config"`
	Frames      []Frame       `json:"frames"`
	Expected    []Expected    `json:"expected,omitempty"`
}

// Expected captures the anticipated handler per tick for regression runs.
type Expected struct {
	Tick    int    `json:"tick"`
	Handler string `json:"handler"`
	Action  string `json:"action,omitempty"`
}

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	f.Config = config.Default()
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	f.Config.Normalize()
	return &f, nil
}

// #endregion

// #region summary

// Summary aggregates a replay run.
type Summary struct {
	Ticks        int
	HandlerCount map[string]int
	Results      []career.TickResult
	Mismatches   []string
}

// #endregion

// #region harness

// Run replays the fixture's frames through a fresh career loop, one
// frame per tick, entirely in-memory.
func Run(f *Fixture, store *knowledge.Store, catalog *knowledge.Catalog) (*Summary, *Screen) {
	scr := NewScreen(f.Frames)
	ctx := runctl.New(f.Config)
	ctx.Start()

	loop := career.New(ctx, scr, scr, store, catalog, nil)
	loop.DisableWaits()

	sum := &Summary{HandlerCount: map[string]int{}}
	for i := range f.Frames {
		if i > 0 {
			scr.Advance()
		}
		res := loop.Tick()
		sum.Ticks++
		sum.HandlerCount[res.Handler]++
		sum.Results = append(sum.Results, res)
	}

	for _, exp := range f.Expected {
		idx := exp.Tick - 1
		if idx < 0 || idx >= len(sum.Results) {
			sum.Mismatches = append(sum.Mismatches, fmt.Sprintf("tick %d: no result", exp.Tick))
			continue
		}
		got := sum.Results[idx]
		if got.Handler != exp.Handler {
			sum.Mismatches = append(sum.Mismatches,
				fmt.Sprintf("tick %d: handler %s, expected %s", exp.Tick, got.Handler, exp.Handler))
		}
		if exp.Action != "" && got.Action != exp.Action {
			sum.Mismatches = append(sum.Mismatches,
				fmt.Sprintf("tick %d: action %s, expected %s", exp.Tick, got.Action, exp.Action))
		}
	}
	return sum, scr
}

// #endregion
