package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/HandrianD/umamusume-auto-train/internal/history"
	"github.com/HandrianD/umamusume-auto-train/internal/knowledge"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to trainer_history.db")
	logPath := flag.String("log", "", "path to event_data.json")
	runID := flag.String("run", "", "show one run's tick log")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" && *logPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db trainer_history.db [--run id] [--json]")
		fmt.Fprintln(os.Stderr, "       inspect --log event_data.json [--json]")
		os.Exit(2)
	}

	if *logPath != "" {
		if err := showChoiceLog(*logPath, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	if *dbPath != "" {
		if err := showHistory(*dbPath, *runID, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region choice-log

func showChoiceLog(path string, jsonOut bool) error {
	store := knowledge.NewStore(path)
	records := store.All()
	if jsonOut {
		return printJSON(records)
	}

	fmt.Printf("%d learned choices in %s\n\n", len(records), path)
	fmt.Printf("%-28s  %-9s  %-6s  %-8s  %s\n", "Event", "Type", "Choice", "Source", "Time")
	for _, r := range records {
		source := "bot"
		if r.UserIntervention {
			source = "human"
		}
		fmt.Printf("%-28s  %-9s  %-6s  %-8s  %s\n",
			truncate(r.EventText, 28), r.EventType, r.ChoiceMade, source, r.Timestamp)
	}
	return nil
}

// #endregion choice-log

// #region history

func showHistory(dbPath, runID string, jsonOut bool) error {
	store, err := history.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if runID != "" {
		ticks, err := store.Ticks(runID)
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(ticks)
		}
		fmt.Printf("%-6s  %-12s  %-16s  %s\n", "Tick", "Handler", "Action", "Reason")
		for _, t := range ticks {
			fmt.Printf("%-6d  %-12s  %-16s  %s\n", t.Tick, t.Handler, t.Action, t.Reason)
		}
		return nil
	}

	runs, err := store.Runs()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	summaries := make([]history.RunSummary, 0, len(runs))
	for _, id := range runs {
		sum, err := store.Summarize(id)
		if err != nil {
			return err
		}
		summaries = append(summaries, sum)
	}
	if jsonOut {
		return printJSON(summaries)
	}

	fmt.Printf("%-10s  %-12s  %-8s  %6s  %s\n", "Run", "Character", "Scenario", "Ticks", "Started")
	for _, s := range summaries {
		fmt.Printf("%-10s  %-12s  %-8s  %6d  %s\n",
			shortID(s.RunID), s.Character, s.Scenario, s.Ticks,
			s.StartedAt.Format("2006-01-02T15:04:05Z"))
	}
	return nil
}

// #endregion history

// #region output

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

// #endregion output
