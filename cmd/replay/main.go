package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/HandrianD/umamusume-auto-train/internal/knowledge"
	"github.com/HandrianD/umamusume-auto-train/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to recorded fixture JSON")
	logPath := flag.String("log", "", "optional event_data.json for learned-choice replay")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [--log event_data.json]")
		os.Exit(2)
	}

	fixture, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// A scratch store keeps replays from polluting the real choice log.
	storePath := *logPath
	if storePath == "" {
		storePath = filepath.Join(os.TempDir(), "replay_event_data.json")
		defer os.Remove(storePath)
	}
	store := knowledge.NewStore(storePath)

	catalog := knowledge.LoadCatalog(
		fixture.Config.Catalog.Dir,
		fixture.Config.Catalog.CharacterID,
		fixture.Config.Catalog.SupportCards,
		fixture.Config.Catalog.Scenario,
	)

	sum, scr := replay.Run(fixture, store, catalog)

	if fixture.Description != "" {
		fmt.Printf("%s\n\n", fixture.Description)
	}
	fmt.Printf("%-6s  %-12s  %-16s  %s\n", "Tick", "Handler", "Action", "Reason")
	for _, r := range sum.Results {
		fmt.Printf("%-6d  %-12s  %-16s  %s\n", r.Tick, r.Handler, r.Action, r.Reason)
	}

	fmt.Printf("\n%d ticks, %d actuations\n", sum.Ticks, len(scr.Actions))
	handlers := make([]string, 0, len(sum.HandlerCount))
	for h := range sum.HandlerCount {
		handlers = append(handlers, h)
	}
	sort.Strings(handlers)
	for _, h := range handlers {
		fmt.Printf("  %-12s %d\n", h, sum.HandlerCount[h])
	}

	if len(sum.Mismatches) > 0 {
		fmt.Fprintf(os.Stderr, "\n%d expectation mismatches:\n", len(sum.Mismatches))
		for _, m := range sum.Mismatches {
			fmt.Fprintf(os.Stderr, "  %s\n", m)
		}
		os.Exit(1)
	}
}

// #endregion main
