package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/HandrianD/umamusume-auto-train/internal/career"
	"github.com/HandrianD/umamusume-auto-train/internal/config"
	"github.com/HandrianD/umamusume-auto-train/internal/history"
	"github.com/HandrianD/umamusume-auto-train/internal/knowledge"
	"github.com/HandrianD/umamusume-auto-train/internal/runctl"
	"github.com/HandrianD/umamusume-auto-train/internal/screen"
)

// #region main
func main() {
	configPath := flag.String("config", envOr("TRAINER_CONFIG", "config.json"), "path to config.json")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("[CONFIG] %v, using defaults", err)
		cfg = config.Default()
	}

	ctx := runctl.New(cfg)

	// Hot-reload config edits without a restart.
	stopWatch, err := config.Watch(*configPath, ctx.SetConfig)
	if err != nil {
		log.Printf("[CONFIG] watch disabled: %v", err)
	} else {
		defer stopWatch()
	}

	store := knowledge.NewStore(cfg.ChoiceLogPath)
	catalog := knowledge.LoadCatalog(
		cfg.Catalog.Dir, cfg.Catalog.CharacterID, cfg.Catalog.SupportCards, cfg.Catalog.Scenario,
	)

	hist, err := history.NewStore(cfg.HistoryDBPath)
	if err != nil {
		log.Printf("[BOT] history log disabled: %v", err)
		hist = nil
	} else {
		defer hist.Close()
	}

	bridge := screen.NewBridge(cfg.SidecarURL)
	loop := career.New(ctx, bridge, bridge, store, catalog, hist)

	presses := make(chan struct{}, 1)
	ctx.BindToggle(presses)
	go readToggles(presses)

	quit := make(chan struct{})
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		close(quit)
	}()

	fmt.Println("Trainer ready.")
	fmt.Printf("  sidecar: %s | choice log: %s | history: %s\n",
		cfg.SidecarURL, cfg.ChoiceLogPath, cfg.HistoryDBPath)
	fmt.Println("Press Enter to start/stop, Ctrl+C to exit.")

	loop.Run(quit)
}

// #endregion main

// #region input

// readToggles turns each Enter press on stdin into a toggle.
func readToggles(presses chan<- struct{}) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "quit" {
			proc, _ := os.FindProcess(os.Getpid())
			proc.Signal(syscall.SIGTERM)
			return
		}
		select {
		case presses <- struct{}{}:
		default:
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion input
