package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// #region watcher

// Watch reloads the config file whenever it changes and hands each good
// snapshot to apply. Broken edits are logged and skipped; the previous
// snapshot stays active. Returns a stop function.
//
// The watch is on the parent directory because editors and the web UI
// replace the file atomically, which swaps the inode out from under a
// direct file watch.
func Watch(path string, apply func(Config)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					log.Printf("[CONFIG] reload skipped: %v", err)
					continue
				}
				log.Printf("[CONFIG] reloaded %s", path)
				apply(cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[CONFIG] watcher error: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}

// #endregion
