// Package runctl holds the shared run state: the start/stop flag every
// loop checks at its iteration boundaries, and the config snapshot the
// career loop re-reads each tick.
package runctl

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HandrianD/umamusume-auto-train/internal/config"
)

// #region context

// Context carries the run flag and the live config. The flag is the
// cooperative cancellation signal; the config snapshot is swapped whole
// by the watcher and read fresh each tick.
type Context struct {
	running atomic.Bool

	mu  sync.RWMutex
	cfg config.Config
}

// New creates a stopped Context with the given initial config.
func New(cfg config.Config) *Context {
	c := &Context{}
	c.cfg = cfg
	return c
}

// #endregion

// #region run-flag

// Running reports whether the bot should keep acting.
func (c *Context) Running() bool { return c.running.Load() }

// Start raises the run flag.
func (c *Context) Start() { c.running.Store(true) }

// Stop lowers the run flag. Loops notice at their next boundary check.
func (c *Context) Stop() { c.running.Store(false) }

// Toggle flips the run flag and returns the new state.
func (c *Context) Toggle() bool {
	for {
		cur := c.running.Load()
		if c.running.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

// #endregion

// #region config-snapshot

// Snapshot returns the current config. Callers must not cache it across
// ticks; values may change between any two calls.
func (c *Context) Snapshot() config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg
}

// SetConfig atomically replaces the config snapshot.
func (c *Context) SetConfig(cfg config.Config) {
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
}

// #endregion

// #region sleep

// sleepSlice bounds each uninterruptible wait so the stop flag is
// observed promptly.
const sleepSlice = 100 * time.Millisecond

// Sleep waits for d in short slices, returning early (false) if the run
// flag drops. Returns true when the full duration elapsed while running.
func (c *Context) Sleep(d time.Duration) bool {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if !c.Running() {
			return false
		}
		remaining := time.Until(deadline)
		if remaining > sleepSlice {
			remaining = sleepSlice
		}
		time.Sleep(remaining)
	}
	return c.Running()
}

// #endregion

// #region hotkey

// BindToggle consumes hotkey presses and flips the run flag for each one.
// The channel is fed by whatever captures the global hotkey (the sidecar
// or an OS hook); closing it ends the goroutine.
func (c *Context) BindToggle(presses <-chan struct{}) {
	go func() {
		for range presses {
			if c.Toggle() {
				log.Printf("[BOT] starting")
			} else {
				log.Printf("[BOT] stopping")
			}
		}
	}()
}

// #endregion
