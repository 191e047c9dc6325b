// Package stats derives the aggregate view of the process table and
// keeps the latest snapshot available to display consumers. The tracker
// mirrors the engine's running tally; it never mutates process records
// itself – aggregation happens under the engine lock, publication
// outside of it.
package stats

import (
	"sync"

	"github.com/viant/quantor/model/proc"
)

// Tracker holds the most recent statistics snapshot. It is safe for
// concurrent use.
type Tracker struct {
	mu       sync.Mutex
	latest   proc.Stats
	onChange func(proc.Stats)
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Set replaces the current snapshot. A registered onChange callback is
// invoked with a value copy outside the critical section so that slow
// consumers (rendering, encoding, I/O) never block engine internals.
func (t *Tracker) Set(s proc.Stats) {
	t.mu.Lock()
	t.latest = s
	cb := t.onChange
	t.mu.Unlock()

	if cb != nil {
		cb(s)
	}
}

// Snapshot returns a copy of the latest statistics.
func (t *Tracker) Snapshot() proc.Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest
}

// OnChange registers a callback invoked after every Set. Passing nil
// disables the callback. Only one callback can be active; subsequent
// calls overwrite the previous value.
func (t *Tracker) OnChange(cb func(proc.Stats)) {
	t.mu.Lock()
	t.onChange = cb
	t.mu.Unlock()
}
