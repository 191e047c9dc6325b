// Package pid allocates simulated process identifiers. It lives under
// `internal` because callers should not rely on the allocation scheme
// beyond the stated guarantees: pids are positive, strictly monotonic
// and never reused within one generator's lifetime.
package pid

import "sync/atomic"

// Generator hands out pids starting at 1. The zero value is ready to
// use; each engine owns its own generator so that independent engines
// produce independent pid sequences.
type Generator struct {
	last int64
}

// Next returns the next pid.
func (g *Generator) Next() int {
	return int(atomic.AddInt64(&g.last, 1))
}

// Last returns the most recently allocated pid, 0 when none was issued.
func (g *Generator) Last() int {
	return int(atomic.LoadInt64(&g.last))
}
