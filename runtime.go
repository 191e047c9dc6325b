package quantor

import (
	"context"

	"github.com/viant/quantor/model/proc"
	"github.com/viant/quantor/service/engine"
	"github.com/viant/quantor/service/event"
	"github.com/viant/quantor/service/procfs"
)

// Runtime represents a scheduler runtime: the control surface callers
// use once the service is assembled.
type Runtime struct {
	engine       *engine.Service
	procfs       *procfs.Service
	eventService *event.Service
	transitions  *transitionLog
}

// Start launches the scheduling loop, or resumes a paused one.
func (r *Runtime) Start(ctx context.Context) error {
	return r.engine.Start(ctx)
}

// Pause freezes the scheduling loop without losing state.
func (r *Runtime) Pause() {
	r.engine.Pause()
}

// Stop halts the scheduling loop and joins the worker.
func (r *Runtime) Stop() {
	r.engine.Stop()
}

// Shutdown stops the loop and the event pipeline.
func (r *Runtime) Shutdown(ctx context.Context) error {
	r.engine.Stop()
	r.eventService.Shutdown()
	return nil
}

// IsRunning reports whether the scheduling loop is active.
func (r *Runtime) IsRunning() bool {
	return r.engine.IsRunning()
}

// IsPaused reports whether the scheduling loop is paused.
func (r *Runtime) IsPaused() bool {
	return r.engine.IsPaused()
}

// CreateProcess admits a new process.
func (r *Runtime) CreateProcess(ctx context.Context, name string, priority, burstMs int) (proc.Process, error) {
	return r.engine.CreateProcess(ctx, name, priority, burstMs)
}

// Terminate terminates a process; unknown pids are a no-op.
func (r *Runtime) Terminate(ctx context.Context, pid int) {
	r.engine.Terminate(ctx, pid)
}

// Block suspends the running process until Unblock.
func (r *Runtime) Block(ctx context.Context, pid int) {
	r.engine.Block(ctx, pid)
}

// Unblock releases a waiting process back to the ready queue.
func (r *Runtime) Unblock(ctx context.Context, pid int) {
	r.engine.Unblock(ctx, pid)
}

// WaitFor puts a READY or RUNNING process to sleep for durationMs of
// scheduler time.
func (r *Runtime) WaitFor(ctx context.Context, pid, durationMs int) error {
	return r.engine.WaitFor(ctx, pid, durationMs)
}

// Process returns a copy of a single process record.
func (r *Runtime) Process(ctx context.Context, pid int) (proc.Process, error) {
	return r.engine.Process(ctx, pid)
}

// Snapshot returns a consistent copy of the table, statistics and
// configuration.
func (r *Runtime) Snapshot(ctx context.Context) proc.Snapshot {
	return r.engine.Snapshot(ctx)
}

// Stats returns the latest published statistics.
func (r *Runtime) Stats() proc.Stats {
	return r.engine.Tracker().Snapshot()
}

// SetTimeQuantum updates the scheduling quantum.
func (r *Runtime) SetTimeQuantum(ms int) error {
	return r.engine.SetTimeQuantum(ms)
}

// SetAgingFactor updates the aging factor.
func (r *Runtime) SetAgingFactor(sec int) error {
	return r.engine.SetAgingFactor(sec)
}

// Transitions returns the most recent process state transitions, oldest
// first.
func (r *Runtime) Transitions() []proc.Transition {
	return r.transitions.list()
}

// ProcFS returns the proc-file style text interface.
func (r *Runtime) ProcFS() *procfs.Service {
	return r.procfs
}

// Engine returns the underlying engine service, used by the HTTP layer.
func (r *Runtime) Engine() *engine.Service {
	return r.engine
}
