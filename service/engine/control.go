package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/viant/quantor/internal/clock"
	"github.com/viant/quantor/model/proc"
	"github.com/viant/quantor/service/dao"
	"github.com/viant/quantor/service/stats"
	"github.com/viant/quantor/tracing"
)

// CreateProcess admits a new process: it is registered in the table and
// placed on the ready queue in one step, so an admitted process is
// schedulable from the next tick on.
func (s *Service) CreateProcess(ctx context.Context, name string, priority, burstMs int) (proc.Process, error) {
	ctx, span := tracing.StartSpan(ctx, "engine.CreateProcess", "INTERNAL")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	if name == "" {
		err = fmt.Errorf("process name is required")
		return proc.Process{}, err
	}
	if priority < 0 || priority > proc.MaxPriority {
		err = fmt.Errorf("priority must be between 0 and %d, had: %d", proc.MaxPriority, priority)
		return proc.Process{}, err
	}
	if burstMs <= 0 {
		err = fmt.Errorf("burst time must be positive, had: %d", burstMs)
		return proc.Process{}, err
	}

	s.mu.Lock()
	now := clock.SinceMs(s.epoch)
	p := proc.New(s.pids.Next(), name, priority, burstMs, now)
	if err = s.table.Save(ctx, p); err != nil {
		s.mu.Unlock()
		return proc.Process{}, err
	}
	p.State = proc.StateReady
	s.ready.Enqueue(p.PID, p.EffectivePriority)
	created := p.Clone()
	snapshot := s.refreshLocked(ctx, now)
	s.mu.Unlock()

	span.WithAttributes(map[string]string{
		"process.pid":  strconv.Itoa(created.PID),
		"process.name": created.Name,
	})
	s.tracker.Set(snapshot)
	s.publish(ctx, []proc.Transition{{
		PID: created.PID, Name: created.Name,
		From: proc.StateNew, To: proc.StateReady,
		Reason: "created", AtMs: now,
	}})
	return created, nil
}

// Terminate moves a process to TERMINATED regardless of its current
// state, detaching it from the ready queue, the blocked set and the CPU
// as needed. Unknown or already-terminated pids are a no-op.
func (s *Service) Terminate(ctx context.Context, targetPID int) {
	s.mu.Lock()
	p, err := s.table.Load(ctx, targetPID)
	if err != nil || p.State == proc.StateTerminated {
		s.mu.Unlock()
		return
	}
	now := clock.SinceMs(s.epoch)
	from := p.State
	s.ready.Remove(targetPID)
	delete(s.blocked, targetPID)
	if s.currentPID == targetPID {
		s.currentPID = 0
	}
	p.State = proc.StateTerminated
	p.TurnaroundTimeMs = now - p.ArrivalTimeMs
	name := p.Name
	snapshot := s.refreshLocked(ctx, now)
	s.mu.Unlock()

	s.tracker.Set(snapshot)
	s.publish(ctx, []proc.Transition{{
		PID: targetPID, Name: name, From: from, To: proc.StateTerminated,
		Reason: "terminated by request", AtMs: now,
	}})
}

// Block suspends the currently running process indefinitely; only an
// explicit Unblock releases it. Addressing a process that is not
// RUNNING is a no-op.
func (s *Service) Block(ctx context.Context, targetPID int) {
	s.mu.Lock()
	p, err := s.table.Load(ctx, targetPID)
	if err != nil || p.State != proc.StateRunning {
		s.mu.Unlock()
		return
	}
	now := clock.SinceMs(s.epoch)
	p.State = proc.StateWaiting
	s.blocked[targetPID] = manualBlock
	if s.currentPID == targetPID {
		s.currentPID = 0
	}
	name := p.Name
	snapshot := s.refreshLocked(ctx, now)
	s.mu.Unlock()

	s.tracker.Set(snapshot)
	s.publish(ctx, []proc.Transition{{
		PID: targetPID, Name: name, From: proc.StateRunning, To: proc.StateWaiting,
		Reason: "blocked", AtMs: now,
	}})
}

// Unblock releases a WAITING process back to the ready queue,
// regardless of whether the wait was manual or timed. Addressing a
// process that is not WAITING is a no-op.
func (s *Service) Unblock(ctx context.Context, targetPID int) {
	s.mu.Lock()
	p, err := s.table.Load(ctx, targetPID)
	if err != nil || p.State != proc.StateWaiting {
		s.mu.Unlock()
		return
	}
	now := clock.SinceMs(s.epoch)
	delete(s.blocked, targetPID)
	p.State = proc.StateReady
	s.ready.Enqueue(p.PID, p.EffectivePriority)
	name := p.Name
	snapshot := s.refreshLocked(ctx, now)
	s.mu.Unlock()

	s.tracker.Set(snapshot)
	s.publish(ctx, []proc.Transition{{
		PID: targetPID, Name: name, From: proc.StateWaiting, To: proc.StateReady,
		Reason: "unblocked", AtMs: now,
	}})
}

// WaitFor puts a READY or RUNNING process to sleep for the given
// duration; the unblock check wakes it once the duration has elapsed in
// scheduler time. Unlike the silent control operations it reports why
// nothing happened, so command front-ends can surface a diagnostic.
func (s *Service) WaitFor(ctx context.Context, targetPID, durationMs int) error {
	ctx, span := tracing.StartSpan(ctx, "engine.WaitFor", "INTERNAL")
	var err error
	defer func() { tracing.EndSpan(span, err) }()

	if durationMs <= 0 {
		err = fmt.Errorf("wait duration must be positive, had: %d", durationMs)
		return err
	}
	s.mu.Lock()
	p, loadErr := s.table.Load(ctx, targetPID)
	if loadErr != nil {
		s.mu.Unlock()
		err = fmt.Errorf("%w: %d", ErrUnknownPID, targetPID)
		return err
	}
	if p.State != proc.StateRunning && p.State != proc.StateReady {
		state := p.State
		s.mu.Unlock()
		err = fmt.Errorf("%w: pid %d is %s", ErrIneligibleState, targetPID, state)
		return err
	}
	now := clock.SinceMs(s.epoch)
	from := p.State
	if p.State == proc.StateRunning && s.currentPID == targetPID {
		s.currentPID = 0
	} else {
		s.ready.Remove(targetPID)
	}
	p.State = proc.StateWaiting
	s.blocked[targetPID] = durationMs
	name := p.Name
	snapshot := s.refreshLocked(ctx, now)
	s.mu.Unlock()

	s.tracker.Set(snapshot)
	s.publish(ctx, []proc.Transition{{
		PID: targetPID, Name: name, From: from, To: proc.StateWaiting,
		Reason: "wait requested", AtMs: now,
	}})
	return nil
}

// SetTimeQuantum updates the scheduling quantum; it takes effect on the
// next loop iteration.
func (s *Service) SetTimeQuantum(ms int) error {
	if ms < MinTimeQuantumMs || ms > MaxTimeQuantumMs {
		return errTimeQuantumRange
	}
	s.mu.Lock()
	s.cfg.TimeQuantumMs = ms
	s.mu.Unlock()
	return nil
}

// SetAgingFactor updates the aging factor; it takes effect on the next
// aging pass.
func (s *Service) SetAgingFactor(sec int) error {
	if sec < MinAgingSec || sec > MaxAgingSec {
		return errAgingFactorRange
	}
	s.mu.Lock()
	s.cfg.AgingFactorSec = sec
	s.mu.Unlock()
	return nil
}

// Snapshot returns a consistent copy of the process table, the derived
// statistics and the current configuration.
func (s *Service) Snapshot(ctx context.Context) proc.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := clock.SinceMs(s.epoch)
	aggregate := s.refreshLocked(ctx, now)
	table, _ := s.table.List(ctx)
	processes := make([]proc.Process, 0, len(table))
	for _, p := range table {
		processes = append(processes, p.Clone())
	}
	return proc.Snapshot{
		Processes:      processes,
		Stats:          aggregate,
		TimeQuantumMs:  s.cfg.TimeQuantumMs,
		AgingFactorSec: s.cfg.AgingFactorSec,
	}
}

// Processes returns copies of the table records in creation order,
// optionally narrowed to the given states.
func (s *Service) Processes(ctx context.Context, states ...string) ([]proc.Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var parameters []*dao.Parameter
	if len(states) > 0 {
		parameters = append(parameters, dao.NewParameter("State", states...))
	}
	table, err := s.table.List(ctx, parameters...)
	if err != nil {
		return nil, err
	}
	out := make([]proc.Process, 0, len(table))
	for _, p := range table {
		out = append(out, p.Clone())
	}
	return out, nil
}

// Process returns a copy of a single process record.
func (s *Service) Process(ctx context.Context, targetPID int) (proc.Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.table.Load(ctx, targetPID)
	if err != nil {
		return proc.Process{}, fmt.Errorf("%w: %d", ErrUnknownPID, targetPID)
	}
	return p.Clone(), nil
}

// refreshLocked recomputes the aggregate statistics without accruing
// wait time. Caller holds the engine lock.
func (s *Service) refreshLocked(ctx context.Context, nowMs int64) proc.Stats {
	table, _ := s.table.List(ctx)
	return stats.Collect(table, stats.Input{
		NowMs:           nowMs,
		Running:         s.currentPID != 0,
		ContextSwitches: s.contextSwitches,
	})
}
