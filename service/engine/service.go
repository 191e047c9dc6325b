// Package engine implements the scheduling core: the process table, the
// priority-ordered ready queue with aging, the blocked set and the
// fixed-quantum execution loop. One dedicated worker goroutine drives
// the loop; every external entry point mutates shared state under the
// engine mutex and never holds it across a sleep or a callback.
package engine

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/viant/quantor/internal/clock"
	"github.com/viant/quantor/internal/pid"
	"github.com/viant/quantor/model/proc"
	pmemory "github.com/viant/quantor/service/dao/process/memory"
	"github.com/viant/quantor/service/event"
	"github.com/viant/quantor/service/queue"
	"github.com/viant/quantor/service/stats"
)

// Configuration bounds. Values outside these ranges are rejected at the
// control boundary rather than clamped.
const (
	MinTimeQuantumMs = 10
	MaxTimeQuantumMs = 1000
	MinAgingSec      = 1
	MaxAgingSec      = 60
)

// pauseCheckInterval is how long the worker sleeps between pause-flag
// checks while the engine is paused.
const pauseCheckInterval = 10 * time.Millisecond

// manualBlock marks a blocked-set entry that only an explicit unblock
// releases – the unblock check never decrements it.
const manualBlock = -1

// IOSimulation configures the simulated I/O blocking policy: every Nth
// tick the running process is moved to WAITING for a short random
// duration, provided enough burst remains. The cadence is a periodic
// counter, not per-call randomness.
type IOSimulation struct {
	Enabled        bool `json:"enabled" yaml:"enabled"`
	EveryNTicks    int  `json:"everyNTicks" yaml:"everyNTicks"`
	MinRemainingMs int  `json:"minRemainingMs" yaml:"minRemainingMs"`
	DurationMinMs  int  `json:"durationMinMs" yaml:"durationMinMs"`
	DurationMaxMs  int  `json:"durationMaxMs" yaml:"durationMaxMs"`
}

// Config represents the engine configuration. Both scheduling knobs are
// mutable at runtime and take effect on the next loop iteration.
type Config struct {
	TimeQuantumMs  int          `json:"timeQuantumMs" yaml:"timeQuantumMs"`
	AgingFactorSec int          `json:"agingFactorSec" yaml:"agingFactorSec"`
	IOSimulation   IOSimulation `json:"ioSimulation" yaml:"ioSimulation"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		TimeQuantumMs:  100,
		AgingFactorSec: 5,
		IOSimulation: IOSimulation{
			Enabled:        true,
			EveryNTicks:    10,
			MinRemainingMs: 500,
			DurationMinMs:  100,
			DurationMaxMs:  300,
		},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c.TimeQuantumMs < MinTimeQuantumMs || c.TimeQuantumMs > MaxTimeQuantumMs {
		return errTimeQuantumRange
	}
	if c.AgingFactorSec < MinAgingSec || c.AgingFactorSec > MaxAgingSec {
		return errAgingFactorRange
	}
	return nil
}

// Service owns all shared scheduler state and the worker goroutine.
type Service struct {
	mu  sync.Mutex
	cfg Config

	table   *pmemory.Service
	ready   *queue.Queue
	blocked map[int]int
	// currentPID is the pid occupying the CPU, 0 when idle. lastRunPID
	// backs the context-switch tally: a switch is counted only when the
	// selection step installs a different pid than ran before.
	currentPID      int
	lastRunPID      int
	contextSwitches int
	tickCount       int

	epoch time.Time
	pids  pid.Generator
	rng   *rand.Rand

	tracker     *stats.Tracker
	transitions *event.Publisher[proc.Transition]

	runMu   sync.Mutex
	running bool
	paused  atomic.Bool
	stopCh  chan struct{}
	done    chan struct{}
}

// Option customizes the engine service.
type Option func(s *Service)

// WithConfig sets the initial configuration.
func WithConfig(cfg Config) Option {
	return func(s *Service) { s.cfg = cfg }
}

// WithTracker sets the statistics tracker receiving every refresh.
func WithTracker(tracker *stats.Tracker) Option {
	return func(s *Service) { s.tracker = tracker }
}

// WithTransitionPublisher sets the event publisher notified of process
// state transitions. The engine runs fine without one.
func WithTransitionPublisher(publisher *event.Publisher[proc.Transition]) Option {
	return func(s *Service) { s.transitions = publisher }
}

// WithRandSeed seeds the I/O duration generator, for reproducible runs.
func WithRandSeed(seed int64) Option {
	return func(s *Service) { s.rng = rand.New(rand.NewSource(seed)) }
}

// New creates an engine service.
func New(options ...Option) (*Service, error) {
	s := &Service{
		cfg:     DefaultConfig(),
		table:   pmemory.New(),
		ready:   queue.New(),
		blocked: map[int]int{},
		epoch:   clock.Now(),
	}
	for _, option := range options {
		option(s)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if s.tracker == nil {
		s.tracker = stats.NewTracker()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(clock.Now().UnixNano()))
	}
	return s, nil
}

// Tracker returns the statistics tracker.
func (s *Service) Tracker() *stats.Tracker {
	return s.tracker
}

// Config returns a copy of the current configuration.
func (s *Service) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Start launches the scheduling loop, or resumes it when paused.
// Starting an already-running engine is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.running {
		s.paused.Store(false)
		return nil
	}
	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	s.paused.Store(false)
	s.running = true
	go s.run(ctx)
	return nil
}

// Pause freezes loop progress without losing state. Start resumes.
func (s *Service) Pause() {
	s.paused.Store(true)
}

// Stop signals the worker and joins it. Stopping an already-stopped
// engine is a no-op. The loop exits at its next flag check, bounded by
// one time quantum of latency.
func (s *Service) Stop() {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if !s.running {
		return
	}
	close(s.stopCh)
	<-s.done
	s.running = false
}

// IsRunning reports whether the worker is active (possibly paused).
func (s *Service) IsRunning() bool {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.running
}

// IsPaused reports whether the loop is currently paused.
func (s *Service) IsPaused() bool {
	return s.paused.Load()
}

// run is the worker loop: tick, then sleep one quantum. While paused it
// only polls the pause flag. The loop never holds the engine mutex
// across a sleep.
func (s *Service) run(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}
		if s.paused.Load() {
			select {
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			case <-time.After(pauseCheckInterval):
			}
			continue
		}
		s.tick(ctx)

		s.mu.Lock()
		quantum := time.Duration(s.cfg.TimeQuantumMs) * time.Millisecond
		s.mu.Unlock()
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-time.After(quantum):
		}
	}
}

// tick executes one scheduling iteration: unblock check, preemption,
// selection, execution, I/O simulation, aging, statistics. Publication
// of the snapshot and of transition events happens after the lock is
// released.
func (s *Service) tick(ctx context.Context) {
	s.mu.Lock()
	quantum := s.cfg.TimeQuantumMs
	agingFactor := s.cfg.AgingFactorSec
	s.tickCount++
	now := clock.SinceMs(s.epoch)
	var transitions []proc.Transition

	// 1. Unblock check: elapse one quantum of simulated I/O time.
	for blockedPID, remaining := range s.blocked {
		if remaining == manualBlock {
			continue
		}
		remaining -= quantum
		if remaining > 0 {
			s.blocked[blockedPID] = remaining
			continue
		}
		delete(s.blocked, blockedPID)
		if p, err := s.table.Load(ctx, blockedPID); err == nil && p.State == proc.StateWaiting {
			p.State = proc.StateReady
			s.ready.Enqueue(p.PID, p.EffectivePriority)
			transitions = append(transitions, proc.Transition{
				PID: p.PID, Name: p.Name, From: proc.StateWaiting, To: proc.StateReady,
				Reason: "woke up", AtMs: now,
			})
		}
	}

	// 2. Preemption: the incumbent's quantum expired; it rejoins the
	// ready queue and competes with everyone else in the selection step.
	// Equal priorities round-robin because the re-enqueued process sorts
	// behind its peers.
	if s.currentPID != 0 {
		if p, err := s.table.Load(ctx, s.currentPID); err == nil && p.State == proc.StateRunning {
			p.State = proc.StateReady
			s.ready.Enqueue(p.PID, p.EffectivePriority)
		}
		s.currentPID = 0
	}

	// 3. Selection: install the head of the ready queue.
	if nextPID, ok := s.ready.Dequeue(); ok {
		if p, err := s.table.Load(ctx, nextPID); err == nil && p.State == proc.StateReady {
			p.State = proc.StateRunning
			s.currentPID = nextPID
			if nextPID != s.lastRunPID {
				s.contextSwitches++
			}
			s.lastRunPID = nextPID
		}
	}

	// 4. Execution: consume up to one quantum of the remaining burst.
	if s.currentPID != 0 {
		if p, err := s.table.Load(ctx, s.currentPID); err == nil {
			p.Execute(quantum)
			if p.State == proc.StateTerminated {
				p.TurnaroundTimeMs = now - p.ArrivalTimeMs
				s.currentPID = 0
				transitions = append(transitions, proc.Transition{
					PID: p.PID, Name: p.Name, From: proc.StateRunning, To: proc.StateTerminated,
					Reason: "burst complete", AtMs: now,
				})
			}
		}
	}

	// 5. Simulated I/O: periodically release the CPU early.
	io := s.cfg.IOSimulation
	if io.Enabled && s.currentPID != 0 && io.EveryNTicks > 0 && s.tickCount%io.EveryNTicks == 0 {
		if p, err := s.table.Load(ctx, s.currentPID); err == nil && p.RemainingTimeMs > io.MinRemainingMs {
			p.State = proc.StateWaiting
			s.blocked[p.PID] = s.ioDuration()
			s.currentPID = 0
			transitions = append(transitions, proc.Transition{
				PID: p.PID, Name: p.Name, From: proc.StateRunning, To: proc.StateWaiting,
				Reason: "simulated io", AtMs: now,
			})
		}
	}

	// 6. Aging: recompute effective priorities of all READY processes.
	s.ready.ApplyAging(func(agedPID int) int {
		p, err := s.table.Load(ctx, agedPID)
		if err != nil {
			return proc.MaxPriority
		}
		p.ApplyAging(agingFactor)
		return p.EffectivePriority
	})

	// 7. Statistics refresh over the whole table.
	table, _ := s.table.List(ctx)
	snapshot := stats.Collect(table, stats.Input{
		ElapsedMs:       int64(quantum),
		NowMs:           now,
		Running:         s.currentPID != 0,
		ContextSwitches: s.contextSwitches,
	})
	s.mu.Unlock()

	// Notify outside the critical section.
	s.tracker.Set(snapshot)
	s.publish(ctx, transitions)
}

// ioDuration picks a random simulated I/O time within the configured
// bounds.
func (s *Service) ioDuration() int {
	io := s.cfg.IOSimulation
	span := io.DurationMaxMs - io.DurationMinMs
	if span <= 0 {
		return io.DurationMinMs
	}
	return io.DurationMinMs + s.rng.Intn(span)
}

// publish delivers transition events to the registered publisher, in
// occurrence order.
func (s *Service) publish(ctx context.Context, transitions []proc.Transition) {
	if s.transitions == nil {
		return
	}
	for i := range transitions {
		_ = s.transitions.Publish(ctx, event.NewEvent(&event.Context{
			PID:       transitions[i].PID,
			EventType: "transition",
			Service:   "engine",
		}, transitions[i]))
	}
}
