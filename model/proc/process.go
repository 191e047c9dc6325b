// Package proc defines the process record of the scheduling simulation –
// the single source of truth every other component (ready queue, blocked
// set, statistics) refers to by pid. Records are owned by the process
// table; mutation happens only under the engine lock.
package proc

// MaxPriority is the numerically largest (i.e. weakest) base priority.
// Priority 0 is the strongest.
const MaxPriority = 10

// Process represents one simulated process and its scheduling-relevant
// state. BasePriority and BurstTimeMs are immutable after creation;
// EffectivePriority is mutated only by the aging rule.
type Process struct {
	PID               int    `json:"pid"`
	Name              string `json:"name"`
	BasePriority      int    `json:"basePriority"`
	EffectivePriority int    `json:"effectivePriority"`
	BurstTimeMs       int    `json:"burstTimeMs"`
	RemainingTimeMs   int    `json:"remainingTimeMs"`
	State             State  `json:"state"`

	// Timing, all relative to the engine epoch.
	ArrivalTimeMs    int64 `json:"arrivalTimeMs"`
	WaitTimeMs       int64 `json:"waitTimeMs"`
	TurnaroundTimeMs int64 `json:"turnaroundTimeMs"`
}

// New creates a process record in the NEW state. Argument validation is
// the caller's responsibility – the control interface rejects bad input
// before a record is ever constructed.
func New(pid int, name string, priority, burstTimeMs int, arrivalTimeMs int64) *Process {
	return &Process{
		PID:               pid,
		Name:              name,
		BasePriority:      priority,
		EffectivePriority: priority,
		BurstTimeMs:       burstTimeMs,
		RemainingTimeMs:   burstTimeMs,
		State:             StateNew,
		ArrivalTimeMs:     arrivalTimeMs,
	}
}

// Execute consumes up to timeSliceMs of the remaining burst and returns
// the amount actually consumed. A process that reaches zero remaining
// time transitions to TERMINATED. Calling Execute on a process that is
// not RUNNING is a no-op.
func (p *Process) Execute(timeSliceMs int) int {
	if p.State != StateRunning {
		return 0
	}
	execTime := timeSliceMs
	if p.RemainingTimeMs < execTime {
		execTime = p.RemainingTimeMs
	}
	p.RemainingTimeMs -= execTime
	if p.RemainingTimeMs <= 0 {
		p.RemainingTimeMs = 0
		p.State = StateTerminated
	}
	return execTime
}

// ApplyAging recomputes the effective priority from the accumulated wait
// time using the decaying rule: every agingFactorSec seconds spent
// waiting improves the rank by one step, clamped at 0. The result never
// gets numerically larger than the base priority, so a process that
// keeps waiting can only improve.
func (p *Process) ApplyAging(agingFactorSec int) {
	if agingFactorSec <= 0 {
		return
	}
	waitSec := int(p.WaitTimeMs / 1000)
	effective := p.BasePriority - waitSec/agingFactorSec
	if effective < 0 {
		effective = 0
	}
	p.EffectivePriority = effective
}

// Clone returns a value copy safe to hand to snapshot consumers.
func (p *Process) Clone() Process {
	return *p
}
