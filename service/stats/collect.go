package stats

import (
	"github.com/viant/quantor/model/proc"
)

// Input carries the per-refresh context the aggregation needs besides
// the table itself.
type Input struct {
	// ElapsedMs is the quantum that just elapsed; it is added to the wait
	// time of every READY process. Zero for refreshes triggered by
	// control operations rather than the scheduling loop.
	ElapsedMs int64
	// NowMs is the current time relative to the engine epoch.
	NowMs int64
	// Running indicates a process occupies the CPU at this instant.
	Running bool
	// ContextSwitches is the engine's running tally, carried through.
	ContextSwitches int
}

// Collect walks the process table once: accrues wait time for READY
// processes, recomputes turnaround for live processes and tallies the
// aggregate counters. The caller must hold the engine lock; records are
// mutated in place. Averages are 0 when the table is empty.
func Collect(table []*proc.Process, in Input) proc.Stats {
	out := proc.Stats{
		TotalProcesses:     len(table),
		ContextSwitchCount: in.ContextSwitches,
	}
	if in.Running {
		out.CPUUtilization = 100
	}

	var totalWait, totalTurnaround int64
	for _, p := range table {
		if p.State == proc.StateReady {
			p.WaitTimeMs += in.ElapsedMs
		}
		if p.State.IsLive() {
			p.TurnaroundTimeMs = in.NowMs - p.ArrivalTimeMs
		}
		switch p.State {
		case proc.StateRunning:
			out.RunningProcesses++
		case proc.StateReady:
			out.ReadyProcesses++
		case proc.StateWaiting:
			out.WaitingProcesses++
		case proc.StateTerminated:
			out.TerminatedProcesses++
		}
		totalWait += p.WaitTimeMs
		totalTurnaround += p.TurnaroundTimeMs
	}

	if out.TotalProcesses > 0 {
		out.AverageWaitTimeMs = float64(totalWait) / float64(out.TotalProcesses)
		out.AverageTurnaroundMs = float64(totalTurnaround) / float64(out.TotalProcesses)
	}
	return out
}
