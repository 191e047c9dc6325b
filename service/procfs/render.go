package procfs

import (
	"fmt"
	"strings"

	"github.com/viant/quantor/model/proc"
)

// Render formats a snapshot as the fixed-width status report returned
// by reads: scheduler parameters, aggregate counters and one table row
// per process.
func Render(snapshot proc.Snapshot) string {
	var b strings.Builder

	b.WriteString("=== Scheduler Status ===\n")
	fmt.Fprintf(&b, "Time Quantum: %d ms\n", snapshot.TimeQuantumMs)
	fmt.Fprintf(&b, "Aging Factor: %d s\n", snapshot.AgingFactorSec)
	b.WriteString("\n")

	s := snapshot.Stats
	fmt.Fprintf(&b, "Total Processes: %d\n", s.TotalProcesses)
	fmt.Fprintf(&b, "Running: %d  Ready: %d  Waiting: %d  Terminated: %d\n",
		s.RunningProcesses, s.ReadyProcesses, s.WaitingProcesses, s.TerminatedProcesses)
	b.WriteString("\n")

	fmt.Fprintf(&b, "CPU Utilization: %.1f%%\n", s.CPUUtilization)
	fmt.Fprintf(&b, "Context Switches: %d\n", s.ContextSwitchCount)
	fmt.Fprintf(&b, "Avg Wait Time: %.1f ms\n", s.AverageWaitTimeMs)
	fmt.Fprintf(&b, "Avg Turnaround: %.1f ms\n", s.AverageTurnaroundMs)
	b.WriteString("\n")

	fmt.Fprintf(&b, "%-6s %-20s %-10s %-8s %-7s %-10s %-9s\n",
		"PID", "Name", "State", "BasePri", "EffPri", "Remaining", "WaitTime")
	for i := range snapshot.Processes {
		p := &snapshot.Processes[i]
		fmt.Fprintf(&b, "%-6d %-20s %-10s %-8d %-7d %-10d %-9d\n",
			p.PID, truncate(p.Name, 20), p.State.Short(),
			p.BasePriority, p.EffectivePriority, p.RemainingTimeMs, p.WaitTimeMs)
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
