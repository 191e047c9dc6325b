package procfs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/quantor/model/proc"
	"github.com/viant/quantor/service/engine"
)

func TestRender(t *testing.T) {
	snapshot := proc.Snapshot{
		TimeQuantumMs:  100,
		AgingFactorSec: 5,
		Stats: proc.Stats{
			TotalProcesses:      2,
			RunningProcesses:    1,
			TerminatedProcesses: 1,
			CPUUtilization:      100,
			ContextSwitchCount:  3,
			AverageWaitTimeMs:   250,
			AverageTurnaroundMs: 900,
		},
		Processes: []proc.Process{
			{PID: 1, Name: "crunch", State: proc.StateRunning, BasePriority: 5, EffectivePriority: 4, RemainingTimeMs: 300, WaitTimeMs: 200},
			{PID: 2, Name: "a-process-with-a-very-long-name", State: proc.StateTerminated, BasePriority: 2, EffectivePriority: 2},
		},
	}

	out := Render(snapshot)
	assert.Contains(t, out, "=== Scheduler Status ===")
	assert.Contains(t, out, "Time Quantum: 100 ms")
	assert.Contains(t, out, "Aging Factor: 5 s")
	assert.Contains(t, out, "Running: 1  Ready: 0  Waiting: 0  Terminated: 1")
	assert.Contains(t, out, "CPU Utilization: 100.0%")
	assert.Contains(t, out, "Avg Wait Time: 250.0 ms")
	assert.Contains(t, out, "crunch")
	assert.Contains(t, out, "TERM", "terminated state is abbreviated")
	assert.Contains(t, out, "a-process-with-a-ver", "long names are truncated")
	assert.NotContains(t, out, "a-process-with-a-very")
}

func TestServiceWriteAndRead(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.IOSimulation.Enabled = false
	core, err := engine.New(engine.WithConfig(cfg))
	assert.NoError(t, err)
	service := New(core)
	ctx := context.Background()

	assert.NoError(t, service.Write(ctx, "NEW worker 500 3"))
	out := service.Read(ctx)
	assert.Contains(t, out, "worker")
	assert.Contains(t, out, "READY")
	assert.Contains(t, out, "Total Processes: 1")

	assert.NoError(t, service.Write(ctx, "WAIT 1 200"))
	out = service.Read(ctx)
	assert.Contains(t, out, "WAITING")

	assert.Error(t, service.Write(ctx, "WAIT 99 200"), "unknown pid surfaces a diagnostic")
	assert.Error(t, service.Write(ctx, "FORK worker"))
	assert.Error(t, service.Write(ctx, "NEW worker 0 3"), "engine validation propagates")
}
