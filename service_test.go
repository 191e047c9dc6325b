package quantor

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/quantor/model/proc"
	"github.com/viant/quantor/service/engine"
)

func testConfig() *Config {
	config := DefaultConfig()
	config.Engine.TimeQuantumMs = engine.MinTimeQuantumMs
	config.Engine.IOSimulation.Enabled = false
	config.EventLogURL = "mem://localhost/quantor/sched_stats.log"
	return config
}

func TestServiceEndToEnd(t *testing.T) {
	var mu sync.Mutex
	var refreshes int
	service, err := New(
		WithConfig(testConfig()),
		WithStatsListener(func(proc.Stats) {
			mu.Lock()
			refreshes++
			mu.Unlock()
		}),
	)
	assert.NoError(t, err)
	runtime := service.Runtime()
	ctx := context.Background()
	defer runtime.Shutdown(ctx)

	first, err := runtime.CreateProcess(ctx, "first", 2, 30)
	assert.NoError(t, err)
	second, err := runtime.CreateProcess(ctx, "second", 7, 20)
	assert.NoError(t, err)

	assert.NoError(t, runtime.Start(ctx))
	assert.True(t, runtime.IsRunning())

	assert.Eventually(t, func() bool {
		return runtime.Stats().TerminatedProcesses == 2
	}, 2*time.Second, 5*time.Millisecond)
	runtime.Stop()

	// Higher priority (numerically smaller) completes first.
	firstRecord, err := runtime.Process(ctx, first.PID)
	assert.NoError(t, err)
	secondRecord, err := runtime.Process(ctx, second.PID)
	assert.NoError(t, err)
	assert.Equal(t, proc.StateTerminated, firstRecord.State)
	assert.Equal(t, proc.StateTerminated, secondRecord.State)
	assert.LessOrEqual(t, firstRecord.TurnaroundTimeMs, secondRecord.TurnaroundTimeMs)

	mu.Lock()
	assert.Greater(t, refreshes, 0)
	mu.Unlock()

	// Transition history and log sink observed the lifecycle.
	assert.Eventually(t, func() bool {
		completed := 0
		for _, transition := range runtime.Transitions() {
			if transition.To == proc.StateTerminated {
				completed++
			}
		}
		return completed == 2
	}, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		log := service.EventLog()
		return strings.Contains(log, "NEW -> READY") && strings.Contains(log, "RUNNING -> TERMINATED")
	}, time.Second, 10*time.Millisecond)
}

func TestServiceProcFSRoundTrip(t *testing.T) {
	service, err := New(WithConfig(testConfig()))
	assert.NoError(t, err)
	runtime := service.Runtime()
	ctx := context.Background()
	defer runtime.Shutdown(ctx)

	procFS := runtime.ProcFS()
	assert.NoError(t, procFS.Write(ctx, "NEW crunch 500 3"))
	assert.NoError(t, procFS.Write(ctx, "WAIT 1 200"))

	out := procFS.Read(ctx)
	assert.Contains(t, out, "crunch")
	assert.Contains(t, out, "WAITING")
	assert.Contains(t, out, "Total Processes: 1")

	assert.Error(t, procFS.Write(ctx, "WAIT 42 100"))
}

func TestServiceRejectsInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.Engine.TimeQuantumMs = 1
	_, err := New(WithConfig(config))
	assert.Error(t, err)
}
