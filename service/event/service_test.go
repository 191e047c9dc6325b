package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/quantor/model/proc"
)

func TestTypedPublisherAndListener(t *testing.T) {
	service, err := New("memory")
	assert.NoError(t, err)
	defer service.Shutdown()

	publisher, err := PublisherOf[proc.Transition](service)
	assert.NoError(t, err)

	var mu sync.Mutex
	var received []proc.Transition
	err = SetListenerOf(service, func(e *Event[proc.Transition]) {
		mu.Lock()
		received = append(received, e.Data)
		mu.Unlock()
	})
	assert.NoError(t, err)

	ctx := context.Background()
	transition := proc.Transition{PID: 1, Name: "alpha", From: proc.StateNew, To: proc.StateReady}
	err = publisher.Publish(ctx, NewEvent(&Context{PID: 1, EventType: "transition"}, transition))
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.Equal(t, transition, received[0])
	mu.Unlock()
}

func TestUnsupportedVendor(t *testing.T) {
	_, err := New("carrier-pigeon")
	assert.Error(t, err)
}

func TestAnyListenerMirrorsTypedEvents(t *testing.T) {
	service, err := New("memory")
	assert.NoError(t, err)
	defer service.Shutdown()

	var mu sync.Mutex
	count := 0
	service.SetListener(func(e *Event[any]) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	publisher, err := PublisherOf[proc.Transition](service)
	assert.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		transition := proc.Transition{PID: i + 1, From: proc.StateReady, To: proc.StateRunning}
		assert.NoError(t, publisher.Publish(ctx, NewEvent(&Context{PID: i + 1, EventType: "transition"}, transition)))
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 3
	}, time.Second, 10*time.Millisecond)
}

func TestLogSinkFormatsTransitions(t *testing.T) {
	sink := NewLogSink("mem://localhost/quantor/sched_stats.log")

	transition := proc.Transition{PID: 4, Name: "io-bound", From: proc.StateRunning, To: proc.StateWaiting, Reason: "io"}
	sink.Handle(&Event[any]{
		Context:   &Context{PID: 4, EventType: "transition"},
		CreatedAt: time.Now(),
		Data:      transition,
	})

	lines := sink.Lines()
	assert.Contains(t, lines, "pid=4")
	assert.Contains(t, lines, "RUNNING -> WAITING")
}
