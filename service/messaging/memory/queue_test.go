package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testPayload struct {
	PID  int
	Kind string
}

func TestQueuePublishConsume(t *testing.T) {
	config := DefaultConfig()
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[testPayload](config)

	ctx := context.Background()
	payload := testPayload{PID: 1, Kind: "created"}

	err := queue.Publish(ctx, &payload)
	assert.NoError(t, err)
	assert.Equal(t, 1, queue.Size())

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, message)
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, payload, *message.T())

	assert.NoError(t, message.Ack())
	// Double ack must fail.
	assert.Error(t, message.Ack())
}

func TestQueueRetriesAndDeadLetter(t *testing.T) {
	config := DefaultConfig()
	config.MaxRetries = 1
	config.RetryDelay = 10 * time.Millisecond
	queue := NewQueue[testPayload](config)

	ctx := context.Background()
	payload := testPayload{PID: 2, Kind: "woke"}
	assert.NoError(t, queue.Publish(ctx, &payload))

	message, err := queue.Consume(ctx)
	assert.NoError(t, err)
	assert.NoError(t, message.Nack(fmt.Errorf("sink unavailable")))

	// The retry is re-published after the delay.
	time.Sleep(30 * time.Millisecond)
	message, err = queue.Consume(ctx)
	assert.NoError(t, err)

	// Exceeding the retry budget dead-letters the message.
	assert.NoError(t, message.Nack(fmt.Errorf("sink still unavailable")))
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, queue.Size())
	assert.Equal(t, 1, queue.DLQSize())
}

func TestQueueContextCancellation(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	payload := testPayload{PID: 3}
	assert.Error(t, queue.Publish(cancelled, &payload))

	ctx, timeout := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer timeout()
	_, err := queue.Consume(ctx)
	assert.Error(t, err)

	// Queue remains usable afterwards.
	assert.NoError(t, queue.Publish(context.Background(), &payload))
	message, err := queue.Consume(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, message)
}

func TestQueueConcurrency(t *testing.T) {
	producers := 8
	perProducer := 25

	config := DefaultConfig()
	config.QueueBuffer = producers * perProducer
	queue := NewQueue[testPayload](config)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(producers)
	for i := 0; i < producers; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				payload := testPayload{PID: id*perProducer + j}
				assert.NoError(t, queue.Publish(ctx, &payload))
			}
		}(i)
	}
	wg.Wait()

	consumed := 0
	for queue.Size() > 0 {
		message, err := queue.Consume(ctx)
		assert.NoError(t, err)
		assert.NoError(t, message.Ack())
		consumed++
	}
	assert.Equal(t, producers*perProducer, consumed)
}
