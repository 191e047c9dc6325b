// Package messaging defines the queue contract that carries scheduler
// events to their sinks. The abstraction keeps the engine unaware of the
// delivery mechanism – the default is the in-memory implementation under
// messaging/memory.
package messaging

import (
	"context"
)

// Vendor names a queue implementation ("memory" is the only built-in).
type Vendor string

// Queue represents an abstract message queue for any payload type.
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue
	Publish(ctx context.Context, t *T) error

	// Consume retrieves a single message from the queue
	Consume(ctx context.Context) (Message[T], error)
}

// Message represents a message retrieved from a queue.
type Message[T any] interface {
	// T returns the payload of this message
	T() *T

	// Ack acknowledges successful processing of this message
	Ack() error

	// Nack indicates failure in processing this message
	Nack(err error) error
}
