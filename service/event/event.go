// Package event delivers scheduler happenings – state transitions and
// control actions – to registered sinks over messaging queues. The
// engine only publishes; sinks (log file, listeners) never feed anything
// back into the core.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Context identifies the origin of an event.
type Context struct {
	ID        string `json:"id"`
	PID       int    `json:"pid,omitempty"`
	EventType string `json:"eventType"`
	Service   string `json:"service,omitempty"`
	Method    string `json:"method,omitempty"`
}

// Event carries a typed payload together with its origin context.
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event, assigning a correlation id when the caller
// did not set one.
func NewEvent[T any](context *Context, data T) *Event[T] {
	if context != nil && context.ID == "" {
		context.ID = uuid.New().String()
	}
	return &Event[T]{
		Context:   context,
		CreatedAt: time.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
