package dao

import (
	"context"
)

// Service is a minimal typed store contract. The scheduling engine keeps
// its process table behind this interface so that the in-memory arena
// can be swapped out without touching engine logic.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}
