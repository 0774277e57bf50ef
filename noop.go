package cache

import (
	"context"
)

// NoOp is a ReadWriter stub.
type NoOp[K comparable, V any] struct{}

var _ ReadWriter[string, interface{}] = NoOp[string, interface{}]{}

// Read does not find anything.
func (NoOp[K, V]) Read(ctx context.Context, key K) (V, error) {
	var v V

	return v, ErrNotFound
}

// Write discards value.
func (NoOp[K, V]) Write(ctx context.Context, key K, v V) error {
	return nil
}
