package cache

import (
	"context"
	"errors"
	"time"

	"github.com/swaggest/usecase/status"
)

// ErrNotFound indicates missing cache entry.
var ErrNotFound = status.Wrap(errors.New("missing cache item"), status.NotFound)

// Reader reads from cache.
type Reader[K comparable, V any] interface {
	// Read returns cached value or ErrNotFound.
	Read(ctx context.Context, key K) (V, error)
}

// Writer writes to cache.
type Writer[K comparable, V any] interface {
	// Write stores value in cache with a given key.
	Write(ctx context.Context, key K, value V) error
}

// ReadWriter reads from and writes to cache.
type ReadWriter[K comparable, V any] interface {
	Reader[K, V]
	Writer[K, V]
}

// Walker calls function for every entry in cache and fails on first error returned by that function.
//
// Count of processed entries is returned.
type Walker[K comparable, V any] interface {
	Walk(func(key K, value V) error) (int, error)
}

// IndexEntry is an element of write-ordered index.
type IndexEntry[K comparable] struct {
	Key       K
	WrittenAt time.Time
}
