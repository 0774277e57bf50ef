package cache

import (
	"context"
	"fmt"
	"runtime"

	"github.com/cespare/xxhash/v2"
)

var _ ReadWriter[string, interface{}] = &Sharded[interface{}]{}

const shards = 64

// Sharded is an in-memory cache with bounded-staleness expiration for string keys.
//
// Keys are spread over independently locked buckets, so it does not offer
// atomic batch updates or consistent snapshots across keys.
// Please use NewSharded to create instance.
type Sharded[V any] struct {
	*shardedMap[V]
}

type shardedMap[V any] struct {
	buckets [shards]*store[string, V]

	*trait
}

// NewSharded creates an instance of sharded expiring map and starts background sweep.
//
// ErrInvalidConfig is returned for non-positive Expire or Bias.
func NewSharded[V any](cfg Config) (*Sharded[V], error) {
	t, err := newTrait(cfg)
	if err != nil {
		return nil, err
	}

	c := &shardedMap[V]{
		trait: t,
	}
	C := &Sharded[V]{
		shardedMap: c,
	}

	for i := 0; i < shards; i++ {
		c.buckets[i] = newStore[string, V]()
	}

	go t.sweeper(c.sweep)

	runtime.SetFinalizer(C, func(m *Sharded[V]) {
		m.Close()
	})

	return C, nil
}

func (c *shardedMap[V]) bucket(k string) *store[string, V] {
	return c.buckets[xxhash.Sum64String(k)%shards]
}

func (c *shardedMap[V]) sweep() (evicted, left int) {
	for _, b := range c.buckets {
		e, l := b.sweep(c.now, c.config.Expire)
		evicted += e
		left += l
	}

	return evicted, left
}

// Write sets value and restarts entry lifetime.
func (c *Sharded[V]) Write(ctx context.Context, k string, v V) error {
	if err := c.bucket(k).set(k, v, c.now); err != nil {
		if c.log != nil {
			c.log.Debug(ctx, "writing to a closed cache", "name", c.config.Name, "key", k)
		}

		return err
	}

	if c.log != nil {
		c.log.Debug(ctx, "wrote to cache", "name", c.config.Name, "key", k)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricWrite, 1, "name", c.config.Name)
	}

	return nil
}

// Set sets value and restarts entry lifetime, it does nothing on a closed cache.
func (c *Sharded[V]) Set(k string, v V) {
	_ = c.Write(context.Background(), k, v) //nolint:errcheck // Only ErrClosed is possible.
}

// Read gets value or ErrNotFound.
func (c *Sharded[V]) Read(ctx context.Context, k string) (V, error) {
	if SkipRead(ctx) {
		var v V

		return v, ErrNotFound
	}

	v, found := c.bucket(k).get(k)
	if !found {
		if c.log != nil {
			c.log.Debug(ctx, "cache miss", "name", c.config.Name, "key", k)
		}

		if c.stat != nil {
			c.stat.Add(ctx, MetricMiss, 1, "name", c.config.Name)
		}

		return v, ErrNotFound
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricHit, 1, "name", c.config.Name)
	}

	return v, nil
}

// Get gets value and reports whether it was found.
func (c *Sharded[V]) Get(k string) (V, bool) {
	v, err := c.Read(context.Background(), k)

	return v, err == nil
}

// Contains reports whether entry is present.
func (c *Sharded[V]) Contains(k string) bool {
	return c.bucket(k).contains(k)
}

// Remove deletes entry or fails with ErrNotFound.
func (c *Sharded[V]) Remove(k string) error {
	if !c.bucket(k).remove(k) {
		return fmt.Errorf("%w: %s", ErrNotFound, k)
	}

	ctx := context.Background()

	if c.log != nil {
		c.log.Debug(ctx, "removed from cache", "name", c.config.Name, "key", k)
	}

	if c.stat != nil {
		c.stat.Add(ctx, MetricRemove, 1, "name", c.config.Name)
	}

	return nil
}

// RemoveAll deletes all entries.
func (c *Sharded[V]) RemoveAll() {
	for _, b := range c.buckets {
		b.removeAll()
	}
}

// Len returns number of elements in cache.
func (c *Sharded[V]) Len() int {
	cnt := 0
	for _, b := range c.buckets {
		cnt += b.len()
	}

	return cnt
}

// Keys returns keys of all buckets, each bucket is a separate snapshot.
func (c *Sharded[V]) Keys() []string {
	var res []string
	for _, b := range c.buckets {
		res = b.keys(res)
	}

	return res
}

// Close stops background sweep and deletes all entries.
func (c *Sharded[V]) Close() {
	if !c.close() {
		return
	}

	for _, b := range c.buckets {
		b.close()
	}

	if c.log != nil {
		c.log.Debug(context.Background(), "cache closed", "name", c.config.Name)
	}
}
