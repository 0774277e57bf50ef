package cache

import (
	"context"
	"fmt"
	"runtime"
)

var (
	_ ReadWriter[string, interface{}] = &Map[string, interface{}]{}
	_ Walker[string, interface{}]     = &Map[string, interface{}]{}
)

// Map is an in-memory cache with bounded-staleness expiration.
//
// All operations, including reads and snapshots, are serialized with a single mutex.
// Please use NewMap to create instance.
type Map[K comparable, V any] struct {
	*expiringMap[K, V]
}

type expiringMap[K comparable, V any] struct {
	data *store[K, V]

	*trait
}

// NewMap creates an instance of expiring map and starts background sweep.
//
// ErrInvalidConfig is returned for non-positive Expire or Bias.
func NewMap[K comparable, V any](cfg Config) (*Map[K, V], error) {
	t, err := newTrait(cfg)
	if err != nil {
		return nil, err
	}

	c := &expiringMap[K, V]{
		data:  newStore[K, V](),
		trait: t,
	}
	C := &Map[K, V]{
		expiringMap: c,
	}

	data, now, expire := c.data, c.now, c.config.Expire

	go t.sweeper(func() (int, int) {
		return data.sweep(now, expire)
	})

	runtime.SetFinalizer(C, func(m *Map[K, V]) {
		m.Close()
	})

	return C, nil
}

// Write sets value and restarts entry lifetime.
func (c *Map[K, V]) Write(ctx context.Context, k K, v V) error {
	if err := c.data.set(k, v, c.now); err != nil {
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
func (c *Map[K, V]) Set(k K, v V) {
	_ = c.Write(context.Background(), k, v) //nolint:errcheck // Only ErrClosed is possible.
}

// Update sets all pairs atomically and returns a copy of resulting cache contents.
//
// Values of more override values of pairs, all written entries share the same write time.
// MetricWrite is incremented once per distinct key.
func (c *Map[K, V]) Update(ctx context.Context, pairs map[K]V, more ...map[K]V) (map[K]V, error) {
	c.data.Lock()

	if c.data.closed {
		c.data.Unlock()

		return nil, ErrClosed
	}

	now := c.data.stamp(c.now())
	written := make(map[K]struct{}, len(pairs))

	for k, v := range pairs {
		c.data.setLocked(k, v, now)
		written[k] = struct{}{}
	}

	for _, m := range more {
		for k, v := range m {
			c.data.setLocked(k, v, now)
			written[k] = struct{}{}
		}
	}

	n := len(written)

	res := c.data.itemsLocked()
	c.data.Unlock()

	if c.log != nil {
		c.log.Debug(ctx, "updated cache", "name", c.config.Name, "written", n)
	}

	if c.stat != nil && n > 0 {
		c.stat.Add(ctx, MetricWrite, float64(n), "name", c.config.Name)
	}

	return res, nil
}

// Read gets value or ErrNotFound.
func (c *Map[K, V]) Read(ctx context.Context, k K) (V, error) {
	if SkipRead(ctx) {
		var v V

		return v, ErrNotFound
	}

	v, found := c.data.get(k)
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
func (c *Map[K, V]) Get(k K) (V, bool) {
	v, err := c.Read(context.Background(), k)

	return v, err == nil
}

// GetOrDefault gets value or returns def if entry is missing.
func (c *Map[K, V]) GetOrDefault(k K, def V) V {
	if v, ok := c.Get(k); ok {
		return v
	}

	return def
}

// Contains reports whether entry is present.
func (c *Map[K, V]) Contains(k K) bool {
	return c.data.contains(k)
}

// Remove deletes entry or fails with ErrNotFound.
func (c *Map[K, V]) Remove(k K) error {
	if !c.data.remove(k) {
		return fmt.Errorf("%w: %v", ErrNotFound, k)
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
func (c *Map[K, V]) RemoveAll() {
	c.data.removeAll()
}

// Len returns number of elements in cache.
func (c *Map[K, V]) Len() int {
	return c.data.len()
}

// Keys returns a snapshot of keys, oldest write first.
func (c *Map[K, V]) Keys() []K {
	return c.data.keys(nil)
}

// Values returns a snapshot of values, oldest write first.
func (c *Map[K, V]) Values() []V {
	entries := c.data.entries()
	res := make([]V, len(entries))

	for i, e := range entries {
		res[i] = e.val
	}

	return res
}

// Items returns a snapshot of cache contents.
func (c *Map[K, V]) Items() map[K]V {
	c.data.Lock()
	defer c.data.Unlock()

	return c.data.itemsLocked()
}

// Seq returns a snapshot of write-ordered index, oldest write first.
func (c *Map[K, V]) Seq() []IndexEntry[K] {
	entries := c.data.entries()
	res := make([]IndexEntry[K], len(entries))

	for i, e := range entries {
		res[i] = IndexEntry[K]{Key: e.key, WrittenAt: e.written}
	}

	return res
}

// Walk walks a snapshot of cached entries, oldest write first.
func (c *Map[K, V]) Walk(walkFn func(key K, value V) error) (int, error) {
	n := 0

	for _, e := range c.data.entries() {
		if err := walkFn(e.key, e.val); err != nil {
			return n, err
		}

		n++
	}

	return n, nil
}

// Close stops background sweep and deletes all entries.
//
// Closed cache rejects writes with ErrClosed.
func (c *Map[K, V]) Close() {
	if !c.close() {
		return
	}

	c.data.close()

	if c.log != nil {
		c.log.Debug(context.Background(), "cache closed", "name", c.config.Name)
	}
}
