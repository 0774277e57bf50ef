package cache

import (
	"context"
	"time"
)

// sweep removes entries written at least expire ago.
//
// Walk starts from the oldest write and stops at the first fresh entry,
// so the cost is proportional to the number of evicted entries.
func (s *store[K, V]) sweep(now func() time.Time, expire time.Duration) (evicted, left int) {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return 0, 0
	}

	t := now()

	for el := s.order.Front(); el != nil; el = s.order.Front() {
		e := el.Value.(*entry[K, V])

		if t.Sub(e.written) < expire {
			break
		}

		s.order.Remove(el)
		delete(s.items, e.key)

		evicted++
	}

	return evicted, len(s.items)
}

// sweeper runs sweep every Bias until closed.
//
// It must not reference the public cache instance, otherwise finalizer would never run.
func (t *trait) sweeper(sweep func() (evicted, left int)) {
	for {
		select {
		case <-time.After(t.config.Bias):
			t.sweepOnce(sweep)
		case <-t.closed:
			return
		}
	}
}

func (t *trait) sweepOnce(sweep func() (evicted, left int)) {
	ctx := context.Background()

	defer func() {
		if r := recover(); r != nil {
			if t.log != nil {
				t.log.Error(ctx, "cache sweep failed",
					"name", t.config.Name,
					"panic", r,
				)
			}

			if t.stat != nil {
				t.stat.Add(ctx, MetricSweepFailed, 1, "name", t.config.Name)
			}
		}
	}()

	evicted, left := sweep()

	if evicted > 0 && t.log != nil {
		t.log.Debug(ctx, "evicted expired cache items",
			"name", t.config.Name,
			"evicted", evicted,
			"left", left,
		)
	}

	if t.stat != nil {
		if evicted > 0 {
			t.stat.Add(ctx, MetricEvict, float64(evicted), "name", t.config.Name)
		}

		t.stat.Set(ctx, MetricItems, float64(left), "name", t.config.Name)
	}
}
