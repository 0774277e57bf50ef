package cache

import (
	"container/list"
	"sync"
	"time"
)

// entry is a cache entry.
type entry[K comparable, V any] struct {
	key     K
	val     V
	written time.Time
}

// store keeps values together with their write-ordered index under a single mutex.
//
// Value and write time live in the same list element, so the value map and the index
// can not disagree. Front of the order list is the oldest write.
type store[K comparable, V any] struct {
	sync.Mutex
	items  map[K]*list.Element
	order  *list.List
	closed bool
}

func newStore[K comparable, V any]() *store[K, V] {
	return &store[K, V]{
		items: make(map[K]*list.Element),
		order: list.New(),
	}
}

func (s *store[K, V]) set(k K, v V, now func() time.Time) error {
	s.Lock()
	defer s.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.setLocked(k, v, s.stamp(now()))

	return nil
}

// stamp clamps write time to keep the order non-decreasing with a non-monotonic clock.
func (s *store[K, V]) stamp(now time.Time) time.Time {
	if last := s.order.Back(); last != nil {
		if w := last.Value.(*entry[K, V]).written; now.Before(w) {
			return w
		}
	}

	return now
}

func (s *store[K, V]) setLocked(k K, v V, now time.Time) {
	if el, ok := s.items[k]; ok {
		e := el.Value.(*entry[K, V])
		e.val = v
		e.written = now
		s.order.MoveToBack(el)

		return
	}

	s.items[k] = s.order.PushBack(&entry[K, V]{key: k, val: v, written: now})
}

func (s *store[K, V]) get(k K) (V, bool) {
	s.Lock()
	defer s.Unlock()

	if el, ok := s.items[k]; ok {
		return el.Value.(*entry[K, V]).val, true
	}

	var v V

	return v, false
}

func (s *store[K, V]) contains(k K) bool {
	s.Lock()
	_, ok := s.items[k]
	s.Unlock()

	return ok
}

func (s *store[K, V]) remove(k K) bool {
	s.Lock()
	defer s.Unlock()

	el, ok := s.items[k]
	if !ok {
		return false
	}

	s.order.Remove(el)
	delete(s.items, k)

	return true
}

func (s *store[K, V]) len() int {
	s.Lock()
	cnt := len(s.items)
	s.Unlock()

	return cnt
}

func (s *store[K, V]) keys(dst []K) []K {
	s.Lock()
	defer s.Unlock()

	for el := s.order.Front(); el != nil; el = el.Next() {
		dst = append(dst, el.Value.(*entry[K, V]).key)
	}

	return dst
}

// entries returns a copy of entries in write order.
func (s *store[K, V]) entries() []entry[K, V] {
	s.Lock()
	defer s.Unlock()

	res := make([]entry[K, V], 0, len(s.items))
	for el := s.order.Front(); el != nil; el = el.Next() {
		res = append(res, *el.Value.(*entry[K, V]))
	}

	return res
}

func (s *store[K, V]) itemsLocked() map[K]V {
	res := make(map[K]V, len(s.items))
	for k, el := range s.items {
		res[k] = el.Value.(*entry[K, V]).val
	}

	return res
}

func (s *store[K, V]) removeAll() {
	s.Lock()
	s.items = make(map[K]*list.Element)
	s.order.Init()
	s.Unlock()
}

func (s *store[K, V]) close() {
	s.Lock()
	s.closed = true
	s.items = make(map[K]*list.Element)
	s.order.Init()
	s.Unlock()
}
