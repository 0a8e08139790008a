package cache

import "sync/atomic"

// Snapshot is a lock-free, read-optimized container holding any immutable
// value that is swapped wholesale, never mutated in place. Readers on the hot
// path pay one atomic load.
type Snapshot[T any] struct{ v atomic.Value }

// Load returns the stored value and whether anything has been stored yet.
func (s *Snapshot[T]) Load() (T, bool) {
	v := s.v.Load()
	if v == nil {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Store atomically swaps in the new value.
func (s *Snapshot[T]) Store(v T) {
	s.v.Store(v)
}
