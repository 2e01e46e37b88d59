// Package shardmap provides a concurrent map split into independently locked shards.
// Callbacks run under a shard lock and must not block or do I/O.
package shardmap

import (
	"hash/fnv"
	"sync"
)

// DefaultShards is the shard count used by New
const DefaultShards = 32

type shard[V any] struct {
	mu    sync.RWMutex
	items map[string]V
}

// Map is a string-keyed map safe for concurrent use
type Map[V any] struct {
	shards []*shard[V]
}

// New returns a map with DefaultShards shards
func New[V any]() *Map[V] {
	return NewWithShards[V](DefaultShards)
}

// NewWithShards returns a map with n shards; n below 1 is treated as 1
func NewWithShards[V any](n int) *Map[V] {
	if n < 1 {
		n = 1
	}
	m := &Map[V]{shards: make([]*shard[V], n)}
	for i := range m.shards {
		m.shards[i] = &shard[V]{items: make(map[string]V)}
	}
	return m
}

func (m *Map[V]) shardFor(key string) *shard[V] {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return m.shards[h.Sum32()%uint32(len(m.shards))]
}

// Get returns the value stored for key
func (m *Map[V]) Get(key string) (V, bool) {
	s := m.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// Set stores value for key, replacing any previous value
func (m *Map[V]) Set(key string, value V) {
	s := m.shardFor(key)
	s.mu.Lock()
	s.items[key] = value
	s.mu.Unlock()
}

// SetIfAbsent stores value only when key is not present and reports whether it did
func (m *Map[V]) SetIfAbsent(key string, value V) bool {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; ok {
		return false
	}
	s.items[key] = value
	return true
}

// Delete removes key and returns the removed value
func (m *Map[V]) Delete(key string) (V, bool) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	if ok {
		delete(s.items, key)
	}
	return v, ok
}

// DeleteIf removes key only while fn approves the current value
func (m *Map[V]) DeleteIf(key string, fn func(V) bool) bool {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	if !ok || !fn(v) {
		return false
	}
	delete(s.items, key)
	return true
}

// Compute replaces the value for key with the result of fn. fn receives the current
// value and whether it exists; returning keep=false leaves the map unchanged.
func (m *Map[V]) Compute(key string, fn func(current V, exists bool) (next V, keep bool)) (V, bool) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	current, exists := s.items[key]
	next, keep := fn(current, exists)
	if !keep {
		return current, false
	}
	s.items[key] = next
	return next, true
}

// Len returns the number of entries
func (m *Map[V]) Len() int {
	n := 0
	for _, s := range m.shards {
		s.mu.RLock()
		n += len(s.items)
		s.mu.RUnlock()
	}
	return n
}

// Snapshot returns a copy of every entry
func (m *Map[V]) Snapshot() map[string]V {
	out := make(map[string]V)
	for _, s := range m.shards {
		s.mu.RLock()
		for k, v := range s.items {
			out[k] = v
		}
		s.mu.RUnlock()
	}
	return out
}
