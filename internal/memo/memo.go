// Package memo provides a concurrency-safe memo table keyed by float64.
//
// The spectrum samplers evaluate the same frequencies over and over while a
// diagram is re-rendered; the table keeps the most recently used results.
package memo

import (
	"math"
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is the number of independently locked shards.
	// Must be a power of 2.
	ShardCount = 8

	// DefaultCapacity is the per-shard capacity used when none is given.
	DefaultCapacity = 128

	shardMask = ShardCount - 1
)

// Table is a sharded LRU memo table from float64 keys to values of type V.
//
// Keys are compared bit-for-bit: 0 and -0 are distinct and every NaN
// payload is its own key.
type Table[V any] struct {
	shards   [ShardCount]shard[V]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[V any] struct {
	mu      sync.Mutex
	entries map[uint64]*node[V]
	lru     list[V]
}

// New creates a table holding up to capacity entries per shard.
// If capacity <= 0, DefaultCapacity is used.
func New[V any](capacity int) *Table[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	t := &Table[V]{capacity: capacity}
	for i := range t.shards {
		t.shards[i].entries = make(map[uint64]*node[V])
	}
	return t
}

// mix is the splitmix64 finalizer; nearby floats share high bits and would
// otherwise pile into one shard.
func mix(k uint64) uint64 {
	k ^= k >> 30
	k *= 0xbf58476d1ce4e5b9
	k ^= k >> 27
	k *= 0x94d049bb133111eb
	k ^= k >> 31
	return k
}

func (t *Table[V]) shardFor(bits uint64) *shard[V] {
	return &t.shards[mix(bits)&shardMask]
}

// Get returns the value stored for key.
func (t *Table[V]) Get(key float64) (V, bool) {
	bits := math.Float64bits(key)
	s := t.shardFor(bits)

	s.mu.Lock()
	n, ok := s.entries[bits]
	if ok {
		s.lru.moveToFront(n)
	}
	s.mu.Unlock()

	if !ok {
		t.misses.Add(1)
		var zero V
		return zero, false
	}
	t.hits.Add(1)
	return n.value, true
}

// Do returns the value for key, computing and storing it with fn on a miss.
//
// fn runs with the shard locked, so concurrent callers asking for the same
// key compute it once. fn must not call back into the table.
func (t *Table[V]) Do(key float64, fn func(float64) V) V {
	bits := math.Float64bits(key)
	s := t.shardFor(bits)

	s.mu.Lock()
	defer s.mu.Unlock()

	if n, ok := s.entries[bits]; ok {
		s.lru.moveToFront(n)
		t.hits.Add(1)
		return n.value
	}
	t.misses.Add(1)

	v := fn(key)
	for s.lru.len >= t.capacity {
		old := s.lru.back()
		s.lru.remove(old)
		delete(s.entries, old.key)
		t.evictions.Add(1)
	}
	s.entries[bits] = s.lru.pushFront(bits, v)
	return v
}

// Len returns the number of stored entries.
func (t *Table[V]) Len() int {
	total := 0
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Clear drops every entry. Statistics are kept.
func (t *Table[V]) Clear() {
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.Lock()
		s.entries = make(map[uint64]*node[V])
		s.lru = list[V]{}
		s.mu.Unlock()
	}
}

// Stats is a snapshot of table counters.
type Stats struct {
	Len       int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}

// Stats returns the current counters.
func (t *Table[V]) Stats() Stats {
	hits, misses := t.hits.Load(), t.misses.Load()
	st := Stats{
		Len:       t.Len(),
		Hits:      hits,
		Misses:    misses,
		Evictions: t.evictions.Load(),
	}
	if total := hits + misses; total > 0 {
		st.HitRate = float64(hits) / float64(total)
	}
	return st
}
