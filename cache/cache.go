// Package cache implements the content-addressed conversion/optimization
// cache of spec.md §4.11 (C12): keyed by a structural fingerprint of the
// input automaton, evicting by size-bounded LRU, and the one piece of
// shared mutable state the whole engine has (spec.md §5's "Shared
// state... Only the cache, serialized by a single lock around get/put").
package cache

import (
	"sync"

	"github.com/tidwall/btree"
)

// Key is the fixed-width content address spec.md requires: a canonical
// state renumbering plus sorted transition list, hashed down to a fixed
// width by Fingerprint. Two automata that hash to the same Key are
// treated as the same cache entry — that collision is the point of
// content addressing, not a bug.
type Key [32]byte

// Stats tracks cache activity for performance analysis, mirroring
// meta.Engine.Stats()/ResetStats().
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

type entry[V any] struct {
	key     Key
	value   V
	recency uint64
}

func lessRecency[V any](a, b entry[V]) bool {
	if a.recency != b.recency {
		return a.recency < b.recency
	}
	return a.key.less(b.key)
}

func (a Key) less(b Key) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Cache is a size-bounded LRU keyed by content-addressed Fingerprint. The
// zero value is not usable; construct with New. Safe for concurrent use:
// every exported method takes the single lock spec.md §5 calls for,
// holding it only for its own body — a Get miss followed by the caller's
// own (potentially expensive, unlocked) computation and a later Put is
// exactly the "cache misses release the lock during the computation;
// concurrent duplicate computations are permitted (last-writer-wins)"
// protocol, achieved for free by never holding the lock across two calls.
type Cache[V any] struct {
	mu        sync.Mutex
	capacity  int
	byKey     map[Key]entry[V]
	byRecency *btree.BTreeG[entry[V]]
	clock     uint64
	stats     Stats
}

// New returns an empty Cache that evicts its least-recently-used entry
// once more than capacity entries are stored. capacity <= 0 is treated
// as 1 (a cache of zero capacity is never useful and silently rounding
// it up avoids a Config-style validation error for what is, in practice,
// a tuning knob rather than a correctness precondition).
func New[V any](capacity int) *Cache[V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Cache[V]{
		capacity:  capacity,
		byKey:     make(map[Key]entry[V]),
		byRecency: btree.NewBTreeG[entry[V]](lessRecency[V]),
	}
}

// Get returns the cached value for key, bumping its recency on a hit.
func (c *Cache[V]) Get(key Key) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.byKey[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	c.byRecency.Delete(e)
	c.clock++
	e.recency = c.clock
	c.byKey[key] = e
	c.byRecency.Set(e)
	return e.value, true
}

// Put stores value under key, evicting the least-recently-used entry if
// the cache is at capacity and key is not already present. Re-storing an
// existing key refreshes its value and recency without counting against
// capacity (it is not a new entry).
func (c *Cache[V]) Put(key Key, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.byKey[key]; ok {
		c.byRecency.Delete(old)
	} else if len(c.byKey) >= c.capacity {
		c.evictOldestLocked()
	}

	c.clock++
	e := entry[V]{key: key, value: value, recency: c.clock}
	c.byKey[key] = e
	c.byRecency.Set(e)
}

func (c *Cache[V]) evictOldestLocked() {
	oldest, ok := c.byRecency.Min()
	if !ok {
		return
	}
	c.byRecency.Delete(oldest)
	delete(c.byKey, oldest.key)
	c.stats.Evictions++
}

// Len returns the number of entries currently stored.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byKey)
}

// Stats returns a snapshot of the cache's hit/miss/eviction counters.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// ResetStats zeroes the hit/miss/eviction counters without touching
// stored entries.
func (c *Cache[V]) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = Stats{}
}
