package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is the number of shards. Must be a power of 2.
	ShardCount = 16

	// DefaultCapacity is the total capacity used when New gets capacity <= 0.
	DefaultCapacity = 64

	shardMask = ShardCount - 1
)

// Hasher computes the hash used to pick a key's shard.
type Hasher[K any] func(K) uint64

// StringHasher computes the FNV-1a hash of a string key.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// Cache is a thread-safe, sharded LRU cache.
type Cache[K comparable, V any] struct {
	shards        [ShardCount]shard[K, V]
	hasher        Hasher[K]
	shardCapacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*lruNode[K, V]
	lru     lruList[K, V]
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// New creates a cache holding roughly capacity entries in total.
// Each shard holds at least one entry, so the effective capacity is never
// below ShardCount. If capacity <= 0, DefaultCapacity is used.
func New[K comparable, V any](capacity int, hasher Hasher[K]) *Cache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Cache[K, V]{
		hasher:        hasher,
		shardCapacity: max(1, (capacity+ShardCount-1)/ShardCount),
	}
	for i := range c.shards {
		c.shards[i].entries = make(map[K]*lruNode[K, V])
	}
	return c
}

func (c *Cache[K, V]) shardFor(key K) *shard[K, V] {
	return &c.shards[c.hasher(key)&shardMask]
}

// Get returns the value cached under key and marks it recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	var value V
	node, ok := s.entries[key]
	if ok {
		s.lru.moveToFront(node)
		value = node.value
	}
	s.mu.Unlock()

	if !ok {
		c.misses.Add(1)
		return value, false
	}
	c.hits.Add(1)
	return value, true
}

// Set stores value under key, evicting the shard's least recently used
// entries when it is full. The value is stored as-is, not copied.
func (c *Cache[K, V]) Set(key K, value V) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if node, ok := s.entries[key]; ok {
		node.value = value
		s.lru.moveToFront(node)
		return
	}

	for s.lru.Len() >= c.shardCapacity {
		oldest := s.lru.removeOldest()
		if oldest == nil {
			break
		}
		delete(s.entries, oldest.key)
		c.evictions.Add(1)
	}

	node := &lruNode[K, V]{key: key, value: value}
	s.lru.pushFront(node)
	s.entries[key] = node
}

// Delete removes key. It reports whether the key was present.
func (c *Cache[K, V]) Delete(key K) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.entries[key]
	if !ok {
		return false
	}
	s.lru.remove(node)
	delete(s.entries, key)
	return true
}

// Clear removes all entries.
func (c *Cache[K, V]) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		s.entries = make(map[K]*lruNode[K, V])
		s.lru = lruList[K, V]{}
		s.mu.Unlock()
	}
}

// Len returns the number of entries across all shards.
func (c *Cache[K, V]) Len() int {
	total := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Capacity returns the effective total capacity.
func (c *Cache[K, V]) Capacity() int {
	return c.shardCapacity * ShardCount
}

// Stats returns current counters.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Capacity:  c.Capacity(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
