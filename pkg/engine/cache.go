package engine

import (
	"sync"
	"sync/atomic"

	"github.com/yourusername/nardengine/internal/positionid"
)

// DefaultCacheSize is the default number of cached move lists.
const DefaultCacheSize = 1 << 14

// CacheEntry stores the moves found for one query
type CacheEntry struct {
	Key   positionid.Key // Board key
	Query int32          // Color and dice, see makeQuery
	Moves []Move
	valid bool
}

// MoveCache is a thread-safe cache of FindMoves results.
// Uses a two-way associative cache with MurmurHash3-based indexing
type MoveCache struct {
	entries  []cacheNode
	size     uint32
	hashMask uint32

	// Statistics
	lookups atomic.Uint64
	hits    atomic.Uint64
	adds    atomic.Uint64

	mu sync.RWMutex
}

// cacheNode holds primary and secondary entries for two-way associative cache
type cacheNode struct {
	primary   CacheEntry
	secondary CacheEntry
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Size    uint32  `json:"size"`
	Lookups uint64  `json:"lookups"`
	Hits    uint64  `json:"hits"`
	Adds    uint64  `json:"adds"`
	HitRate float64 `json:"hit_rate"`
}

// NewMoveCache creates a cache holding about size entries.
// Size will be adjusted to the nearest power of 2 (minimum 2).
func NewMoveCache(size uint32) *MoveCache {
	if size > 1<<31 {
		size = 1 << 31
	}

	// Find smallest power of 2 >= size
	p := uint32(2)
	for p < size {
		p <<= 1
	}
	size = p

	return &MoveCache{
		entries:  make([]cacheNode, size/2),
		size:     size,
		hashMask: (size / 2) - 1,
	}
}

// makeQuery packs color and dice: bits 0-1 color, 2-4 first die, 5-7 second die.
// Callers validate color and dice first; out-of-range values would alias.
func makeQuery(color Color, dice [2]int) int32 {
	return int32(color&0x3) | int32(dice[0]&0x7)<<2 | int32(dice[1]&0x7)<<5
}

// Flush clears all entries from the cache
func (c *MoveCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.entries {
		c.entries[i] = cacheNode{}
	}
	c.lookups.Store(0)
	c.hits.Store(0)
	c.adds.Store(0)
}

// hash computes the slot for a key using MurmurHash3-style mixing
func (c *MoveCache) hash(key positionid.Key, query int32) uint32 {
	const c1 = 0xcc9e2d51
	const c2 = 0x1b873593

	h := uint32(0)

	mix := func(k uint32) {
		k *= c1
		k = (k << 15) | (k >> 17)
		k *= c2

		h ^= k
		h = (h << 13) | (h >> 19)
		h = h*5 + 0xe6546b64
	}
	for _, k := range key.Data {
		mix(k)
	}
	mix(uint32(query))

	// Finalization
	h ^= 24
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16

	return h & c.hashMask
}

func (e *CacheEntry) matches(key positionid.Key, query int32) bool {
	return e.valid && e.Query == query && positionid.EqualKeys(e.Key, key)
}

// Lookup returns a copy of the cached moves for the query, if present.
func (c *MoveCache) Lookup(board *Board, color Color, dice [2]int) ([]Move, bool) {
	key, query := board.Key(), makeQuery(color, dice)
	slot := c.hash(key, query)

	c.mu.RLock()
	defer c.mu.RUnlock()

	c.lookups.Add(1)

	node := &c.entries[slot]
	for _, e := range []*CacheEntry{&node.primary, &node.secondary} {
		if e.matches(key, query) {
			c.hits.Add(1)
			return copyMoves(e.Moves), true
		}
	}
	return nil, false
}

// Add stores moves for the query, pushing the slot's primary entry to secondary.
func (c *MoveCache) Add(board *Board, color Color, dice [2]int, moves []Move) {
	key, query := board.Key(), makeQuery(color, dice)
	slot := c.hash(key, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	node := &c.entries[slot]
	if node.primary.matches(key, query) {
		return
	}
	node.secondary = node.primary
	node.primary = CacheEntry{
		Key:   key,
		Query: query,
		Moves: copyMoves(moves),
		valid: true,
	}

	c.adds.Add(1)
}

// Stats returns cache statistics
func (c *MoveCache) Stats() CacheStats {
	s := CacheStats{
		Size:    c.size,
		Lookups: c.lookups.Load(),
		Hits:    c.hits.Load(),
		Adds:    c.adds.Load(),
	}
	if s.Lookups > 0 {
		s.HitRate = float64(s.Hits) / float64(s.Lookups) * 100
	}
	return s
}

func copyMoves(moves []Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[i] = append(Move(nil), m...)
	}
	return out
}
