package pathfind

import (
	"time"

	"github.com/udisondev/gridpath/internal/geo"
	"github.com/udisondev/gridpath/internal/grid"
)

// cacheKey is a (start cell, goal cell) pair; positions inside the same two
// cells share one entry.
type cacheKey struct {
	start, goal grid.Coord
}

// CachedPath is a finished waypoint list and when it was computed.
type CachedPath struct {
	Waypoints  []geo.Vec2
	ComputedAt time.Time
}

// Cache memoizes successful paths for ttl, keyed by cell pair.
// It remembers the grid generation its entries were computed against and
// drops everything when that generation moves on.
type Cache struct {
	ttl        time.Duration
	entries    map[cacheKey]CachedPath
	generation uint64
}

// NewCache creates a cache; ttl <= 0 disables it.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[cacheKey]CachedPath),
	}
}

// Lookup returns the stored waypoints if present and younger than ttl.
// The slice is shared with the cache and must not be modified.
func (c *Cache) Lookup(start, goal grid.Coord, now time.Time) ([]geo.Vec2, bool) {
	e, ok := c.entries[cacheKey{start, goal}]
	if !ok || now.Sub(e.ComputedAt) >= c.ttl {
		return nil, false
	}
	return e.Waypoints, true
}

// Store records waypoints for the pair, replacing any previous entry.
func (c *Cache) Store(start, goal grid.Coord, waypoints []geo.Vec2, now time.Time) {
	if c.ttl <= 0 {
		return
	}
	c.entries[cacheKey{start, goal}] = CachedPath{Waypoints: waypoints, ComputedAt: now}
}

// EvictExpired removes entries at least ttl old and returns how many went.
func (c *Cache) EvictExpired(now time.Time) int {
	evicted := 0
	for k, e := range c.entries {
		if now.Sub(e.ComputedAt) >= c.ttl {
			delete(c.entries, k)
			evicted++
		}
	}
	return evicted
}

// InvalidateAll drops every entry and returns how many there were.
func (c *Cache) InvalidateAll() int {
	n := len(c.entries)
	clear(c.entries)
	return n
}

// SyncGeneration clears the cache if generation differs from the one its
// entries were computed against. Reports whether it did.
func (c *Cache) SyncGeneration(generation uint64) bool {
	if generation == c.generation {
		return false
	}
	c.generation = generation
	c.InvalidateAll()
	return true
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int { return len(c.entries) }
