package testutil

import (
	"sync/atomic"

	"github.com/udisondev/gridpath/internal/geo"
)

// CountingWorld wraps a World and counts the queries made against it.
type CountingWorld struct {
	geo.World

	Obstructions atomic.Int64
	Segments     atomic.Int64
}

// NewCountingWorld wraps w.
func NewCountingWorld(w geo.World) *CountingWorld {
	return &CountingWorld{World: w}
}

// Obstructed implements geo.World.
func (c *CountingWorld) Obstructed(center geo.Vec2, radius float64) bool {
	c.Obstructions.Add(1)
	return c.World.Obstructed(center, radius)
}

// SegmentObstructed implements geo.World.
func (c *CountingWorld) SegmentObstructed(a, b geo.Vec2) bool {
	c.Segments.Add(1)
	return c.World.SegmentObstructed(a, b)
}

// Reset zeroes both counters.
func (c *CountingWorld) Reset() {
	c.Obstructions.Store(0)
	c.Segments.Store(0)
}

// OpenField is a World with no obstacles anywhere.
type OpenField struct{}

// Obstructed implements geo.World.
func (OpenField) Obstructed(geo.Vec2, float64) bool { return false }

// SegmentObstructed implements geo.World.
func (OpenField) SegmentObstructed(geo.Vec2, geo.Vec2) bool { return false }
