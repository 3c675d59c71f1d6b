package pathfind

import (
	"github.com/udisondev/gridpath/internal/geo"
	"github.com/udisondev/gridpath/internal/grid"
)

// Retrace follows parent links from goal back to the search start and
// returns one world position per cell, start first.
func Retrace(goal *grid.Cell) []geo.Vec2 {
	cells := retraceCells(goal)
	path := make([]geo.Vec2, len(cells))
	for i, c := range cells {
		path[i] = c.World()
	}
	return path
}

// Smooth runs up to iterations Simplify passes, stopping early once a pass
// removes nothing. Paths of two points or fewer are returned as-is.
func Smooth(w geo.World, path []geo.Vec2, iterations int) []geo.Vec2 {
	for range iterations {
		if len(path) <= 2 {
			return path
		}
		next := Simplify(w, path)
		if len(next) == len(path) {
			return next
		}
		path = next
	}
	return path
}

// Simplify pulls the path taut: from each anchor it jumps to the farthest
// later waypoint in clear line of sight. The result keeps both endpoints and
// only ever drops waypoints.
func Simplify(w geo.World, path []geo.Vec2) []geo.Vec2 {
	if len(path) <= 2 {
		return append([]geo.Vec2(nil), path...)
	}

	last := len(path) - 1
	out := make([]geo.Vec2, 0, len(path))
	out = append(out, path[0])

	for anchor := 0; anchor < last; {
		next := anchor + 1
		for j := last; j > anchor+1; j-- {
			if !w.SegmentObstructed(path[anchor], path[j]) {
				next = j
				break
			}
		}
		out = append(out, path[next])
		anchor = next
	}
	return out
}
