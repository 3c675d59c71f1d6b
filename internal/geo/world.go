package geo

// World answers obstruction queries against live world geometry.
// Implementations are consulted when the walkability grid is seeded or rescanned
// and when a path is simplified by line of sight.
type World interface {
	// Obstructed reports whether any obstacle overlaps the circle at center.
	Obstructed(center Vec2, radius float64) bool

	// SegmentObstructed reports whether the straight segment a→b crosses an obstacle.
	SegmentObstructed(a, b Vec2) bool
}

// CostField is optionally implemented by a World that carries terrain cost.
// CostAt returns the traversal cost multiplier at p (>= 0, 1 for plain ground).
type CostField interface {
	CostAt(p Vec2) float64
}
