package config

import (
	"fmt"
	"math"
	"time"
)

// Pathfinding holds grid resolution and search policy.
type Pathfinding struct {
	// Grid
	CellRadius float64 `yaml:"cell_radius"` // half a cell's edge, world units

	// Movement
	Diagonals    bool    `yaml:"diagonals"`
	DiagonalCost float64 `yaml:"diagonal_cost"` // multiplier for diagonal steps (default: sqrt 2)

	// Search
	MaxIterations int `yaml:"max_iterations"` // node expansions before giving up

	// Cache; zero TTL disables caching
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// Request queue
	MaxRequestsPerTick int `yaml:"max_requests_per_tick"`

	// Post-processing
	Smoothing           bool `yaml:"smoothing"`
	SmoothingIterations int  `yaml:"smoothing_iterations"`
}

// DefaultPathfinding returns the standard search policy.
func DefaultPathfinding() Pathfinding {
	return Pathfinding{
		CellRadius:          0.5,
		Diagonals:           false,
		DiagonalCost:        math.Sqrt2,
		MaxIterations:       1000,
		CacheTTL:            5 * time.Second,
		MaxRequestsPerTick:  5,
		Smoothing:           true,
		SmoothingIterations: 2,
	}
}

// Validate rejects values the engine cannot run with.
func (p Pathfinding) Validate() error {
	switch {
	case !(p.CellRadius > 0):
		return fmt.Errorf("%w: cell_radius must be positive, got %v", ErrInvalid, p.CellRadius)
	case p.DiagonalCost < 1:
		return fmt.Errorf("%w: diagonal_cost must be >= 1, got %v", ErrInvalid, p.DiagonalCost)
	case p.MaxIterations <= 0:
		return fmt.Errorf("%w: max_iterations must be positive, got %d", ErrInvalid, p.MaxIterations)
	case p.CacheTTL < 0:
		return fmt.Errorf("%w: cache_ttl must not be negative, got %s", ErrInvalid, p.CacheTTL)
	case p.MaxRequestsPerTick <= 0:
		return fmt.Errorf("%w: max_requests_per_tick must be positive, got %d", ErrInvalid, p.MaxRequestsPerTick)
	case p.SmoothingIterations < 0:
		return fmt.Errorf("%w: smoothing_iterations must not be negative, got %d", ErrInvalid, p.SmoothingIterations)
	}
	return nil
}
