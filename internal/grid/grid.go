package grid

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/gridpath/internal/geo"
)

// ErrInvalidConfig is returned by New when the grid cannot be built.
var ErrInvalidConfig = errors.New("invalid grid configuration")

// DefaultDiagonalCost is the diagonal step multiplier (sqrt 2).
const DefaultDiagonalCost = math.Sqrt2

// Options controls movement policy.
type Options struct {
	Diagonals    bool
	DiagonalCost float64 // 0 means DefaultDiagonalCost
}

// Grid maps continuous world space onto a walkability grid.
// Not safe for concurrent use: callers serialize access (pathfind.Engine does).
type Grid struct {
	world    geo.World
	costs    geo.CostField // nil if world has no terrain cost
	origin   geo.Vec2
	size     geo.Vec2
	radius   float64
	diameter float64
	width    int
	height   int
	cells    []Cell

	diagonals    bool
	diagonalCost float64

	generation  uint64
	searchEpoch uint64
}

// New sizes the grid from world size and cell diameter, then seeds every
// cell's walkability from world. origin is the minimum corner of the area.
func New(world geo.World, origin, size geo.Vec2, cellRadius float64, opts Options) (*Grid, error) {
	if world == nil {
		return nil, fmt.Errorf("%w: nil world", ErrInvalidConfig)
	}
	if cellRadius <= 0 || math.IsNaN(cellRadius) {
		return nil, fmt.Errorf("%w: cell radius %v", ErrInvalidConfig, cellRadius)
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("%w: world size %v", ErrInvalidConfig, size)
	}
	if opts.DiagonalCost == 0 {
		opts.DiagonalCost = DefaultDiagonalCost
	}
	if opts.DiagonalCost < 1 {
		return nil, fmt.Errorf("%w: diagonal cost %v < 1", ErrInvalidConfig, opts.DiagonalCost)
	}

	diameter := cellRadius * 2
	width := int(math.Round(size.X / diameter))
	height := int(math.Round(size.Y / diameter))
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: world %v smaller than one cell of diameter %v",
			ErrInvalidConfig, size, diameter)
	}

	g := &Grid{
		world:        world,
		origin:       origin,
		size:         size,
		radius:       cellRadius,
		diameter:     diameter,
		width:        width,
		height:       height,
		cells:        make([]Cell, width*height),
		diagonals:    opts.Diagonals,
		diagonalCost: opts.DiagonalCost,
		searchEpoch:  1,
	}
	if cf, ok := world.(geo.CostField); ok {
		g.costs = cf
	}

	for y := range height {
		for x := range width {
			c := &g.cells[y*width+x]
			c.grid = g
			c.coord = Coord{x, y}
			c.world = geo.Vec2{
				X: origin.X + float64(x)*diameter + cellRadius,
				Y: origin.Y + float64(y)*diameter + cellRadius,
			}
			c.cost = 1
			g.seed(c)
		}
	}

	slog.Debug("grid initialized",
		"width", width,
		"height", height,
		"cell_radius", cellRadius,
		"diagonals", opts.Diagonals)
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns width*height, the most cells a search can open.
func (g *Grid) Len() int { return len(g.cells) }

// CellRadius returns half the cell diameter in world units.
func (g *Grid) CellRadius() float64 { return g.radius }

// Diagonals reports whether diagonal movement is enabled.
func (g *Grid) Diagonals() bool { return g.diagonals }

// Generation returns the walkability generation; it grows on every rescan.
func (g *Grid) Generation() uint64 { return g.generation }

// World returns the query provider backing the grid.
func (g *Grid) World() geo.World { return g.world }

// Cell returns the cell at (x, y), or nil if out of range.
func (g *Grid) Cell(x, y int) *Cell {
	if !g.inBounds(x, y) {
		return nil
	}
	return &g.cells[y*g.width+x]
}

// CellAt returns the cell whose area contains p. Positions outside the grid
// clamp to the nearest edge cell.
func (g *Grid) CellAt(p geo.Vec2) *Cell {
	x := cellIndex((p.X-g.origin.X)/g.diameter, g.width)
	y := cellIndex((p.Y-g.origin.Y)/g.diameter, g.height)
	return &g.cells[y*g.width+x]
}

// Rescan re-queries walkability of every cell and bumps the generation.
// Returns how many cells changed walkability.
func (g *Grid) Rescan() int {
	changed := 0
	for i := range g.cells {
		if g.seed(&g.cells[i]) {
			changed++
		}
	}
	g.generation++

	slog.Debug("grid rescanned", "changed", changed, "generation", g.generation)
	return changed
}

// RescanRegion re-queries cells whose centers lie within radius of center
// and bumps the generation. Returns how many cells changed walkability.
func (g *Grid) RescanRegion(center geo.Vec2, radius float64) int {
	lo := g.CellAt(geo.Vec2{X: center.X - radius, Y: center.Y - radius}).coord
	hi := g.CellAt(geo.Vec2{X: center.X + radius, Y: center.Y + radius}).coord

	changed := 0
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			c := &g.cells[y*g.width+x]
			if c.world.Dist(center) > radius {
				continue
			}
			if g.seed(c) {
				changed++
			}
		}
	}
	g.generation++

	slog.Debug("grid region rescanned",
		"center", center,
		"radius", radius,
		"changed", changed,
		"generation", g.generation)
	return changed
}

// BeginSearch invalidates all scratch state in O(1).
func (g *Grid) BeginSearch() {
	g.searchEpoch++
}

// seed queries the world for c and reports whether walkability changed.
func (g *Grid) seed(c *Cell) bool {
	was := c.walkable
	c.walkable = !g.world.Obstructed(c.world, g.radius)
	if g.costs != nil {
		c.cost = math.Max(0, g.costs.CostAt(c.world))
	}
	return was != c.walkable
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// cellIndex floors f into [0, n-1]. Clamping happens in float space so
// values beyond the int range still land on the nearest edge; NaN maps to 0.
func cellIndex(f float64, n int) int {
	f = math.Floor(f)
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f > float64(n-1):
		return n - 1
	}
	return int(f)
}
