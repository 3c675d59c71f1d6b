package grid

import (
	"fmt"
	"math"

	"github.com/udisondev/gridpath/internal/geo"
)

// Coord identifies a cell by its integer grid position.
type Coord struct {
	X, Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("[%d,%d]", c.X, c.Y)
}

// Cell is one discrete grid position. Cells are owned by their Grid and
// compared by pointer; Coord is the stable identity across lookups.
//
// Scratch fields (G, H, parent, open/closed) belong to the search in progress.
// They are stamped with the grid's search epoch, so values written by an
// earlier search read back as reset.
type Cell struct {
	grid     *Grid
	coord    Coord
	world    geo.Vec2
	walkable bool
	cost     float64

	epoch  uint64
	g, h   float64
	parent *Cell
	open   bool
	closed bool
}

// Coord returns the cell's grid position.
func (c *Cell) Coord() Coord { return c.coord }

// World returns the world position of the cell center.
func (c *Cell) World() geo.Vec2 { return c.world }

// Walkable reports whether the last scan found the cell unobstructed.
func (c *Cell) Walkable() bool { return c.walkable }

// Cost returns the per-cell traversal cost multiplier.
func (c *Cell) Cost() float64 { return c.cost }

func (c *Cell) String() string { return c.coord.String() }

// G returns the cost from the search start (+Inf if not reached this search).
func (c *Cell) G() float64 {
	if c.stale() {
		return math.Inf(1)
	}
	return c.g
}

// H returns the heuristic estimate to the goal recorded this search.
func (c *Cell) H() float64 {
	if c.stale() {
		return 0
	}
	return c.h
}

// F returns G+H.
func (c *Cell) F() float64 { return c.G() + c.H() }

// Parent returns the back-link set by the current search.
func (c *Cell) Parent() *Cell {
	if c.stale() {
		return nil
	}
	return c.parent
}

// InOpenSet reports open-set membership for the current search.
func (c *Cell) InOpenSet() bool { return !c.stale() && c.open }

// InClosedSet reports closed-set membership for the current search.
func (c *Cell) InClosedSet() bool { return !c.stale() && c.closed }

// SetCosts records G and H for the current search.
func (c *Cell) SetCosts(g, h float64) {
	c.touch()
	c.g, c.h = g, h
}

// SetParent records the back-link for the current search.
func (c *Cell) SetParent(p *Cell) {
	c.touch()
	c.parent = p
}

// SetOpen sets open-set membership for the current search.
func (c *Cell) SetOpen(open bool) {
	c.touch()
	c.open = open
}

// SetClosed sets closed-set membership for the current search.
func (c *Cell) SetClosed(closed bool) {
	c.touch()
	c.closed = closed
}

func (c *Cell) stale() bool {
	return c.epoch != c.grid.searchEpoch
}

// touch lazily resets scratch state left by a previous search.
func (c *Cell) touch() {
	if !c.stale() {
		return
	}
	c.epoch = c.grid.searchEpoch
	c.g = math.Inf(1)
	c.h = 0
	c.parent = nil
	c.open = false
	c.closed = false
}
