package grid

// Step offsets in neighbor order: orthogonals N, E, S, W then diagonals NE, SE, SW, NW.
var (
	orthogonals = [4]Coord{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	diagonals   = [4]Coord{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}
)

// Neighbors appends c's in-bounds neighbors to buf and returns it.
// Orthogonal neighbors are always listed. With diagonals enabled, a diagonal
// neighbor is listed only if at least one of its two flanking orthogonal
// cells is walkable, so a path never squeezes between two solid cells.
// Walkability of the neighbor itself is left to the caller.
func (g *Grid) Neighbors(c *Cell, buf []*Cell) []*Cell {
	x, y := c.coord.X, c.coord.Y
	for _, d := range orthogonals {
		if n := g.Cell(x+d.X, y+d.Y); n != nil {
			buf = append(buf, n)
		}
	}
	if !g.diagonals {
		return buf
	}

	for _, d := range diagonals {
		n := g.Cell(x+d.X, y+d.Y)
		if n == nil {
			continue
		}
		if g.walkableAt(x+d.X, y) || g.walkableAt(x, y+d.Y) {
			buf = append(buf, n)
		}
	}
	return buf
}

// MovementCost is the cost of stepping from one cell onto an adjacent one:
// the destination's cost, scaled by the diagonal multiplier on diagonal steps.
func (g *Grid) MovementCost(from, to *Cell) float64 {
	if from.coord.X != to.coord.X && from.coord.Y != to.coord.Y {
		return to.cost * g.diagonalCost
	}
	return to.cost
}

// Heuristic is the Manhattan distance between two cells in cell units.
func (g *Grid) Heuristic(from, to *Cell) float64 {
	return float64(abs(from.coord.X-to.coord.X) + abs(from.coord.Y-to.coord.Y))
}

func (g *Grid) walkableAt(x, y int) bool {
	c := g.Cell(x, y)
	return c != nil && c.walkable
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
