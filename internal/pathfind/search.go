package pathfind

import (
	"log/slog"

	"github.com/udisondev/gridpath/internal/grid"
	"github.com/udisondev/gridpath/internal/pqueue"
)

// SearchResult describes one A* run.
type SearchResult struct {
	Outcome    Outcome
	Path       []*grid.Cell // start..goal inclusive; nil unless Succeeded
	Iterations int          // nodes expanded
}

// Searcher runs A* over a grid. It reuses its open set between searches,
// and it writes scratch state onto the grid's cells, so one Searcher per
// grid and one search at a time.
type Searcher struct {
	grid          *grid.Grid
	maxIterations int
	open          *pqueue.Queue[*grid.Cell]
	neighbors     []*grid.Cell
}

// NewSearcher creates a searcher bounded by maxIterations expansions.
func NewSearcher(g *grid.Grid, maxIterations int) *Searcher {
	return &Searcher{
		grid:          g,
		maxIterations: maxIterations,
		open:          pqueue.New(g.Len(), lowerFThenH),
		neighbors:     make([]*grid.Cell, 0, 8),
	}
}

// lowerFThenH orders the open set by F, breaking ties toward lower H.
func lowerFThenH(a, b *grid.Cell) bool {
	fa, fb := a.F(), b.F()
	if fa != fb {
		return fa < fb
	}
	return a.H() < b.H()
}

// Search finds the cheapest path from start to goal.
func (s *Searcher) Search(start, goal *grid.Cell) SearchResult {
	if !start.Walkable() || !goal.Walkable() {
		slog.Debug("path endpoints not walkable",
			"start", start,
			"goal", goal,
			"start_walkable", start.Walkable(),
			"goal_walkable", goal.Walkable())
		return SearchResult{Outcome: Unreachable}
	}

	s.grid.BeginSearch()
	s.open.Reset()

	start.SetCosts(0, s.grid.Heuristic(start, goal))
	start.SetOpen(true)
	_ = s.open.Insert(start) // empty queue always has room

	iterations := 0
	for s.open.Len() > 0 {
		if iterations >= s.maxIterations {
			slog.Warn("path search hit iteration limit",
				"start", start,
				"goal", goal,
				"iterations", iterations,
				"open", s.open.Len())
			return SearchResult{Outcome: IterationLimit, Iterations: iterations}
		}
		iterations++

		current, _ := s.open.ExtractMin()
		current.SetOpen(false)

		if current == goal {
			return SearchResult{
				Outcome:    Succeeded,
				Path:       retraceCells(goal),
				Iterations: iterations,
			}
		}
		current.SetClosed(true)

		s.neighbors = s.grid.Neighbors(current, s.neighbors[:0])
		for _, n := range s.neighbors {
			if !n.Walkable() || n.InClosedSet() {
				continue
			}

			tentative := current.G() + s.grid.MovementCost(current, n)
			if n.InOpenSet() && tentative >= n.G() {
				continue
			}

			n.SetCosts(tentative, s.grid.Heuristic(n, goal))
			n.SetParent(current)
			if n.InOpenSet() {
				s.open.UpdateKey(n)
				continue
			}
			n.SetOpen(true)
			// Each cell enters at most once and capacity is the cell count.
			_ = s.open.Insert(n)
		}
	}

	slog.Debug("no path between cells", "start", start, "goal", goal, "iterations", iterations)
	return SearchResult{Outcome: NoPath, Iterations: iterations}
}

// retraceCells follows parent links from goal and returns start..goal.
func retraceCells(goal *grid.Cell) []*grid.Cell {
	var path []*grid.Cell
	for c := goal; c != nil; c = c.Parent() {
		path = append(path, c)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
