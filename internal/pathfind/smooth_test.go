package pathfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gridpath/internal/geo"
	"github.com/udisondev/gridpath/internal/testutil"
)

// walled is a World where every segment is blocked.
type walled struct{ testutil.OpenField }

func (walled) SegmentObstructed(geo.Vec2, geo.Vec2) bool { return true }

func TestRetrace(t *testing.T) {
	w, _ := testutil.World(t, testutil.Fixtures.WallWithGap...)
	g := newGrid(t, w, 10, 10, false)
	res := NewSearcher(g, 1000).Search(g.Cell(0, 0), g.Cell(9, 0))
	require.Equal(t, Succeeded, res.Outcome)

	path := Retrace(g.Cell(9, 0))

	require.Len(t, path, len(res.Path))
	for i, c := range res.Path {
		assert.Equal(t, c.World(), path[i])
	}
	assert.Equal(t, testutil.Center(0, 0), path[0])
	assert.Equal(t, testutil.Center(9, 0), path[len(path)-1])
}

func TestSimplifyStraightCorridor(t *testing.T) {
	w, m := testutil.World(t, testutil.Fixtures.Corridor...)
	g := newGrid(t, w, 12, 3, false)
	res := NewSearcher(g, 1000).Search(g.CellAt(m.Start), g.CellAt(m.Goal))
	require.Equal(t, Succeeded, res.Outcome)

	raw := Retrace(g.CellAt(m.Goal))
	require.Len(t, raw, 12)

	got := Smooth(w, raw, 2)
	assert.Equal(t, []geo.Vec2{m.Start, m.Goal}, got)
	assert.Equal(t, got, Simplify(w, got), "already minimal")
}

func TestSimplifyAroundWall(t *testing.T) {
	w, _ := testutil.World(t, testutil.Fixtures.WallWithGap...)
	g := newGrid(t, w, 10, 10, false)
	res := NewSearcher(g, 1000).Search(g.Cell(0, 0), g.Cell(9, 0))
	require.Equal(t, Succeeded, res.Outcome)
	raw := Retrace(g.Cell(9, 0))

	got := Smooth(w, raw, 2)

	assert.Less(t, len(got), len(raw))
	assert.GreaterOrEqual(t, len(got), 3, "cannot go straight through the wall")
	assert.Equal(t, raw[0], got[0])
	assert.Equal(t, raw[len(raw)-1], got[len(got)-1])
	assertSubsequence(t, raw, got)
	for i := 1; i < len(got); i++ {
		assert.False(t, w.SegmentObstructed(got[i-1], got[i]), "segment %d crosses a wall", i)
	}
}

func TestSimplifyKeepsEverythingWithoutLineOfSight(t *testing.T) {
	path := []geo.Vec2{geo.V(0, 0), geo.V(1, 0), geo.V(2, 0), geo.V(3, 0)}

	got := Simplify(walled{}, path)

	assert.Equal(t, path, got)
	got[1] = geo.V(9, 9)
	assert.Equal(t, geo.V(1, 0), path[1], "result does not alias the input")
}

func TestSmoothShortPaths(t *testing.T) {
	for _, path := range [][]geo.Vec2{
		nil,
		{geo.V(1, 1)},
		{geo.V(1, 1), geo.V(5, 5)},
	} {
		assert.Equal(t, path, Smooth(testutil.OpenField{}, path, 3))
	}
}

func TestSmoothZeroIterations(t *testing.T) {
	path := []geo.Vec2{geo.V(0, 0), geo.V(1, 0), geo.V(2, 0)}

	assert.Equal(t, path, Smooth(testutil.OpenField{}, path, 0))
	assert.Equal(t, []geo.Vec2{geo.V(0, 0), geo.V(2, 0)}, Smooth(testutil.OpenField{}, path, 1))
}

func assertSubsequence(t *testing.T, full, sub []geo.Vec2) {
	t.Helper()

	i := 0
	for _, p := range sub {
		for i < len(full) && full[i] != p {
			i++
		}
		if !assert.Less(t, i, len(full), "%v is not in order in the original path", p) {
			return
		}
		i++
	}
}
