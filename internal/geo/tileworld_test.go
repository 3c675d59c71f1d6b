package geo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRows(t *testing.T) {
	w, m, err := ParseRows(V(10, 20), 2, []string{
		"S.#",
		".~G",
	})
	require.NoError(t, err)

	assert.Equal(t, V(6, 4), w.Size())
	assert.True(t, w.IsSolid(2, 0))
	assert.False(t, w.IsSolid(0, 0))
	assert.Equal(t, MudCost, w.CostAt(w.TileCenter(1, 1)))
	assert.Equal(t, 1.0, w.CostAt(w.TileCenter(0, 1)))

	require.True(t, m.HasStart)
	require.True(t, m.HasGoal)
	assert.Equal(t, V(11, 21), m.Start)
	assert.Equal(t, V(15, 23), m.Goal)
}

func TestParseRowsErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"empty", nil},
		{"ragged", []string{"...", ".."}},
		{"unknown glyph", []string{"..x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseRows(V(0, 0), 1, tt.rows)
			assert.True(t, errors.Is(err, ErrBadMap))
		})
	}
}

func TestTileWorldObstructed(t *testing.T) {
	w, _, err := ParseRows(V(0, 0), 1, []string{
		"...",
		".#.",
		"...",
	})
	require.NoError(t, err)

	assert.False(t, w.Obstructed(w.TileCenter(0, 0), 0.5), "tangent circle does not touch the wall")
	assert.True(t, w.Obstructed(w.TileCenter(1, 1), 0.1))
	assert.True(t, w.Obstructed(V(0.9, 1.5), 0.2), "circle overlaps wall edge")
	assert.True(t, w.Obstructed(V(-1, -1), 0.5), "outside the map is solid")
}

func TestTileWorldSegmentObstructed(t *testing.T) {
	w, _, err := ParseRows(V(0, 0), 1, []string{
		".....",
		"..#..",
		".....",
	})
	require.NoError(t, err)

	assert.False(t, w.SegmentObstructed(w.TileCenter(0, 0), w.TileCenter(4, 0)))
	assert.True(t, w.SegmentObstructed(w.TileCenter(0, 1), w.TileCenter(4, 1)))
	assert.True(t, w.SegmentObstructed(w.TileCenter(1, 0), w.TileCenter(3, 2)), "diagonal through wall")
	assert.True(t, w.SegmentObstructed(w.TileCenter(1, 0), w.TileCenter(2, 1)), "target tile is solid")

	w.SetSolid(2, 1, false)
	assert.False(t, w.SegmentObstructed(w.TileCenter(0, 1), w.TileCenter(4, 1)))
}

func TestTileWorldCornerCut(t *testing.T) {
	w, _, err := ParseRows(V(0, 0), 1, []string{
		".#",
		"..",
	})
	require.NoError(t, err)

	assert.True(t, w.SegmentObstructed(w.TileCenter(0, 0), w.TileCenter(1, 1)),
		"diagonal step past a solid corner is blocked")
}

func TestLoadMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	content := `origin: {x: 0, y: 0}
tile_size: 1
rows:
  - "S..#"
  - "...G"
routes:
  - name: across
    from: {x: 0.5, y: 1.5}
    to: {x: 2.5, y: 1.5}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	w, mf, err := LoadMap(path)
	require.NoError(t, err)
	assert.True(t, w.IsSolid(3, 0))
	require.Len(t, mf.Routes, 2)
	assert.Equal(t, "across", mf.Routes[0].Name)
	assert.Equal(t, "markers", mf.Routes[1].Name)
	assert.Equal(t, V(0.5, 0.5), mf.Routes[1].From)
	assert.Equal(t, V(3.5, 1.5), mf.Routes[1].To)
}

func TestLoadMapMissing(t *testing.T) {
	_, _, err := LoadMap(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
