package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/gridpath/internal/geo"
)

// World parses rows into a TileWorld of 1-unit tiles with its origin at (0,0).
// rows[y][x] is tile (x, y); see geo.ParseRows for glyphs.
func World(t testing.TB, rows ...string) (*geo.TileWorld, geo.Markers) {
	t.Helper()

	w, m, err := geo.ParseRows(geo.V(0, 0), 1, rows)
	require.NoError(t, err)
	return w, m
}

// OpenWorld returns an obstacle-free width×height world of 1-unit tiles.
func OpenWorld(t testing.TB, width, height int) *geo.TileWorld {
	t.Helper()

	row := strings.Repeat(".", width)
	rows := make([]string, height)
	for i := range rows {
		rows[i] = row
	}
	w, _ := World(t, rows...)
	return w
}

// Center returns the world position of the center of 1-unit tile (x, y).
func Center(x, y int) geo.Vec2 {
	return geo.V(float64(x)+0.5, float64(y)+0.5)
}
