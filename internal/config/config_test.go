package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadServer(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultServer(), cfg)
}

func TestLoadServerOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathfinder.yaml")
	content := `log_level: debug
tick_interval: 20ms
metrics_address: ""
map_path: maps/arena.yaml
pathfinding:
  cell_radius: 0.25
  diagonals: true
  max_iterations: 5000
  cache_ttl: 2s
  max_requests_per_tick: 3
  smoothing: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadServer(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 20*time.Millisecond, cfg.TickInterval)
	assert.Empty(t, cfg.MetricsAddress)
	assert.Equal(t, "maps/arena.yaml", cfg.MapPath)

	pf := cfg.Pathfinding
	assert.Equal(t, 0.25, pf.CellRadius)
	assert.True(t, pf.Diagonals)
	assert.Equal(t, math.Sqrt2, pf.DiagonalCost, "unset keys keep defaults")
	assert.Equal(t, 5000, pf.MaxIterations)
	assert.Equal(t, 2*time.Second, pf.CacheTTL)
	assert.Equal(t, 3, pf.MaxRequestsPerTick)
	assert.False(t, pf.Smoothing)
	assert.Equal(t, 2, pf.SmoothingIterations)
}

func TestLoadServerRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pathfinding:\n  cell_radius: -1\n"), 0o644))

	_, err := LoadServer(path)
	assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
}

func TestLoadServerBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_interval: [oops"), 0o644))

	_, err := LoadServer(path)
	assert.Error(t, err)
}

func TestPathfindingValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Pathfinding)
	}{
		{"zero radius", func(p *Pathfinding) { p.CellRadius = 0 }},
		{"nan radius", func(p *Pathfinding) { p.CellRadius = math.NaN() }},
		{"cheap diagonal", func(p *Pathfinding) { p.DiagonalCost = 0.9 }},
		{"no iterations", func(p *Pathfinding) { p.MaxIterations = 0 }},
		{"negative ttl", func(p *Pathfinding) { p.CacheTTL = -time.Second }},
		{"no requests per tick", func(p *Pathfinding) { p.MaxRequestsPerTick = 0 }},
		{"negative smoothing", func(p *Pathfinding) { p.SmoothingIterations = -1 }},
	}

	require.NoError(t, DefaultPathfinding().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPathfinding()
			tt.mutate(&p)
			assert.True(t, errors.Is(p.Validate(), ErrInvalid))
		})
	}
}

func TestServerValidate(t *testing.T) {
	s := DefaultServer()
	s.TickInterval = 0
	assert.True(t, errors.Is(s.Validate(), ErrInvalid))

	s = DefaultServer()
	s.MapPath = ""
	assert.True(t, errors.Is(s.Validate(), ErrInvalid))
}
