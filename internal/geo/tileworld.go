package geo

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// Tile glyphs understood by ParseRows.
const (
	GlyphOpen  = '.'
	GlyphSolid = '#'
	GlyphMud   = '~'
	GlyphStart = 'S'
	GlyphGoal  = 'G'
)

// MudCost is the traversal cost of a '~' tile.
const MudCost = 3.0

// ErrBadMap is returned when a tile map cannot be parsed.
var ErrBadMap = errors.New("bad tile map")

// TileWorld is a World made of square tiles, each solid or open with a cost.
// Positions outside the map are solid.
// Thread-safe: tile mutations and queries may run on different goroutines.
type TileWorld struct {
	mu       sync.RWMutex
	origin   Vec2
	tileSize float64
	width    int
	height   int
	solid    []bool
	cost     []float64
}

// NewTileWorld creates an all-open world of width×height tiles.
func NewTileWorld(origin Vec2, tileSize float64, width, height int) (*TileWorld, error) {
	if tileSize <= 0 || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: tile size %.3f, %dx%d tiles", ErrBadMap, tileSize, width, height)
	}
	w := &TileWorld{
		origin:   origin,
		tileSize: tileSize,
		width:    width,
		height:   height,
		solid:    make([]bool, width*height),
		cost:     make([]float64, width*height),
	}
	for i := range w.cost {
		w.cost[i] = 1
	}
	return w, nil
}

// Markers holds the S and G positions found while parsing rows.
type Markers struct {
	Start, Goal       Vec2
	HasStart, HasGoal bool
}

// ParseRows builds a TileWorld from text rows; rows[y][x] is tile (x, y).
// '#' is solid, '~' is mud, '.', 'S' and 'G' are open ground.
func ParseRows(origin Vec2, tileSize float64, rows []string) (*TileWorld, Markers, error) {
	var m Markers
	if len(rows) == 0 {
		return nil, m, fmt.Errorf("%w: no rows", ErrBadMap)
	}
	width := len(rows[0])
	w, err := NewTileWorld(origin, tileSize, width, len(rows))
	if err != nil {
		return nil, m, err
	}

	for y, row := range rows {
		if len(row) != width {
			return nil, m, fmt.Errorf("%w: row %d has %d tiles, want %d", ErrBadMap, y, len(row), width)
		}
		for x, ch := range []byte(row) {
			idx := y*width + x
			switch ch {
			case GlyphOpen:
			case GlyphSolid:
				w.solid[idx] = true
			case GlyphMud:
				w.cost[idx] = MudCost
			case GlyphStart:
				m.Start, m.HasStart = w.TileCenter(x, y), true
			case GlyphGoal:
				m.Goal, m.HasGoal = w.TileCenter(x, y), true
			default:
				return nil, m, fmt.Errorf("%w: unknown glyph %q at (%d,%d)", ErrBadMap, ch, x, y)
			}
		}
	}
	return w, m, nil
}

// Size returns the world extent covered by tiles.
func (w *TileWorld) Size() Vec2 {
	return Vec2{float64(w.width) * w.tileSize, float64(w.height) * w.tileSize}
}

// Origin returns the minimum corner of the map.
func (w *TileWorld) Origin() Vec2 { return w.origin }

// TileCenter returns the world position of the center of tile (x, y).
func (w *TileWorld) TileCenter(x, y int) Vec2 {
	return Vec2{
		X: w.origin.X + (float64(x)+0.5)*w.tileSize,
		Y: w.origin.Y + (float64(y)+0.5)*w.tileSize,
	}
}

// TileAt returns the tile coordinates containing p (may be out of range).
func (w *TileWorld) TileAt(p Vec2) (int, int) {
	return int(math.Floor((p.X - w.origin.X) / w.tileSize)),
		int(math.Floor((p.Y - w.origin.Y) / w.tileSize))
}

// SetSolid changes a tile's solidity. Out-of-range tiles are ignored.
func (w *TileWorld) SetSolid(x, y int, solid bool) {
	if !w.inBounds(x, y) {
		return
	}
	w.mu.Lock()
	w.solid[y*w.width+x] = solid
	w.mu.Unlock()
}

// SetCost changes a tile's traversal cost. Out-of-range tiles are ignored.
func (w *TileWorld) SetCost(x, y int, cost float64) {
	if !w.inBounds(x, y) {
		return
	}
	w.mu.Lock()
	w.cost[y*w.width+x] = cost
	w.mu.Unlock()
}

// IsSolid reports whether tile (x, y) is solid.
func (w *TileWorld) IsSolid(x, y int) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.isSolid(x, y)
}

// Obstructed reports whether a solid tile overlaps the circle.
func (w *TileWorld) Obstructed(center Vec2, radius float64) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	minX, minY := w.TileAt(Vec2{center.X - radius, center.Y - radius})
	maxX, maxY := w.TileAt(Vec2{center.X + radius, center.Y + radius})
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !w.isSolid(x, y) {
				continue
			}
			if w.circleHitsTile(center, radius, x, y) {
				return true
			}
		}
	}
	return false
}

// SegmentObstructed traces the tiles between a and b.
// Diagonal steps are blocked when either flanking tile is solid.
func (w *TileWorld) SegmentObstructed(a, b Vec2) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	ax, ay := w.TileAt(a)
	bx, by := w.TileAt(b)

	it := NewLineIterator(ax, ay, bx, by)
	prevX, prevY := ax, ay
	for it.Next() {
		x, y := it.X(), it.Y()
		if w.isSolid(x, y) {
			return true
		}
		if x != prevX && y != prevY {
			if w.isSolid(prevX, y) || w.isSolid(x, prevY) {
				return true
			}
		}
		prevX, prevY = x, y
	}
	return false
}

// CostAt returns the cost of the tile containing p (1 outside the map).
func (w *TileWorld) CostAt(p Vec2) float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()

	x, y := w.TileAt(p)
	if !w.inBounds(x, y) {
		return 1
	}
	return w.cost[y*w.width+x]
}

func (w *TileWorld) inBounds(x, y int) bool {
	return x >= 0 && x < w.width && y >= 0 && y < w.height
}

func (w *TileWorld) isSolid(x, y int) bool {
	if !w.inBounds(x, y) {
		return true
	}
	return w.solid[y*w.width+x]
}

// circleHitsTile tests circle/AABB overlap; touching edges do not count.
func (w *TileWorld) circleHitsTile(c Vec2, r float64, x, y int) bool {
	minX := w.origin.X + float64(x)*w.tileSize
	minY := w.origin.Y + float64(y)*w.tileSize
	nx := math.Max(minX, math.Min(c.X, minX+w.tileSize))
	ny := math.Max(minY, math.Min(c.Y, minY+w.tileSize))
	dx, dy := c.X-nx, c.Y-ny
	return dx*dx+dy*dy < r*r
}
