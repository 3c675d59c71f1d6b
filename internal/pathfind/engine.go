package pathfind

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/udisondev/gridpath/internal/config"
	"github.com/udisondev/gridpath/internal/geo"
	"github.com/udisondev/gridpath/internal/grid"
)

// Engine is the pathfinding boundary: synchronous queries, the asynchronous
// request queue, grid maintenance and the path cache behind one lock.
//
// Internally everything runs single-threaded; the lock only serializes
// callers. Callbacks are invoked after the lock is released, so they may
// call back into the engine.
type Engine struct {
	mu       sync.Mutex
	cfg      config.Pathfinding
	world    geo.World
	grid     *grid.Grid
	searcher *Searcher
	cache    *Cache
	requests *RequestQueue
	clock    func() time.Time

	// lastTick is the scheduler's time from the most recent Tick. Once set
	// it is the engine's only time base.
	lastTick time.Time
	ticked   bool
	observed time.Time

	rescans []rescanJob
	stats   Stats
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Searches        uint64
	CacheHits       uint64
	CacheMisses     uint64
	Dispatched      uint64
	PendingRequests int
	CachedPaths     int
	Generation      uint64
}

// rescanJob is grid maintenance; full rescans ignore center and radius.
type rescanJob struct {
	full   bool
	center geo.Vec2
	radius float64
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock sets the time source used by FindPathImmediate and RequestPath
// until the first Tick. After that the time passed to Tick is authoritative.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// New builds the grid over the area [origin, origin+size) and returns a
// ready engine. Invalid configuration is fatal; no partial engine is returned.
func New(world geo.World, origin, size geo.Vec2, cfg config.Pathfinding, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	g, err := grid.New(world, origin, size, cfg.CellRadius, grid.Options{
		Diagonals:    cfg.Diagonals,
		DiagonalCost: cfg.DiagonalCost,
	})
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	e := &Engine{
		cfg:      cfg,
		world:    world,
		grid:     g,
		searcher: NewSearcher(g, cfg.MaxIterations),
		cache:    NewCache(cfg.CacheTTL),
		requests: NewRequestQueue(),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	slog.Info("pathfinding engine ready",
		"width", g.Width(),
		"height", g.Height(),
		"diagonals", cfg.Diagonals,
		"max_iterations", cfg.MaxIterations,
		"cache_ttl", cfg.CacheTTL)
	return e, nil
}

// Grid returns the engine's grid for inspection. Do not mutate it while the
// engine may be in use on another goroutine.
func (e *Engine) Grid() *grid.Grid { return e.grid }

// FindPathImmediate resolves a path synchronously. Waypoints run from the
// start cell's center to the goal cell's center. The returned slice may be
// shared with the cache and must not be modified; its capacity is clipped so
// appending copies.
func (e *Engine) FindPathImmediate(start, goal geo.Vec2) ([]geo.Vec2, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.resolve(start, goal, e.now())
}

// RequestPath queues an asynchronous query. onComplete runs exactly once on a
// later Tick unless the request is cancelled first.
func (e *Engine) RequestPath(start, goal geo.Vec2, onComplete Callback) RequestID {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.requests.Enqueue(start, goal, onComplete, e.now())
	requestsPending.Inc()
	return id
}

// CancelRequest voids a queued request; its callback will never run.
// Returns false if the request was already dispatched or is unknown.
func (e *Engine) CancelRequest(id RequestID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.requests.Cancel(id) {
		return false
	}
	requestsPending.Dec()
	return true
}

// Rescan re-queries every cell against the world and drops cached paths.
func (e *Engine) Rescan() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rescan(rescanJob{full: true})
}

// RescanRegion re-queries cells within radius of center and drops cached paths.
func (e *Engine) RescanRegion(center geo.Vec2, radius float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rescan(rescanJob{center: center, radius: radius})
}

// QueueRescan defers a full rescan to the start of the next Tick.
func (e *Engine) QueueRescan() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rescans = append(e.rescans, rescanJob{full: true})
}

// QueueRescanRegion defers a region rescan to the start of the next Tick.
func (e *Engine) QueueRescanRegion(center geo.Vec2, radius float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rescans = append(e.rescans, rescanJob{center: center, radius: radius})
}

// ClearCache empties the path cache.
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if n := e.cache.InvalidateAll(); n > 0 {
		slog.Debug("path cache cleared", "entries", n)
	}
	cacheInvalidations.Inc()
}

// Tick runs one frame: queued rescans, cache eviction, then up to
// maxPerTick queued requests in submission order. maxPerTick <= 0 uses the
// configured limit. Callbacks fire after maintenance and resolution finish.
func (e *Engine) Tick(now time.Time, maxPerTick int) {
	if maxPerTick <= 0 {
		maxPerTick = e.cfg.MaxRequestsPerTick
	}

	type completion struct {
		req       *PathRequest
		waypoints []geo.Vec2
		ok        bool
	}

	e.mu.Lock()
	e.advance(now)
	for _, job := range e.rescans {
		e.rescan(job)
	}
	e.rescans = e.rescans[:0]

	e.syncCache()
	if n := e.cache.EvictExpired(now); n > 0 {
		cacheEvictions.Add(float64(n))
	}

	batch := e.requests.Dequeue(maxPerTick)
	done := make([]completion, 0, len(batch))
	for _, req := range batch {
		wp, ok := e.resolve(req.Start, req.Goal, now)
		done = append(done, completion{req: req, waypoints: wp, ok: ok})
	}
	e.stats.Dispatched += uint64(len(done))
	e.mu.Unlock()

	requestsPending.Sub(float64(len(done)))
	for _, c := range done {
		result := "not_found"
		if c.ok {
			result = "found"
		}
		requestsDispatched.WithLabelValues(result).Inc()
		requestWait.Observe(max(now.Sub(c.req.SubmittedAt), 0).Seconds())

		if c.req.OnComplete != nil {
			c.req.OnComplete(c.waypoints, c.ok)
		}
	}
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.stats
	s.PendingRequests = e.requests.Len()
	s.CachedPaths = e.cache.Len()
	s.Generation = e.grid.Generation()
	return s
}

// now returns the engine's current time: the last Tick's time once the
// scheduler has run, the clock before that.
func (e *Engine) now() time.Time {
	if e.ticked {
		return e.lastTick
	}
	t := e.clock()
	if t.After(e.observed) {
		e.observed = t
	}
	return t
}

// advance moves the engine onto the scheduler's time. Time running backwards
// means cache timestamps came from another time base, so they are dropped.
func (e *Engine) advance(now time.Time) {
	if now.Before(e.observed) {
		if n := e.cache.InvalidateAll(); n > 0 {
			cacheInvalidations.Inc()
			slog.Debug("path cache reset, tick time behind cached entries",
				"entries", n,
				"tick", now,
				"latest", e.observed)
		}
	}
	e.lastTick = now
	e.ticked = true
	e.observed = now
}

// resolve is the synchronous pipeline: cache, search, retrace, smooth, store.
func (e *Engine) resolve(start, goal geo.Vec2, now time.Time) ([]geo.Vec2, bool) {
	e.syncCache()

	from := e.grid.CellAt(start)
	to := e.grid.CellAt(goal)

	if wp, ok := e.cache.Lookup(from.Coord(), to.Coord(), now); ok {
		e.stats.CacheHits++
		cacheLookups.WithLabelValues("hit").Inc()
		return wp, true
	}
	e.stats.CacheMisses++
	cacheLookups.WithLabelValues("miss").Inc()

	began := time.Now()
	res := e.searcher.Search(from, to)
	searchDuration.Observe(time.Since(began).Seconds())
	searchExpansions.Observe(float64(res.Iterations))
	searchesTotal.WithLabelValues(res.Outcome.String()).Inc()
	e.stats.Searches++

	if res.Outcome != Succeeded {
		return nil, false
	}

	wp := Retrace(to)
	if e.cfg.Smoothing {
		wp = Smooth(e.world, wp, e.cfg.SmoothingIterations)
	}
	wp = wp[:len(wp):len(wp)]
	e.cache.Store(from.Coord(), to.Coord(), wp, now)
	return wp, true
}

func (e *Engine) rescan(job rescanJob) {
	var changed int
	if job.full {
		changed = e.grid.Rescan()
		gridRescans.WithLabelValues("full").Inc()
	} else {
		changed = e.grid.RescanRegion(job.center, job.radius)
		gridRescans.WithLabelValues("region").Inc()
	}
	if changed > 0 {
		slog.Info("grid walkability changed", "cells", changed, "generation", e.grid.Generation())
	}
	e.syncCache()
}

// syncCache drops cached paths computed against an older grid generation.
func (e *Engine) syncCache() {
	if !e.cache.SyncGeneration(e.grid.Generation()) {
		return
	}
	cacheInvalidations.Inc()
	slog.Debug("path cache invalidated", "generation", e.grid.Generation())
}
