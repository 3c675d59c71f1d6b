package pathfind

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// searchesTotal counts A* runs by outcome.
	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridpath_searches_total",
		Help: "Total A* searches by outcome",
	}, []string{"outcome"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridpath_search_duration_seconds",
		Help:    "A* search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10µs to ~160ms
	})

	searchExpansions = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridpath_search_expansions",
		Help:    "Nodes expanded per A* search",
		Buckets: []float64{1, 10, 50, 100, 250, 500, 1000, 5000, 10000},
	})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridpath_cache_lookups_total",
		Help: "Path cache lookups by result",
	}, []string{"result"}) // "hit" or "miss"

	cacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gridpath_cache_invalidations_total",
		Help: "Whole-cache invalidations caused by grid changes or explicit clears",
	})

	cacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gridpath_cache_evictions_total",
		Help: "Cache entries evicted after their TTL",
	})

	gridRescans = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridpath_grid_rescans_total",
		Help: "Grid walkability rescans by scope",
	}, []string{"scope"}) // "full" or "region"

	requestsPending = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gridpath_requests_pending",
		Help: "Asynchronous path requests waiting to be drained",
	})

	requestsDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gridpath_requests_dispatched_total",
		Help: "Asynchronous path requests resolved, by result",
	}, []string{"result"}) // "found" or "not_found"

	requestWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gridpath_request_wait_seconds",
		Help:    "Time from RequestPath to callback",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
	})
)
