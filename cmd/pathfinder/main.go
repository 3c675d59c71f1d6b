package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/gridpath/internal/config"
	"github.com/udisondev/gridpath/internal/geo"
	"github.com/udisondev/gridpath/internal/pathfind"
	"github.com/udisondev/gridpath/internal/tick"
)

const ConfigPath = "config/pathfinder.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("GRIDPATH_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("pathfinder starting", "config", cfgPath, "log_level", cfg.LogLevel)

	world, mapFile, err := geo.LoadMap(cfg.MapPath)
	if err != nil {
		return fmt.Errorf("loading map: %w", err)
	}
	slog.Info("map loaded", "path", cfg.MapPath, "size", world.Size(), "routes", len(mapFile.Routes))

	engine, err := pathfind.New(world, world.Origin(), world.Size(), cfg.Pathfinding)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	mgr := tick.NewManager(cfg.TickInterval)
	mgr.Register("pathfind", func(now time.Time) {
		engine.Tick(now, cfg.Pathfinding.MaxRequestsPerTick)
	})

	oneShot := os.Getenv("GRIDPATH_ONESHOT") != ""
	submitRoutes(engine, mapFile.Routes, func() {
		if oneShot {
			mgr.Stop()
		}
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := mgr.Start(gctx); err != nil {
			return fmt.Errorf("tick manager: %w", err)
		}
		// Stopped on purpose: take the metrics server down with us.
		if oneShot {
			return errStopped
		}
		return nil
	})

	if cfg.MetricsAddress != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           metricsMux(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			slog.Info("metrics endpoint listening", "address", cfg.MetricsAddress)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	stats := engine.Stats()
	slog.Info("pathfinder stopped",
		"searches", stats.Searches,
		"cache_hits", stats.CacheHits,
		"dispatched", stats.Dispatched,
		"pending", stats.PendingRequests)

	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, errStopped) {
		return nil
	}
	return err
}

var errStopped = errors.New("stopped")

// submitRoutes queues every route; allDone runs after the last callback.
func submitRoutes(engine *pathfind.Engine, routes []geo.Route, allDone func()) {
	if len(routes) == 0 {
		allDone()
		return
	}

	var remaining atomic.Int32
	remaining.Store(int32(len(routes)))
	for _, r := range routes {
		submitted := time.Now()
		engine.RequestPath(r.From, r.To, func(waypoints []geo.Vec2, ok bool) {
			if ok {
				slog.Info("route resolved",
					"route", r.Name,
					"waypoints", len(waypoints),
					"path", waypoints,
					"latency", time.Since(submitted))
			} else {
				slog.Warn("route has no path", "route", r.Name, "from", r.From, "to", r.To)
			}
			if remaining.Add(-1) == 0 {
				allDone()
			}
		})
	}
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
