package tick

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Func is called once per frame with the frame's timestamp.
type Func func(now time.Time)

// Manager drives registered tick functions on a fixed interval.
// Functions run sequentially on the manager's goroutine, in registration order.
type Manager struct {
	mu       sync.Mutex
	interval time.Duration
	names    []string
	funcs    map[string]Func
	stopCh   chan struct{}
	stopOnce sync.Once
	frames   atomic.Uint64
}

// NewManager creates a tick manager firing every interval.
func NewManager(interval time.Duration) *Manager {
	return &Manager{
		interval: interval,
		funcs:    make(map[string]Func),
		stopCh:   make(chan struct{}),
	}
}

// Register adds fn under name, replacing any previous registration.
func (m *Manager) Register(name string, fn Func) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.funcs[name]; !ok {
		m.names = append(m.names, name)
	}
	m.funcs[name] = fn

	slog.Debug("tick func registered", "name", name)
}

// Unregister removes the function registered under name.
func (m *Manager) Unregister(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.funcs[name]; !ok {
		return fmt.Errorf("tick func %q not registered", name)
	}
	delete(m.funcs, name)
	for i, n := range m.names {
		if n == name {
			m.names = append(m.names[:i], m.names[i+1:]...)
			break
		}
	}

	slog.Debug("tick func unregistered", "name", name)
	return nil
}

// Count returns the number of registered functions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.names)
}

// Frames returns how many frames have run.
func (m *Manager) Frames() uint64 {
	return m.frames.Load()
}

// Start runs the tick loop (blocks until context is canceled or Stop is called)
func (m *Manager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("tick manager started", "interval", m.interval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("tick manager stopping")
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("tick manager stopped", "frames", m.frames.Load())
			return nil

		case now := <-ticker.C:
			m.RunFrame(now)
		}
	}
}

// Stop stops the tick loop. Safe to call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// RunFrame runs every registered function once with now.
func (m *Manager) RunFrame(now time.Time) {
	m.mu.Lock()
	funcs := make([]Func, 0, len(m.names))
	for _, name := range m.names {
		funcs = append(funcs, m.funcs[name])
	}
	m.mu.Unlock()

	began := time.Now()
	for _, fn := range funcs {
		fn(now)
	}
	m.frames.Add(1)

	if elapsed := time.Since(began); elapsed > m.interval {
		slog.Warn("tick overran its frame budget", "elapsed", elapsed, "interval", m.interval)
	}
}
