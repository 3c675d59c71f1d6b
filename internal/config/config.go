package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Server holds all configuration for the pathfinder process.
type Server struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Scheduler
	TickInterval time.Duration `yaml:"tick_interval"` // one simulation frame (default: 50ms)

	// Metrics endpoint; empty disables it.
	MetricsAddress string `yaml:"metrics_address"`

	// Tile map the grid is built over.
	MapPath string `yaml:"map_path"`

	Pathfinding Pathfinding `yaml:"pathfinding"`
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		LogLevel:       "info",
		TickInterval:   50 * time.Millisecond,
		MetricsAddress: ":9090",
		MapPath:        "maps/demo.yaml",
		Pathfinding:    DefaultPathfinding(),
	}
}

// Validate checks the whole server config.
func (s Server) Validate() error {
	if s.TickInterval <= 0 {
		return fmt.Errorf("%w: tick_interval must be positive, got %s", ErrInvalid, s.TickInterval)
	}
	if s.MapPath == "" {
		return fmt.Errorf("%w: map_path is empty", ErrInvalid)
	}
	return s.Pathfinding.Validate()
}

// LoadServer loads server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}
