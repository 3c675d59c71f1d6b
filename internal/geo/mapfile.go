package geo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Route is a start/goal pair stored alongside a map.
type Route struct {
	Name string `yaml:"name"`
	From Vec2   `yaml:"from"`
	To   Vec2   `yaml:"to"`
}

// MapFile is the YAML layout of a tile map.
type MapFile struct {
	Origin   Vec2     `yaml:"origin"`
	TileSize float64  `yaml:"tile_size"`
	Rows     []string `yaml:"rows"`
	Routes   []Route  `yaml:"routes"`
}

// LoadMap reads a YAML tile map from path.
// If the map has S and G markers, a route named "markers" between them is appended.
func LoadMap(path string) (*TileWorld, MapFile, error) {
	var mf MapFile

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mf, fmt.Errorf("reading map %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, mf, fmt.Errorf("parsing map %s: %w", path, err)
	}
	if mf.TileSize == 0 {
		mf.TileSize = 1
	}

	w, markers, err := ParseRows(mf.Origin, mf.TileSize, mf.Rows)
	if err != nil {
		return nil, mf, fmt.Errorf("building map %s: %w", path, err)
	}
	if markers.HasStart && markers.HasGoal {
		mf.Routes = append(mf.Routes, Route{Name: "markers", From: markers.Start, To: markers.Goal})
	}
	return w, mf, nil
}
