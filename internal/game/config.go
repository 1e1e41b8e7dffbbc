package game

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds viewer configuration options, loaded from a YAML file.
type Config struct {
	// Seed for building generation. 0 means derive one from the clock.
	Seed int64 `yaml:"seed"`
	// Building dimensions in cells and number of floors.
	WidthCells int `yaml:"width_cells"`
	DepthCells int `yaml:"depth_cells"`
	Floors     int `yaml:"floors"`
	// RotationDeg is the building's world rotation in degrees. Values off
	// the 90-degree grid are allowed but degrade wall placement.
	RotationDeg float64 `yaml:"rotation_deg"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		WidthCells: 6,
		DepthCells: 5,
		Floors:     2,
	}
}

// LoadConfig reads the configuration from path, falling back to defaults
// when the file does not exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.WidthCells < 1 || cfg.DepthCells < 1 || cfg.Floors < 1 {
		return cfg, fmt.Errorf("%s: building dimensions must be positive", path)
	}
	return cfg, nil
}

// Rotation returns the configured rotation in radians.
func (c Config) Rotation() float64 {
	return c.RotationDeg * math.Pi / 180
}
