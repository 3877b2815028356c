// Package config holds generation defaults loadable from an optional
// YAML file. Absent file means documented defaults; a present file only
// overrides the fields it sets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds tunable generation settings.
type Config struct {
	// MeshCells is the marching cubes resolution used when meshing.
	// Higher values mean more triangles and slower evaluation.
	MeshCells int `yaml:"mesh_cells"`

	// Facets is the curve facet count written into CSG source headers
	// ($fn). It does not affect mesh export.
	Facets int `yaml:"facets"`

	// DefaultFont is the font used when a plaque request names none.
	DefaultFont string `yaml:"default_font"`

	// FontDirs lists directories whose .ttf files are registered at
	// startup under their base filenames.
	FontDirs []string `yaml:"font_dirs"`
}

// Default returns the documented default configuration.
func Default() *Config {
	return &Config{
		MeshCells:   200,
		Facets:      100,
		DefaultFont: "Go Regular",
	}
}

// Load reads configuration from path. A missing file yields defaults;
// set fields override defaults, unset fields keep them.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MeshCells < 1 {
		return fmt.Errorf("mesh_cells must be at least 1, got %d", c.MeshCells)
	}
	if c.Facets < 1 {
		return fmt.Errorf("facets must be at least 1, got %d", c.Facets)
	}
	return nil
}
