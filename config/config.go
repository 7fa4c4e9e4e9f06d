// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the tilegen YAML configuration shared by the commands.
package config

import (
	"fmt"
	"os"

	"github.com/SoftbearStudios/tilegen"
	"github.com/SoftbearStudios/tilegen/logger"
	"github.com/SoftbearStudios/tilegen/noise"
	"github.com/SoftbearStudios/tilegen/palette"
	"github.com/SoftbearStudios/tilegen/sink"
	"github.com/SoftbearStudios/tilegen/tile"
	"gopkg.in/yaml.v3"
)

// Config holds every tilegen setting.
type Config struct {
	Tile    TileConfig    `yaml:"tile"`
	Noise   NoiseConfig   `yaml:"noise"`
	Output  OutputConfig  `yaml:"output"`
	Catalog CatalogConfig `yaml:"catalog"`
	Cloud   CloudConfig   `yaml:"cloud"`
	Server  ServerConfig  `yaml:"server"`
	Logging logger.Config `yaml:"logging"`

	// PalettesFile is an optional YAML or JSON palette table merged over the presets.
	PalettesFile string `yaml:"palettes_file"`
}

// TileConfig selects what to generate.
type TileConfig struct {
	// Type names a palette, e.g. "grass".
	Type   string `yaml:"type"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// NoiseConfig configures the noise field.
type NoiseConfig struct {
	// Kind is "uniform" or "fractal".
	Kind string `yaml:"kind"`
	// Basis is "white", "perlin" or "simplex". Only used by fractal noise.
	Basis       string  `yaml:"basis"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
	Zoom        float64 `yaml:"zoom"`
	Seed        int64   `yaml:"seed"`
}

// OutputConfig controls where images are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
	// Scale is the nearest neighbor upscale factor of written images.
	Scale int `yaml:"scale"`
}

// CatalogConfig configures the local tile catalog.
type CatalogConfig struct {
	// SQLitePath is the catalog database file. Empty disables the catalog.
	SQLitePath string `yaml:"sqlite_path"`
}

// CloudConfig configures publishing to S3 and DynamoDB.
type CloudConfig struct {
	Enabled bool   `yaml:"enabled"`
	Region  string `yaml:"region"`
	Stage   string `yaml:"stage"`
	// Profile names the profile in ~/.aws/credentials, "tilegen" if empty.
	// Without that file the EC2 instance role is used and Profile is ignored.
	Profile string `yaml:"profile"`
}

// ServerConfig configures the tile server.
type ServerConfig struct {
	Port int `yaml:"port"`
	// MaxConnections limits concurrent connections. 0 means unlimited.
	MaxConnections int `yaml:"max_connections"`
}

// DefaultConfig returns a Config that generates 64x64 uniform grass tiles.
func DefaultConfig() *Config {
	return &Config{
		Tile: TileConfig{
			Type:   "grass",
			Width:  64,
			Height: 64,
		},
		Noise: NoiseConfig{
			Kind:        "uniform",
			Basis:       "white",
			Octaves:     noise.DefaultOctaves,
			Persistence: noise.DefaultPersistence,
			Lacunarity:  noise.DefaultLacunarity,
			Zoom:        1,
		},
		Output: OutputConfig{
			Dir:   "images",
			Scale: 1,
		},
		Cloud: CloudConfig{
			Region: "us-east-1",
			Stage:  "dev",
		},
		Server: ServerConfig{
			Port:           8192,
			MaxConnections: 512,
		},
		Logging: logger.DefaultConfig(),
	}
}

// LoadConfig loads configuration from a YAML file over the defaults.
// A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

// Validate rejects settings that could never produce a tile.
func (config *Config) Validate() error {
	if config.Tile.Width <= 0 || config.Tile.Height <= 0 {
		return tilegen.InvalidArgument("tile size %dx%d must be positive", config.Tile.Width, config.Tile.Height)
	}
	if config.Output.Scale < 1 || config.Output.Scale > sink.MaxScale {
		return tilegen.InvalidArgument("output scale must be in [1, %d], got %d", sink.MaxScale, config.Output.Scale)
	}
	if config.Server.MaxConnections < 0 {
		return tilegen.InvalidArgument("max connections must not be negative, got %d", config.Server.MaxConnections)
	}
	if _, err := tile.ParseKind(config.Noise.Kind); err != nil {
		return err
	}
	if _, err := noise.ParseBasis(config.Noise.Basis); err != nil {
		return err
	}
	return nil
}

// Palettes returns the built-in presets merged with PalettesFile, if any.
func (config *Config) Palettes() (palette.Table, error) {
	table := palette.Presets()
	if config.PalettesFile == "" {
		return table, nil
	}
	loaded, err := palette.LoadTable(config.PalettesFile)
	if err != nil {
		return nil, err
	}
	return table.Merge(loaded), nil
}

// TileOptions resolves the configured tile type in table and builds generation options.
func (config *Config) TileOptions(table palette.Table) (tile.Options, error) {
	spec, err := table.Lookup(config.Tile.Type)
	if err != nil {
		return tile.Options{}, err
	}

	kind, err := tile.ParseKind(config.Noise.Kind)
	if err != nil {
		return tile.Options{}, err
	}

	basis, err := noise.ParseBasis(config.Noise.Basis)
	if err != nil {
		return tile.Options{}, err
	}

	params := noise.DefaultParams(noise.Shape{Height: config.Tile.Height, Width: config.Tile.Width})
	params.Basis = basis
	if config.Noise.Octaves != 0 {
		params.Octaves = config.Noise.Octaves
	}
	if config.Noise.Persistence != 0 {
		params.Persistence = config.Noise.Persistence
	}
	if config.Noise.Lacunarity != 0 {
		params.Lacunarity = config.Noise.Lacunarity
	}
	params.Zoom = config.Noise.Zoom

	if kind == tile.KindFractal {
		if err := params.Validate(); err != nil {
			return tile.Options{}, err
		}
	}

	return tile.Options{
		Palette: spec,
		Kind:    kind,
		Noise:   params,
		Seed:    config.Noise.Seed,
	}, nil
}
