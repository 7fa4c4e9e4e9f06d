// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/SoftbearStudios/tilegen"
	"github.com/SoftbearStudios/tilegen/noise"
	"github.com/SoftbearStudios/tilegen/tile"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatal("default config invalid:", err)
	}
	if cfg.Tile.Type != "grass" || cfg.Tile.Width != 64 || cfg.Tile.Height != 64 {
		t.Errorf("expected 64x64 grass, got %+v", cfg.Tile)
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("expected INFO logging, got %s", cfg.Logging.Level)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/tilegen.yaml")
	if err != nil {
		t.Errorf("expected no error for missing file, got %v", err)
	}
	if cfg == nil || cfg.Tile.Type != "grass" {
		t.Fatalf("expected default config for missing file, got %+v", cfg)
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilegen.yaml")
	content := `
tile:
  type: water
  width: 16
noise:
  kind: fractal
  basis: simplex
  octaves: 4
  seed: 7
server:
  port: 9000
logging:
  level: DEBUG
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Tile.Type != "water" || cfg.Tile.Width != 16 {
		t.Errorf("expected 16 wide water, got %+v", cfg.Tile)
	}
	if cfg.Tile.Height != 64 {
		t.Errorf("expected default height 64 to survive, got %d", cfg.Tile.Height)
	}
	if cfg.Noise.Octaves != 4 || cfg.Noise.Seed != 7 {
		t.Errorf("expected 4 octaves seed 7, got %+v", cfg.Noise)
	}
	if cfg.Server.Port != 9000 || cfg.Server.MaxConnections != 512 {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Logging.Level != "DEBUG" || !cfg.Logging.ConsoleEnabled {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"size.yaml":  "tile:\n  width: 0\n",
		"kind.yaml":  "noise:\n  kind: pink\n",
		"scale.yaml": "output:\n  scale: 0\n",
		"huge.yaml":  "output:\n  scale: 100000\n",
		"yaml.yaml":  "tile: [",
	}

	for name, content := range tests {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestTileOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tile.Type = "stone"
	cfg.Tile.Width = 10
	cfg.Tile.Height = 5
	cfg.Noise.Kind = "fractal"
	cfg.Noise.Basis = "perlin"
	cfg.Noise.Octaves = 3

	table, err := cfg.Palettes()
	if err != nil {
		t.Fatal(err)
	}
	opts, err := cfg.TileOptions(table)
	if err != nil {
		t.Fatal(err)
	}

	if opts.Kind != tile.KindFractal {
		t.Errorf("expected fractal, got %s", opts.Kind)
	}
	if expected := (noise.Shape{Height: 5, Width: 10}); opts.Shape() != expected {
		t.Errorf("expected shape %s, got %s", expected, opts.Shape())
	}
	if opts.Noise.Basis != noise.Perlin || opts.Noise.Octaves != 3 {
		t.Errorf("unexpected params %+v", opts.Noise)
	}
	if opts.Palette.Name != "stone" {
		t.Errorf("expected stone palette, got %s", opts.Palette.Name)
	}

	cfg.Tile.Type = "lava"
	if _, err := cfg.TileOptions(table); !errors.Is(err, tilegen.ErrInvalidArgument) {
		t.Errorf("expected invalid argument for unknown type, got %v", err)
	}
}

func TestPalettesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palettes.yaml")
	content := `
lava:
  - {color: "#ff4000", weight: 1}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.PalettesFile = path
	table, err := cfg.Palettes()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := table["lava"]; !ok {
		t.Error("expected lava from file")
	}
	if _, ok := table["grass"]; !ok {
		t.Error("expected grass preset to survive merge")
	}
}
