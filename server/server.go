// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server serves generated tiles over HTTP and websockets.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/SoftbearStudios/tilegen"
	"github.com/SoftbearStudios/tilegen/catalog"
	"github.com/SoftbearStudios/tilegen/cloud"
	"github.com/SoftbearStudios/tilegen/config"
	"github.com/SoftbearStudios/tilegen/logger"
	"github.com/SoftbearStudios/tilegen/palette"
	"github.com/SoftbearStudios/tilegen/sink"
	"github.com/SoftbearStudios/tilegen/tile"
)

const (
	// MaxTileSize bounds each dimension of a requested tile.
	MaxTileSize = 1024
	// MaxOctaves bounds the octaves of a requested fractal tile.
	MaxOctaves = 16
)

type Options struct {
	// Config supplies the defaults of every request. Required.
	Config *config.Config
	// Palettes are the servable tile types. Nil means the config's palettes.
	Palettes palette.Table
	// Cloud receives tiles requested with publish. May be nil.
	Cloud *cloud.Cloud
	// LogFile, if set, gets a CSV row per rendered tile.
	LogFile string
}

// Server renders tiles on demand. Safe for concurrent use.
type Server struct {
	config   *config.Config
	palettes palette.Table
	cloud    *cloud.Cloud
	logFile  string

	// Served atomically by HTTP
	statusJSON atomic.Value
	rendered   int64
}

func New(options Options) (*Server, error) {
	if options.Config == nil {
		return nil, errors.New("server needs a config")
	}
	if err := options.Config.Validate(); err != nil {
		return nil, err
	}

	palettes := options.Palettes
	if palettes == nil {
		var err error
		if palettes, err = options.Config.Palettes(); err != nil {
			return nil, err
		}
	}
	// The default tile type must be servable
	if _, err := palettes.Lookup(options.Config.Tile.Type); err != nil {
		return nil, err
	}

	s := &Server{
		config:   options.Config,
		palettes: palettes,
		cloud:    options.Cloud,
		logFile:  options.LogFile,
	}
	s.updateStatus()
	return s, nil
}

// Status is served at the index.
type Status struct {
	Types    []string `json:"types"`
	Rendered int64    `json:"rendered"`
	Cloud    string   `json:"cloud"`
	Defaults Request  `json:"defaults"`
}

func (s *Server) status() Status {
	seed := s.config.Noise.Seed
	return Status{
		Types:    s.palettes.Names(),
		Rendered: atomic.LoadInt64(&s.rendered),
		Cloud:    s.cloud.String(),
		Defaults: Request{
			Type:    s.config.Tile.Type,
			Width:   s.config.Tile.Width,
			Height:  s.config.Tile.Height,
			Seed:    &seed,
			Noise:   s.config.Noise.Kind,
			Basis:   s.config.Noise.Basis,
			Octaves: s.config.Noise.Octaves,
			Scale:   s.config.Output.Scale,
		},
	}
}

func (s *Server) updateStatus() {
	statusJSON, err := json.Marshal(s.status())
	if err == nil {
		s.statusJSON.Store(statusJSON)
	} else {
		logger.Error("error marshaling status", "error", err)
	}
}

// resolve overlays request on the configured defaults.
func (s *Server) resolve(request Request) (tile.Options, int, error) {
	cfg := *s.config

	if request.Type != "" {
		cfg.Tile.Type = request.Type
	}
	if request.Width != 0 {
		cfg.Tile.Width = request.Width
	}
	if request.Height != 0 {
		cfg.Tile.Height = request.Height
	}
	if request.Seed != nil {
		cfg.Noise.Seed = *request.Seed
	}
	if request.Noise != "" {
		cfg.Noise.Kind = request.Noise
	}
	if request.Basis != "" {
		cfg.Noise.Basis = request.Basis
	}
	if request.Octaves != 0 {
		cfg.Noise.Octaves = request.Octaves
	}
	if request.Scale != 0 {
		cfg.Output.Scale = request.Scale
	}

	if cfg.Tile.Width > MaxTileSize || cfg.Tile.Height > MaxTileSize {
		return tile.Options{}, 0, tilegen.InvalidArgument("tile size %dx%d exceeds %d", cfg.Tile.Width, cfg.Tile.Height, MaxTileSize)
	}
	if cfg.Noise.Octaves > MaxOctaves {
		return tile.Options{}, 0, tilegen.InvalidArgument("octaves %d exceeds %d", cfg.Noise.Octaves, MaxOctaves)
	}
	if err := cfg.Validate(); err != nil {
		return tile.Options{}, 0, err
	}

	opts, err := cfg.TileOptions(s.palettes)
	if err != nil {
		return tile.Options{}, 0, err
	}
	return opts, cfg.Output.Scale, nil
}

// Render generates the requested tile as a PNG.
func (s *Server) Render(request Request) ([]byte, error) {
	opts, scale, err := s.resolve(request)
	if err != nil {
		return nil, err
	}

	buffer, _, err := tile.Generate(opts)
	if err != nil {
		return nil, err
	}

	png, err := sink.EncodePNG(buffer.Image(), scale)
	if err != nil {
		return nil, err
	}

	atomic.AddInt64(&s.rendered, 1)
	s.updateStatus()

	record := cloud.NewRecord(opts, fmt.Sprintf("%s_%d", opts.Palette.Name, opts.Seed))

	if s.logFile != "" {
		if err := AppendLog(s.logFile, []interface{}{
			time.Now().UnixNano() / int64(time.Millisecond/time.Nanosecond),
			record.Type,
			record.Seed,
			record.Width,
			record.Height,
			record.Noise,
			scale,
		}); err != nil {
			logger.Warning("could not append tile log", "error", err)
		}
	}

	if request.Publish {
		if err := s.cloud.Publish(record, png); err != nil {
			return nil, fmt.Errorf("publish %s: %w", record.Name, err)
		}
		logger.Info("published tile", "name", record.Name, "cloud", s.cloud.String())
	}

	return png, nil
}

// Records lists the published tiles of a tile type. Empty without a cloud.
func (s *Server) Records(tileType string) ([]catalog.Record, error) {
	if _, err := s.palettes.Lookup(tileType); err != nil {
		return nil, err
	}
	records, err := s.cloud.Records(tileType)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []catalog.Record{}
	}
	return records, nil
}

// Handler routes "/", "/tile.png", "/tiles" and "/ws".
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.ServeIndex)
	mux.HandleFunc("/tile.png", s.ServeTile)
	mux.HandleFunc("/tiles", s.ServeRecords)
	mux.HandleFunc("/ws", s.ServeSocket)
	return mux
}

func statusCode(err error) int {
	if errors.Is(err, tilegen.ErrInvalidArgument) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
