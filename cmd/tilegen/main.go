// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command tilegen writes procedurally generated tiles as PNG images.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"

	"github.com/SoftbearStudios/tilegen/cloud"
	"github.com/SoftbearStudios/tilegen/config"
	"github.com/SoftbearStudios/tilegen/logger"
	"github.com/SoftbearStudios/tilegen/sink"
	"github.com/SoftbearStudios/tilegen/tile"
	"github.com/SoftbearStudios/tilegen/tile/grid"
)

type options struct {
	count   int
	grid    bool
	publish bool
}

func main() {
	var (
		configPath string
		cpuProfile string
		opts       options
	)

	cfg := config.DefaultConfig()

	flag.StringVar(&configPath, "config", "tilegen.yaml", "YAML config `file` (defaults if missing)")
	flag.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flag.String("type", cfg.Tile.Type, "tile type (palette name)")
	flag.Int("width", cfg.Tile.Width, "tile width in pixels")
	flag.Int("height", cfg.Tile.Height, "tile height in pixels")
	flag.Int64("seed", cfg.Noise.Seed, "random seed")
	flag.String("noise", cfg.Noise.Kind, "noise kind: uniform or fractal")
	flag.String("basis", cfg.Noise.Basis, "fractal basis: white, perlin or simplex")
	flag.Int("octaves", cfg.Noise.Octaves, "fractal octaves")
	flag.String("out", cfg.Output.Dir, "output directory")
	flag.Int("scale", cfg.Output.Scale, "nearest neighbor upscale factor")
	flag.IntVar(&opts.count, "count", 1, "number of tiles, numbered <type>_<i>.png when more than 1")
	flag.BoolVar(&opts.grid, "grid", false, fmt.Sprintf("write a sample grid of count tiles (default %d) instead", grid.DefaultCount))
	flag.BoolVar(&opts.publish, "publish", false, "publish tiles to the cloud (or the local catalog)")
	flag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := applyFlags(cfg); err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	if err := logger.Initialize(cfg.Logging.ApplyEnv()); err != nil {
		log.Fatal(err)
	}

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, opts); err != nil {
		logger.Error("tilegen failed", "error", err)
		// Deferred profile flush must still run
		stop()
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

// applyFlags copies explicitly set flags over cfg.
func applyFlags(cfg *config.Config) (err error) {
	flag.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		value := f.Value.String()
		switch f.Name {
		case "type":
			cfg.Tile.Type = value
		case "width":
			cfg.Tile.Width, err = strconv.Atoi(value)
		case "height":
			cfg.Tile.Height, err = strconv.Atoi(value)
		case "seed":
			cfg.Noise.Seed, err = strconv.ParseInt(value, 10, 64)
		case "noise":
			cfg.Noise.Kind = value
		case "basis":
			cfg.Noise.Basis = value
		case "octaves":
			cfg.Noise.Octaves, err = strconv.Atoi(value)
		case "out":
			cfg.Output.Dir = value
		case "scale":
			cfg.Output.Scale, err = strconv.Atoi(value)
		}
	})
	return
}

func run(ctx context.Context, cfg *config.Config, opts options) error {
	table, err := cfg.Palettes()
	if err != nil {
		return err
	}
	tileOpts, err := cfg.TileOptions(table)
	if err != nil {
		return err
	}

	out := sink.NewDirectory(cfg.Output.Dir)

	var publisher *cloud.Cloud
	if opts.publish {
		publisher = connect(cfg)
		defer publisher.Close()
	}

	count := opts.count
	if opts.grid && count == 1 {
		count = grid.DefaultCount
	}

	buffers, err := tile.GenerateBatch(ctx, tileOpts, count)
	if err != nil {
		return err
	}

	if opts.grid {
		labels := make([]string, len(buffers))
		for i := range labels {
			labels[i] = strconv.FormatInt(tileOpts.Seed+int64(i), 10)
		}
		img, err := grid.Compose(buffers, grid.Options{Scale: cfg.Output.Scale, Labels: labels})
		if err != nil {
			return err
		}
		filename := tileOpts.Palette.Name + "_grid.png"
		if err := sink.Save(out, filename, img, 1); err != nil {
			return err
		}
		logger.Info("wrote sample grid", "path", out.Path(filename), "tiles", len(buffers))
		return nil
	}

	for i, buffer := range buffers {
		name := tileOpts.Palette.Name
		if len(buffers) > 1 {
			name += "_" + strconv.Itoa(i)
		}

		png, err := sink.EncodePNG(buffer.Image(), cfg.Output.Scale)
		if err != nil {
			return err
		}
		filename := name + ".png"
		if err := out.UploadStaticFile(filename, 0, png); err != nil {
			return err
		}
		logger.Info("wrote tile", "path", out.Path(filename))

		if publisher != nil {
			seeded := tileOpts
			seeded.Seed += int64(i)
			record := cloud.NewRecord(seeded, fmt.Sprintf("%s_%d", seeded.Palette.Name, seeded.Seed))
			if err := publisher.Publish(record, png); err != nil {
				return fmt.Errorf("publish %s: %w", name, err)
			}
		}
	}

	if publisher != nil {
		logger.Info("published tiles", "count", len(buffers), "cloud", publisher.String())
	}
	return nil
}

// connect returns the configured cloud, or nil (offline) after logging why not.
func connect(cfg *config.Config) *cloud.Cloud {
	var (
		c   *cloud.Cloud
		err error
	)
	if cfg.Cloud.Enabled {
		c, err = cloud.New(cfg.Cloud)
	} else {
		c, err = cloud.NewLocal(cfg.Output.Dir, cfg.Catalog.SQLitePath)
	}
	if err != nil {
		// Cloud is not required to write tiles, just log an error
		logger.Error("cloud error", "error", err)
		return nil
	}
	return c
}
