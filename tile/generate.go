// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tile

import (
	"context"
	"math/rand"
	"runtime"
	"strings"

	"github.com/SoftbearStudios/tilegen"
	"github.com/SoftbearStudios/tilegen/noise"
	"github.com/SoftbearStudios/tilegen/palette"
	"golang.org/x/sync/errgroup"
)

// Kind selects the noise that drives a tile.
type Kind uint8

const (
	// KindUniform draws every pixel independently (white noise).
	KindUniform Kind = iota
	// KindFractal uses multi-octave noise, giving spatially correlated patches.
	KindFractal
)

// ParseKind parses "uniform" or "fractal". The empty string is KindUniform.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "uniform", "white":
		return KindUniform, nil
	case "fractal":
		return KindFractal, nil
	default:
		return KindUniform, tilegen.InvalidArgument("unknown noise kind %q", name)
	}
}

func (kind Kind) String() string {
	switch kind {
	case KindUniform:
		return "uniform"
	case KindFractal:
		return "fractal"
	default:
		return "invalid"
	}
}

// Options describes one tile.
type Options struct {
	Palette palette.Spec
	Kind    Kind
	// Noise configures KindFractal. Its Shape is the tile shape for both kinds;
	// Output is ignored since the synthesizer needs [0, 1].
	Noise noise.Params
	Seed  int64
}

// Shape is the tile shape.
func (opts Options) Shape() noise.Shape {
	return opts.Noise.Shape
}

// Field generates the noise field of the tile from rng.
func (opts Options) Field(rng *rand.Rand) (*noise.Field, error) {
	switch opts.Kind {
	case KindUniform:
		return noise.Uniform(rng, opts.Shape(), noise.Unit)
	case KindFractal:
		params := opts.Noise
		params.Output = noise.Unit
		return noise.Fractal(rng, params)
	default:
		return nil, tilegen.InvalidArgument("unknown noise kind %d", opts.Kind)
	}
}

// Generate makes the tile described by opts, seeded by opts.Seed.
// The field is returned alongside for previews and debugging.
func Generate(opts Options) (*Buffer, *noise.Field, error) {
	if err := opts.Palette.Validate(); err != nil {
		return nil, nil, err
	}

	field, err := opts.Field(rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		return nil, nil, err
	}

	buffer, err := Synthesize(field, opts.Palette)
	if err != nil {
		return nil, nil, err
	}
	return buffer, field, nil
}

// GenerateBatch makes count tiles concurrently. Tile i is seeded with opts.Seed + i,
// so the result does not depend on scheduling.
func GenerateBatch(ctx context.Context, opts Options, count int) ([]*Buffer, error) {
	if count < 1 {
		return nil, tilegen.InvalidArgument("batch count must be at least 1, got %d", count)
	}
	// Fail fast on bad options instead of once per tile
	if err := opts.Palette.Validate(); err != nil {
		return nil, err
	}

	buffers := make([]*Buffer, count)
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < count; i++ {
		i := i
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tileOpts := opts
			tileOpts.Seed = opts.Seed + int64(i)
			buffer, _, err := Generate(tileOpts)
			if err != nil {
				return err
			}
			buffers[i] = buffer
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return buffers, nil
}
