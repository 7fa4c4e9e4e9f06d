// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/SoftbearStudios/tilegen"
)

const (
	DefaultOctaves     = 1
	DefaultPersistence = 0.5
	DefaultLacunarity  = 2.0

	// Octaves stepping more than maxStep lattice cells per output cell only add aliasing,
	// and past it sample coordinates would overflow.
	maxStep = 1 << 20
)

// Params configures Fractal.
type Params struct {
	Shape Shape
	// Octaves is the number of layers summed, at least 1.
	Octaves int
	// Persistence is the amplitude decay per octave, in (0, 1].
	Persistence float64
	// Lacunarity is the frequency growth per octave, greater than 1.
	Lacunarity float64
	// Zoom is the wavelength of the first octave in lattice cells. 0 means 1.
	Zoom float64
	// Basis is the source of the base lattice.
	Basis Basis
	// Output is the range the result is mapped into. The zero value means Unit,
	// so the degenerate range [0, 0] cannot be requested; use Constant for that.
	Output Range
}

// DefaultParams returns single-octave parameters for shape.
func DefaultParams(shape Shape) Params {
	return Params{
		Shape:       shape,
		Octaves:     DefaultOctaves,
		Persistence: DefaultPersistence,
		Lacunarity:  DefaultLacunarity,
		Zoom:        1,
		Basis:       White,
	}
}

// Validate checks every parameter of p.
func (p Params) Validate() error {
	if err := p.Shape.Validate(); err != nil {
		return err
	}
	if p.Octaves < 1 {
		return tilegen.InvalidArgument("octaves must be at least 1, got %d", p.Octaves)
	}
	if !(p.Persistence > 0 && p.Persistence <= 1) {
		return tilegen.InvalidArgument("persistence must be in (0, 1], got %g", p.Persistence)
	}
	if !(p.Lacunarity > 1) || math.IsInf(p.Lacunarity, 1) {
		return tilegen.InvalidArgument("lacunarity must be greater than 1, got %g", p.Lacunarity)
	}
	if !(p.Zoom >= 0) || math.IsInf(p.Zoom, 1) {
		return tilegen.InvalidArgument("zoom must not be negative, got %g", p.Zoom)
	}
	if p.Basis >= basisCount {
		return tilegen.InvalidArgument("unknown noise basis %d", p.Basis)
	}
	return p.Output.Validate()
}

func (p Params) output() Range {
	if p.Output.isZero() {
		return Unit
	}
	return p.Output
}

func (p Params) zoom() float64 {
	if p.Zoom == 0 {
		return 1
	}
	return p.Zoom
}

// Fractal generates multi-octave noise.
//
// A base lattice is drawn from p.Basis. Each octave normalizes it to [0, 1], resamples it
// bilinearly at the accumulated frequency and adds it, weighted by the accumulated amplitude,
// to a running sum. The sum is normalized to [0, 1] and mapped into p.Output.
func Fractal(rng *rand.Rand, p Params) (*Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, tilegen.InvalidArgument("nil random source")
	}

	current, err := p.Basis.lattice(rng, p.Shape)
	if err != nil {
		return nil, err
	}
	if !finite(current) {
		return nil, fmt.Errorf("noise: %s lattice is not finite", p.Basis)
	}

	output := make([]float64, len(current))
	frequency := 1.0
	amplitude := 1.0
	zoom := p.zoom()

	for octave := 0; octave < p.Octaves; octave++ {
		step := frequency / zoom
		if octave > 0 && (step > maxStep || amplitude == 0) {
			// Remaining octaves cannot change the result
			break
		}
		step = math.Min(step, maxStep)

		// Idempotent after the first octave
		normalize(current)

		layer := resample(current, p.Shape, step)
		for i, v := range layer {
			output[i] += v * amplitude
		}

		frequency *= p.Lacunarity
		amplitude *= p.Persistence
	}

	if !finite(output) {
		return nil, fmt.Errorf("noise: accumulated octaves are not finite")
	}
	normalize(output)

	r := p.output()
	for i, v := range output {
		output[i] = mapUnit(v, r)
	}

	return &Field{shape: p.Shape, values: output}, nil
}
