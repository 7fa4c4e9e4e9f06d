// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"math/rand"
	"strings"

	"github.com/SoftbearStudios/tilegen"
	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Basis selects how the base lattice of a fractal field is drawn.
type Basis uint8

const (
	// White draws every lattice cell independently from the random source.
	White Basis = iota
	// Perlin samples gradient noise, seeded from the random source.
	Perlin
	// Simplex samples OpenSimplex noise, seeded from the random source.
	Simplex
	basisCount
)

const (
	// Gradient noise is zero on integer lattice points, so sample between them.
	basisFrequency = 0.173
	basisOffset    = 0.5

	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

var basisNames = [...]string{
	White:   "white",
	Perlin:  "perlin",
	Simplex: "simplex",
}

// ParseBasis parses a basis name (case insensitive). The empty string is White.
func ParseBasis(name string) (Basis, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return White, nil
	}
	for b, n := range basisNames {
		if n == name {
			return Basis(b), nil
		}
	}
	return White, tilegen.InvalidArgument("unknown noise basis %q", name)
}

func (b Basis) String() string {
	if b < basisCount {
		return basisNames[b]
	}
	return "invalid"
}

// MarshalText implements encoding.TextMarshaler.
func (b Basis) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Basis) UnmarshalText(text []byte) (err error) {
	*b, err = ParseBasis(string(text))
	return
}

// lattice draws a raw (unnormalized) base lattice of the given shape.
// Only the rng is consulted for randomness, so equal seeds give equal lattices.
func (b Basis) lattice(rng *rand.Rand, shape Shape) ([]float64, error) {
	values := make([]float64, shape.Area())

	var sample func(x, y float64) float64

	switch b {
	case White:
		for i := range values {
			values[i] = rng.Float64()
		}
		return values, nil
	case Perlin:
		p := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, rng.Int63())
		sample = p.Noise2D
	case Simplex:
		sample = opensimplex.New(rng.Int63()).Eval2
	default:
		return nil, tilegen.InvalidArgument("unknown noise basis %d", b)
	}

	for j := 0; j < shape.Height; j++ {
		for i := 0; i < shape.Width; i++ {
			x := (float64(i) + basisOffset) * basisFrequency
			y := (float64(j) + basisOffset) * basisFrequency
			values[i+j*shape.Width] = sample(x, y)
		}
	}
	return values, nil
}
