// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"math/rand"

	"github.com/SoftbearStudios/tilegen"
)

// Uniform generates white noise: every cell is drawn independently and uniformly from r.
// If r.Min == r.Max every cell is exactly r.Min.
func Uniform(rng *rand.Rand, shape Shape, r Range) (*Field, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.Min == r.Max {
		return Constant(shape, r.Min)
	}
	if rng == nil {
		return nil, tilegen.InvalidArgument("nil random source")
	}

	values := make([]float64, shape.Area())
	for i := range values {
		values[i] = mapUnit(rng.Float64(), r)
	}
	return &Field{shape: shape, values: values}, nil
}
