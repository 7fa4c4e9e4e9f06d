// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package palette

import (
	"math"

	"github.com/SoftbearStudios/tilegen"
)

// Tolerance is how far the sum of a palette's weights may stray from 1.
const Tolerance = 1e-6

// Entry is a color and the probability it is picked.
type Entry struct {
	Color  Color   `yaml:"color" json:"color"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// Spec is an ordered list of entries partitioning [0, 1].
// Order matters: entry i owns [sum(weights[:i]), sum(weights[:i+1])).
type Spec struct {
	Name    string  `yaml:"name,omitempty" json:"name,omitempty"`
	Entries []Entry `yaml:"entries" json:"entries"`
}

// New pairs colors with weights and validates the result.
func New(name string, colors []Color, weights []float64) (Spec, error) {
	if len(colors) != len(weights) {
		return Spec{}, tilegen.InvalidArgument("palette %q has %d colors but %d weights", name, len(colors), len(weights))
	}

	spec := Spec{Name: name, Entries: make([]Entry, len(colors))}
	for i := range colors {
		spec.Entries[i] = Entry{Color: colors[i], Weight: weights[i]}
	}

	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

// Single is a palette of one color.
func Single(name string, c Color) Spec {
	return Spec{Name: name, Entries: []Entry{{Color: c, Weight: 1}}}
}

// Validate checks that there is at least one entry, every weight is in [0, 1]
// and the weights sum to 1 within Tolerance.
func (spec Spec) Validate() error {
	if len(spec.Entries) == 0 {
		return tilegen.InvalidArgument("palette %q is empty", spec.Name)
	}

	sum := 0.0
	for i, entry := range spec.Entries {
		if !(entry.Weight >= 0 && entry.Weight <= 1) {
			return tilegen.InvalidArgument("palette %q weight %d is %g, must be in [0, 1]", spec.Name, i, entry.Weight)
		}
		sum += entry.Weight
	}

	if math.Abs(sum-1) > Tolerance {
		return tilegen.InvalidArgument("palette %q weights sum to %g, must sum to 1", spec.Name, sum)
	}
	return nil
}

// Colors returns the colors in order.
func (spec Spec) Colors() []Color {
	colors := make([]Color, len(spec.Entries))
	for i, entry := range spec.Entries {
		colors[i] = entry.Color
	}
	return colors
}

// Weights returns the weights in order.
func (spec Spec) Weights() []float64 {
	weights := make([]float64, len(spec.Entries))
	for i, entry := range spec.Entries {
		weights[i] = entry.Weight
	}
	return weights
}

// Bounds returns the running sum of the weights: the exclusive upper bound of each entry's bucket.
func (spec Spec) Bounds() []float64 {
	bounds := make([]float64, len(spec.Entries))
	sum := 0.0
	for i, entry := range spec.Entries {
		sum += entry.Weight
		bounds[i] = sum
	}
	return bounds
}

// Pick returns the index of the entry owning r.
// Buckets are [lo, hi) except the last, which also takes anything at or above its lower bound,
// so 1.0 (or drift past the final running sum) resolves to the last entry.
// spec must be valid.
func (spec Spec) Pick(r float64) int {
	return pick(spec.Bounds(), r)
}

func pick(bounds []float64, r float64) int {
	last := len(bounds) - 1
	for i := 0; i < last; i++ {
		if r < bounds[i] {
			return i
		}
	}
	return last
}

// Picker is a Spec with precomputed bounds.
type Picker struct {
	bounds []float64
	colors []Color
}

// NewPicker validates spec and precomputes its bounds.
func NewPicker(spec Spec) (*Picker, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &Picker{bounds: spec.Bounds(), colors: spec.Colors()}, nil
}

// Pick returns the color owning r, see Spec.Pick.
func (picker *Picker) Pick(r float64) Color {
	return picker.colors[pick(picker.bounds, r)]
}
