// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/SoftbearStudios/tilegen"
)

func TestUniform_Range(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ranges := []Range{Unit, {Min: -1, Max: 1}, {Min: 10, Max: 10.5}}
	shapes := []Shape{{1, 1}, {3, 7}, {64, 64}}

	for _, r := range ranges {
		for _, shape := range shapes {
			field, err := Uniform(rng, shape, r)
			if err != nil {
				t.Fatal("Uniform", shape, r, "unexpected error:", err)
			}
			if field.Shape() != shape {
				t.Error("Uniform expected shape", shape, "got", field.Shape())
			}
			field.Each(func(row, col int, v float64) {
				if !r.Contains(v) {
					t.Errorf("Uniform(%s, %s) at (%d, %d) = %g, expected within range", shape, r, row, col, v)
				}
			})
		}
	}
}

func TestUniform_WideRange(t *testing.T) {
	r := Range{Min: -math.MaxFloat64, Max: math.MaxFloat64}
	field, err := Uniform(rand.New(rand.NewSource(3)), Shape{Height: 1, Width: 8}, r)
	if err != nil {
		t.Fatal(err)
	}

	distinct := make(map[float64]struct{})
	field.Each(func(row, col int, v float64) {
		if math.IsInf(v, 0) || !r.Contains(v) {
			t.Errorf("Uniform at (%d, %d) = %g, expected within %s", row, col, v, r)
		}
		distinct[v] = struct{}{}
	})
	if len(distinct) < 2 {
		t.Error("Uniform over a wide range expected distinct values, got", field.Values())
	}
}

func TestUniform_Constant(t *testing.T) {
	field, err := Uniform(rand.New(rand.NewSource(2)), Shape{Height: 4, Width: 5}, Range{Min: 0.25, Max: 0.25})
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range field.Values() {
		if v != 0.25 {
			t.Error("constant Uniform expected", 0.25, "got", v)
		}
	}
}

func TestUniform_Deterministic(t *testing.T) {
	shape := Shape{Height: 8, Width: 8}
	a, _ := Uniform(rand.New(rand.NewSource(99)), shape, Unit)
	b, _ := Uniform(rand.New(rand.NewSource(99)), shape, Unit)

	av, bv := a.Values(), b.Values()
	for i := range av {
		if av[i] != bv[i] {
			t.Fatalf("Uniform with equal seeds differs at %d: %g != %g", i, av[i], bv[i])
		}
	}
}

func TestUniform_Invalid(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tests := []struct {
		name  string
		shape Shape
		r     Range
	}{
		{"zero height", Shape{Height: 0, Width: 10}, Unit},
		{"negative width", Shape{Height: 10, Width: -1}, Unit},
		{"inverted range", Shape{Height: 2, Width: 2}, Range{Min: 1, Max: 0}},
		{"infinite range", Shape{Height: 2, Width: 2}, Range{Min: math.Inf(-1), Max: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, err := Uniform(rng, tt.shape, tt.r)
			if !errors.Is(err, tilegen.ErrInvalidArgument) {
				t.Errorf("Uniform(%s, %s) expected ErrInvalidArgument, got %v", tt.shape, tt.r, err)
			}
			if field != nil {
				t.Error("Uniform returned a field along with an error")
			}
		})
	}

	if _, err := Uniform(nil, Shape{Height: 1, Width: 1}, Unit); !errors.Is(err, tilegen.ErrInvalidArgument) {
		t.Error("Uniform with nil rng expected ErrInvalidArgument, got", err)
	}
}

func TestNewField(t *testing.T) {
	values := []float64{0, 0.5, 1, 0.25, 0.75, 0.125}
	field, err := NewField(Shape{Height: 2, Width: 3}, values)
	if err != nil {
		t.Fatal(err)
	}

	// Caller's slice is copied
	values[0] = 42
	if got := field.At(0, 0); got != 0 {
		t.Error("NewField expected copy of values, At(0, 0) got", got)
	}
	if got := field.At(1, 2); got != 0.125 {
		t.Error("At(1, 2) expected", 0.125, "got", got)
	}
	if field.Min() != 0 || field.Max() != 1 {
		t.Error("Min/Max expected 0/1 got", field.Min(), field.Max())
	}

	if _, err := NewField(Shape{Height: 2, Width: 2}, values); !errors.Is(err, tilegen.ErrInvalidArgument) {
		t.Error("NewField with wrong length expected ErrInvalidArgument, got", err)
	}
}
