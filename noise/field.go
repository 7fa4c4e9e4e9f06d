// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"fmt"
	"math"

	"github.com/SoftbearStudios/tilegen"
)

// Shape is the size of a field in cells.
type Shape struct {
	Height int `yaml:"height" json:"height"`
	Width  int `yaml:"width" json:"width"`
}

// Validate returns an error unless both dimensions are positive.
func (shape Shape) Validate() error {
	if shape.Height <= 0 || shape.Width <= 0 {
		return tilegen.InvalidArgument("shape %s must be positive in both dimensions", shape)
	}
	return nil
}

// Area is Height * Width.
func (shape Shape) Area() int {
	return shape.Height * shape.Width
}

func (shape Shape) String() string {
	return fmt.Sprintf("(%d, %d)", shape.Height, shape.Width)
}

// Range is a closed interval of field values.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Unit is [0, 1].
var Unit = Range{Min: 0, Max: 1}

// Validate returns an error if the range is inverted or not finite.
// Min == Max is a valid, degenerate range.
func (r Range) Validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return tilegen.InvalidArgument("range %s is not finite", r)
	}
	if r.Min > r.Max {
		return tilegen.InvalidArgument("range %s is inverted", r)
	}
	return nil
}

// Contains reports whether v is in [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// isZero is true for the zero value, which callers treat as "unset".
func (r Range) isZero() bool {
	return r.Min == 0 && r.Max == 0
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// Field is an immutable, row-major 2D grid of scalars.
type Field struct {
	shape  Shape
	values []float64
}

// NewField wraps a copy of values, which must hold exactly shape.Area() cells in row-major order.
func NewField(shape Shape, values []float64) (*Field, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(values) != shape.Area() {
		return nil, tilegen.InvalidArgument("field of shape %s needs %d values, got %d", shape, shape.Area(), len(values))
	}
	return &Field{shape: shape, values: copyFloats(values)}, nil
}

// Constant returns a field with every cell set to v.
func Constant(shape Shape, v float64) (*Field, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	values := make([]float64, shape.Area())
	for i := range values {
		values[i] = v
	}
	return &Field{shape: shape, values: values}, nil
}

func (field *Field) Shape() Shape {
	return field.shape
}

// At returns the value at row, col. It panics if either is out of bounds.
func (field *Field) At(row, col int) float64 {
	if row < 0 || row >= field.shape.Height || col < 0 || col >= field.shape.Width {
		panic(fmt.Sprintf("noise: (%d, %d) out of bounds for shape %s", row, col, field.shape))
	}
	return field.values[row*field.shape.Width+col]
}

// Values returns a copy of the cells in row-major order.
func (field *Field) Values() []float64 {
	return copyFloats(field.values)
}

// Min returns the smallest value.
func (field *Field) Min() float64 {
	lo, _ := bounds(field.values)
	return lo
}

// Max returns the largest value.
func (field *Field) Max() float64 {
	_, hi := bounds(field.values)
	return hi
}

// Each calls fn for every cell in row-major order.
func (field *Field) Each(fn func(row, col int, v float64)) {
	width := field.shape.Width
	for i, v := range field.values {
		fn(i/width, i%width, v)
	}
}
