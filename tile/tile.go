// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tile maps scalar noise fields through palettes into RGB tiles.
package tile

import (
	"image"
	"math"

	"github.com/SoftbearStudios/tilegen"
	"github.com/SoftbearStudios/tilegen/noise"
	"github.com/SoftbearStudios/tilegen/palette"
)

// Channels is the number of bytes per pixel of a Buffer.
const Channels = 3

// Buffer is an RGB tile, row-major with Channels bytes per pixel.
type Buffer struct {
	Height int
	Width  int
	Pix    []uint8
}

func newBuffer(shape noise.Shape) *Buffer {
	return &Buffer{
		Height: shape.Height,
		Width:  shape.Width,
		Pix:    make([]uint8, shape.Area()*Channels),
	}
}

// Shape is the size of the tile in pixels.
func (buffer *Buffer) Shape() noise.Shape {
	return noise.Shape{Height: buffer.Height, Width: buffer.Width}
}

// At gets the color of a pixel.
func (buffer *Buffer) At(row, col int) palette.Color {
	i := (row*buffer.Width + col) * Channels
	p := buffer.Pix[i : i+Channels : i+Channels]
	return palette.RGB(p[0], p[1], p[2])
}

func (buffer *Buffer) set(i int, c palette.Color) {
	i *= Channels
	buffer.Pix[i] = c.R
	buffer.Pix[i+1] = c.G
	buffer.Pix[i+2] = c.B
}

// Image converts the tile to an opaque RGBA image for encoders.
func (buffer *Buffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, buffer.Width, buffer.Height))

	for j := 0; j < buffer.Height; j++ {
		for i := 0; i < buffer.Width; i++ {
			src := (i + j*buffer.Width) * Channels
			dst := img.PixOffset(i, j)
			copy(img.Pix[dst:dst+3], buffer.Pix[src:src+3])
			img.Pix[dst+3] = 255
		}
	}

	return img
}

// Synthesize picks a palette color for every cell of field.
// Every field value must be in [0, 1] and the palette must be valid; nothing is allocated otherwise.
// The result depends only on the inputs.
func Synthesize(field *noise.Field, spec palette.Spec) (*Buffer, error) {
	if field == nil {
		return nil, tilegen.InvalidArgument("nil field")
	}
	picker, err := palette.NewPicker(spec)
	if err != nil {
		return nil, err
	}
	shape := field.Shape()
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	values := field.Values()
	for i, v := range values {
		if math.IsNaN(v) || !noise.Unit.Contains(v) {
			return nil, tilegen.InvalidArgument("field value %g at (%d, %d) is outside [0, 1]", v, i/shape.Width, i%shape.Width)
		}
	}

	buffer := newBuffer(shape)
	for i, v := range values {
		buffer.set(i, picker.Pick(v))
	}

	return buffer, nil
}
