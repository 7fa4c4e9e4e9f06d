// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package grid lays out sample tiles side by side for previewing a palette.
package grid

import (
	"image"
	"image/color"

	"github.com/SoftbearStudios/tilegen"
	"github.com/SoftbearStudios/tilegen/sink"
	"github.com/SoftbearStudios/tilegen/tile"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultColumns makes 16 tiles a 4x4 grid.
	DefaultColumns = 4
	// DefaultCount is the number of tiles in a sample grid.
	DefaultCount = 16

	labelPadding = 2
)

// Options configures Compose.
type Options struct {
	// Columns per row. 0 means DefaultColumns.
	Columns int
	// Scale is the integer magnification of each tile, at most sink.MaxScale. 0 means 1.
	Scale int
	// Labels are drawn in the top left corner of each cell, if present.
	Labels []string
}

func (opts Options) columns(n int) int {
	columns := opts.Columns
	if columns <= 0 {
		columns = DefaultColumns
	}
	if columns > n {
		columns = n
	}
	return columns
}

func (opts Options) scale() int {
	if opts.Scale <= 0 {
		return 1
	}
	return opts.Scale
}

// Compose draws tiles into a grid, left to right then top to bottom, with no spacing between cells.
// All tiles must have the same shape.
func Compose(tiles []*tile.Buffer, opts Options) (*image.RGBA, error) {
	if len(tiles) == 0 {
		return nil, tilegen.InvalidArgument("no tiles to compose")
	}
	shape := tiles[0].Shape()
	for i, t := range tiles {
		if t == nil {
			return nil, tilegen.InvalidArgument("tile %d is nil", i)
		}
		if t.Shape() != shape {
			return nil, tilegen.InvalidArgument("tile %d has shape %s, expected %s", i, t.Shape(), shape)
		}
	}
	if opts.Scale > sink.MaxScale {
		return nil, tilegen.InvalidArgument("scale %d exceeds %d", opts.Scale, sink.MaxScale)
	}
	if len(opts.Labels) > len(tiles) {
		return nil, tilegen.InvalidArgument("%d labels for %d tiles", len(opts.Labels), len(tiles))
	}

	columns := opts.columns(len(tiles))
	rows := (len(tiles) + columns - 1) / columns
	scale := opts.scale()
	cellWidth := shape.Width * scale
	cellHeight := shape.Height * scale

	img := image.NewRGBA(image.Rect(0, 0, columns*cellWidth, rows*cellHeight))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	for i, t := range tiles {
		x := (i % columns) * cellWidth
		y := (i / columns) * cellHeight
		cell := image.Rect(x, y, x+cellWidth, y+cellHeight)

		src := t.Image()
		draw.NearestNeighbor.Scale(img, cell, src, src.Bounds(), draw.Src, nil)

		if i < len(opts.Labels) && opts.Labels[i] != "" {
			label(img, cell, opts.Labels[i])
		}
	}

	return img, nil
}

// label draws text in the top left of cell, with a dark backing so it reads on any palette.
func label(img *image.RGBA, cell image.Rectangle, text string) {
	face := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}

	width := drawer.MeasureString(text).Ceil()
	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()

	backing := image.Rect(0, 0, width+2*labelPadding, height+2*labelPadding).Add(cell.Min).Intersect(cell)
	draw.Draw(img, backing, image.NewUniform(color.RGBA{A: 160}), image.Point{}, draw.Over)

	drawer.Dot = fixed.P(cell.Min.X+labelPadding, cell.Min.Y+labelPadding+metrics.Ascent.Ceil())
	drawer.DrawString(text)
}
