// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import "math"

// resample bilinearly samples src (of shape) back onto shape, stepping step source cells per output cell.
// Sample points are cell centres and addressing wraps at the edges, so step == 1 is the identity,
// step < 1 magnifies (coarser detail) and step > 1 minifies (finer detail).
func resample(src []float64, shape Shape, step float64) []float64 {
	dst := make([]float64, len(src))
	width, height := shape.Width, shape.Height

	for j := 0; j < height; j++ {
		v := (float64(j)+0.5)*step - 0.5
		fy := math.Floor(v)
		ty := v - fy
		y0 := wrap(int(fy), height)
		y1 := wrap(int(fy)+1, height)

		for i := 0; i < width; i++ {
			u := (float64(i)+0.5)*step - 0.5
			fx := math.Floor(u)
			tx := u - fx
			x0 := wrap(int(fx), width)
			x1 := wrap(int(fx)+1, width)

			// Sample 2x2 grid
			// 00 10
			// 01 11
			c00 := src[x0+y0*width]
			c10 := src[x1+y0*width]
			c01 := src[x0+y1*width]
			c11 := src[x1+y1*width]

			dst[i+j*width] = blerp(c00, c10, c01, c11, tx, ty)
		}
	}

	return dst
}

// blerp does bi-linear interpolation on 4 values given the tx and ty offsets.
func blerp(c00, c10, c01, c11, tx, ty float64) float64 {
	return lerp(
		lerp(c00, c10, tx),
		lerp(c01, c11, tx),
		ty,
	)
}
