// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import "math"

func clamp(f, minimum, maximum float64) float64 {
	if f < minimum {
		return minimum
	}
	if f > maximum {
		return maximum
	}
	return f
}

// lerp does not overflow when b - a would.
func lerp(a, b, factor float64) float64 {
	return a*(1-factor) + b*factor
}

// mapUnit maps a number in [0, 1] into r, clamping against rounding.
func mapUnit(number float64, r Range) float64 {
	return clamp(lerp(r.Min, r.Max, number), r.Min, r.Max)
}

func copyFloats(a []float64) []float64 {
	b := make([]float64, len(a))
	copy(b, a)
	return b
}

func bounds(values []float64) (lo, hi float64) {
	if len(values) == 0 {
		return
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return
}

// normalize rescales values into [0, 1] in place.
// A constant slice becomes all zeros.
func normalize(values []float64) {
	lo, hi := bounds(values)
	span := hi - lo
	if span == 0 {
		for i := range values {
			values[i] = 0
		}
		return
	}
	scale := 1 / span
	for i, v := range values {
		values[i] = clamp((v-lo)*scale, 0, 1)
	}
}

func finite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// wrap returns i modulo n in [0, n).
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
