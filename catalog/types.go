// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

// Record describes a published tile.
// Type (the tile type) and Name (the stored filename) together identify it.
type Record struct {
	Type   string `dynamo:"type" json:"type"`
	Name   string `dynamo:"name" json:"name"`
	Seed   int64  `dynamo:"seed" json:"seed"`
	Width  int    `dynamo:"width" json:"width"`
	Height int    `dynamo:"height" json:"height"`
	// Noise summarizes the noise kind and basis, e.g. "fractal/perlin".
	Noise string `dynamo:"noise" json:"noise"`
	// Created is in Unix seconds.
	Created int64 `dynamo:"created" json:"created"`
}
