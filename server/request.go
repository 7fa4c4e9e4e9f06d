// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"net/url"
	"strconv"

	"github.com/SoftbearStudios/tilegen"
)

// Request asks for one tile. Zero fields take the server's defaults.
type Request struct {
	Type    string `json:"type,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Seed    *int64 `json:"seed,omitempty"`
	Noise   string `json:"noise,omitempty"`
	Basis   string `json:"basis,omitempty"`
	Octaves int    `json:"octaves,omitempty"`
	Scale   int    `json:"scale,omitempty"`
	// Publish also sends the tile to the cloud, if the server has one.
	Publish bool `json:"publish,omitempty"`
}

// ParseRequest reads a Request from URL query parameters.
func ParseRequest(query url.Values) (Request, error) {
	var (
		request Request
		err     error
	)

	request.Type = query.Get("type")
	request.Noise = query.Get("noise")
	request.Basis = query.Get("basis")

	ints := []struct {
		name string
		dst  *int
	}{
		{"width", &request.Width},
		{"height", &request.Height},
		{"octaves", &request.Octaves},
		{"scale", &request.Scale},
	}
	for _, param := range ints {
		value := query.Get(param.name)
		if value == "" {
			continue
		}
		if *param.dst, err = strconv.Atoi(value); err != nil {
			return Request{}, tilegen.InvalidArgument("%s %q is not an integer", param.name, value)
		}
	}

	if value := query.Get("seed"); value != "" {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return Request{}, tilegen.InvalidArgument("seed %q is not an integer", value)
		}
		request.Seed = &seed
	}

	if value := query.Get("publish"); value != "" {
		if request.Publish, err = strconv.ParseBool(value); err != nil {
			return Request{}, tilegen.InvalidArgument("publish %q is not a boolean", value)
		}
	}

	return request, nil
}
