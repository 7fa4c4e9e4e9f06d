// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/SoftbearStudios/tilegen"
	"github.com/nfnt/resize"
)

// MaxScale bounds the upscale factor of EncodePNG.
const MaxScale = 64

// EncodePNG encodes img, upscaled by an integer factor with nearest neighbour sampling
// so tile pixels stay crisp.
func EncodePNG(img image.Image, scale int) ([]byte, error) {
	if scale < 1 || scale > MaxScale {
		return nil, tilegen.InvalidArgument("scale must be in [1, %d], got %d", MaxScale, scale)
	}

	if scale > 1 {
		bounds := img.Bounds()
		img = resize.Resize(uint(bounds.Dx()*scale), uint(bounds.Dy()*scale), img, resize.NearestNeighbor)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Save encodes img and stores it as filename.
func Save(fs Filesystem, filename string, img image.Image, scale int) error {
	data, err := EncodePNG(img, scale)
	if err != nil {
		return err
	}
	return fs.UploadStaticFile(filename, 0, data)
}
