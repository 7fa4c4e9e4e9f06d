// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sink

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"
	"testing"

	"github.com/SoftbearStudios/tilegen"
)

func solid(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestEncodePNG(t *testing.T) {
	c := color.RGBA{R: 180, G: 120, B: 50, A: 255}

	for _, scale := range []int{1, 4} {
		data, err := EncodePNG(solid(5, 3, c), scale)
		if err != nil {
			t.Fatal(err)
		}

		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatal(err)
		}
		if b := img.Bounds(); b.Dx() != 5*scale || b.Dy() != 3*scale {
			t.Errorf("EncodePNG(scale=%d) expected %dx%d got %v", scale, 5*scale, 3*scale, b)
		}
		r, g, b, a := img.At(2*scale, scale).RGBA()
		if r>>8 != 180 || g>>8 != 120 || b>>8 != 50 || a>>8 != 255 {
			t.Errorf("EncodePNG(scale=%d) expected %v got (%d, %d, %d, %d)", scale, c, r>>8, g>>8, b>>8, a>>8)
		}
	}

	for _, scale := range []int{0, -1, MaxScale + 1} {
		if _, err := EncodePNG(solid(1, 1, c), scale); !errors.Is(err, tilegen.ErrInvalidArgument) {
			t.Errorf("EncodePNG(scale=%d) expected ErrInvalidArgument, got %v", scale, err)
		}
	}
}

func TestDirectory_UploadStaticFile(t *testing.T) {
	dir := NewDirectory(t.TempDir())

	if err := dir.UploadStaticFile("grass/grass_0.png", 10, []byte("png")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(dir.Path("grass/grass_0.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "png" {
		t.Error("expected file contents png, got", string(data))
	}

	for _, bad := range []string{"../escape.png", "..", "", "/abs.png"} {
		if err := dir.UploadStaticFile(bad, 0, nil); err == nil {
			t.Errorf("UploadStaticFile(%q) expected error", bad)
		}
	}
}

func TestDirectory_ConcurrentUploads(t *testing.T) {
	dir := NewDirectory(t.TempDir())

	contents := make([][]byte, 8)
	for i := range contents {
		contents[i] = bytes.Repeat([]byte{byte('a' + i)}, 64*1024)
	}

	var wg sync.WaitGroup
	for _, data := range contents {
		wg.Add(1)
		go func(data []byte) {
			defer wg.Done()
			if err := dir.UploadStaticFile("tiles.json", 10, data); err != nil {
				t.Error(err)
			}
		}(data)
	}
	wg.Wait()

	got, err := os.ReadFile(dir.Path("tiles.json"))
	if err != nil {
		t.Fatal(err)
	}
	whole := false
	for _, data := range contents {
		if bytes.Equal(got, data) {
			whole = true
		}
	}
	if !whole {
		t.Errorf("expected one complete upload, got %d mixed bytes", len(got))
	}

	entries, err := os.ReadDir(dir.Path("."))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only tiles.json to remain, got %d entries", len(entries))
	}
}

func TestSave(t *testing.T) {
	dir := NewDirectory(t.TempDir())
	if err := Save(dir, "tile.png", solid(2, 2, color.RGBA{A: 255}), 2); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir.Path("tile.png")); err != nil {
		t.Error("Save expected tile.png to exist:", err)
	}
}

func TestS3Filesystem_ContentType(t *testing.T) {
	fs := NewS3FilesystemFromIface(nil, "test")
	if fs.Bucket() != "tilegen-test-static" {
		t.Error("Bucket expected tilegen-test-static got", fs.Bucket())
	}

	tests := []struct {
		filename string
		expected string
	}{
		{"tiles.json", "application/json"},
		{"grass/grass_0.png", "image/png"},
		{"readme.txt", ""},
	}
	for _, tt := range tests {
		got := ""
		if ct := contentType(tt.filename); ct != nil {
			got = *ct
		}
		if got != tt.expected {
			t.Errorf("contentType(%q) = %q, want %q", tt.filename, got, tt.expected)
		}
	}
}
