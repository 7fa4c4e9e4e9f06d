// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tile

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/SoftbearStudios/tilegen"
	"github.com/SoftbearStudios/tilegen/noise"
	"github.com/SoftbearStudios/tilegen/palette"
)

func options(kind Kind) Options {
	params := noise.DefaultParams(noise.Shape{Height: 16, Width: 24})
	params.Octaves = 3
	params.Zoom = 4
	return Options{
		Palette: palette.Presets()["dirt"],
		Kind:    kind,
		Noise:   params,
		Seed:    42,
	}
}

func TestGenerate(t *testing.T) {
	for _, kind := range []Kind{KindUniform, KindFractal} {
		buffer, field, err := Generate(options(kind))
		if err != nil {
			t.Fatal(kind, err)
		}
		if buffer.Shape() != field.Shape() {
			t.Error(kind, "buffer shape", buffer.Shape(), "differs from field shape", field.Shape())
		}
		if buffer.Width != 24 || buffer.Height != 16 {
			t.Error(kind, "expected 24x16 got", buffer.Width, buffer.Height)
		}

		again, _, _ := Generate(options(kind))
		if !bytes.Equal(buffer.Pix, again.Pix) {
			t.Error(kind, "Generate with equal seeds expected equal tiles")
		}
	}
}

func TestGenerate_Invalid(t *testing.T) {
	opts := options(KindFractal)
	opts.Noise.Lacunarity = 0.5
	if _, _, err := Generate(opts); !errors.Is(err, tilegen.ErrInvalidArgument) {
		t.Error("Generate with lacunarity 0.5 expected ErrInvalidArgument, got", err)
	}

	opts = options(KindUniform)
	opts.Noise.Shape.Height = 0
	if _, _, err := Generate(opts); !errors.Is(err, tilegen.ErrInvalidArgument) {
		t.Error("Generate with zero height expected ErrInvalidArgument, got", err)
	}
}

func TestGenerateBatch(t *testing.T) {
	opts := options(KindUniform)
	buffers, err := GenerateBatch(context.Background(), opts, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(buffers) != 6 {
		t.Fatal("GenerateBatch expected 6 tiles got", len(buffers))
	}

	for i, buffer := range buffers {
		single := opts
		single.Seed = opts.Seed + int64(i)
		expected, _, _ := Generate(single)
		if !bytes.Equal(buffer.Pix, expected.Pix) {
			t.Errorf("batch tile %d expected to equal Generate with seed %d", i, single.Seed)
		}
	}
	if bytes.Equal(buffers[0].Pix, buffers[1].Pix) {
		t.Error("batch tiles expected distinct seeds")
	}
}

func TestGenerateBatch_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := GenerateBatch(ctx, options(KindUniform), 4); !errors.Is(err, context.Canceled) {
		t.Error("GenerateBatch with canceled context expected context.Canceled, got", err)
	}
	if _, err := GenerateBatch(context.Background(), options(KindUniform), 0); !errors.Is(err, tilegen.ErrInvalidArgument) {
		t.Error("GenerateBatch(0) expected ErrInvalidArgument, got", err)
	}
}

func TestParseKind(t *testing.T) {
	if kind, err := ParseKind("Fractal"); err != nil || kind != KindFractal {
		t.Error("ParseKind(Fractal) =", kind, err)
	}
	if kind, err := ParseKind(""); err != nil || kind != KindUniform {
		t.Error("ParseKind(\"\") =", kind, err)
	}
	if _, err := ParseKind("perlin"); !errors.Is(err, tilegen.ErrInvalidArgument) {
		t.Error("ParseKind(perlin) expected ErrInvalidArgument, got", err)
	}
}
