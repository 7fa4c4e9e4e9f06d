// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/SoftbearStudios/tilegen"
	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"
)

// Color is an 8 bit per channel RGB color.
type Color struct {
	R, G, B uint8
}

// ColorVec is a normalized RGB color, each channel in [0, 1].
// It only exists at the configuration boundary; everything past it uses Color.
type ColorVec [3]float32

// RGB makes a Color.
func RGB(r, g, b byte) Color {
	return Color{R: r, G: g, B: b}
}

// Gray makes a Color with equal channels.
func Gray(v byte) Color {
	return RGB(v, v, v)
}

// FromFloat converts normalized channels to a Color, rounding to the nearest byte.
func FromFloat(r, g, b float32) Color {
	return ColorVec{r, g, b}.Color()
}

// Color rounds vec to 8 bits per channel.
func (vec ColorVec) Color() Color {
	return Color{R: floatToByte(vec[0]), G: floatToByte(vec[1]), B: floatToByte(vec[2])}
}

func (vec ColorVec) String() string {
	return fmt.Sprintf("vec3(%.3f, %.3f, %.3f)", vec[0], vec[1], vec[2])
}

// Vec converts c to normalized channels.
func (c Color) Vec() ColorVec {
	const factor = 1.0 / 255
	return ColorVec{float32(c.R) * factor, float32(c.G) * factor, float32(c.B) * factor}
}

// RGBA is c as an opaque image/color value.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses "#rrggbb" (the leading # is optional).
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, tilegen.InvalidArgument("color %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, tilegen.InvalidArgument("color %q is not #rrggbb", s)
	}
	return RGB(byte(v>>16), byte(v>>8), byte(v)), nil
}

// MarshalText encodes c as "#rrggbb".
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts "#rrggbb" or [r, g, b].
func (c *Color) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err == nil {
		*c, err = ParseColor(hex)
		return err
	}
	var channels []int
	if err := json.Unmarshal(data, &channels); err != nil {
		return tilegen.InvalidArgument("color %s is neither #rrggbb nor [r, g, b]", string(data))
	}
	return c.setChannels(channels)
}

// UnmarshalYAML accepts "#rrggbb" or [r, g, b].
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var hex string
		if err := node.Decode(&hex); err != nil {
			return err
		}
		parsed, err := ParseColor(hex)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case yaml.SequenceNode:
		var channels []int
		if err := node.Decode(&channels); err != nil {
			return err
		}
		return c.setChannels(channels)
	default:
		return tilegen.InvalidArgument("color at line %d is neither #rrggbb nor [r, g, b]", node.Line)
	}
}

func (c *Color) setChannels(channels []int) error {
	if len(channels) != 3 {
		return tilegen.InvalidArgument("color needs 3 channels, got %d", len(channels))
	}
	for _, channel := range channels {
		if channel < 0 || channel > 255 {
			return tilegen.InvalidArgument("color channel %d out of [0, 255]", channel)
		}
	}
	*c = RGB(byte(channels[0]), byte(channels[1]), byte(channels[2]))
	return nil
}

func floatToByte(f float32) byte {
	if f < 0 {
		return 0
	}
	if f > 1.0 {
		return 255
	}
	return byte(math32.Floor(f*255 + 0.5))
}
