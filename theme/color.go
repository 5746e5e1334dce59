// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/color.go
// Summary: Terminal color model with deterministic capability degradation.

package theme

import (
	"fmt"
	"strings"
)

// ColorMode distinguishes how a Color value is encoded.
type ColorMode uint8

const (
	// ColorDefault means "no color": the terminal default is left in place.
	ColorDefault ColorMode = iota
	// ColorANSI is one of the 16 base palette entries (0-15).
	ColorANSI
	// ColorANSI256 is a 256-color palette index.
	ColorANSI256
	// ColorRGB is a 24-bit color.
	ColorRGB
)

// Color is a terminal color in one of four encodings. The zero value is the
// terminal default.
type Color struct {
	Mode    ColorMode
	R, G, B uint8
	Index   uint8
}

// RGB builds a 24-bit color.
func RGB(r, g, b uint8) Color { return Color{Mode: ColorRGB, R: r, G: g, B: b} }

// ANSI builds a 16-palette color from an index 0-15.
func ANSI(idx uint8) Color { return Color{Mode: ColorANSI, Index: idx & 0x0F} }

// ANSI256 builds a 256-palette color.
func ANSI256(idx uint8) Color { return Color{Mode: ColorANSI256, Index: idx} }

// IsSet reports whether the color is anything other than terminal default.
func (c Color) IsSet() bool { return c.Mode != ColorDefault }

// ColorDepth is the terminal's color capability class.
type ColorDepth int

const (
	DepthMono ColorDepth = iota
	Depth16
	Depth256
	DepthTrueColor
)

// Degrade maps the color onto what the given depth can express. True color
// passes through at DepthTrueColor, otherwise it is folded down step by
// step; at DepthMono every color collapses to the terminal default so only
// bold/underline survive. The mapping is pure: the same input always yields
// the same output.
func (c Color) Degrade(depth ColorDepth) Color {
	if !c.IsSet() {
		return c
	}
	switch depth {
	case DepthTrueColor:
		return c
	case Depth256:
		if c.Mode == ColorRGB {
			return ANSI256(c.toANSI256())
		}
		return c
	case Depth16:
		switch c.Mode {
		case ColorRGB:
			return ANSI(nearest16(c.R, c.G, c.B))
		case ColorANSI256:
			r, g, b := palette256(c.Index)
			return ANSI(nearest16(r, g, b))
		}
		return c
	default:
		return Color{}
	}
}

// toANSI256 maps an RGB value into the 6x6x6 cube, or the grayscale ramp
// for achromatic values.
func (c Color) toANSI256() uint8 {
	r, g, b := c.R, c.G, c.B
	if r == g && g == b {
		if r < 8 {
			return 16 // cube black
		}
		if r > 248 {
			return 231 // cube white
		}
		return uint8(232 + (int(r)-8)*24/240)
	}
	ri := int(r) * 5 / 255
	gi := int(g) * 5 / 255
	bi := int(b) * 5 / 255
	return uint8(16 + 36*ri + 6*gi + bi)
}

// base16 holds the conventional RGB values of the 16 ANSI palette entries.
var base16 = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

func nearest16(r, g, b uint8) uint8 {
	best, bestDist := 0, int(^uint(0)>>1)
	for i, p := range base16 {
		dr := int(r) - int(p[0])
		dg := int(g) - int(p[1])
		db := int(b) - int(p[2])
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return uint8(best)
}

// palette256 reconstructs the RGB value of a 256-palette index.
func palette256(idx uint8) (r, g, b uint8) {
	switch {
	case idx < 16:
		p := base16[idx]
		return p[0], p[1], p[2]
	case idx < 232:
		i := int(idx) - 16
		steps := [6]uint8{0, 95, 135, 175, 215, 255}
		return steps[i/36], steps[(i/6)%6], steps[i%6]
	default:
		v := uint8(8 + (int(idx)-232)*10)
		return v, v, v
	}
}

// ParseColor reads a color from its YAML/theme-file form: "#rrggbb", a
// palette index "123", or an empty string for the terminal default.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "default" {
		return Color{}, nil
	}
	if strings.HasPrefix(s, "#") {
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return Color{}, fmt.Errorf("bad hex color %q: %w", s, err)
		}
		return RGB(r, g, b), nil
	}
	var idx int
	if _, err := fmt.Sscanf(s, "%d", &idx); err != nil || idx < 0 || idx > 255 {
		return Color{}, fmt.Errorf("bad color %q", s)
	}
	if idx < 16 {
		return ANSI(uint8(idx)), nil
	}
	return ANSI256(uint8(idx)), nil
}
