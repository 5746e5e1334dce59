// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/border.go
// Summary: Box-drawing glyph sets per border style with ASCII fallback.

package render

import "github.com/vellumview/vellum/theme"

// borderGlyphs is the full glyph set for one border style, including the
// junctions table grids need.
type borderGlyphs struct {
	TL, TR, BL, BR rune
	H, V           rune
	TeeT, TeeB     rune // junctions opening downward / upward
	TeeL, TeeR     rune // junctions opening rightward / leftward
	Cross          rune
}

var (
	glyphsSingle = borderGlyphs{
		TL: '┌', TR: '┐', BL: '└', BR: '┘',
		H: '─', V: '│',
		TeeT: '┬', TeeB: '┴', TeeL: '├', TeeR: '┤',
		Cross: '┼',
	}
	glyphsDouble = borderGlyphs{
		TL: '╔', TR: '╗', BL: '╚', BR: '╝',
		H: '═', V: '║',
		TeeT: '╦', TeeB: '╩', TeeL: '╠', TeeR: '╣',
		Cross: '╬',
	}
	glyphsRounded = borderGlyphs{
		TL: '╭', TR: '╮', BL: '╰', BR: '╯',
		H: '─', V: '│',
		TeeT: '┬', TeeB: '┴', TeeL: '├', TeeR: '┤',
		Cross: '┼',
	}
	glyphsHeavy = borderGlyphs{
		TL: '┏', TR: '┓', BL: '┗', BR: '┛',
		H: '━', V: '┃',
		TeeT: '┳', TeeB: '┻', TeeL: '┣', TeeR: '┫',
		Cross: '╋',
	}
	glyphsASCII = borderGlyphs{
		TL: '+', TR: '+', BL: '+', BR: '+',
		H: '-', V: '|',
		TeeT: '+', TeeB: '+', TeeL: '+', TeeR: '+',
		Cross: '+',
	}
)

// glyphsFor resolves a border style against terminal capabilities. A
// terminal without box drawing always gets the ASCII set.
func glyphsFor(bs theme.BorderStyle, caps theme.Capabilities) borderGlyphs {
	if !caps.BoxDrawing {
		return glyphsASCII
	}
	switch bs {
	case theme.BorderDouble:
		return glyphsDouble
	case theme.BorderRounded:
		return glyphsRounded
	case theme.BorderHeavy:
		return glyphsHeavy
	case theme.BorderASCII:
		return glyphsASCII
	default:
		return glyphsSingle
	}
}

// drawBox outlines a rectangle into the buffer.
func drawBox(b *Buffer, x, y, w, h int, g borderGlyphs, st theme.Style) {
	if w < 2 || h < 2 {
		return
	}
	b.Set(x, y, Cell{Ch: g.TL, Style: st})
	b.Set(x+w-1, y, Cell{Ch: g.TR, Style: st})
	b.Set(x, y+h-1, Cell{Ch: g.BL, Style: st})
	b.Set(x+w-1, y+h-1, Cell{Ch: g.BR, Style: st})
	for cx := x + 1; cx < x+w-1; cx++ {
		b.Set(cx, y, Cell{Ch: g.H, Style: st})
		b.Set(cx, y+h-1, Cell{Ch: g.H, Style: st})
	}
	for cy := y + 1; cy < y+h-1; cy++ {
		b.Set(x, cy, Cell{Ch: g.V, Style: st})
		b.Set(x+w-1, cy, Cell{Ch: g.V, Style: st})
	}
}
