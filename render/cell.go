// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/cell.go
// Summary: Character-cell buffer backing the double-buffered renderer.

// Package render rasterizes a layout tree into a grid of styled cells and
// pushes the result to a terminal through a driver. Each frame paints into
// a back buffer, diffs it against the front buffer, and emits only the
// changed runs.
package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/vellumview/vellum/theme"
)

// Cell is one character cell. Wide runes occupy their left cell; the
// continuation cell holds a zero rune and is skipped on output.
type Cell struct {
	Ch    rune
	Style theme.Style
}

// Buffer is a fixed-size grid of cells.
type Buffer struct {
	W, H  int
	cells []Cell
}

// NewBuffer allocates a cleared buffer.
func NewBuffer(w, h int) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b := &Buffer{W: w, H: h, cells: make([]Cell, w*h)}
	b.Clear(theme.Style{})
	return b
}

// Clear resets every cell to a space in the given style.
func (b *Buffer) Clear(st theme.Style) {
	for i := range b.cells {
		b.cells[i] = Cell{Ch: ' ', Style: st}
	}
}

// Resize reallocates to the new size, discarding contents.
func (b *Buffer) Resize(w, h int) {
	if w == b.W && h == b.H {
		return
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b.W, b.H = w, h
	b.cells = make([]Cell, w*h)
	b.Clear(theme.Style{})
}

// At returns the cell at (x, y), or a blank cell out of bounds.
func (b *Buffer) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return Cell{Ch: ' '}
	}
	return b.cells[y*b.W+x]
}

// Set writes one cell, ignoring out-of-bounds writes.
func (b *Buffer) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return
	}
	b.cells[y*b.W+x] = c
}

// SetRune writes a rune with a style at (x, y) and returns its display
// width. A wide rune claims its continuation cell with a zero rune.
func (b *Buffer) SetRune(x, y int, r rune, st theme.Style) int {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return 0
	}
	b.Set(x, y, Cell{Ch: r, Style: st})
	if w == 2 {
		b.Set(x+1, y, Cell{Ch: 0, Style: st})
	}
	return w
}

// SetString writes a string starting at (x, y), clipped to maxW cells.
// It returns the width written.
func (b *Buffer) SetString(x, y int, s string, st theme.Style, maxW int) int {
	cx := x
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if cx-x+rw > maxW {
			break
		}
		cx += b.SetRune(cx, y, r, st)
	}
	return cx - x
}

// FillRect paints a rectangle with one rune and style, clipped to the
// buffer.
func (b *Buffer) FillRect(x, y, w, h int, r rune, st theme.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			b.Set(col, row, Cell{Ch: r, Style: st})
		}
	}
}
