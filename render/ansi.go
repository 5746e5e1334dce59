// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/ansi.go
// Summary: Raw escape-sequence driver for dumps, pipes, and tests.

package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vellumview/vellum/theme"
)

// ANSIDriver encodes frames as escape sequences on a writer. It tracks the
// last emitted style and suppresses redundant SGR resets, and degrades
// colors to the writer's capability depth.
type ANSIDriver struct {
	w    io.Writer
	cols int
	rows int
	caps theme.Capabilities

	last    theme.Style
	lastSet bool
}

// NewANSIDriver returns a driver writing frames of the given size.
func NewANSIDriver(w io.Writer, cols, rows int, caps theme.Capabilities) *ANSIDriver {
	return &ANSIDriver{w: w, cols: cols, rows: rows, caps: caps}
}

// Size returns the configured frame dimensions.
func (d *ANSIDriver) Size() (int, int) { return d.cols, d.rows }

// Apply writes each run as a cursor move followed by styled text.
func (d *ANSIDriver) Apply(spans []Span) {
	for _, sp := range spans {
		fmt.Fprintf(d.w, "\x1b[%d;%dH", sp.Row+1, sp.Col+1)
		d.writeCells(sp.Cells)
	}
}

// Show ends the frame with a style reset.
func (d *ANSIDriver) Show() {
	if d.lastSet {
		io.WriteString(d.w, "\x1b[0m")
		d.lastSet = false
	}
}

// Fini resets the style state.
func (d *ANSIDriver) Fini() { d.Show() }

// WriteBuffer emits a whole buffer sequentially, one newline-terminated
// row per line, resetting the style at each row end. This is the dump
// format: no cursor addressing, safe to pipe to a file.
func (d *ANSIDriver) WriteBuffer(b *Buffer) {
	for y := 0; y < b.H; y++ {
		row := make([]Cell, 0, b.W)
		for x := 0; x < b.W; x++ {
			row = append(row, b.At(x, y))
		}
		d.writeCells(trimTrailingBlank(row))
		io.WriteString(d.w, "\x1b[0m\n")
		d.lastSet = false
	}
}

func trimTrailingBlank(cells []Cell) []Cell {
	end := len(cells)
	for end > 0 {
		c := cells[end-1]
		if c.Ch != ' ' || c.Style != (theme.Style{}) {
			break
		}
		end--
	}
	return cells[:end]
}

func (d *ANSIDriver) writeCells(cells []Cell) {
	for _, c := range cells {
		if c.Ch == 0 {
			continue
		}
		if !d.lastSet || c.Style != d.last {
			io.WriteString(d.w, sgr(c.Style, d.caps.Depth))
			d.last = c.Style
			d.lastSet = true
		}
		io.WriteString(d.w, string(c.Ch))
	}
}

// sgr builds the full SGR sequence for a style, starting from a reset so
// attribute removal never needs tracking.
func sgr(st theme.Style, depth theme.ColorDepth) string {
	codes := []string{"0"}
	if st.Bold {
		codes = append(codes, "1")
	}
	if st.Italic {
		codes = append(codes, "3")
	}
	if st.Underline {
		codes = append(codes, "4")
	}
	if st.Reverse {
		codes = append(codes, "7")
	}
	if st.Strike {
		codes = append(codes, "9")
	}
	codes = append(codes, colorCodes(st.FG.Degrade(depth), false)...)
	codes = append(codes, colorCodes(st.BG.Degrade(depth), true)...)
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func colorCodes(c theme.Color, bg bool) []string {
	switch c.Mode {
	case theme.ColorANSI:
		base := 30
		idx := int(c.Index)
		if idx >= 8 {
			base = 90
			idx -= 8
		}
		if bg {
			base += 10
		}
		return []string{strconv.Itoa(base + idx)}
	case theme.ColorANSI256:
		lead := "38"
		if bg {
			lead = "48"
		}
		return []string{lead, "5", strconv.Itoa(int(c.Index))}
	case theme.ColorRGB:
		lead := "38"
		if bg {
			lead = "48"
		}
		return []string{lead, "2",
			strconv.Itoa(int(c.R)), strconv.Itoa(int(c.G)), strconv.Itoa(int(c.B))}
	default:
		return nil
	}
}
