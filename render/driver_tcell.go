// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/driver_tcell.go
// Summary: Interactive output driver on a tcell screen.

package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vellumview/vellum/theme"
)

// TcellDriver presents frames on a tcell screen. The screen is owned by
// the caller, which also polls it for input.
type TcellDriver struct {
	screen tcell.Screen
	caps   theme.Capabilities
}

// NewTcellDriver wraps an initialized screen.
func NewTcellDriver(s tcell.Screen, caps theme.Capabilities) *TcellDriver {
	return &TcellDriver{screen: s, caps: caps}
}

// Size returns the screen dimensions.
func (d *TcellDriver) Size() (int, int) { return d.screen.Size() }

// Apply stages the changed runs onto the screen.
func (d *TcellDriver) Apply(spans []Span) {
	for _, sp := range spans {
		col := sp.Col
		for _, c := range sp.Cells {
			if c.Ch == 0 {
				// continuation cell of a wide rune
				col++
				continue
			}
			d.screen.SetContent(col, sp.Row, c.Ch, nil, d.style(c.Style))
			col++
		}
	}
}

// Show flushes staged content to the terminal.
func (d *TcellDriver) Show() { d.screen.Show() }

// Fini restores the terminal.
func (d *TcellDriver) Fini() { d.screen.Fini() }

func (d *TcellDriver) style(st theme.Style) tcell.Style {
	out := tcell.StyleDefault.
		Foreground(tcellColor(st.FG.Degrade(d.caps.Depth))).
		Background(tcellColor(st.BG.Degrade(d.caps.Depth)))
	if st.Bold {
		out = out.Bold(true)
	}
	if st.Italic {
		out = out.Italic(true)
	}
	if st.Underline {
		out = out.Underline(true)
	}
	if st.Strike {
		out = out.StrikeThrough(true)
	}
	if st.Reverse {
		out = out.Reverse(true)
	}
	return out
}

func tcellColor(c theme.Color) tcell.Color {
	switch c.Mode {
	case theme.ColorRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	case theme.ColorANSI, theme.ColorANSI256:
		return tcell.PaletteColor(int(c.Index))
	default:
		return tcell.ColorDefault
	}
}
