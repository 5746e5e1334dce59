// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: view/help.go
// Summary: Keybinding help overlay.

package view

import (
	"github.com/mattn/go-runewidth"

	"github.com/vellumview/vellum/render"
	"github.com/vellumview/vellum/theme"
)

var helpLines = []string{
	"j/k, arrows     scroll one line",
	"d/u             scroll half page",
	"PgDn/PgUp, spc  scroll full page",
	"g/G, Home/End   top / bottom",
	"f/F, Enter      select / follow link",
	"/               search, n/N next/prev match",
	"n/p             next / previous heading",
	"Tab/Shift-Tab   next / previous file",
	"1-9, :N         jump to file",
	"r               reload file",
	"t               cycle theme",
	"?               this help",
	"q, Esc          quit",
}

// paintHelp centers the keybinding list over the painted frame.
func paintHelp(buf *render.Buffer, th *theme.Theme) {
	w := 0
	for _, l := range helpLines {
		if lw := runewidth.StringWidth(l); lw > w {
			w = lw
		}
	}
	w += 4 // side padding inside the box
	h := len(helpLines) + 2
	if w > buf.W {
		w = buf.W
	}
	if h > buf.H {
		h = buf.H
	}
	x := (buf.W - w) / 2
	y := (buf.H - h) / 2

	st := th.StatusBar
	buf.FillRect(x, y, w, h, ' ', st)
	drawHelpBox(buf, x, y, w, h, th)
	for i, l := range helpLines {
		if y+1+i >= y+h-1 {
			break
		}
		buf.SetString(x+2, y+1+i, l, st, w-4)
	}
}

func drawHelpBox(buf *render.Buffer, x, y, w, h int, th *theme.Theme) {
	st := th.StatusAccent
	for cx := x; cx < x+w; cx++ {
		buf.Set(cx, y, render.Cell{Ch: '─', Style: st})
		buf.Set(cx, y+h-1, render.Cell{Ch: '─', Style: st})
	}
	for cy := y; cy < y+h; cy++ {
		buf.Set(x, cy, render.Cell{Ch: '│', Style: st})
		buf.Set(x+w-1, cy, render.Cell{Ch: '│', Style: st})
	}
	buf.Set(x, y, render.Cell{Ch: '╭', Style: st})
	buf.Set(x+w-1, y, render.Cell{Ch: '╮', Style: st})
	buf.Set(x, y+h-1, render.Cell{Ch: '╰', Style: st})
	buf.Set(x+w-1, y+h-1, render.Cell{Ch: '╯', Style: st})
}
