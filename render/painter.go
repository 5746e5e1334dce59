// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/painter.go
// Summary: Rasterizes a layout tree into the back buffer through a
// viewport, with selection and search overlays.

package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/vellumview/vellum/ir"
	"github.com/vellumview/vellum/layout"
	"github.com/vellumview/vellum/theme"
)

// State carries the per-frame interactive overlays.
type State struct {
	SelectedLink int // index into tree.Links, or -1
	Matches      []layout.Rect
	CurrentMatch int // index into Matches, or -1
}

// Painter rasterizes layout trees. It caches syntax-highlighted code per
// tree so scrolling does not re-tokenize every frame.
type Painter struct {
	th   *theme.Theme
	caps theme.Capabilities

	cacheTree *layout.Tree
	codeCache map[layout.NodeID][]layout.Line
}

// NewPainter returns a painter for one theme and capability set.
func NewPainter(th *theme.Theme, caps theme.Capabilities) *Painter {
	return &Painter{th: th, caps: caps, codeCache: make(map[layout.NodeID][]layout.Line)}
}

// SetTheme swaps the style table and drops cached highlights.
func (p *Painter) SetTheme(th *theme.Theme) {
	p.th = th
	p.cacheTree = nil
	p.codeCache = make(map[layout.NodeID][]layout.Line)
}

// Paint draws the visible slice of the tree into buf. The buffer's full
// height is content; the status bar lives outside it.
func (p *Painter) Paint(buf *Buffer, tree *layout.Tree, vp layout.Viewport, st State) {
	if tree != p.cacheTree {
		p.cacheTree = tree
		p.codeCache = make(map[layout.NodeID][]layout.Line)
	}
	buf.Clear(p.th.Text)

	visible := vp.Visible()
	tree.Walk(func(n *layout.Node) bool {
		if !n.Rect.Intersects(visible) {
			return n.Kind == layout.KindDocument
		}
		p.paintNode(buf, tree, n, vp.Offset)
		return true
	})

	p.overlays(buf, tree, vp, st)
}

func (p *Painter) paintNode(buf *Buffer, tree *layout.Tree, n *layout.Node, offset int) {
	switch n.Kind {
	case layout.KindHeading:
		p.paintLines(buf, n.Lines, n.Content.X, n.Content.Y-offset)
	case layout.KindParagraph:
		p.paintLines(buf, n.Lines, n.Content.X, n.Content.Y-offset)
	case layout.KindCode:
		p.paintCode(buf, n, offset)
	case layout.KindQuote:
		p.paintQuoteBar(buf, n, offset)
	case layout.KindListItem:
		if n.Marker != "" {
			buf.SetString(n.Rect.X, n.Rect.Y-offset, n.Marker, p.th.ListMarker, n.Content.X-n.Rect.X)
		}
	case layout.KindTable:
		p.paintTableGrid(buf, tree, n, offset)
	case layout.KindTableCell:
		p.paintCell(buf, n, offset)
	case layout.KindRule:
		p.paintRule(buf, n, offset)
	case layout.KindCallout:
		p.paintCallout(buf, n, offset)
	}
}

func (p *Painter) paintLines(buf *Buffer, lines []layout.Line, x, y int) {
	for row, ln := range lines {
		cx := x
		for _, seg := range ln.Segments {
			cx += buf.SetString(cx, y+row, seg.Text, seg.Style, buf.W-cx)
		}
	}
}

func (p *Painter) paintCode(buf *Buffer, n *layout.Node, offset int) {
	cs := p.th.Code
	st := cs.Style
	buf.FillRect(n.Rect.X, n.Rect.Y-offset, n.Rect.W, n.Rect.H, ' ', st)
	if cs.Border != theme.BorderNone {
		g := glyphsFor(cs.Border, p.caps)
		drawBox(buf, n.Rect.X, n.Rect.Y-offset, n.Rect.W, n.Rect.H, g, st)
		if n.Lang != "" {
			label := " " + n.Lang + " "
			buf.SetString(n.Rect.X+2, n.Rect.Y-offset, label, p.th.Muted, n.Rect.W-4)
		}
	}

	lines, ok := p.codeCache[n.ID]
	if !ok {
		lines = highlightCode(n.Lang, n.CodeLines, cs.ChromaStyle, st)
		p.codeCache[n.ID] = lines
	}
	for row, ln := range lines {
		cx := n.Content.X
		limit := n.Content.X + n.Content.W
		for _, seg := range ln.Segments {
			if cx >= limit {
				break
			}
			cx += buf.SetString(cx, n.Content.Y-offset+row, seg.Text, seg.Style, limit-cx)
		}
	}
}

func (p *Painter) paintQuoteBar(buf *Buffer, n *layout.Node, offset int) {
	bar := '│'
	if !p.caps.BoxDrawing {
		bar = '>'
	}
	for row := 0; row < n.Rect.H; row++ {
		buf.Set(n.Rect.X, n.Rect.Y-offset+row, Cell{Ch: bar, Style: p.th.Quote.Bar})
	}
}

func (p *Painter) paintTableGrid(buf *Buffer, tree *layout.Tree, n *layout.Node, offset int) {
	ts := p.th.Table
	if ts.Border == theme.BorderNone {
		return
	}
	g := glyphsFor(ts.Border, p.caps)
	st := ts.Cell
	x, y := n.Rect.X, n.Rect.Y-offset
	w, h := n.Rect.W, n.Rect.H

	// column boundary offsets within the grid, outer edges excluded
	var bounds []int
	cx := 0
	for _, cw := range n.ColWidths[:len(n.ColWidths)-1] {
		cx += cw + 1
		bounds = append(bounds, cx)
	}

	hline := func(row int, left, mid, right rune) {
		buf.Set(x, row, Cell{Ch: left, Style: st})
		for i := 1; i < w-1; i++ {
			buf.Set(x+i, row, Cell{Ch: g.H, Style: st})
		}
		for _, bx := range bounds {
			buf.Set(x+bx, row, Cell{Ch: mid, Style: st})
		}
		buf.Set(x+w-1, row, Cell{Ch: right, Style: st})
	}

	hline(y, g.TL, g.TeeT, g.TR)
	hline(y+h-1, g.BL, g.TeeB, g.BR)
	if len(n.Children) > 0 {
		header := tree.Node(n.Children[0])
		hline(header.Rect.Y+header.Rect.H-offset, g.TeeL, g.Cross, g.TeeR)
	}

	// vertical bars alongside every content row
	for _, cid := range n.Children {
		r := tree.Node(cid)
		for ry := 0; ry < r.Rect.H; ry++ {
			row := r.Rect.Y - offset + ry
			buf.Set(x, row, Cell{Ch: g.V, Style: st})
			for _, bx := range bounds {
				buf.Set(x+bx, row, Cell{Ch: g.V, Style: st})
			}
			buf.Set(x+w-1, row, Cell{Ch: g.V, Style: st})
		}
	}
}

func (p *Painter) paintCell(buf *Buffer, n *layout.Node, offset int) {
	al := layoutAlign(n)
	for row, ln := range n.Lines {
		lw := ln.Width()
		cx := n.Content.X
		switch al {
		case 2: // right
			cx += n.Content.W - lw
		case 1: // center
			cx += (n.Content.W - lw) / 2
		}
		if cx < n.Content.X {
			cx = n.Content.X
		}
		limit := n.Content.X + n.Content.W
		for _, seg := range ln.Segments {
			if cx >= limit {
				break
			}
			text := seg.Text
			if cx+seg.Width() > limit {
				text = truncateEllipsis(text, limit-cx)
			}
			cx += buf.SetString(cx, n.Content.Y-offset+row, text, seg.Style, limit-cx)
		}
	}
}

func layoutAlign(n *layout.Node) int {
	if len(n.Align) == 0 {
		return 0
	}
	switch n.Align[0] {
	case ir.AlignRight:
		return 2
	case ir.AlignCenter:
		return 1
	}
	return 0
}

// truncateEllipsis clips text to maxW display cells, ending in an
// ellipsis when anything was cut. Wide runes count their full width.
func truncateEllipsis(s string, maxW int) string {
	if maxW < 1 {
		return ""
	}
	return runewidth.Truncate(s, maxW, "…")
}

func (p *Painter) paintRule(buf *Buffer, n *layout.Node, offset int) {
	glyph := p.th.RuleGlyph
	if glyph == 0 {
		glyph = '─'
	}
	if !p.caps.BoxDrawing {
		glyph = '-'
	}
	buf.FillRect(n.Rect.X, n.Rect.Y-offset, n.Rect.W, 1, glyph, p.th.Rule)
}

func (p *Painter) paintCallout(buf *Buffer, n *layout.Node, offset int) {
	cs := p.th.CalloutFor(n.Callout)
	bar := '┃'
	if !p.caps.BoxDrawing {
		bar = '|'
	}
	for row := 0; row < n.Rect.H; row++ {
		buf.Set(n.Rect.X, n.Rect.Y-offset+row, Cell{Ch: bar, Style: cs.Style})
	}
	title := cs.Style
	title.Bold = true
	buf.SetString(n.Rect.X+2, n.Rect.Y-offset, n.CalloutTitle, title, n.Rect.W-2)
}

// overlays re-styles link selection and search match cells on top of the
// painted content.
func (p *Painter) overlays(buf *Buffer, tree *layout.Tree, vp layout.Viewport, st State) {
	if st.SelectedLink >= 0 && st.SelectedLink < len(tree.Links) {
		for _, r := range tree.Links[st.SelectedLink].Rects {
			p.restyle(buf, r, vp.Offset, p.th.Link.Selected)
		}
	}
	for i, r := range st.Matches {
		ov := p.th.SearchMatch
		if i == st.CurrentMatch {
			ov = p.th.SearchCurrent
		}
		p.restyle(buf, r, vp.Offset, ov)
	}
}

func (p *Painter) restyle(buf *Buffer, r layout.Rect, offset int, ov theme.Style) {
	for row := 0; row < r.H; row++ {
		y := r.Y - offset + row
		if y < 0 || y >= buf.H {
			continue
		}
		for col := 0; col < r.W; col++ {
			c := buf.At(r.X+col, y)
			c.Style = c.Style.Merge(ov)
			buf.Set(r.X+col, y, c)
		}
	}
}
