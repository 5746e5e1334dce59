// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/builder.go
// Summary: Single-pass layout build from document blocks to positioned
// nodes with a running row cursor.

package layout

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/vellumview/vellum/ir"
	"github.com/vellumview/vellum/theme"
)

type builder struct {
	t  *Tree
	th *theme.Theme

	slugSeen map[string]int
}

// Build lays out a document at the given width and returns the positioned
// tree. The build is deterministic: the same document, theme, and width
// always yield the same tree.
func Build(doc *ir.Document, th *theme.Theme, width int) *Tree {
	if width < 1 {
		width = 1
	}
	t := &Tree{
		Width:   width,
		Anchors: make(map[string]int),
	}
	b := &builder{t: t, th: th, slugSeen: make(map[string]int)}

	t.Root = t.alloc(Node{Kind: KindDocument})
	ids, bottom := b.layoutBlocks(doc.Blocks, 0, 0, width, false)

	root := t.Node(t.Root)
	root.Children = ids
	root.Rect = Rect{X: 0, Y: 0, W: width, H: bottom}
	root.Content = root.Rect
	t.Height = bottom
	return t
}

// layoutBlocks stacks blocks downward from y. It returns the child ids and
// the bottom extent (the first row below the last block, margins excluded).
// Tight stacking drops all inter-block margins; list items use it.
func (b *builder) layoutBlocks(blocks []ir.Block, x, y, w int, tight bool) ([]NodeID, int) {
	var ids []NodeID
	cursor := y
	bottom := y

	for _, blk := range blocks {
		if !tight && cursor > y {
			cursor += b.marginBefore(blk)
		}
		id := b.layoutBlock(blk, x, cursor, w)
		if id == NoNode {
			continue
		}
		ids = append(ids, id)
		n := b.t.Node(id)
		end := n.Rect.Y + n.Rect.H
		if end > bottom {
			bottom = end
		}
		cursor = end
		if !tight {
			cursor += b.marginAfter(blk)
		}
	}
	return ids, bottom
}

func (b *builder) marginBefore(blk ir.Block) int {
	if _, ok := blk.(*ir.Heading); ok {
		return b.th.Spacing.HeadingBefore
	}
	return 0
}

func (b *builder) marginAfter(blk ir.Block) int {
	sp := b.th.Spacing
	switch blk.(type) {
	case *ir.Heading:
		return sp.HeadingAfter
	case *ir.Paragraph:
		return sp.ParagraphAfter
	case *ir.CodeBlock, *ir.BlockQuote, *ir.Table, *ir.Callout, *ir.Rule:
		return sp.BlockAfter
	case *ir.List:
		// list items carry their own rhythm; the list ends flush
		return sp.BlockAfter
	}
	return 0
}

func (b *builder) layoutBlock(blk ir.Block, x, y, w int) NodeID {
	switch v := blk.(type) {
	case *ir.Heading:
		return b.layoutHeading(v, x, y, w)
	case *ir.Paragraph:
		return b.layoutParagraph(v, x, y, w)
	case *ir.CodeBlock:
		return b.layoutCode(v, x, y, w)
	case *ir.BlockQuote:
		return b.layoutQuote(v, x, y, w)
	case *ir.List:
		return b.layoutList(v, x, y, w)
	case *ir.Table:
		return b.layoutTable(v, x, y, w)
	case *ir.Rule:
		return b.layoutRule(x, y, w)
	case *ir.Callout:
		return b.layoutCallout(v, x, y, w)
	}
	return NoNode
}

func (b *builder) layoutHeading(h *ir.Heading, x, y, w int) NodeID {
	hs := b.th.HeadingFor(h.Level)
	prefixW := runewidth.StringWidth(hs.Prefix)
	lines := b.flow(h.Content, max(w-prefixW, 1), hs.Style)
	if len(lines) == 0 {
		lines = []Line{{}}
	}
	if prefixW > 0 {
		for i := range lines {
			text := hs.Prefix
			if i > 0 {
				text = strings.Repeat(" ", prefixW)
			}
			lines[i].Segments = append([]Segment{{
				Text:      text,
				Style:     hs.Style,
				LinkIndex: -1,
			}}, lines[i].Segments...)
		}
	}

	anchor := b.slug(ir.PlainText(h.Content))
	b.t.Anchors[anchor] = y

	rect := Rect{X: x, Y: y, W: w, H: len(lines)}
	id := b.t.alloc(Node{
		Kind:    KindHeading,
		Rect:    rect,
		Content: rect,
		Lines:   lines,
		Level:   h.Level,
		Anchor:  anchor,
	})
	b.t.Regions = append(b.t.Regions, Region{
		Rect:   rect,
		Kind:   RegionHeading,
		Link:   -1,
		Anchor: anchor,
		Level:  h.Level,
	})
	b.placeLines(lines, x, y)
	return id
}

// slug derives a stable anchor id from heading text: lowercased, spaces
// collapsed to hyphens, punctuation dropped, duplicates suffixed -1, -2.
func (b *builder) slug(text string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			sb.WriteByte('-')
		}
	}
	s := sb.String()
	if s == "" {
		s = "section"
	}
	n := b.slugSeen[s]
	b.slugSeen[s] = n + 1
	if n > 0 {
		s = fmt.Sprintf("%s-%d", s, n)
	}
	return s
}

func (b *builder) layoutParagraph(p *ir.Paragraph, x, y, w int) NodeID {
	lines := b.flow(p.Content, w, b.th.Text)
	if len(lines) == 0 {
		lines = []Line{{}}
	}
	rect := Rect{X: x, Y: y, W: w, H: len(lines)}
	id := b.t.alloc(Node{
		Kind:    KindParagraph,
		Rect:    rect,
		Content: rect,
		Lines:   lines,
	})
	b.placeLines(lines, x, y)
	return id
}

func (b *builder) layoutCode(c *ir.CodeBlock, x, y, w int) NodeID {
	code := strings.TrimRight(c.Code, "\n")
	codeLines := strings.Split(code, "\n")

	inset := 0
	if b.th.Code.Border != theme.BorderNone {
		inset = 1
	}
	pad := b.th.Spacing.CodePadding

	rect := Rect{X: x, Y: y, W: w, H: len(codeLines) + 2*inset}
	content := Rect{
		X: x + inset + pad,
		Y: y + inset,
		W: max(w-2*(inset+pad), 1),
		H: len(codeLines),
	}
	id := b.t.alloc(Node{
		Kind:      KindCode,
		Rect:      rect,
		Content:   content,
		Lang:      c.Lang,
		CodeLines: codeLines,
	})
	b.t.Regions = append(b.t.Regions, Region{
		Rect: rect,
		Kind: RegionCode,
		Link: -1,
		Lang: c.Lang,
	})
	return id
}

func (b *builder) layoutQuote(q *ir.BlockQuote, x, y, w int) NodeID {
	indent := b.th.Spacing.QuoteIndent
	ids, bottom := b.layoutBlocks(q.Blocks, x+indent, y, max(w-indent, 1), false)
	h := bottom - y
	if h < 1 {
		h = 1
	}
	rect := Rect{X: x, Y: y, W: w, H: h}
	return b.t.alloc(Node{
		Kind:     KindQuote,
		Rect:     rect,
		Content:  Rect{X: x + indent, Y: y, W: max(w-indent, 1), H: h},
		Children: ids,
	})
}

func (b *builder) layoutList(l *ir.List, x, y, w int) NodeID {
	markerW := b.markerWidth(l)
	contentX := x + markerW + 1
	contentW := max(w-markerW-1, 1)

	var items []NodeID
	cursor := y
	for i := range l.Items {
		item := &l.Items[i]
		marker := b.itemMarker(l, item, i)

		var ids []NodeID
		bottom := cursor
		if len(item.Blocks) > 0 {
			ids, bottom = b.layoutBlocks(item.Blocks, contentX, cursor, contentW, true)
		}
		h := bottom - cursor
		if h < 1 {
			h = 1
		}
		id := b.t.alloc(Node{
			Kind:     KindListItem,
			Rect:     Rect{X: x, Y: cursor, W: w, H: h},
			Content:  Rect{X: contentX, Y: cursor, W: contentW, H: h},
			Children: ids,
			Marker:   marker,
			Task:     item.Task,
		})
		items = append(items, id)
		cursor += h
	}

	h := cursor - y
	if h < 1 {
		h = 1
	}
	rect := Rect{X: x, Y: y, W: w, H: h}
	return b.t.alloc(Node{
		Kind:     KindList,
		Rect:     rect,
		Content:  rect,
		Children: items,
		Ordered:  l.Ordered,
	})
}

// markerWidth returns the shared marker column width for a list: every
// item's content starts at the same x so wrapped lines align.
func (b *builder) markerWidth(l *ir.List) int {
	w := 1 // bullet
	if l.Ordered {
		last := fmt.Sprintf("%d.", l.Start+len(l.Items)-1)
		w = len(last)
	}
	for i := range l.Items {
		if l.Items[i].Task != ir.TaskNone && w < 3 {
			w = 3 // "[x]"
		}
	}
	return w
}

// itemMarker returns the marker glyph for one item. An item whose content
// is itself a list gets no marker of its own; only the nested items show.
func (b *builder) itemMarker(l *ir.List, item *ir.ListItem, i int) string {
	if len(item.Blocks) > 0 {
		if _, nested := item.Blocks[0].(*ir.List); nested {
			return ""
		}
	}
	switch {
	case item.Task == ir.TaskDone:
		return "[x]"
	case item.Task == ir.TaskOpen:
		return "[ ]"
	case l.Ordered:
		return fmt.Sprintf("%d.", l.Start+i)
	default:
		return "•"
	}
}

func (b *builder) layoutTable(tb *ir.Table, x, y, w int) NodeID {
	ncols := len(tb.Header)
	if ncols == 0 {
		return NoNode
	}
	pad := b.th.Spacing.TablePadding
	bordered := b.th.Table.Border != theme.BorderNone
	overhead := 0
	if bordered {
		overhead = ncols + 1
	}

	intrinsic := intrinsicWidths(tb.Header, tb.Rows, pad)
	cols := distributeColumns(intrinsic, nil, max(w-overhead, ncols*minColumnWidth))

	gridW := overhead
	for _, c := range cols {
		gridW += c
	}

	cursor := y
	if bordered {
		cursor++ // top border
	}
	var rows []NodeID
	id, h := b.layoutTableRow(tb.Header, tb.Align, cols, pad, bordered, x, cursor, true)
	rows = append(rows, id)
	cursor += h
	if bordered {
		cursor++ // header separator
	}
	for _, r := range tb.Rows {
		id, h = b.layoutTableRow(r, tb.Align, cols, pad, bordered, x, cursor, false)
		rows = append(rows, id)
		cursor += h
	}
	if bordered {
		cursor++ // bottom border
	}

	rect := Rect{X: x, Y: y, W: gridW, H: cursor - y}
	return b.t.alloc(Node{
		Kind:      KindTable,
		Rect:      rect,
		Content:   rect,
		Children:  rows,
		ColWidths: cols,
		Align:     tb.Align,
	})
}

func (b *builder) layoutTableRow(cells []ir.TableCell, align []ir.Alignment, cols []int, pad int, bordered bool, x, y int, header bool) (NodeID, int) {
	base := b.th.Table.Cell
	if header {
		base = b.th.Table.Header
	}

	cx := x
	if bordered {
		cx++
	}
	type placed struct {
		rect    Rect
		content Rect
		lines   []Line
		al      ir.Alignment
	}
	laid := make([]placed, len(cols))
	rowH := 1
	for i, colW := range cols {
		var content []ir.Inline
		if i < len(cells) {
			content = cells[i].Content
		}
		cw := max(colW-2*pad, 1)
		lines := b.flow(content, cw, base)
		if len(lines) > rowH {
			rowH = len(lines)
		}
		al := ir.AlignNone
		if i < len(align) {
			al = align[i]
		}
		laid[i] = placed{
			rect:    Rect{X: cx, Y: y, W: colW},
			content: Rect{X: cx + pad, Y: y, W: cw},
			lines:   lines,
			al:      al,
		}
		cx += colW
		if bordered {
			cx++
		}
	}

	var ids []NodeID
	for _, p := range laid {
		p.rect.H = rowH
		p.content.H = rowH
		ids = append(ids, b.t.alloc(Node{
			Kind:    KindTableCell,
			Rect:    p.rect,
			Content: p.content,
			Lines:   p.lines,
			Align:   []ir.Alignment{p.al},
		}))
		b.placeLines(p.lines, p.content.X, y)
	}

	rect := Rect{X: x, Y: y, W: cx - x, H: rowH}
	id := b.t.alloc(Node{
		Kind:     KindTableRow,
		Rect:     rect,
		Content:  rect,
		Children: ids,
		Header:   header,
	})
	return id, rowH
}

func (b *builder) layoutRule(x, y, w int) NodeID {
	rect := Rect{X: x, Y: y, W: w, H: 1}
	return b.t.alloc(Node{Kind: KindRule, Rect: rect, Content: rect})
}

func (b *builder) layoutCallout(c *ir.Callout, x, y, w int) NodeID {
	cs := b.th.CalloutFor(c.Kind)
	title := c.Title
	if title == "" {
		title = c.Kind.String()
	}
	if cs.Icon != "" {
		title = cs.Icon + " " + title
	}

	const indent = 2
	ids, bottom := b.layoutBlocks(c.Blocks, x+indent, y+1, max(w-indent, 1), false)
	h := bottom - y
	if h < 1 {
		h = 1
	}
	rect := Rect{X: x, Y: y, W: w, H: h}
	return b.t.alloc(Node{
		Kind:         KindCallout,
		Rect:         rect,
		Content:      Rect{X: x + indent, Y: y + 1, W: max(w-indent, 1), H: h - 1},
		Children:     ids,
		Callout:      c.Kind,
		CalloutTitle: title,
	})
}

// placeLines records hit rectangles for every link run in the given lines,
// which start at (x, y) in document space.
func (b *builder) placeLines(lines []Line, x, y int) {
	for row, ln := range lines {
		cx := x
		for _, seg := range ln.Segments {
			sw := seg.Width()
			if seg.LinkIndex >= 0 && sw > 0 {
				lk := &b.t.Links[seg.LinkIndex]
				r := Rect{X: cx, Y: y + row, W: sw, H: 1}
				if len(lk.Rects) == 0 {
					lk.Row = r.Y
				}
				lk.Rects = append(lk.Rects, r)
				b.t.Regions = append(b.t.Regions, Region{
					Rect: r,
					Kind: RegionLink,
					URL:  lk.URL,
					Link: seg.LinkIndex,
				})
			}
			cx += sw
		}
	}
}
