// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/types.go
// Summary: Layout tree arena, rectangles, and wrapped-line types.
// Usage: Produced by Build; immutable afterwards. Any document, style, or
// width change builds a new tree.

// Package layout turns a document tree plus a resolved style table into
// absolute character-grid geometry: a positioned node tree, wrapped styled
// lines, and a hit-region index for interactive elements.
package layout

import (
	"github.com/mattn/go-runewidth"

	"github.com/vellumview/vellum/ir"
	"github.com/vellumview/vellum/theme"
)

// NodeID addresses a node inside its tree's arena.
type NodeID int

// NoNode is the null node id.
const NoNode NodeID = -1

// Rect is a rectangle in character-grid coordinates, origin top-left.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Area returns the cell count covered by the rectangle.
func (r Rect) Area() int { return r.W * r.H }

// Kind tags the layout node variant. The set is closed; every phase
// switches exhaustively over it.
type Kind int

const (
	KindDocument Kind = iota
	KindHeading
	KindParagraph
	KindCode
	KindQuote
	KindList
	KindListItem
	KindTable
	KindTableRow
	KindTableCell
	KindRule
	KindCallout
)

// Node is one positioned element. Nodes live in the tree's flat arena and
// refer to children by id, keeping construction cheap and traversal
// cache-friendly.
type Node struct {
	ID       NodeID
	Kind     Kind
	Rect     Rect // outer rectangle including border and padding
	Content  Rect // inner rectangle text is placed in
	Children []NodeID

	Lines []Line // wrapped content for text-bearing nodes

	// kind-specific payload
	Level        int    // heading level
	Anchor       string // heading anchor id
	Lang         string // code block language hint
	CodeLines    []string
	Marker       string // list item marker, empty when suppressed
	Task         ir.TaskState
	Ordered      bool // list
	Header       bool // table row
	ColWidths    []int
	Align        []ir.Alignment
	Callout      ir.CalloutKind
	CalloutTitle string
}

// Tree is the positioned layout of one document at one width. It is never
// mutated after Build returns.
type Tree struct {
	nodes []Node

	Root   NodeID
	Width  int
	Height int // total content height in rows

	Regions []Region
	Links   []Link
	Anchors map[string]int // anchor id -> document row
}

// Node returns the arena node for an id. The pointer is only valid while
// the tree is alive and must not be retained across rebuilds.
func (t *Tree) Node(id NodeID) *Node { return &t.nodes[id] }

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

// Walk visits ids depth-first in document order, starting at root.
func (t *Tree) Walk(visit func(*Node) bool) {
	if len(t.nodes) == 0 {
		return
	}
	t.walk(t.Root, visit)
}

func (t *Tree) walk(id NodeID, visit func(*Node) bool) bool {
	n := t.Node(id)
	if !visit(n) {
		return false
	}
	for _, c := range n.Children {
		if !t.walk(c, visit) {
			return false
		}
	}
	return true
}

func (t *Tree) alloc(n Node) NodeID {
	id := NodeID(len(t.nodes))
	n.ID = id
	t.nodes = append(t.nodes, n)
	return id
}

// Segment is a run of text sharing one style within a line.
type Segment struct {
	Text  string
	Style theme.Style
	// LinkIndex is the ordinal of the link occurrence this segment belongs
	// to (an index into Tree.Links), or -1.
	LinkIndex int
}

// Width returns the display width of the segment in cells.
func (s Segment) Width() int { return runewidth.StringWidth(s.Text) }

// Line is one wrapped row of styled segments.
type Line struct {
	Segments []Segment
}

// Width returns the display width of the whole line.
func (l Line) Width() int {
	w := 0
	for _, s := range l.Segments {
		w += s.Width()
	}
	return w
}

// Plain returns the unstyled text of the line.
func (l Line) Plain() string {
	var out []byte
	for _, s := range l.Segments {
		out = append(out, s.Text...)
	}
	return string(out)
}

// Link is one logical hyperlink occurrence. A link wrapped across lines
// owns one rectangle per wrapped run.
type Link struct {
	URL   string
	Text  string
	Row   int // first document row, set when the first run is placed
	Rects []Rect
}

// Internal reports whether the link targets an anchor in the same document.
func (l Link) Internal() bool { return len(l.URL) > 0 && l.URL[0] == '#' }
