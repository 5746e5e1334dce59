// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ir/ir.go
// Summary: Semantic document tree emitted by the Markdown parser.
// Usage: Read-only input to the layout engine; never mutated after parse.

// Package ir defines the intermediate representation for parsed documents.
// The tree is semantic rather than visual: it records document structure
// (headings, lists, tables) and leaves all sizing and styling decisions to
// the layout engine and theme.
package ir

import "strings"

// Document is the top-level parse result.
type Document struct {
	Meta   Metadata
	Blocks []Block
}

// Metadata carries the document title and raw frontmatter pairs.
type Metadata struct {
	Title       string
	Frontmatter map[string]string
}

// Block is a vertical, stacking element. The variant set is closed; layout
// and rendering switch exhaustively over the concrete types.
type Block interface {
	block()
}

// Inline is a horizontally flowing element inside a block.
type Inline interface {
	inline()
}

// Heading is a section heading, level 1-6.
type Heading struct {
	Level   int
	Content []Inline
}

// Paragraph is a run of inline content wrapped to the available width.
type Paragraph struct {
	Content []Inline
}

// CodeBlock is a fenced or indented code block. Lang is the fence hint and
// may be empty.
type CodeBlock struct {
	Lang string
	Code string
}

// BlockQuote nests blocks one indent level deeper.
type BlockQuote struct {
	Blocks []Block
}

// List contains ordered or unordered items. Start is the first ordinal of
// an ordered list (usually 1).
type List struct {
	Ordered bool
	Start   int
	Items   []ListItem
}

// TaskState records the checkbox state of a task-list item.
type TaskState int

const (
	TaskNone TaskState = iota
	TaskOpen
	TaskDone
)

// ListItem holds the block content of a single list item.
type ListItem struct {
	Blocks []Block
	Task   TaskState
}

// Table is a pipe table. Every row has the same cell count as the header;
// the parser pads or truncates ragged rows before the table reaches layout.
type Table struct {
	Header []TableCell
	Rows   [][]TableCell
	Align  []Alignment
}

// TableCell holds the inline content of a single cell.
type TableCell struct {
	Content []Inline
}

// Alignment is the per-column alignment hint from the delimiter row.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Rule is a horizontal rule.
type Rule struct{}

// CalloutKind identifies a GitHub-style admonition.
type CalloutKind int

const (
	CalloutNote CalloutKind = iota
	CalloutTip
	CalloutImportant
	CalloutWarning
	CalloutCaution
)

// Callout is an admonition block: a block quote whose first line carries a
// marker such as [!NOTE].
type Callout struct {
	Kind   CalloutKind
	Title  string
	Blocks []Block
}

func (*Heading) block()    {}
func (*Paragraph) block()  {}
func (*CodeBlock) block()  {}
func (*BlockQuote) block() {}
func (*List) block()       {}
func (*Table) block()      {}
func (*Rule) block()       {}
func (*Callout) block()    {}

// Text is a plain text run.
type Text struct {
	Text string
}

// Strong is semantic bold.
type Strong struct {
	Content []Inline
}

// Emphasis is semantic italic.
type Emphasis struct {
	Content []Inline
}

// Strike is struck-through text.
type Strike struct {
	Content []Inline
}

// CodeSpan is inline code.
type CodeSpan struct {
	Code string
}

// Link is a hyperlink. Targets beginning with '#' refer to headings in the
// same document.
type Link struct {
	URL     string
	Title   string
	Content []Inline
}

// Image is an image reference; the viewer renders a styled placeholder.
type Image struct {
	URL   string
	Alt   string
	Title string
}

// LineBreak is a hard break.
type LineBreak struct{}

// SoftBreak is a source line ending inside a paragraph.
type SoftBreak struct{}

func (*Text) inline()      {}
func (*Strong) inline()    {}
func (*Emphasis) inline()  {}
func (*Strike) inline()    {}
func (*CodeSpan) inline()  {}
func (*Link) inline()      {}
func (*Image) inline()     {}
func (*LineBreak) inline() {}
func (*SoftBreak) inline() {}

// PlainText flattens inline content to its unstyled text.
func PlainText(inlines []Inline) string {
	var sb strings.Builder
	writePlain(&sb, inlines)
	return sb.String()
}

func writePlain(sb *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch v := in.(type) {
		case *Text:
			sb.WriteString(v.Text)
		case *Strong:
			writePlain(sb, v.Content)
		case *Emphasis:
			writePlain(sb, v.Content)
		case *Strike:
			writePlain(sb, v.Content)
		case *CodeSpan:
			sb.WriteString(v.Code)
		case *Link:
			writePlain(sb, v.Content)
		case *Image:
			sb.WriteString(v.Alt)
		case *LineBreak:
			sb.WriteByte('\n')
		case *SoftBreak:
			sb.WriteByte(' ')
		}
	}
}

// CalloutKindFromMarker maps a marker word (NOTE, TIP, ...) to its kind.
// The second result reports whether the marker was recognised.
func CalloutKindFromMarker(marker string) (CalloutKind, bool) {
	switch strings.ToUpper(marker) {
	case "NOTE":
		return CalloutNote, true
	case "TIP":
		return CalloutTip, true
	case "IMPORTANT":
		return CalloutImportant, true
	case "WARNING":
		return CalloutWarning, true
	case "CAUTION":
		return CalloutCaution, true
	}
	return CalloutNote, false
}

// String returns the canonical display word for the callout kind.
func (k CalloutKind) String() string {
	switch k {
	case CalloutTip:
		return "Tip"
	case CalloutImportant:
		return "Important"
	case CalloutWarning:
		return "Warning"
	case CalloutCaution:
		return "Caution"
	default:
		return "Note"
	}
}
