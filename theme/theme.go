// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/theme.go
// Summary: Resolved style table and terminal capability flags.
// Usage: Resolved once before layout; passed by read-only reference.

// Package theme holds the resolved style table the layout engine and
// renderer consume. Resolution is a flat lookup by element kind: there is
// no cascade, no inheritance chain, and nothing here changes during a
// layout pass.
package theme

import "github.com/vellumview/vellum/ir"

// Style is the visual treatment of a run of cells.
type Style struct {
	FG, BG    Color
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Reverse   bool
}

// Merge overlays the set fields of o onto s. Boolean attributes are OR-ed,
// colors replaced only when o actually sets them.
func (s Style) Merge(o Style) Style {
	if o.FG.IsSet() {
		s.FG = o.FG
	}
	if o.BG.IsSet() {
		s.BG = o.BG
	}
	s.Bold = s.Bold || o.Bold
	s.Italic = s.Italic || o.Italic
	s.Underline = s.Underline || o.Underline
	s.Strike = s.Strike || o.Strike
	s.Reverse = s.Reverse || o.Reverse
	return s
}

// BorderStyle selects a box-drawing glyph set.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderSingle
	BorderDouble
	BorderRounded
	BorderHeavy
	BorderASCII
)

// Capabilities are the terminal feature flags the renderer honors. They are
// resolved before the viewer starts and never change mid-session.
type Capabilities struct {
	Depth      ColorDepth
	BoxDrawing bool
}

// Spacing is the vertical rhythm table, in rows and columns.
type Spacing struct {
	ParagraphAfter int
	HeadingBefore  int
	HeadingAfter   int
	BlockAfter     int // code blocks, quotes, tables, callouts
	QuoteIndent    int
	CodePadding    int
	TablePadding   int
}

// HeadingStyle styles one heading level.
type HeadingStyle struct {
	Style  Style
	Prefix string // literal prefix, e.g. "# " for level echoes
}

// CodeStyle styles fenced code blocks.
type CodeStyle struct {
	Style       Style
	Border      BorderStyle
	ChromaStyle string // chroma style name; empty disables highlighting
}

// QuoteStyle styles block quotes.
type QuoteStyle struct {
	Style Style
	Bar   Style // the gutter bar glyph column
}

// LinkStyle styles hyperlinks.
type LinkStyle struct {
	Style    Style
	Selected Style // overlay applied to the active link
	ShowURL  bool  // append the target in parentheses
}

// TableStyle styles pipe tables.
type TableStyle struct {
	Header Style
	Cell   Style
	Border BorderStyle
}

// CalloutStyle styles one admonition kind.
type CalloutStyle struct {
	Style Style
	Icon  string
}

// Theme is the full resolved style table.
type Theme struct {
	Name string

	Text  Style
	Muted Style

	Heading    [6]HeadingStyle
	Code       CodeStyle
	CodeSpan   Style
	Quote      QuoteStyle
	Link       LinkStyle
	ListMarker Style
	Table      TableStyle
	Rule       Style
	RuleGlyph  rune
	Callout    [5]CalloutStyle

	SearchMatch   Style
	SearchCurrent Style
	StatusBar     Style
	StatusAccent  Style

	Spacing Spacing
}

// HeadingFor returns the style for a heading level, clamping out-of-range
// levels to the nearest defined one.
func (t *Theme) HeadingFor(level int) HeadingStyle {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return t.Heading[level-1]
}

// CalloutFor returns the style for a callout kind.
func (t *Theme) CalloutFor(kind ir.CalloutKind) CalloutStyle {
	if int(kind) < 0 || int(kind) >= len(t.Callout) {
		kind = ir.CalloutNote
	}
	return t.Callout[kind]
}
