// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/builtin.go
// Summary: Built-in themes shipped with the viewer.

package theme

import "sort"

// Builtin returns the named built-in theme, or nil if unknown.
func Builtin(name string) *Theme {
	switch name {
	case "docs":
		return docsTheme()
	case "mono":
		return monoTheme()
	case "slate":
		return slateTheme()
	}
	return nil
}

// BuiltinNames lists built-in theme names in stable order.
func BuiltinNames() []string {
	names := []string{"docs", "mono", "slate"}
	sort.Strings(names)
	return names
}

func defaultSpacing() Spacing {
	return Spacing{
		ParagraphAfter: 1,
		HeadingBefore:  1,
		HeadingAfter:   1,
		BlockAfter:     1,
		QuoteIndent:    2,
		CodePadding:    1,
		TablePadding:   1,
	}
}

// docsTheme is the default: a readable documentation palette.
func docsTheme() *Theme {
	t := &Theme{
		Name:      "docs",
		Text:      Style{},
		Muted:     Style{FG: ANSI256(244)},
		CodeSpan:  Style{FG: RGB(0xd7, 0x87, 0x00), BG: ANSI256(236)},
		Rule:      Style{FG: ANSI256(240)},
		RuleGlyph: '─',
		ListMarker: Style{
			FG:   RGB(0x5f, 0xaf, 0xff),
			Bold: true,
		},
		Quote: QuoteStyle{
			Style: Style{FG: ANSI256(250), Italic: true},
			Bar:   Style{FG: RGB(0x5f, 0x87, 0xaf)},
		},
		Link: LinkStyle{
			Style:    Style{FG: RGB(0x5f, 0xaf, 0xff), Underline: true},
			Selected: Style{Reverse: true},
			ShowURL:  false,
		},
		Code: CodeStyle{
			Style:       Style{FG: ANSI256(252), BG: ANSI256(235)},
			Border:      BorderRounded,
			ChromaStyle: "monokai",
		},
		Table: TableStyle{
			Header: Style{Bold: true},
			Cell:   Style{},
			Border: BorderSingle,
		},
		SearchMatch:   Style{BG: ANSI256(58)},
		SearchCurrent: Style{BG: ANSI256(130), Bold: true},
		StatusBar:     Style{FG: ANSI256(252), BG: ANSI256(237)},
		StatusAccent:  Style{FG: RGB(0x5f, 0xaf, 0xff), BG: ANSI256(237), Bold: true},
		Spacing:       defaultSpacing(),
	}
	heads := [6]Style{
		{FG: RGB(0xff, 0xaf, 0x5f), Bold: true, Underline: true},
		{FG: RGB(0xff, 0xaf, 0x5f), Bold: true},
		{FG: RGB(0xd7, 0xaf, 0x5f), Bold: true},
		{FG: RGB(0xd7, 0xaf, 0x87), Bold: true},
		{FG: RGB(0xd7, 0xaf, 0x87)},
		{FG: ANSI256(247), Italic: true},
	}
	for i, s := range heads {
		t.Heading[i] = HeadingStyle{Style: s}
	}
	t.Callout = [5]CalloutStyle{
		{Style: Style{FG: RGB(0x58, 0xa6, 0xff)}, Icon: "ℹ"},
		{Style: Style{FG: RGB(0x3f, 0xb9, 0x50)}, Icon: "💡"},
		{Style: Style{FG: RGB(0xa3, 0x71, 0xf7)}, Icon: "❗"},
		{Style: Style{FG: RGB(0xd2, 0x99, 0x22)}, Icon: "⚠"},
		{Style: Style{FG: RGB(0xf8, 0x51, 0x49)}, Icon: "⛔"},
	}
	return t
}

// monoTheme avoids color entirely; attributes only. Useful on dumb
// terminals and as the DepthMono reference.
func monoTheme() *Theme {
	t := &Theme{
		Name:       "mono",
		Muted:      Style{},
		CodeSpan:   Style{Reverse: true},
		Rule:       Style{},
		RuleGlyph:  '-',
		ListMarker: Style{Bold: true},
		Quote:      QuoteStyle{Style: Style{Italic: true}, Bar: Style{}},
		Link:       LinkStyle{Style: Style{Underline: true}, Selected: Style{Reverse: true}, ShowURL: true},
		Code:       CodeStyle{Style: Style{}, Border: BorderASCII},
		Table:      TableStyle{Header: Style{Bold: true}, Border: BorderASCII},
		SearchMatch:   Style{Underline: true},
		SearchCurrent: Style{Reverse: true},
		StatusBar:     Style{Reverse: true},
		StatusAccent:  Style{Reverse: true, Bold: true},
		Spacing:       defaultSpacing(),
	}
	for i := range t.Heading {
		t.Heading[i] = HeadingStyle{Style: Style{Bold: true}}
	}
	t.Heading[0].Style.Underline = true
	for i := range t.Callout {
		t.Callout[i] = CalloutStyle{Style: Style{Bold: true}, Icon: "!"}
	}
	return t
}

// slateTheme is a cooler, low-contrast palette.
func slateTheme() *Theme {
	t := docsTheme()
	t.Name = "slate"
	heads := [6]Style{
		{FG: RGB(0x8f, 0xbc, 0xbb), Bold: true, Underline: true},
		{FG: RGB(0x8f, 0xbc, 0xbb), Bold: true},
		{FG: RGB(0x88, 0xc0, 0xd0), Bold: true},
		{FG: RGB(0x81, 0xa1, 0xc1), Bold: true},
		{FG: RGB(0x81, 0xa1, 0xc1)},
		{FG: ANSI256(246), Italic: true},
	}
	for i, s := range heads {
		t.Heading[i] = HeadingStyle{Style: s}
	}
	t.Link.Style = Style{FG: RGB(0x88, 0xc0, 0xd0), Underline: true}
	t.ListMarker = Style{FG: RGB(0x81, 0xa1, 0xc1), Bold: true}
	t.Code.ChromaStyle = "nord"
	return t
}
