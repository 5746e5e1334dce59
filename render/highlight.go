// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/highlight.go
// Summary: Syntax highlighting of code blocks via chroma with enry
// language detection as fallback.

package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"

	"github.com/vellumview/vellum/layout"
	"github.com/vellumview/vellum/theme"
)

// codeLexer resolves a lexer for a code block. The fence hint wins; with
// no hint, enry guesses from content, then chroma analyses, then the
// plaintext fallback applies.
func codeLexer(lang, code string) chroma.Lexer {
	if lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	if name, ok := enry.GetLanguageByClassifier([]byte(code), nil); ok {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(code); l != nil {
		return l
	}
	return lexers.Fallback
}

// highlightCode turns raw code lines into styled lines. With an empty
// style name, or on any tokenizer error, the lines come back in the base
// style unchanged.
func highlightCode(lang string, codeLines []string, styleName string, base theme.Style) []layout.Line {
	plain := func() []layout.Line {
		out := make([]layout.Line, len(codeLines))
		for i, l := range codeLines {
			out[i] = layout.Line{Segments: []layout.Segment{
				{Text: l, Style: base, LinkIndex: -1},
			}}
		}
		return out
	}
	if styleName == "" {
		return plain()
	}
	style := styles.Get(styleName)
	if style == nil {
		return plain()
	}

	code := strings.Join(codeLines, "\n")
	lexer := chroma.Coalesce(codeLexer(lang, code))
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plain()
	}

	lines := []layout.Line{{}}
	appendRun := func(text string, st theme.Style) {
		if text == "" {
			return
		}
		cur := &lines[len(lines)-1]
		cur.Segments = append(cur.Segments, layout.Segment{
			Text: text, Style: st, LinkIndex: -1,
		})
	}
	for tok := it(); tok != chroma.EOF; tok = it() {
		st := tokenStyle(style, tok.Type, base)
		parts := strings.Split(tok.Value, "\n")
		for i, p := range parts {
			if i > 0 {
				lines = append(lines, layout.Line{})
			}
			appendRun(p, st)
		}
	}
	// keep the line count in lockstep with the raw code
	for len(lines) < len(codeLines) {
		lines = append(lines, layout.Line{})
	}
	if len(lines) > len(codeLines) {
		lines = lines[:len(codeLines)]
	}
	return lines
}

// tokenStyle maps a chroma token style onto the theme's base code style.
func tokenStyle(style *chroma.Style, tt chroma.TokenType, base theme.Style) theme.Style {
	entry := style.Get(tt)
	out := base
	if entry.Colour.IsSet() {
		out.FG = theme.RGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
	}
	if entry.Bold == chroma.Yes {
		out.Bold = true
	}
	if entry.Italic == chroma.Yes {
		out.Italic = true
	}
	if entry.Underline == chroma.Yes {
		out.Underline = true
	}
	return out
}
