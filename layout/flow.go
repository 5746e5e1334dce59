// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/flow.go
// Summary: Greedy word-wrapping over flattened inline runs.
// Usage: Identical (inlines, width) input always yields an identical line
// partition; the renderer and search both rely on that.

package layout

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vellumview/vellum/ir"
	"github.com/vellumview/vellum/theme"
)

type tokenKind int

const (
	tokWord tokenKind = iota
	tokBreak
)

// token is one atomic wrapping unit: a word with its resolved style, or a
// forced break.
type token struct {
	kind  tokenKind
	text  string
	width int
	style theme.Style
	link  int
}

// flowState carries the style stack while inlines are flattened.
type flowState struct {
	style theme.Style
	link  int
}

// flow wraps inline content into lines no wider than width. Nested style
// runs are flattened so combinations (strong inside emphasis inside a
// link) compose on each produced segment. Words wider than the full width
// are hard-split into chunks.
func (b *builder) flow(inlines []ir.Inline, width int, base theme.Style) []Line {
	if width < 1 {
		width = 1
	}
	tokens := b.flatten(inlines, flowState{style: base, link: -1})
	return wrapTokens(tokens, width, base)
}

func (b *builder) flatten(inlines []ir.Inline, st flowState) []token {
	var out []token
	for _, in := range inlines {
		switch v := in.(type) {
		case *ir.Text:
			out = append(out, words(v.Text, st)...)
		case *ir.Strong:
			next := st
			next.style.Bold = true
			out = append(out, b.flatten(v.Content, next)...)
		case *ir.Emphasis:
			next := st
			next.style.Italic = true
			out = append(out, b.flatten(v.Content, next)...)
		case *ir.Strike:
			next := st
			next.style.Strike = true
			out = append(out, b.flatten(v.Content, next)...)
		case *ir.CodeSpan:
			next := st
			next.style = next.style.Merge(b.th.CodeSpan)
			out = append(out, words(v.Code, next)...)
		case *ir.Link:
			next := st
			next.style = next.style.Merge(b.th.Link.Style)
			next.link = b.newLink(v)
			out = append(out, b.flatten(v.Content, next)...)
			if b.th.Link.ShowURL && !strings.HasPrefix(v.URL, "#") {
				urlSt := st
				urlSt.style = urlSt.style.Merge(b.th.Muted)
				out = append(out, words(fmt.Sprintf("(%s)", v.URL), urlSt)...)
			}
		case *ir.Image:
			ph := st
			ph.style = ph.style.Merge(b.th.Muted)
			alt := v.Alt
			if alt == "" {
				alt = v.URL
			}
			// the placeholder is a single atomic token; it hard-splits
			// like any over-wide word instead of wrapping internally
			text := fmt.Sprintf("[IMAGE: %s]", alt)
			out = append(out, token{
				kind:  tokWord,
				text:  text,
				width: runewidth.StringWidth(text),
				style: ph.style,
				link:  ph.link,
			})
		case *ir.LineBreak:
			out = append(out, token{kind: tokBreak})
		case *ir.SoftBreak:
			// source line endings flush too, keeping rendered output close
			// to the written document
			out = append(out, token{kind: tokBreak})
		}
	}
	return out
}

// newLink registers a link occurrence and returns its document ordinal.
func (b *builder) newLink(l *ir.Link) int {
	idx := len(b.t.Links)
	b.t.Links = append(b.t.Links, Link{
		URL:  l.URL,
		Text: ir.PlainText(l.Content),
	})
	return idx
}

func words(text string, st flowState) []token {
	fields := strings.Fields(text)
	out := make([]token, 0, len(fields))
	for _, f := range fields {
		out = append(out, token{
			kind:  tokWord,
			text:  f,
			width: runewidth.StringWidth(f),
			style: st.style,
			link:  st.link,
		})
	}
	return out
}

func wrapTokens(tokens []token, width int, base theme.Style) []Line {
	var lines []Line
	var cur []Segment
	curW := 0

	flush := func() {
		if len(cur) > 0 {
			lines = append(lines, Line{Segments: cur})
			cur = nil
			curW = 0
		}
	}

	appendSeg := func(text string, w int, style theme.Style, link int) {
		if n := len(cur); n > 0 && cur[n-1].Style == style && cur[n-1].LinkIndex == link {
			cur[n-1].Text += text
		} else {
			cur = append(cur, Segment{Text: text, Style: style, LinkIndex: link})
		}
		curW += w
	}

	for _, tok := range tokens {
		if tok.kind == tokBreak {
			flush()
			continue
		}

		if tok.width > width {
			// over-wide word: flush, then hard-split into full-width chunks
			flush()
			chunks := splitWord(tok.text, width)
			for i, c := range chunks {
				appendSeg(c, runewidth.StringWidth(c), tok.style, tok.link)
				if i < len(chunks)-1 {
					flush()
				}
			}
			continue
		}

		sep := 0
		if curW > 0 {
			sep = 1
		}
		if curW+sep+tok.width > width {
			flush()
			sep = 0
		}
		if sep > 0 {
			prev := &cur[len(cur)-1]
			if prev.LinkIndex >= 0 && prev.LinkIndex != tok.link {
				// keep the space out of the link's style and hit rectangle
				appendSeg(" ", 1, base, -1)
			} else {
				prev.Text += " "
				curW++
			}
		}
		appendSeg(tok.text, tok.width, tok.style, tok.link)
	}
	flush()
	return lines
}

// splitWord cuts a word into display-width chunks of at most maxW cells.
func splitWord(word string, maxW int) []string {
	var chunks []string
	var cur strings.Builder
	curW := 0
	for _, r := range word {
		rw := runewidth.RuneWidth(r)
		if curW+rw > maxW && curW > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curW = 0
		}
		cur.WriteRune(r)
		curW += rw
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

// Wrap lays out inline content standalone, outside a tree build. Link
// occurrences are flattened into styled segments but registered nowhere.
func Wrap(inlines []ir.Inline, width int, th *theme.Theme) []Line {
	b := &builder{t: &Tree{}, th: th}
	return b.flow(inlines, width, th.Text)
}
