// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"
	"testing"

	"github.com/vellumview/vellum/layout"
	"github.com/vellumview/vellum/markdown"
	"github.com/vellumview/vellum/theme"
)

func paintSource(t *testing.T, src string, w, h, offset int) (*Buffer, *layout.Tree) {
	t.Helper()
	th := theme.Builtin("docs")
	doc := markdown.Parse([]byte(src))
	tree := layout.Build(doc, th, w)

	buf := NewBuffer(w, h)
	p := NewPainter(th, trueColorCaps())
	vp := layout.Viewport{Width: w, Height: h, Offset: offset}
	p.Paint(buf, tree, vp, State{SelectedLink: -1, CurrentMatch: -1})
	return buf, tree
}

func rowText(b *Buffer, y int) string {
	var sb strings.Builder
	for x := 0; x < b.W; x++ {
		c := b.At(x, y)
		if c.Ch == 0 {
			continue
		}
		sb.WriteRune(c.Ch)
	}
	return strings.TrimRight(sb.String(), " ")
}

func frameText(b *Buffer) string {
	rows := make([]string, b.H)
	for y := 0; y < b.H; y++ {
		rows[y] = rowText(b, y)
	}
	return strings.Join(rows, "\n")
}

func TestPaintParagraphText(t *testing.T) {
	buf, _ := paintSource(t, "hello terminal world\n", 40, 5, 0)
	if got := rowText(buf, 0); got != "hello terminal world" {
		t.Errorf("row 0 = %q", got)
	}
}

func TestPaintScrollOffset(t *testing.T) {
	src := "one\n\ntwo\n\nthree\n"
	full, tree := paintSource(t, src, 20, 10, 0)
	if !strings.Contains(frameText(full), "one") {
		t.Fatalf("frame missing first paragraph:\n%s", frameText(full))
	}

	scrolled, _ := paintSource(t, src, 20, 10, tree.Height-1)
	if strings.Contains(frameText(scrolled), "one") {
		t.Errorf("first paragraph still visible after scroll:\n%s", frameText(scrolled))
	}
}

func TestPaintListMarkers(t *testing.T) {
	buf, _ := paintSource(t, "- alpha\n- beta\n", 30, 5, 0)
	text := frameText(buf)
	if !strings.Contains(text, "• alpha") || !strings.Contains(text, "• beta") {
		t.Errorf("markers missing:\n%s", text)
	}
}

func TestPaintQuoteBar(t *testing.T) {
	buf, _ := paintSource(t, "> quoted\n", 30, 4, 0)
	if got := buf.At(0, 0).Ch; got != '│' {
		t.Errorf("gutter glyph = %q", got)
	}
	if !strings.Contains(frameText(buf), "quoted") {
		t.Errorf("quote body missing:\n%s", frameText(buf))
	}
}

func TestPaintCodeBorder(t *testing.T) {
	buf, tree := paintSource(t, "```\ncode here\n```\n", 30, 6, 0)
	var code *layout.Node
	tree.Walk(func(n *layout.Node) bool {
		if n.Kind == layout.KindCode {
			code = n
			return false
		}
		return true
	})
	if code == nil {
		t.Fatal("no code node")
	}
	// docs theme uses a rounded border
	if got := buf.At(code.Rect.X, code.Rect.Y).Ch; got != '╭' {
		t.Errorf("corner = %q", got)
	}
	if !strings.Contains(frameText(buf), "code here") {
		t.Errorf("code text missing:\n%s", frameText(buf))
	}
}

func TestPaintTableGridAndAlignment(t *testing.T) {
	src := "| L | R |\n|:--|--:|\n| a | b |\n"
	buf, _ := paintSource(t, src, 30, 8, 0)
	text := frameText(buf)
	for _, glyph := range []string{"┌", "┐", "└", "┘", "│", "┼"} {
		if !strings.Contains(text, glyph) {
			t.Errorf("grid glyph %s missing:\n%s", glyph, text)
		}
	}
	if !strings.Contains(text, "a") || !strings.Contains(text, "b") {
		t.Errorf("cell content missing:\n%s", text)
	}
}

func TestPaintRule(t *testing.T) {
	buf, _ := paintSource(t, "above\n\n---\n\nbelow\n", 10, 8, 0)
	if !strings.Contains(frameText(buf), "──────────") {
		t.Errorf("rule missing:\n%s", frameText(buf))
	}
}

func TestPaintASCIICapabilityFallback(t *testing.T) {
	th := theme.Builtin("docs")
	doc := markdown.Parse([]byte("> quote\n\n---\n"))
	tree := layout.Build(doc, th, 20)

	buf := NewBuffer(20, 8)
	caps := theme.Capabilities{Depth: theme.Depth16, BoxDrawing: false}
	p := NewPainter(th, caps)
	p.Paint(buf, tree, layout.Viewport{Width: 20, Height: 8}, State{SelectedLink: -1, CurrentMatch: -1})

	text := frameText(buf)
	if strings.ContainsAny(text, "│─╭") {
		t.Errorf("box drawing leaked without capability:\n%s", text)
	}
	if !strings.Contains(text, ">") || !strings.Contains(text, "--") {
		t.Errorf("ascii fallback glyphs missing:\n%s", text)
	}
}

func TestPaintSelectedLinkOverlay(t *testing.T) {
	th := theme.Builtin("docs")
	doc := markdown.Parse([]byte("go [here](https://example.com) now\n"))
	tree := layout.Build(doc, th, 40)
	if len(tree.Links) != 1 {
		t.Fatalf("links = %d", len(tree.Links))
	}

	buf := NewBuffer(40, 4)
	p := NewPainter(th, trueColorCaps())
	p.Paint(buf, tree, layout.Viewport{Width: 40, Height: 4}, State{SelectedLink: 0, CurrentMatch: -1})

	r := tree.Links[0].Rects[0]
	if !buf.At(r.X, r.Y).Style.Reverse {
		t.Errorf("selected link not highlighted at %d,%d", r.X, r.Y)
	}
}

func TestHighlightKeepsLineCount(t *testing.T) {
	lines := []string{"package main", "", "func main() {}"}
	out := highlightCode("go", lines, "monokai", theme.Style{})
	if len(out) != len(lines) {
		t.Fatalf("got %d lines, want %d", len(out), len(lines))
	}
	if out[0].Plain() != "package main" {
		t.Errorf("line 0 = %q", out[0].Plain())
	}
}

func TestHighlightUnknownStyleFallsBack(t *testing.T) {
	lines := []string{"plain text"}
	out := highlightCode("", lines, "", theme.Style{Bold: true})
	if len(out) != 1 || out[0].Plain() != "plain text" {
		t.Fatalf("fallback shape wrong: %+v", out)
	}
	if !out[0].Segments[0].Style.Bold {
		t.Errorf("base style dropped")
	}
}

func TestTruncateEllipsisCountsWideRunes(t *testing.T) {
	if got := truncateEllipsis("漢漢漢", 4); got != "漢…" {
		t.Errorf("wide text = %q, want %q", got, "漢…")
	}
	if got := truncateEllipsis("abc", 3); got != "abc" {
		t.Errorf("fitting text changed to %q", got)
	}
	if got := truncateEllipsis("abcd", 3); got != "ab…" {
		t.Errorf("clipped text = %q, want %q", got, "ab…")
	}
	if got := truncateEllipsis("x", 0); got != "" {
		t.Errorf("zero width = %q", got)
	}
}
