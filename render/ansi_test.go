// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"
	"testing"

	"github.com/vellumview/vellum/theme"
)

func trueColorCaps() theme.Capabilities {
	return theme.Capabilities{Depth: theme.DepthTrueColor, BoxDrawing: true}
}

func TestANSISuppressesRedundantSGR(t *testing.T) {
	var sb strings.Builder
	d := NewANSIDriver(&sb, 10, 1, trueColorCaps())

	st := theme.Style{Bold: true}
	d.Apply([]Span{{Row: 0, Col: 0, Cells: []Cell{
		{Ch: 'a', Style: st},
		{Ch: 'b', Style: st},
		{Ch: 'c', Style: st},
	}}})

	out := sb.String()
	if got := strings.Count(out, "\x1b[0;1m"); got != 1 {
		t.Errorf("SGR emitted %d times, want 1: %q", got, out)
	}
	if !strings.Contains(out, "abc") {
		t.Errorf("text missing: %q", out)
	}
}

func TestANSICursorAddressing(t *testing.T) {
	var sb strings.Builder
	d := NewANSIDriver(&sb, 10, 5, trueColorCaps())

	d.Apply([]Span{{Row: 2, Col: 4, Cells: []Cell{{Ch: 'x'}}}})
	if !strings.HasPrefix(sb.String(), "\x1b[3;5H") {
		t.Errorf("cursor move = %q", sb.String())
	}
}

func TestANSITrueColorCodes(t *testing.T) {
	var sb strings.Builder
	d := NewANSIDriver(&sb, 4, 1, trueColorCaps())

	st := theme.Style{FG: theme.RGB(255, 128, 0)}
	d.Apply([]Span{{Cells: []Cell{{Ch: 'x', Style: st}}}})
	if !strings.Contains(sb.String(), "38;2;255;128;0") {
		t.Errorf("missing truecolor sequence: %q", sb.String())
	}
}

func TestANSIDegradesToPalette(t *testing.T) {
	var sb strings.Builder
	caps := theme.Capabilities{Depth: theme.Depth256}
	d := NewANSIDriver(&sb, 4, 1, caps)

	st := theme.Style{FG: theme.RGB(255, 128, 0)}
	d.Apply([]Span{{Cells: []Cell{{Ch: 'x', Style: st}}}})

	out := sb.String()
	if strings.Contains(out, "38;2;") {
		t.Errorf("truecolor leaked at 256-color depth: %q", out)
	}
	if !strings.Contains(out, "38;5;") {
		t.Errorf("no palette sequence: %q", out)
	}
}

func TestANSIMonoDropsColor(t *testing.T) {
	var sb strings.Builder
	caps := theme.Capabilities{Depth: theme.DepthMono}
	d := NewANSIDriver(&sb, 4, 1, caps)

	st := theme.Style{FG: theme.RGB(255, 0, 0), Bold: true}
	d.Apply([]Span{{Cells: []Cell{{Ch: 'x', Style: st}}}})

	out := sb.String()
	if strings.Contains(out, "38;") {
		t.Errorf("color survived mono depth: %q", out)
	}
	if !strings.Contains(out, "\x1b[0;1m") {
		t.Errorf("attributes must survive mono: %q", out)
	}
}

func TestANSIWriteBufferTrimsTrailingBlanks(t *testing.T) {
	var sb strings.Builder
	d := NewANSIDriver(&sb, 8, 2, trueColorCaps())

	b := NewBuffer(8, 2)
	b.SetString(0, 0, "hi", theme.Style{}, 8)
	d.WriteBuffer(b)

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "hi") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if strings.Contains(lines[0], "hi ") {
		t.Errorf("trailing blanks kept: %q", lines[0])
	}
}
