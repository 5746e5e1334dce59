// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/diff.go
// Summary: Front/back buffer comparison producing contiguous dirty runs.

package render

// Span is one contiguous run of changed cells on a single row.
type Span struct {
	Row, Col int
	Cells    []Cell
}

// Diff compares the next frame against the previous one and returns the
// changed runs, row-major. Identical buffers yield nil. A size mismatch
// repaints everything, which is what a resize needs anyway.
func Diff(prev, next *Buffer) []Span {
	if prev == nil || prev.W != next.W || prev.H != next.H {
		return fullSpans(next)
	}

	var spans []Span
	for y := 0; y < next.H; y++ {
		x := 0
		for x < next.W {
			if next.At(x, y) == prev.At(x, y) {
				x++
				continue
			}
			start := x
			for x < next.W && next.At(x, y) != prev.At(x, y) {
				x++
			}
			run := make([]Cell, x-start)
			for i := range run {
				run[i] = next.At(start+i, y)
			}
			spans = append(spans, Span{Row: y, Col: start, Cells: run})
		}
	}
	return spans
}

func fullSpans(b *Buffer) []Span {
	spans := make([]Span, 0, b.H)
	for y := 0; y < b.H; y++ {
		run := make([]Cell, b.W)
		for x := 0; x < b.W; x++ {
			run[x] = b.At(x, y)
		}
		spans = append(spans, Span{Row: y, Cells: run})
	}
	return spans
}
