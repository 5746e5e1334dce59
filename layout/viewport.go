// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/viewport.go
// Summary: Vertical viewport with clamped scrolling.

package layout

// Viewport is the visible vertical window over a layout tree. Offset is
// always within [0, max(0, content-height)]; every mutation re-clamps
// against the content height it is handed, which may have changed since
// the previous call.
type Viewport struct {
	Width  int
	Height int
	Offset int
}

// MaxOffset returns the largest legal offset for a content height.
func (v *Viewport) MaxOffset(contentH int) int {
	m := contentH - v.Height
	if m < 0 {
		return 0
	}
	return m
}

// Clamp forces the offset back into range.
func (v *Viewport) Clamp(contentH int) {
	if v.Offset < 0 {
		v.Offset = 0
	}
	if m := v.MaxOffset(contentH); v.Offset > m {
		v.Offset = m
	}
}

// ScrollBy moves the offset by delta rows and clamps.
func (v *Viewport) ScrollBy(delta, contentH int) {
	v.Offset += delta
	v.Clamp(contentH)
}

// ScrollTo jumps to an absolute row and clamps.
func (v *Viewport) ScrollTo(row, contentH int) {
	v.Offset = row
	v.Clamp(contentH)
}

// ScrollToTop jumps to the document start.
func (v *Viewport) ScrollToTop() { v.Offset = 0 }

// ScrollToBottom jumps to the last page.
func (v *Viewport) ScrollToBottom(contentH int) {
	v.Offset = v.MaxOffset(contentH)
}

// Visible returns the document-space rectangle currently on screen.
func (v *Viewport) Visible() Rect {
	return Rect{X: 0, Y: v.Offset, W: v.Width, H: v.Height}
}
