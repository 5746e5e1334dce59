// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import "testing"

func TestViewportScrollClamps(t *testing.T) {
	v := Viewport{Width: 80, Height: 24}
	const content = 100

	v.ScrollBy(10, content)
	if v.Offset != 10 {
		t.Errorf("offset = %d, want 10", v.Offset)
	}

	v.ScrollBy(1000, content)
	if v.Offset != 76 {
		t.Errorf("offset = %d, want max 76", v.Offset)
	}

	v.Offset = 5
	v.ScrollBy(-100, content)
	if v.Offset != 0 {
		t.Errorf("offset = %d, want 0", v.Offset)
	}
}

func TestViewportShortContent(t *testing.T) {
	v := Viewport{Width: 80, Height: 24}
	v.ScrollBy(10, 10) // content fits entirely
	if v.Offset != 0 {
		t.Errorf("offset = %d, want 0", v.Offset)
	}
	if v.MaxOffset(10) != 0 {
		t.Errorf("max offset = %d", v.MaxOffset(10))
	}
}

func TestViewportJumps(t *testing.T) {
	v := Viewport{Width: 80, Height: 24}
	v.ScrollToBottom(200)
	if v.Offset != 176 {
		t.Errorf("bottom offset = %d", v.Offset)
	}
	v.ScrollToTop()
	if v.Offset != 0 {
		t.Errorf("top offset = %d", v.Offset)
	}
	v.ScrollTo(500, 200)
	if v.Offset != 176 {
		t.Errorf("clamped jump = %d", v.Offset)
	}
}

func TestViewportReclampsAfterResize(t *testing.T) {
	v := Viewport{Width: 80, Height: 24, Offset: 76}
	// taller window, same content: old offset is now past the end
	v.Height = 90
	v.Clamp(100)
	if v.Offset != 10 {
		t.Errorf("offset = %d, want 10", v.Offset)
	}
}
