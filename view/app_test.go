// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package view

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestMouseClickHitsDisplayedFrameDuringGlide(t *testing.T) {
	// a link wide enough to wrap over the first few rows at width 40
	link := "[a rather long link label that wraps over several lines here](https://example.com/top)"
	c := newTestController(t, link+"\n"+longDoc())
	a := &App{ctrl: c}

	// a full-page jump animates; the logical offset moves immediately
	// while the frame on screen still shows the top of the document
	c.HandleKey(special(tcell.KeyPgDn))
	if c.Session().VP.Offset == 0 {
		t.Fatal("page jump did not move the logical offset")
	}

	ev := tcell.NewEventMouse(0, 0, tcell.ButtonPrimary, 0)
	if !a.mouse(ev) {
		t.Fatal("click on the visible link was not resolved")
	}
	if !strings.Contains(c.message, "example.com/top") {
		t.Errorf("message = %q, want the clicked link's URL", c.message)
	}
}

func TestMouseWheelScrolls(t *testing.T) {
	c := newTestController(t, longDoc())
	a := &App{ctrl: c}

	a.mouse(tcell.NewEventMouse(0, 0, tcell.WheelDown, 0))
	if got := c.Session().VP.Offset; got != 3 {
		t.Errorf("offset = %d, want 3", got)
	}
	a.mouse(tcell.NewEventMouse(0, 0, tcell.WheelUp, 0))
	if got := c.Session().VP.Offset; got != 0 {
		t.Errorf("offset = %d, want 0", got)
	}
}
