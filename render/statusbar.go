// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/statusbar.go
// Summary: Bottom status line with document, position, and mode info.

package render

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/vellumview/vellum/theme"
)

// Status is everything the status line shows for one frame.
type Status struct {
	Name    string // document display name
	Index   int    // 1-based position among open documents
	Total   int
	Percent int    // scroll position, 0-100
	Mode    string // modal indicator, e.g. "/query" or ":3", empty in normal mode
	Message string // transient message or hovered link target
}

// PaintStatus draws the status line onto one buffer row. The name and
// message are truncated before the position block on the right.
func PaintStatus(buf *Buffer, row int, s Status, th *theme.Theme) {
	base := th.StatusBar
	accent := th.StatusAccent
	buf.FillRect(0, row, buf.W, 1, ' ', base)

	right := fmt.Sprintf(" %d%% ", s.Percent)
	if s.Total > 1 {
		right = fmt.Sprintf(" %d/%d %s", s.Index, s.Total, right)
	}
	rightW := runewidth.StringWidth(right)
	buf.SetString(buf.W-rightW, row, right, accent, rightW)

	x := buf.SetString(0, row, " "+s.Name+" ", accent, buf.W-rightW)
	if s.Mode != "" {
		buf.SetString(x, row, " "+s.Mode, base, buf.W-rightW-x)
	} else if s.Message != "" {
		buf.SetString(x, row, " "+truncateEllipsis(s.Message, buf.W-rightW-x-1), base, buf.W-rightW-x)
	}
}
