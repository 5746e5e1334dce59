// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/table.go
// Summary: Table column measurement and width distribution.

package layout

import (
	"github.com/mattn/go-runewidth"

	"github.com/vellumview/vellum/ir"
)

// minColumnWidth keeps a column usable even under extreme pressure: one
// content cell plus room for an ellipsis.
const minColumnWidth = 3

// ColumnClass classifies how a column's width is resolved.
type ColumnClass int

const (
	// ColAuto divides the space left after fixed and proportional columns
	// equally, floored at the column's intrinsic width.
	ColAuto ColumnClass = iota
	// ColFixed uses the hint width exactly.
	ColFixed
	// ColProportional takes a fraction of the available width.
	ColProportional
)

// ColumnHint is a per-column sizing directive.
type ColumnHint struct {
	Class ColumnClass
	Width int     // fixed width, ColFixed only
	Ratio float64 // fraction of available, ColProportional only
}

// intrinsicWidths measures each column's widest single-line content across
// header and rows, plus cell padding.
func intrinsicWidths(header []ir.TableCell, rows [][]ir.TableCell, pad int) []int {
	n := len(header)
	if n == 0 && len(rows) > 0 {
		n = len(rows[0])
	}
	widths := make([]int, n)
	measure := func(cells []ir.TableCell) {
		for i, c := range cells {
			if i >= n {
				break
			}
			w := runewidth.StringWidth(ir.PlainText(c.Content)) + 2*pad
			if w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(header)
	for _, r := range rows {
		measure(r)
	}
	for i := range widths {
		if widths[i] < minColumnWidth {
			widths[i] = minColumnWidth
		}
	}
	return widths
}

// distributeColumns resolves final column widths within avail. Fixed and
// proportional columns are charged first; the remainder is split equally
// among auto columns, each floored at its intrinsic width (an auto column
// whose content needs more than the fair share keeps its intrinsic width
// and the others re-share what is left). If the resolved sum still exceeds
// avail, every column is scaled down proportionally with a floor of
// minColumnWidth; over-wide cell text is elided at paint time rather than
// overflowing, since there is no horizontal scrolling to reach it.
func distributeColumns(intrinsic []int, hints []ColumnHint, avail int) []int {
	n := len(intrinsic)
	if n == 0 {
		return nil
	}
	if avail < 1 {
		avail = 1
	}

	widths := make([]int, n)
	remaining := avail
	var auto []int
	for i := 0; i < n; i++ {
		var h ColumnHint
		if i < len(hints) {
			h = hints[i]
		}
		switch h.Class {
		case ColFixed:
			widths[i] = max(h.Width, minColumnWidth)
			remaining -= widths[i]
		case ColProportional:
			widths[i] = max(int(float64(avail)*h.Ratio), minColumnWidth)
			remaining -= widths[i]
		default:
			auto = append(auto, i)
		}
	}
	if remaining < 0 {
		remaining = 0
	}

	// equal shares with intrinsic floors: settle the hungriest columns at
	// their intrinsic width first, then re-share what is left
	pending := append([]int(nil), auto...)
	for len(pending) > 0 {
		share := remaining / len(pending)
		settled := false
		rest := pending[:0]
		for _, i := range pending {
			if intrinsic[i] >= share {
				widths[i] = intrinsic[i]
				remaining -= intrinsic[i]
				if remaining < 0 {
					remaining = 0
				}
				settled = true
			} else {
				rest = append(rest, i)
			}
		}
		pending = rest
		if !settled {
			share = remaining / len(pending)
			for _, i := range pending {
				widths[i] = share
			}
			break
		}
	}

	total := 0
	for _, w := range widths {
		total += w
	}
	if total > avail {
		scale := float64(avail) / float64(total)
		for i := range widths {
			widths[i] = max(int(float64(widths[i])*scale), minColumnWidth)
		}
	}
	return widths
}
