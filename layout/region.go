// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/region.go
// Summary: Hit-region index and point lookup for interactive elements.

package layout

// RegionKind tags what a hit region activates.
type RegionKind int

const (
	RegionLink RegionKind = iota
	RegionHeading
	RegionCode
)

// Region maps a rectangle to an interactive payload. Regions are owned by
// the tree and registered in document order during the build's finalize
// phase.
type Region struct {
	Rect Rect
	Kind RegionKind

	URL    string // link target
	Link   int    // index into Tree.Links for link regions, else -1
	Anchor string // heading anchor id
	Level  int    // heading level
	Lang   string // code block language
}

// RegionAt returns the innermost region containing the document-space
// point: the smallest-area match wins, ties going to the later (more
// deeply registered) region. The second result is false when no region
// contains the point; that is a normal outcome, not an error.
func (t *Tree) RegionAt(x, y int) (Region, bool) {
	best := -1
	for i, r := range t.Regions {
		if !r.Rect.Contains(x, y) {
			continue
		}
		if best < 0 || r.Rect.Area() <= t.Regions[best].Rect.Area() {
			best = i
		}
	}
	if best < 0 {
		return Region{}, false
	}
	return t.Regions[best], true
}

// AnchorRow resolves an internal link target ("#section-name") to its
// document row.
func (t *Tree) AnchorRow(target string) (int, bool) {
	if len(target) == 0 || target[0] != '#' {
		return 0, false
	}
	row, ok := t.Anchors[target[1:]]
	return row, ok
}
