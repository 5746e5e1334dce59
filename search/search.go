// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: search/search.go
// Summary: Case-insensitive text search over laid-out document lines.

// Package search finds needle occurrences in a layout tree and tracks the
// active match across next/previous navigation. Matches carry document
// coordinates so the renderer can highlight them and the viewport can
// scroll to them.
package search

import (
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/vellumview/vellum/layout"
)

// State is one in-progress search session over one document.
type State struct {
	Active  bool
	Needle  string
	Matches []layout.Rect
	Current int
}

// Reset clears the session.
func (s *State) Reset() {
	*s = State{}
}

// Run recomputes matches for the needle over the tree. The current match
// becomes the first one at or after fromRow, keeping the user near their
// scroll position instead of yanking them to the top.
func (s *State) Run(tree *layout.Tree, fromRow int) {
	s.Matches = Find(tree, s.Needle)
	s.Current = 0
	for i, m := range s.Matches {
		if m.Y >= fromRow {
			s.Current = i
			break
		}
	}
}

// Next advances to the following match, wrapping at the end.
func (s *State) Next() {
	if len(s.Matches) == 0 {
		return
	}
	s.Current = (s.Current + 1) % len(s.Matches)
}

// Prev steps back to the preceding match, wrapping at the start.
func (s *State) Prev() {
	if len(s.Matches) == 0 {
		return
	}
	s.Current = (s.Current - 1 + len(s.Matches)) % len(s.Matches)
}

// CurrentRect returns the active match, if any.
func (s *State) CurrentRect() (layout.Rect, bool) {
	if s.Current < 0 || s.Current >= len(s.Matches) {
		return layout.Rect{}, false
	}
	return s.Matches[s.Current], true
}

// Find locates every case-insensitive occurrence of needle in the tree's
// text and code lines, in document order. An empty needle matches nothing.
func Find(tree *layout.Tree, needle string) []layout.Rect {
	if needle == "" {
		return nil
	}
	folded := foldRunes(needle)

	var out []layout.Rect
	tree.Walk(func(n *layout.Node) bool {
		for row, ln := range n.Lines {
			out = append(out, lineMatches(ln.Plain(), folded, n.Content.X, n.Content.Y+row)...)
		}
		if n.Kind == layout.KindCode {
			for row, code := range n.CodeLines {
				out = append(out, lineMatches(code, folded, n.Content.X, n.Content.Y+row)...)
			}
		}
		return true
	})
	return out
}

// foldRunes lowercases per rune. The rune-at-a-time mapping keeps text
// and folded text the same length, unlike strings.ToLower, whose special
// casings can grow or shrink the string and skew offsets.
func foldRunes(s string) []rune {
	out := []rune(s)
	for i, r := range out {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// lineMatches finds folded-needle occurrences in one line, reported as
// display-cell rectangles.
func lineMatches(text string, folded []rune, x, y int) []layout.Rect {
	runes := []rune(text)
	if len(folded) == 0 || len(runes) < len(folded) {
		return nil
	}

	// display column at each rune boundary
	cols := make([]int, len(runes)+1)
	for i, r := range runes {
		cols[i+1] = cols[i] + runewidth.RuneWidth(r)
	}

	matchAt := func(at int) bool {
		for j, want := range folded {
			if unicode.ToLower(runes[at+j]) != want {
				return false
			}
		}
		return true
	}

	var out []layout.Rect
	for i := 0; i+len(folded) <= len(runes); {
		if !matchAt(i) {
			i++
			continue
		}
		out = append(out, layout.Rect{
			X: x + cols[i],
			Y: y,
			W: cols[i+len(folded)] - cols[i],
			H: 1,
		})
		i += len(folded)
	}
	return out
}
