// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: view/session.go
// Summary: Per-document viewing state: layout tree, viewport, link cursor,
// search session.

// Package view drives the interactive viewer: one session per open
// document, a modal action dispatcher, and the single-threaded event loop
// that owns every layout tree and both render buffers.
package view

import (
	"sort"

	"github.com/vellumview/vellum/docs"
	"github.com/vellumview/vellum/ir"
	"github.com/vellumview/vellum/layout"
	"github.com/vellumview/vellum/search"
	"github.com/vellumview/vellum/theme"
)

// Session is the viewing state of one document. Switching documents swaps
// sessions by reference; nothing is copied or rebuilt.
type Session struct {
	File *docs.File
	Tree *layout.Tree
	VP   layout.Viewport

	// Link is the selected link ordinal, or -1.
	Link   int
	Search search.State

	headingRows []int
}

// NewSession lays out a document for the given content area.
func NewSession(f *docs.File, th *theme.Theme, w, h int) *Session {
	s := &Session{File: f, Link: -1}
	s.VP = layout.Viewport{Width: w, Height: h}
	s.relayout(th, w, h)
	return s
}

// relayout rebuilds the tree at a new width, theme, or document revision.
// The scroll offset is kept and re-clamped; link selection and search
// results refer to the old geometry and reset.
func (s *Session) relayout(th *theme.Theme, w, h int) {
	doc := s.File.Doc
	if doc == nil {
		// the file never loaded; an empty tree keeps it switchable
		doc = &ir.Document{}
	}
	s.Tree = layout.Build(doc, th, w)
	s.VP.Width = w
	s.VP.Height = h
	s.VP.Clamp(s.Tree.Height)
	s.Link = -1
	if s.Search.Needle != "" {
		s.Search.Run(s.Tree, s.VP.Offset)
	} else {
		s.Search.Reset()
	}

	s.headingRows = s.headingRows[:0]
	s.Tree.Walk(func(n *layout.Node) bool {
		if n.Kind == layout.KindHeading {
			s.headingRows = append(s.headingRows, n.Rect.Y)
		}
		return true
	})
	sort.Ints(s.headingRows)
}

// Percent returns the scroll position as 0-100.
func (s *Session) Percent() int {
	m := s.VP.MaxOffset(s.Tree.Height)
	if m == 0 {
		return 100
	}
	return s.VP.Offset * 100 / m
}

// NextLink advances the link selection with wraparound.
func (s *Session) NextLink() {
	if len(s.Tree.Links) == 0 {
		return
	}
	s.Link = (s.Link + 1) % len(s.Tree.Links)
	s.revealLink()
}

// PrevLink steps the link selection back with wraparound.
func (s *Session) PrevLink() {
	if len(s.Tree.Links) == 0 {
		return
	}
	if s.Link < 0 {
		s.Link = 0
	}
	s.Link = (s.Link - 1 + len(s.Tree.Links)) % len(s.Tree.Links)
	s.revealLink()
}

// revealLink scrolls just enough to bring the selected link on screen.
func (s *Session) revealLink() {
	row := s.Tree.Links[s.Link].Row
	if row < s.VP.Offset {
		s.VP.ScrollTo(row, s.Tree.Height)
	} else if row >= s.VP.Offset+s.VP.Height {
		s.VP.ScrollTo(row-s.VP.Height+1, s.Tree.Height)
	}
}

// NextHeading returns the row of the first heading below the offset.
func (s *Session) NextHeading() (int, bool) {
	for _, r := range s.headingRows {
		if r > s.VP.Offset {
			return r, true
		}
	}
	return 0, false
}

// PrevHeading returns the row of the last heading above the offset.
func (s *Session) PrevHeading() (int, bool) {
	for i := len(s.headingRows) - 1; i >= 0; i-- {
		if s.headingRows[i] < s.VP.Offset {
			return s.headingRows[i], true
		}
	}
	return 0, false
}
