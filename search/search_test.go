// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"testing"

	"github.com/vellumview/vellum/layout"
	"github.com/vellumview/vellum/markdown"
	"github.com/vellumview/vellum/theme"
)

func buildTree(t *testing.T, src string) *layout.Tree {
	t.Helper()
	doc := markdown.Parse([]byte(src))
	return layout.Build(doc, theme.Builtin("docs"), 60)
}

func TestFindCaseInsensitive(t *testing.T) {
	tree := buildTree(t, "The Needle hides. Another needle here.\n\nNo match line.\n")
	matches := Find(tree, "needle")
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Y > matches[1].Y || (matches[0].Y == matches[1].Y && matches[0].X > matches[1].X) {
		t.Errorf("matches out of document order: %+v", matches)
	}
	for _, m := range matches {
		if m.W != len("needle") {
			t.Errorf("match width = %d", m.W)
		}
	}
}

func TestFindInCodeBlock(t *testing.T) {
	tree := buildTree(t, "```\nfunc target() {}\n```\n")
	matches := Find(tree, "target")
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
}

func TestFindEmptyNeedle(t *testing.T) {
	tree := buildTree(t, "anything\n")
	if got := Find(tree, ""); got != nil {
		t.Errorf("empty needle matched %d times", len(got))
	}
}

func TestNavigationWraps(t *testing.T) {
	tree := buildTree(t, "aaa\n\naaa\n\naaa\n")
	s := State{Needle: "aaa"}
	s.Run(tree, 0)
	if len(s.Matches) != 3 || s.Current != 0 {
		t.Fatalf("run: %d matches, current %d", len(s.Matches), s.Current)
	}

	s.Next()
	s.Next()
	if s.Current != 2 {
		t.Errorf("current = %d", s.Current)
	}
	s.Next()
	if s.Current != 0 {
		t.Errorf("wrap forward: current = %d", s.Current)
	}
	s.Prev()
	if s.Current != 2 {
		t.Errorf("wrap backward: current = %d", s.Current)
	}
}

func TestRunStartsNearScrollPosition(t *testing.T) {
	tree := buildTree(t, "aaa\n\naaa\n\naaa\n")
	s := State{Needle: "aaa"}
	s.Run(tree, tree.Height-1)
	if r, ok := s.CurrentRect(); !ok || r.Y < tree.Height-2 {
		t.Errorf("current = %+v, want last match", r)
	}

	// past every match: fall back to the first
	s.Run(tree, tree.Height+10)
	if s.Current != 0 {
		t.Errorf("current = %d, want 0", s.Current)
	}
}

func TestNavigationEmptyMatchSet(t *testing.T) {
	s := State{}
	s.Next()
	s.Prev()
	if _, ok := s.CurrentRect(); ok {
		t.Error("rect reported with no matches")
	}
}

func TestMatchColumnsSurviveCaseFolding(t *testing.T) {
	// strings.ToLower would turn the dotted capital I into two runes and
	// shift every later offset; the match must still land on "bar"
	got := lineMatches("İstanbul bar", foldRunes("bar"), 0, 0)
	if len(got) != 1 {
		t.Fatalf("matches = %d, want 1", len(got))
	}
	if got[0].X != 9 || got[0].W != 3 {
		t.Errorf("rect = %+v, want X=9 W=3", got[0])
	}
}

func TestMatchColumnsAfterWideRunes(t *testing.T) {
	got := lineMatches("漢字 bar", foldRunes("BAR"), 2, 0)
	if len(got) != 1 {
		t.Fatalf("matches = %d, want 1", len(got))
	}
	if got[0].X != 7 || got[0].W != 3 {
		t.Errorf("rect = %+v, want X=7 W=3", got[0])
	}
}

func TestMatchKelvinSignFolds(t *testing.T) {
	got := lineMatches("300K ahead", foldRunes("k"), 0, 0)
	if len(got) != 1 {
		t.Fatalf("matches = %d, want 1", len(got))
	}
	if got[0].X != 3 {
		t.Errorf("X = %d, want 3", got[0].X)
	}
}
