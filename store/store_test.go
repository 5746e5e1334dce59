// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "positions.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoadPosition(t *testing.T) {
	s := openTemp(t)

	if _, ok := s.Position("/doc/readme.md"); ok {
		t.Fatal("unexpected position for unknown path")
	}
	if err := s.SavePosition("/doc/readme.md", 42); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok := s.Position("/doc/readme.md")
	if !ok || got != 42 {
		t.Errorf("position = %d, %v", got, ok)
	}
}

func TestSavePositionOverwrites(t *testing.T) {
	s := openTemp(t)
	if err := s.SavePosition("/a.md", 10); err != nil {
		t.Fatal(err)
	}
	if err := s.SavePosition("/a.md", 99); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Position("/a.md"); got != 99 {
		t.Errorf("position = %d, want 99", got)
	}
}

func TestForget(t *testing.T) {
	s := openTemp(t)
	if err := s.SavePosition("/a.md", 7); err != nil {
		t.Fatal(err)
	}
	if err := s.Forget("/a.md"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Position("/a.md"); ok {
		t.Error("position survived forget")
	}
}

func TestNilStoreIsInert(t *testing.T) {
	var s *Store
	if err := s.SavePosition("/a.md", 1); err != nil {
		t.Errorf("save on nil store: %v", err)
	}
	if _, ok := s.Position("/a.md"); ok {
		t.Error("nil store returned a position")
	}
	if err := s.Close(); err != nil {
		t.Errorf("close on nil store: %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SavePosition("/persist.md", 31); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if got, ok := s2.Position("/persist.md"); !ok || got != 31 {
		t.Errorf("position after reopen = %d, %v", got, ok)
	}
}

func TestThemeSetting(t *testing.T) {
	s := openTemp(t)

	if _, ok := s.Theme(); ok {
		t.Fatal("unexpected theme in a fresh store")
	}
	if err := s.SaveTheme("mono"); err != nil {
		t.Fatalf("save theme: %v", err)
	}
	if err := s.SaveTheme("docs"); err != nil {
		t.Fatalf("save theme again: %v", err)
	}
	got, ok := s.Theme()
	if !ok || got != "docs" {
		t.Errorf("theme = %q, %v", got, ok)
	}

	var nilStore *Store
	if err := nilStore.SaveTheme("docs"); err != nil {
		t.Errorf("save theme on nil store: %v", err)
	}
	if _, ok := nilStore.Theme(); ok {
		t.Error("nil store returned a theme")
	}
}
