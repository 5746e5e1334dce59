// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package docs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeDoc(t, dir, "a.md", "# Alpha\n")
	b := writeDoc(t, dir, "b.md", "---\ntitle: Beta Doc\n---\n\nbody\n")

	m, err := Load(context.Background(), []string{a, b})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Count() != 2 {
		t.Fatalf("count = %d", m.Count())
	}
	if m.Current().Name != "a.md" {
		t.Errorf("current = %q", m.Current().Name)
	}
	if got := m.Files()[1].Title(); got != "Beta Doc" {
		t.Errorf("title = %q", got)
	}
}

func TestLoadKeepsBrokenFilesSwitchable(t *testing.T) {
	dir := t.TempDir()
	good := writeDoc(t, dir, "good.md", "hello\n")
	missing := filepath.Join(dir, "missing.md")

	m, err := Load(context.Background(), []string{good, missing})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Count() != 2 {
		t.Fatalf("count = %d", m.Count())
	}
	bad := m.Files()[1]
	if bad.Err == nil {
		t.Error("missing file has no error")
	}
}

func TestLoadFailsWhenNothingReadable(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(context.Background(), []string{filepath.Join(dir, "nope.md")}); err == nil {
		t.Fatal("want error")
	}
	if _, err := Load(context.Background(), nil); err == nil {
		t.Fatal("want error for empty path list")
	}
}

func TestCursorWrapsBothWays(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeDoc(t, dir, "1.md", "one\n"),
		writeDoc(t, dir, "2.md", "two\n"),
		writeDoc(t, dir, "3.md", "three\n"),
	}
	m, err := Load(context.Background(), paths)
	if err != nil {
		t.Fatal(err)
	}

	m.Next()
	m.Next()
	if m.Index() != 2 {
		t.Errorf("index = %d", m.Index())
	}
	m.Next()
	if m.Index() != 0 {
		t.Errorf("forward wrap: index = %d", m.Index())
	}
	m.Prev()
	if m.Index() != 2 {
		t.Errorf("backward wrap: index = %d", m.Index())
	}

	if m.Switch(5) {
		t.Error("switch past end succeeded")
	}
	if !m.Switch(1) || m.Index() != 1 {
		t.Errorf("switch: index = %d", m.Index())
	}
}

func TestReloadPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	p := writeDoc(t, dir, "doc.md", "# Old\n")
	m, err := Load(context.Background(), []string{p})
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Current().Title(); got != "Old" {
		t.Fatalf("title = %q", got)
	}

	writeDoc(t, dir, "doc.md", "# New\n")
	if err := m.Reload(0); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := m.Current().Title(); got != "New" {
		t.Errorf("title after reload = %q", got)
	}
}

func TestReloadMissingFileKeepsOldDoc(t *testing.T) {
	dir := t.TempDir()
	p := writeDoc(t, dir, "doc.md", "# Keep\n")
	m, err := Load(context.Background(), []string{p})
	if err != nil {
		t.Fatal(err)
	}
	os.Remove(p)

	if err := m.Reload(0); err == nil {
		t.Fatal("want reload error")
	}
	if m.Current().Doc == nil {
		t.Error("old document dropped on failed reload")
	}
	if m.Current().Err == nil {
		t.Error("error not recorded")
	}
}

func TestByPath(t *testing.T) {
	dir := t.TempDir()
	a := writeDoc(t, dir, "a.md", "a\n")
	m, err := Load(context.Background(), []string{a})
	if err != nil {
		t.Fatal(err)
	}
	if i, f := m.ByPath(m.Current().Path); i != 0 || f == nil {
		t.Errorf("byPath = %d, %v", i, f)
	}
	if i, _ := m.ByPath("/nowhere"); i != -1 {
		t.Errorf("miss = %d", i)
	}
}
