// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: docs/manager.go
// Summary: Open-document set with parallel loading and cursor.

// Package docs owns the set of files open in one viewer session: loading
// them, switching between them, and reloading one when it changes on disk.
package docs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/vellumview/vellum/ir"
	"github.com/vellumview/vellum/markdown"
)

// File is one open document. Err records a failed load or reload; the
// viewer shows it instead of content and keeps the file switchable.
type File struct {
	Path string
	Name string
	Doc  *ir.Document
	Err  error
}

// Title returns the document title, falling back to the file name.
func (f *File) Title() string {
	if f.Doc != nil && f.Doc.Meta.Title != "" {
		return f.Doc.Meta.Title
	}
	return f.Name
}

// Manager tracks the open files and which one is current.
type Manager struct {
	files   []*File
	current int
}

// Load opens every path concurrently. It fails only when no file at all
// could be read; individual failures are kept on the File.
func Load(ctx context.Context, paths []string) (*Manager, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("docs: no files given")
	}

	files := make([]*File, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files[i] = loadFile(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ok := 0
	for _, f := range files {
		if f.Err == nil {
			ok++
		}
	}
	if ok == 0 {
		return nil, fmt.Errorf("docs: open %s: %w", files[0].Path, files[0].Err)
	}
	return &Manager{files: files}, nil
}

func loadFile(path string) *File {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	f := &File{Path: abs, Name: filepath.Base(path)}
	src, err := os.ReadFile(abs)
	if err != nil {
		f.Err = err
		return f
	}
	f.Doc = markdown.Parse(src)
	return f
}

// Count returns the number of open files.
func (m *Manager) Count() int { return len(m.files) }

// Index returns the zero-based position of the current file.
func (m *Manager) Index() int { return m.current }

// Current returns the current file.
func (m *Manager) Current() *File { return m.files[m.current] }

// Files returns the open files in order.
func (m *Manager) Files() []*File { return m.files }

// Next moves to the following file, wrapping at the end.
func (m *Manager) Next() *File {
	m.current = (m.current + 1) % len(m.files)
	return m.Current()
}

// Prev moves to the preceding file, wrapping at the start.
func (m *Manager) Prev() *File {
	m.current = (m.current - 1 + len(m.files)) % len(m.files)
	return m.Current()
}

// Switch jumps to the file at the zero-based index.
func (m *Manager) Switch(i int) bool {
	if i < 0 || i >= len(m.files) {
		return false
	}
	m.current = i
	return true
}

// ByPath finds the open file with the given absolute path.
func (m *Manager) ByPath(path string) (int, *File) {
	for i, f := range m.files {
		if f.Path == path {
			return i, f
		}
	}
	return -1, nil
}

// Reload rereads the file at index from disk. A read failure keeps the
// previous document and records the error.
func (m *Manager) Reload(i int) error {
	if i < 0 || i >= len(m.files) {
		return fmt.Errorf("docs: reload index %d out of range", i)
	}
	f := m.files[i]
	src, err := os.ReadFile(f.Path)
	if err != nil {
		f.Err = err
		return fmt.Errorf("docs: reload %s: %w", f.Path, err)
	}
	f.Doc = markdown.Parse(src)
	f.Err = nil
	return nil
}
