// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/driver.go
// Summary: Output driver abstraction over the terminal backends.

package render

// Driver receives diffed cell runs and presents them. The interactive
// backend sits on tcell; the stream backend encodes raw escape sequences
// for dumps and tests.
type Driver interface {
	// Size returns the current output dimensions in cells.
	Size() (w, h int)
	// Apply stages the changed runs of one frame.
	Apply(spans []Span)
	// Show makes the staged frame visible.
	Show()
	// Fini releases the output, restoring the terminal where applicable.
	Fini()
}
