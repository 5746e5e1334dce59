// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: docs/watcher.go
// Summary: Filesystem change notifications for open documents.

package docs

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce coalesces the burst of events an editor save produces into one
// reload.
const debounce = 150 * time.Millisecond

// Watcher reports changed document paths on Events. Directories are
// watched rather than the files themselves so atomic saves (write to temp,
// rename over) keep working.
type Watcher struct {
	fw     *fsnotify.Watcher
	want   map[string]bool
	Events chan string
	done   chan struct{}
}

// Watch starts watching the given absolute file paths.
func Watch(paths []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fw:     fw,
		want:   make(map[string]bool, len(paths)),
		Events: make(chan string, 8),
		done:   make(chan struct{}),
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		w.want[p] = true
		dirs[filepath.Dir(p)] = true
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			fw.Close()
			return nil, err
		}
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if !w.want[ev.Name] {
				continue
			}
			pending[ev.Name] = true
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			for p := range pending {
				select {
				case w.Events <- p:
				case <-w.done:
					return
				}
			}
			pending = make(map[string]bool)
			fire = nil
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slog.Warn("watch error", "err", err)
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() {
	close(w.done)
	w.fw.Close()
}
