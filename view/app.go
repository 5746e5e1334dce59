// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: view/app.go
// Summary: Interactive event loop owning the screen, buffers, and redraw
// cadence.

package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vellumview/vellum/docs"
	"github.com/vellumview/vellum/layout"
	"github.com/vellumview/vellum/render"
	"github.com/vellumview/vellum/store"
	"github.com/vellumview/vellum/theme"
)

const frameInterval = 16 * time.Millisecond

// Options configures an interactive session.
type Options struct {
	Manager      *docs.Manager
	Store        *store.Store
	Theme        *theme.Theme
	ThemeName    string
	Watch        bool
	SmoothScroll bool
}

// App is the single thread that owns the layout trees, the viewport, and
// both render buffers. Everything else only sends it events.
type App struct {
	screen  tcell.Screen
	driver  *render.TcellDriver
	ctrl    *Controller
	painter *render.Painter
	caps    theme.Capabilities

	front *render.Buffer
	back  *render.Buffer

	watcher    *docs.Watcher
	dirty      bool
	paintTheme *theme.Theme
}

// Run starts the viewer and blocks until quit. The terminal is restored on
// every exit path, panics included.
func Run(opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("view: create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("view: init screen: %w", err)
	}
	defer screen.Fini()

	caps := detectCaps(screen)
	w, h := screen.Size()

	th := opts.Theme
	if th == nil {
		th = theme.Builtin(opts.ThemeName)
	}
	ctrl := NewController(opts.Manager, opts.Store, opts.ThemeName, w, h-1)
	ctrl.th = th
	ctrl.SetSmoothScroll(opts.SmoothScroll)

	a := &App{
		screen:  screen,
		driver:  render.NewTcellDriver(screen, caps),
		ctrl:    ctrl,
		painter: render.NewPainter(th, caps),
		caps:    caps,
		front:   render.NewBuffer(w, h),
		back:    render.NewBuffer(w, h),
		dirty:   true,
	}
	screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)

	if opts.Watch {
		paths := make([]string, 0, opts.Manager.Count())
		for _, f := range opts.Manager.Files() {
			paths = append(paths, f.Path)
		}
		if watcher, err := docs.Watch(paths); err == nil {
			a.watcher = watcher
			defer watcher.Close()
		}
	}

	err = a.loop()
	a.ctrl.SavePositions()
	return err
}

func (a *App) loop() error {
	events := make(chan tcell.Event, 16)
	quitPoll := make(chan struct{})
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quitPoll:
				return
			}
		}
	}()
	defer close(quitPoll)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	var watchEvents chan string
	if a.watcher != nil {
		watchEvents = a.watcher.Events
	}

	for {
		select {
		case ev := <-events:
			switch tev := ev.(type) {
			case *tcell.EventResize:
				w, h := tev.Size()
				a.ctrl.Resize(w, h-1)
				a.front.Resize(w, h)
				a.back.Resize(w, h)
				a.screen.Sync()
				a.dirty = true
			case *tcell.EventKey:
				switch a.ctrl.HandleKey(tev) {
				case CmdQuit:
					return nil
				case CmdRedraw:
					a.dirty = true
				}
			case *tcell.EventMouse:
				if a.mouse(tev) {
					a.dirty = true
				}
			}
		case path := <-watchEvents:
			if a.ctrl.FileChanged(path) == CmdRedraw {
				a.dirty = true
			}
		case <-ticker.C:
			if a.dirty {
				a.dirty = a.draw(time.Now())
			}
		}
	}
}

// mouse maps clicks through the hit-region index and wheel motion to
// scrolling. It reports whether a redraw is needed.
func (a *App) mouse(ev *tcell.EventMouse) bool {
	s := a.ctrl.Session()
	x, y := ev.Position()

	switch {
	case ev.Buttons()&tcell.WheelDown != 0:
		a.ctrl.scrollBy(3, false)
		return true
	case ev.Buttons()&tcell.WheelUp != 0:
		a.ctrl.scrollBy(-3, false)
		return true
	case ev.Buttons()&tcell.ButtonPrimary != 0:
		if y >= s.VP.Height {
			return false
		}
		// hit-test against the frame on screen, which mid-glide sits at
		// the animated offset, not the logical one
		shown, _ := a.ctrl.DisplayOffset(time.Now())
		region, ok := s.Tree.RegionAt(x, y+shown)
		if !ok || region.Kind != layout.RegionLink {
			return false
		}
		s.Link = region.Link
		a.ctrl.activateLink()
		return true
	}
	return false
}

// draw paints one frame and reports whether the scroll animation still
// needs further ticks.
func (a *App) draw(now time.Time) bool {
	th := a.ctrl.Theme()
	if th != a.paintTheme {
		a.painter.SetTheme(th)
		a.paintTheme = th
	}

	s := a.ctrl.Session()
	offset, animating := a.ctrl.DisplayOffset(now)
	vp := s.VP
	vp.Offset = offset

	a.painter.Paint(a.back, s.Tree, vp, a.ctrl.PaintState())
	if a.ctrl.Mode() == ModeHelp {
		paintHelp(a.back, th)
	}
	render.PaintStatus(a.back, a.back.H-1, a.ctrl.Status(), th)

	a.driver.Apply(render.Diff(a.front, a.back))
	a.driver.Show()
	a.front, a.back = a.back, a.front
	return animating
}

// detectCaps probes the terminal once at startup.
func detectCaps(screen tcell.Screen) theme.Capabilities {
	depth := theme.DepthMono
	switch n := screen.Colors(); {
	case n >= 1<<24:
		depth = theme.DepthTrueColor
	case n >= 256:
		depth = theme.Depth256
	case n >= 8:
		depth = theme.Depth16
	}
	cs := strings.ToLower(screen.CharacterSet())
	return theme.Capabilities{
		Depth:      depth,
		BoxDrawing: strings.Contains(cs, "utf"),
	}
}
