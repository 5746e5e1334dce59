// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: view/controller.go
// Summary: Modal action dispatcher mutating sessions from key events.

package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vellumview/vellum/docs"
	"github.com/vellumview/vellum/render"
	"github.com/vellumview/vellum/store"
	"github.com/vellumview/vellum/theme"
)

// Mode is the dispatcher's modal state.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeJump
	ModeHelp
)

// Command is what the event loop must do after a key was dispatched.
type Command int

const (
	CmdNone Command = iota
	CmdRedraw
	CmdQuit
)

// Controller owns all viewing state below the terminal: the open
// documents, one session each, the active theme, and the modal dispatcher.
// It never touches the screen, which keeps it fully testable.
type Controller struct {
	man   *docs.Manager
	store *store.Store

	themeName string
	th        *theme.Theme

	width  int // content columns
	height int // content rows, status bar excluded

	sessions map[string]*Session
	mode     Mode
	input    string // live search needle or jump digits
	message  string

	anim   animator
	smooth bool
}

// NewController builds sessions lazily; only the current document is laid
// out up front.
func NewController(man *docs.Manager, st *store.Store, themeName string, w, h int) *Controller {
	c := &Controller{
		man:       man,
		store:     st,
		themeName: themeName,
		th:        theme.Builtin(themeName),
		width:     w,
		height:    h,
		sessions:  make(map[string]*Session),
		smooth:    true,
	}
	return c
}

// SetSmoothScroll toggles scroll animation for page-sized jumps.
func (c *Controller) SetSmoothScroll(on bool) { c.smooth = on }

// Theme returns the active style table.
func (c *Controller) Theme() *theme.Theme { return c.th }

// Mode returns the dispatcher mode.
func (c *Controller) Mode() Mode { return c.mode }

// Session returns the current document's session, creating it on first
// access and restoring its saved scroll position.
func (c *Controller) Session() *Session {
	f := c.man.Current()
	s, ok := c.sessions[f.Path]
	if !ok {
		s = NewSession(f, c.th, c.width, c.height)
		if off, found := c.store.Position(f.Path); found {
			s.VP.ScrollTo(off, s.Tree.Height)
		}
		c.sessions[f.Path] = s
	}
	return s
}

// Resize re-lays out every built session at the new content size.
func (c *Controller) Resize(w, h int) {
	c.width, c.height = w, h
	for _, s := range c.sessions {
		s.relayout(c.th, w, h)
	}
	c.anim.stop()
}

// DisplayOffset returns the animated offset to paint with. Animating
// reports whether another tick is needed.
func (c *Controller) DisplayOffset(now time.Time) (offset int, animating bool) {
	s := c.Session()
	return c.anim.value(now, s.VP.Offset), c.anim.active
}

// FileChanged handles a watcher notification for path.
func (c *Controller) FileChanged(path string) Command {
	i, f := c.man.ByPath(path)
	if f == nil {
		return CmdNone
	}
	if err := c.man.Reload(i); err != nil {
		slog.Warn("reload failed", "path", path, "err", err)
		c.message = "reload failed: " + f.Name
		return CmdRedraw
	}
	if s, ok := c.sessions[path]; ok {
		s.relayout(c.th, c.width, c.height)
	}
	c.message = "reloaded " + f.Name
	return CmdRedraw
}

// SavePositions persists every built session's offset.
func (c *Controller) SavePositions() {
	for path, s := range c.sessions {
		if err := c.store.SavePosition(path, s.VP.Offset); err != nil {
			slog.Warn("save position", "path", path, "err", err)
		}
	}
}

// HandleKey dispatches one key event according to the current mode.
func (c *Controller) HandleKey(ev *tcell.EventKey) Command {
	switch c.mode {
	case ModeSearch:
		return c.searchKey(ev)
	case ModeJump:
		return c.jumpKey(ev)
	case ModeHelp:
		c.mode = ModeNormal
		return CmdRedraw
	default:
		return c.normalKey(ev)
	}
}

func (c *Controller) normalKey(ev *tcell.EventKey) Command {
	s := c.Session()
	c.message = ""

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return CmdQuit
	case tcell.KeyEscape:
		if s.Search.Needle != "" {
			s.Search.Reset()
			return CmdRedraw
		}
		return CmdQuit
	case tcell.KeyDown:
		return c.scrollBy(1, false)
	case tcell.KeyUp:
		return c.scrollBy(-1, false)
	case tcell.KeyPgDn:
		return c.scrollBy(c.height, true)
	case tcell.KeyPgUp:
		return c.scrollBy(-c.height, true)
	case tcell.KeyHome:
		return c.scrollTo(0, true)
	case tcell.KeyEnd:
		return c.scrollTo(s.Tree.Height, true)
	case tcell.KeyTab:
		return c.switchDoc(c.man.Index() + 1)
	case tcell.KeyBacktab:
		return c.switchDoc(c.man.Index() - 1)
	case tcell.KeyEnter:
		return c.activateLink()
	}

	switch r := ev.Rune(); r {
	case 'q':
		return CmdQuit
	case 'j':
		return c.scrollBy(1, false)
	case 'k':
		return c.scrollBy(-1, false)
	case 'd':
		return c.scrollBy(c.height/2, true)
	case 'u':
		return c.scrollBy(-c.height/2, true)
	case ' ':
		return c.scrollBy(c.height, true)
	case 'g':
		return c.scrollTo(0, true)
	case 'G':
		return c.scrollTo(s.Tree.Height, true)
	case 'f':
		s.NextLink()
		return CmdRedraw
	case 'F':
		s.PrevLink()
		return CmdRedraw
	case 'n':
		if s.Search.Needle != "" {
			s.Search.Next()
			return c.revealMatch()
		}
		if row, ok := s.NextHeading(); ok {
			return c.scrollTo(row, true)
		}
		return CmdNone
	case 'N':
		if s.Search.Needle != "" {
			s.Search.Prev()
			return c.revealMatch()
		}
		return CmdNone
	case 'p':
		if row, ok := s.PrevHeading(); ok {
			return c.scrollTo(row, true)
		}
		return CmdNone
	case '/':
		c.mode = ModeSearch
		c.input = ""
		s.Search.Reset()
		s.Search.Active = true
		return CmdRedraw
	case ':':
		c.mode = ModeJump
		c.input = ""
		return CmdRedraw
	case '?':
		c.mode = ModeHelp
		return CmdRedraw
	case 'r':
		return c.FileChanged(s.File.Path)
	case 't':
		return c.cycleTheme()
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return c.switchDoc(int(r - '1'))
	}
	return CmdNone
}

func (c *Controller) searchKey(ev *tcell.EventKey) Command {
	s := c.Session()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		c.mode = ModeNormal
		s.Search.Reset()
		return CmdRedraw
	case tcell.KeyEnter:
		c.mode = ModeNormal
		s.Search.Active = false
		return c.revealMatch()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(c.input) > 0 {
			c.input = c.input[:len(c.input)-1]
		}
	default:
		if r := ev.Rune(); r != 0 && ev.Key() == tcell.KeyRune {
			c.input += string(r)
		} else {
			return CmdNone
		}
	}
	s.Search.Needle = c.input
	s.Search.Run(s.Tree, s.VP.Offset)
	return CmdRedraw
}

func (c *Controller) jumpKey(ev *tcell.EventKey) Command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		c.mode = ModeNormal
		c.input = ""
		return CmdRedraw
	case tcell.KeyEnter:
		c.mode = ModeNormal
		n, err := strconv.Atoi(c.input)
		c.input = ""
		if err != nil {
			return CmdRedraw
		}
		return c.switchDoc(n - 1)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(c.input) > 0 {
			c.input = c.input[:len(c.input)-1]
		}
		return CmdRedraw
	}
	if r := ev.Rune(); r >= '0' && r <= '9' {
		c.input += string(r)
		return CmdRedraw
	}
	return CmdNone
}

func (c *Controller) scrollBy(delta int, animate bool) Command {
	s := c.Session()
	from := c.anim.value(time.Now(), s.VP.Offset)
	s.VP.ScrollBy(delta, s.Tree.Height)
	c.afterScroll(from, animate)
	return CmdRedraw
}

func (c *Controller) scrollTo(row int, animate bool) Command {
	s := c.Session()
	from := c.anim.value(time.Now(), s.VP.Offset)
	s.VP.ScrollTo(row, s.Tree.Height)
	c.afterScroll(from, animate)
	return CmdRedraw
}

func (c *Controller) afterScroll(from int, animate bool) {
	s := c.Session()
	if animate && c.smooth {
		c.anim.begin(time.Now(), from, s.VP.Offset)
	} else {
		c.anim.stop()
	}
}

// revealMatch scrolls the current search match into view with a little
// headroom above it.
func (c *Controller) revealMatch() Command {
	s := c.Session()
	r, ok := s.Search.CurrentRect()
	if !ok {
		return CmdRedraw
	}
	if r.Y < s.VP.Offset || r.Y >= s.VP.Offset+s.VP.Height {
		row := r.Y - 2
		if row < 0 {
			row = 0
		}
		return c.scrollTo(row, true)
	}
	return CmdRedraw
}

func (c *Controller) activateLink() Command {
	s := c.Session()
	if s.Link < 0 || s.Link >= len(s.Tree.Links) {
		return CmdNone
	}
	lk := s.Tree.Links[s.Link]
	if row, ok := s.Tree.AnchorRow(lk.URL); ok {
		return c.scrollTo(row, true)
	}
	c.message = lk.URL
	return CmdRedraw
}

func (c *Controller) switchDoc(i int) Command {
	n := c.man.Count()
	if n < 2 {
		return CmdNone
	}
	i = ((i % n) + n) % n
	if i == c.man.Index() {
		return CmdNone
	}
	cur := c.Session()
	if err := c.store.SavePosition(cur.File.Path, cur.VP.Offset); err != nil {
		slog.Warn("save position", "err", err)
	}
	c.man.Switch(i)
	c.anim.stop()
	return CmdRedraw
}

func (c *Controller) cycleTheme() Command {
	names := theme.BuiltinNames()
	next := 0
	for i, n := range names {
		if n == c.themeName {
			next = (i + 1) % len(names)
			break
		}
	}
	c.themeName = names[next]
	c.th = theme.Builtin(c.themeName)
	for _, s := range c.sessions {
		s.relayout(c.th, c.width, c.height)
	}
	if err := c.store.SaveTheme(c.themeName); err != nil {
		slog.Warn("save theme", "err", err)
	}
	c.message = "theme: " + c.themeName
	return CmdRedraw
}

// PaintState assembles the renderer overlays for the current frame.
func (c *Controller) PaintState() render.State {
	s := c.Session()
	st := render.State{SelectedLink: s.Link, CurrentMatch: -1}
	if s.Search.Needle != "" {
		st.Matches = s.Search.Matches
		st.CurrentMatch = s.Search.Current
	}
	return st
}

// Status assembles the status line for the current frame.
func (c *Controller) Status() render.Status {
	s := c.Session()
	f := s.File
	st := render.Status{
		Name:    f.Title(),
		Index:   c.man.Index() + 1,
		Total:   c.man.Count(),
		Percent: s.Percent(),
		Message: c.message,
	}
	if f.Err != nil {
		st.Message = "error: " + f.Err.Error()
	}
	switch c.mode {
	case ModeSearch:
		st.Mode = "/" + c.input
	case ModeJump:
		st.Mode = ":" + c.input
	case ModeHelp:
		st.Mode = "help"
	default:
		if s.Search.Needle != "" && len(s.Search.Matches) > 0 {
			st.Mode = fmt.Sprintf("[%d/%d]", s.Search.Current+1, len(s.Search.Matches))
		} else if s.Search.Needle != "" {
			st.Mode = "[no match]"
		}
		if st.Message == "" && s.Link >= 0 && s.Link < len(s.Tree.Links) {
			st.Message = s.Tree.Links[s.Link].URL
		}
	}
	return st
}
