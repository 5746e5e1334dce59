// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/vellum/main.go
// Summary: Command-line entry point.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/vellumview/vellum/config"
	"github.com/vellumview/vellum/docs"
	"github.com/vellumview/vellum/layout"
	"github.com/vellumview/vellum/render"
	"github.com/vellumview/vellum/store"
	"github.com/vellumview/vellum/theme"
	"github.com/vellumview/vellum/view"
)

func main() {
	cmd := &cli.Command{
		Name:      "vellum",
		Usage:     "Terminal Markdown viewer with layout-faithful rendering",
		ArgsUsage: "FILE [FILE...]",
		Action:    run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "theme",
				Aliases: []string{"t"},
				Usage:   "Builtin theme name or theme .yaml path",
				Sources: cli.EnvVars("VELLUM_THEME"),
			},
			&cli.BoolFlag{
				Name:  "dump",
				Usage: "Render once to stdout and exit",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "Dump width in columns (default: terminal width or 80)",
			},
			&cli.BoolFlag{
				Name:  "no-watch",
				Usage: "Disable live reload on file changes",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Write debug logs to this file",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "vellum:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("no files given")
	}

	cfgPath := cmd.String("config")
	if cfgPath == "" {
		if p, err := config.Path(); err == nil {
			cfgPath = p
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if cmd.Bool("no-watch") {
		watch := false
		cfg.Watch = &watch
	}
	if cmd.String("log-file") != "" {
		cfg.LogFile = cmd.String("log-file")
	}
	if err := setupLogging(cfg.LogFile); err != nil {
		return err
	}

	man, err := docs.Load(ctx, paths)
	if err != nil {
		return err
	}

	if cmd.Bool("dump") {
		name := cfg.Theme
		if cmd.String("theme") != "" {
			name = cmd.String("theme")
		}
		th, _, err := resolveTheme(name)
		if err != nil {
			return err
		}
		return dump(man, th, int(cmd.Int("width")))
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal (use --dump for pipes)")
	}

	st := openStore()
	defer st.Close()

	// the flag wins, then the theme from the last run, then the config file
	name := cfg.Theme
	if last, ok := st.Theme(); ok && theme.Builtin(last) != nil {
		name = last
	}
	if cmd.String("theme") != "" {
		name = cmd.String("theme")
	}
	th, themeName, err := resolveTheme(name)
	if err != nil {
		return err
	}

	return view.Run(view.Options{
		Manager:      man,
		Store:        st,
		Theme:        th,
		ThemeName:    themeName,
		Watch:        cfg.Watch == nil || *cfg.Watch,
		SmoothScroll: cfg.SmoothScroll == nil || *cfg.SmoothScroll,
	})
}

// resolveTheme returns the style table for a builtin name or a theme file
// path, plus the builtin name the runtime theme cycle starts from.
func resolveTheme(name string) (*theme.Theme, string, error) {
	for _, b := range theme.BuiltinNames() {
		if name == b {
			return theme.Builtin(name), name, nil
		}
	}
	th, err := theme.Load(name)
	if err != nil {
		return nil, "", fmt.Errorf("theme %q: %w", name, err)
	}
	// a file theme starts the runtime theme cycle from its name
	return th, th.Name, nil
}

// openStore opens the position database, degrading to an inert store on
// failure.
func openStore() *store.Store {
	path, err := config.StatePath()
	if err != nil {
		slog.Warn("no state dir", "err", err)
		return nil
	}
	st, err := store.Open(path)
	if err != nil {
		slog.Warn("position store unavailable", "err", err)
		return nil
	}
	return st
}

func setupLogging(path string) error {
	if path == "" {
		// keep the terminal clean; logs only go where asked
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return nil
}

// dump renders every document once at a fixed width and writes the styled
// text to stdout.
func dump(man *docs.Manager, th *theme.Theme, width int) error {
	if width <= 0 {
		width = 80
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	caps := theme.Capabilities{Depth: theme.DepthTrueColor, BoxDrawing: true}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		caps.Depth = theme.Depth256
	}
	painter := render.NewPainter(th, caps)
	driver := render.NewANSIDriver(os.Stdout, width, 0, caps)

	for i, f := range man.Files() {
		if f.Err != nil {
			fmt.Fprintf(os.Stderr, "vellum: %s: %v\n", f.Name, f.Err)
			continue
		}
		if man.Count() > 1 {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("== %s ==\n", f.Name)
		}
		tree := layout.Build(f.Doc, th, width)
		buf := render.NewBuffer(width, tree.Height)
		vp := layout.Viewport{Width: width, Height: tree.Height}
		painter.Paint(buf, tree, vp, render.State{SelectedLink: -1, CurrentMatch: -1})
		driver.WriteBuffer(buf)
	}
	return nil
}
