// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Viewer preferences loaded from the user config file.

// Package config reads the optional preferences file. Flags override the
// file, and the file overrides the built-in defaults; a missing file is
// not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/vellumview/vellum/theme"
)

// Config is the preferences file contents.
type Config struct {
	Theme        string `yaml:"theme"`
	Watch        *bool  `yaml:"watch"`
	SmoothScroll *bool  `yaml:"smooth_scroll"`
	LogFile      string `yaml:"log_file"`
}

// Default returns the built-in preferences.
func Default() Config {
	watch, smooth := true, true
	return Config{Theme: "docs", Watch: &watch, SmoothScroll: &smooth}
}

// Validate checks the file's values.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Theme, validation.By(validTheme)),
	)
}

func validTheme(v interface{}) error {
	name, _ := v.(string)
	if name == "" {
		return nil
	}
	for _, b := range theme.BuiltinNames() {
		if name == b {
			return nil
		}
	}
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return nil
	}
	return fmt.Errorf("unknown theme %q (builtin name or .yaml path)", name)
}

// Path returns the standard location of the preferences file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vellum", "config.yaml"), nil
}

// StatePath returns the location of the reading-position database.
func StatePath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vellum", "positions.db"), nil
}

// Load reads the preferences at path, layered over the defaults. A missing
// file yields the defaults; a malformed or invalid one is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := file.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}

	if file.Theme != "" {
		cfg.Theme = file.Theme
	}
	if file.Watch != nil {
		cfg.Watch = file.Watch
	}
	if file.SmoothScroll != nil {
		cfg.SmoothScroll = file.SmoothScroll
	}
	if file.LogFile != "" {
		cfg.LogFile = file.LogFile
	}
	return cfg, nil
}
