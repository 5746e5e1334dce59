// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/load.go
// Summary: YAML theme files layered over a built-in base theme.

package theme

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// File is the on-disk theme format. Every field is optional; unset fields
// keep the base theme's value. Colors are "#rrggbb", a palette index, or
// "default".
type File struct {
	Name    string            `yaml:"name"`
	Base    string            `yaml:"base"`
	Colors  map[string]string `yaml:"colors"`
	Borders map[string]string `yaml:"borders"`
	Spacing map[string]int    `yaml:"spacing"`
}

var borderNames = map[string]BorderStyle{
	"none":    BorderNone,
	"single":  BorderSingle,
	"double":  BorderDouble,
	"rounded": BorderRounded,
	"heavy":   BorderHeavy,
	"ascii":   BorderASCII,
}

// colorKeys are the color slots a theme file may set.
var colorKeys = map[string]bool{
	"text": true, "muted": true, "link": true, "code-fg": true,
	"code-bg": true, "codespan-fg": true, "codespan-bg": true,
	"quote": true, "quote-bar": true, "marker": true, "rule": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

func validColor(v interface{}) error {
	s, _ := v.(string)
	_, err := ParseColor(s)
	return err
}

// Validate checks the file before it is applied. Unknown keys and
// unparseable values are rejected here so the resolved table handed to
// layout is always well formed.
func (f *File) Validate() error {
	if err := validation.ValidateStruct(f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 64)),
		validation.Field(&f.Base, validation.In(anyNames()...)),
	); err != nil {
		return err
	}
	for key, val := range f.Colors {
		if !colorKeys[key] {
			return fmt.Errorf("theme %q: unknown color key %q", f.Name, key)
		}
		if err := validColor(val); err != nil {
			return fmt.Errorf("theme %q: color %q: %w", f.Name, key, err)
		}
	}
	for key, val := range f.Borders {
		if key != "code" && key != "table" {
			return fmt.Errorf("theme %q: unknown border key %q", f.Name, key)
		}
		if _, ok := borderNames[val]; !ok {
			return fmt.Errorf("theme %q: unknown border style %q", f.Name, val)
		}
	}
	for key, val := range f.Spacing {
		if err := validation.Validate(val, validation.Min(0), validation.Max(8)); err != nil {
			return fmt.Errorf("theme %q: spacing %q: %w", f.Name, key, err)
		}
	}
	return nil
}

func anyNames() []interface{} {
	names := BuiltinNames()
	out := make([]interface{}, 0, len(names)+1)
	out = append(out, "")
	for _, n := range names {
		out = append(out, n)
	}
	return out
}

// Load reads a theme file from disk, validates it, and resolves it against
// its base theme.
func Load(path string) (*Theme, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f.Resolve()
}

// Resolve layers the file over its base built-in and returns the final
// theme. Validate must have passed.
func (f *File) Resolve() (*Theme, error) {
	base := f.Base
	if base == "" {
		base = "docs"
	}
	t := Builtin(base)
	if t == nil {
		return nil, fmt.Errorf("unknown base theme %q", base)
	}
	out := *t
	out.Name = f.Name

	set := func(dst *Color, key string) {
		if s, ok := f.Colors[key]; ok {
			c, _ := ParseColor(s)
			*dst = c
		}
	}
	set(&out.Text.FG, "text")
	set(&out.Muted.FG, "muted")
	set(&out.Link.Style.FG, "link")
	set(&out.Code.Style.FG, "code-fg")
	set(&out.Code.Style.BG, "code-bg")
	set(&out.CodeSpan.FG, "codespan-fg")
	set(&out.CodeSpan.BG, "codespan-bg")
	set(&out.Quote.Style.FG, "quote")
	set(&out.Quote.Bar.FG, "quote-bar")
	set(&out.ListMarker.FG, "marker")
	set(&out.Rule.FG, "rule")
	for i := 0; i < 6; i++ {
		set(&out.Heading[i].Style.FG, fmt.Sprintf("h%d", i+1))
	}

	if b, ok := f.Borders["code"]; ok {
		out.Code.Border = borderNames[b]
	}
	if b, ok := f.Borders["table"]; ok {
		out.Table.Border = borderNames[b]
	}

	sp := func(dst *int, key string) {
		if v, ok := f.Spacing[key]; ok {
			*dst = v
		}
	}
	sp(&out.Spacing.ParagraphAfter, "paragraph-after")
	sp(&out.Spacing.HeadingBefore, "heading-before")
	sp(&out.Spacing.HeadingAfter, "heading-after")
	sp(&out.Spacing.BlockAfter, "block-after")
	sp(&out.Spacing.QuoteIndent, "quote-indent")
	sp(&out.Spacing.CodePadding, "code-padding")
	sp(&out.Spacing.TablePadding, "table-padding")

	return &out, nil
}
