// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: markdown/inline.go
// Summary: Inline-level goldmark AST conversion.

package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/vellumview/vellum/ir"
)

func convertInlines(parent ast.Node, src []byte) []ir.Inline {
	var out []ir.Inline
	afterCheckbox := false
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch v := n.(type) {
		case *ast.Text:
			txt := string(v.Segment.Value(src))
			if afterCheckbox {
				txt = strings.TrimPrefix(txt, " ")
				afterCheckbox = false
			}
			if txt != "" {
				out = append(out, &ir.Text{Text: txt})
			}
			if v.HardLineBreak() {
				out = append(out, &ir.LineBreak{})
			} else if v.SoftLineBreak() {
				out = append(out, &ir.SoftBreak{})
			}
		case *ast.String:
			out = append(out, &ir.Text{Text: string(v.Value)})
		case *ast.Emphasis:
			inner := convertInlines(v, src)
			if v.Level >= 2 {
				out = append(out, &ir.Strong{Content: inner})
			} else {
				out = append(out, &ir.Emphasis{Content: inner})
			}
		case *east.Strikethrough:
			out = append(out, &ir.Strike{Content: convertInlines(v, src)})
		case *ast.CodeSpan:
			out = append(out, &ir.CodeSpan{Code: codeSpanText(v, src)})
		case *ast.Link:
			out = append(out, &ir.Link{
				URL:     string(v.Destination),
				Title:   string(v.Title),
				Content: convertInlines(v, src),
			})
		case *ast.AutoLink:
			url := string(v.URL(src))
			out = append(out, &ir.Link{
				URL:     url,
				Content: []ir.Inline{&ir.Text{Text: string(v.Label(src))}},
			})
		case *ast.Image:
			out = append(out, &ir.Image{
				URL:   string(v.Destination),
				Alt:   ir.PlainText(convertInlines(v, src)),
				Title: string(v.Title),
			})
		case *east.TaskCheckBox:
			afterCheckbox = true // state is lifted onto the list item
		case *ast.RawHTML:
			// no terminal rendering for raw HTML spans
		}
	}
	return out
}

func codeSpanText(n *ast.CodeSpan, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
		}
	}
	return sb.String()
}
