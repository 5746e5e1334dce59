// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: markdown/parse.go
// Summary: Markdown to document-tree conversion on top of goldmark.
// Usage: Parse is called once per file load or reload; the result is
// immutable input for the layout engine.

// Package markdown converts CommonMark/GFM source into the ir document
// tree. Parsing itself is delegated to goldmark with the GFM extension;
// this package walks the goldmark AST into the closed ir variant set and
// recognises the extras the viewer cares about: YAML frontmatter,
// GitHub-style callouts, and task-list checkboxes.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/vellumview/vellum/ir"
)

var parser = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Parse converts Markdown source into a document tree. It never fails:
// malformed constructs degrade to plain paragraphs, the way terminals
// degrade colors.
func Parse(src []byte) *ir.Document {
	fm, body := splitFrontmatter(src)

	root := parser.Parser().Parse(text.NewReader(body))
	blocks := convertBlocks(root, body)

	doc := &ir.Document{
		Meta:   ir.Metadata{Frontmatter: fm},
		Blocks: blocks,
	}
	doc.Meta.Title = deriveTitle(fm, blocks)
	return doc
}

func deriveTitle(fm map[string]string, blocks []ir.Block) string {
	if t, ok := fm["title"]; ok && t != "" {
		return t
	}
	for _, b := range blocks {
		if h, ok := b.(*ir.Heading); ok && h.Level == 1 {
			return ir.PlainText(h.Content)
		}
	}
	return ""
}

func convertBlocks(parent ast.Node, src []byte) []ir.Block {
	var out []ir.Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b := convertBlock(n, src); b != nil {
			out = append(out, b)
		}
	}
	return out
}

func convertBlock(n ast.Node, src []byte) ir.Block {
	switch v := n.(type) {
	case *ast.Heading:
		return &ir.Heading{Level: v.Level, Content: convertInlines(v, src)}
	case *ast.Paragraph:
		return &ir.Paragraph{Content: convertInlines(v, src)}
	case *ast.TextBlock:
		content := convertInlines(v, src)
		if len(content) == 0 {
			return nil
		}
		return &ir.Paragraph{Content: content}
	case *ast.FencedCodeBlock:
		return &ir.CodeBlock{
			Lang: string(v.Language(src)),
			Code: blockLines(v, src),
		}
	case *ast.CodeBlock:
		return &ir.CodeBlock{Code: blockLines(v, src)}
	case *ast.Blockquote:
		inner := convertBlocks(v, src)
		if co := asCallout(inner); co != nil {
			return co
		}
		return &ir.BlockQuote{Blocks: inner}
	case *ast.List:
		return convertList(v, src)
	case *ast.ThematicBreak:
		return &ir.Rule{}
	case *east.Table:
		return convertTable(v, src)
	case *ast.HTMLBlock:
		return nil // raw HTML has no terminal rendering
	}
	return nil
}

func blockLines(n interface {
	Lines() *text.Segments
}, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func convertList(v *ast.List, src []byte) *ir.List {
	list := &ir.List{Ordered: v.IsOrdered(), Start: 1}
	if v.IsOrdered() && v.Start > 0 {
		list.Start = v.Start
	}
	for li := v.FirstChild(); li != nil; li = li.NextSibling() {
		item := ir.ListItem{
			Task:   taskStateOf(li),
			Blocks: convertBlocks(li, src),
		}
		list.Items = append(list.Items, item)
	}
	return list
}

// taskStateOf reports the GFM checkbox state of a list item. The checkbox
// node itself is dropped during inline conversion.
func taskStateOf(li ast.Node) ir.TaskState {
	for c := li.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.Kind() {
		case ast.KindTextBlock, ast.KindParagraph:
			if box, ok := c.FirstChild().(*east.TaskCheckBox); ok {
				if box.IsChecked {
					return ir.TaskDone
				}
				return ir.TaskOpen
			}
			return ir.TaskNone
		}
	}
	return ir.TaskNone
}

func convertTable(v *east.Table, src []byte) *ir.Table {
	tbl := &ir.Table{}
	for _, a := range v.Alignments {
		tbl.Align = append(tbl.Align, convertAlignment(a))
	}
	for row := v.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []ir.TableCell
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, ir.TableCell{Content: convertInlines(cell, src)})
		}
		if _, ok := row.(*east.TableHeader); ok {
			tbl.Header = cells
		} else {
			tbl.Rows = append(tbl.Rows, cells)
		}
	}
	normalizeTable(tbl)
	return tbl
}

// normalizeTable pads or truncates ragged rows so every row matches the
// header column count; nested tables cannot occur in pipe syntax.
func normalizeTable(tbl *ir.Table) {
	n := len(tbl.Header)
	if n == 0 && len(tbl.Rows) > 0 {
		n = len(tbl.Rows[0])
	}
	for len(tbl.Align) < n {
		tbl.Align = append(tbl.Align, ir.AlignNone)
	}
	tbl.Align = tbl.Align[:n]
	for i, row := range tbl.Rows {
		for len(row) < n {
			row = append(row, ir.TableCell{})
		}
		tbl.Rows[i] = row[:n]
	}
}

func convertAlignment(a east.Alignment) ir.Alignment {
	switch a {
	case east.AlignLeft:
		return ir.AlignLeft
	case east.AlignCenter:
		return ir.AlignCenter
	case east.AlignRight:
		return ir.AlignRight
	}
	return ir.AlignNone
}

// asCallout recognises a GitHub alert: a quote whose first paragraph opens
// with "[!KIND]" on its own line, optionally followed by a title on that
// same line.
func asCallout(blocks []ir.Block) *ir.Callout {
	if len(blocks) == 0 {
		return nil
	}
	p, ok := blocks[0].(*ir.Paragraph)
	if !ok || len(p.Content) == 0 {
		return nil
	}
	// the marker must be matched against the flattened first line: the
	// inline parser hands "[" over as its own text node, so no single
	// inline ever starts with "[!"
	cut := len(p.Content)
	for i, in := range p.Content {
		if _, isBreak := in.(*ir.SoftBreak); isBreak {
			cut = i
			break
		}
		if _, isBreak := in.(*ir.LineBreak); isBreak {
			cut = i
			break
		}
	}
	line := strings.TrimSpace(ir.PlainText(p.Content[:cut]))
	if !strings.HasPrefix(line, "[!") {
		return nil
	}
	end := strings.Index(line, "]")
	if end < 0 {
		return nil
	}
	kind, known := ir.CalloutKindFromMarker(line[2:end])
	if !known {
		return nil
	}
	title := strings.TrimSpace(line[end+1:])

	rest := p.Content[cut:]
	// drop the break that ended the marker line
	if len(rest) > 0 {
		rest = rest[1:]
	}

	out := &ir.Callout{Kind: kind, Title: title}
	if len(rest) > 0 {
		out.Blocks = append(out.Blocks, &ir.Paragraph{Content: rest})
	}
	out.Blocks = append(out.Blocks, blocks[1:]...)
	return out
}
