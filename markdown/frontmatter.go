// Copyright © 2025 Vellum contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: markdown/frontmatter.go
// Summary: YAML frontmatter extraction ahead of Markdown parsing.

package markdown

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// splitFrontmatter separates YAML frontmatter (between leading ---
// delimiters) from the Markdown body. If no frontmatter is present, or the
// YAML does not parse, the whole input is treated as body; a broken
// preamble never fails the document load.
func splitFrontmatter(data []byte) (map[string]string, []byte) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")
	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, data
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, data
	}

	yamlBlock := rest[:idx]
	body := bytes.TrimLeft(rest[idx+1+len(delim):], "\n\r")

	var raw map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &raw); err != nil {
		return nil, data
	}

	fm := make(map[string]string, len(raw))
	for k, v := range raw {
		fm[k] = fmt.Sprintf("%v", v)
	}
	return fm, body
}
