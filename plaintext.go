// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// summaryMaxRunes bounds front matter description length.
const summaryMaxRunes = 160

// PlainText strips markdown markup and returns text content with collapsed whitespace.
func PlainText(markdown string) string {
	src := []byte(normalizeLineEndings(markdown))
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			if entering {
				buf.Write(node.Segment.Value(src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					buf.WriteByte(' ')
				}
			}
		case *ast.String:
			if entering {
				buf.Write(node.Value)
			}
		case *ast.AutoLink:
			if entering {
				buf.Write(node.Label(src))
			}
		default:
			if !entering && n.Type() == ast.TypeBlock {
				buf.WriteByte(' ')
			}
		}

		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(buf.String()), " ")
}

// summarize returns first paragraph of markdown as plain text cut at a word boundary.
func summarize(markdown string) string {
	markdown = strings.TrimSpace(normalizeLineEndings(markdown))
	if first, _, found := strings.Cut(markdown, "\n\n"); found {
		markdown = first
	}

	plain := PlainText(markdown)
	if utf8.RuneCountInString(plain) <= summaryMaxRunes {
		return plain
	}

	runes := []rune(plain)[:summaryMaxRunes]
	cut := string(runes)
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}

	return strings.TrimRight(cut, " ,.;:") + "..."
}
