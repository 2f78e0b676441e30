// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package preview

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

// ErrRenderPage indicates preview HTML conversion failure.
var ErrRenderPage = errors.New("render preview page")

// markdown converts page bodies; {#id} heading attributes become element ids.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAttribute(),
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// Page is one page converted for preview.
type Page struct {
	Title string
	HTML  string
}

// RenderPage converts one compiled page into HTML, dropping front matter and module imports.
func RenderPage(text string) (Page, error) {
	frontMatter, body := splitFrontMatter(text)

	var meta struct {
		Title string `yaml:"title"`
	}
	if frontMatter != "" {
		if err := yaml.Unmarshal([]byte(frontMatter), &meta); err != nil {
			return Page{}, fmt.Errorf("%w: front matter: %w", ErrRenderPage, err)
		}
	}

	var out bytes.Buffer
	if err := markdown.Convert([]byte(stripImports(body)), &out); err != nil {
		return Page{}, fmt.Errorf("%w: %w", ErrRenderPage, err)
	}

	return Page{Title: meta.Title, HTML: out.String()}, nil
}

// splitFrontMatter separates a leading "---" delimited YAML block from body.
func splitFrontMatter(text string) (string, string) {
	rest, ok := strings.CutPrefix(text, "---\n")
	if !ok {
		return "", text
	}

	frontMatter, body, ok := strings.Cut(rest, "\n---\n")
	if !ok {
		return "", text
	}

	return frontMatter, body
}

// stripImports drops leading ES module import lines that MDX pages carry.
func stripImports(body string) string {
	lines := strings.Split(body, "\n")

	start := 0
	for start < len(lines) {
		line := strings.TrimSpace(lines[start])
		if line != "" && !strings.HasPrefix(line, "import ") {
			break
		}

		start++
	}

	return strings.Join(lines[start:], "\n")
}
