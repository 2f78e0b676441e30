// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// EscapeMode selects how text is escaped before emission.
type EscapeMode int

const (
	// EscapeNative applies the dialect escaping table.
	EscapeNative EscapeMode = iota
	// EscapeRaw leaves text untouched.
	EscapeRaw
	// EscapeHTML applies HTML entity escaping.
	EscapeHTML
)

// Annotation is a short marker rendered next to a property row.
type Annotation string

const (
	AnnotationRequired   Annotation = "required"
	AnnotationRecursive  Annotation = "recursive"
	AnnotationDeprecated Annotation = "deprecated"
)

// PropertyRow is one rendered property, parameter or top-level schema line.
type PropertyRow struct {
	ID          string
	Name        string
	Type        TypeInfo
	Annotations []Annotation
}

// PageMeta is sidebar metadata emitted as page front matter.
type PageMeta struct {
	Title           string `yaml:"title,omitempty"`
	SidebarLabel    string `yaml:"sidebar_label,omitempty"`
	SidebarPosition int    `yaml:"sidebar_position"`
	Description     string `yaml:"description,omitempty"`
}

// Renderer is an open render target bound to one output page.
//
// Append methods take composed inline content; callers compose it with
// Escape, InlineCode and Strong so traversal code never depends on dialect.
type Renderer interface {
	Path() string

	Escape(text string, mode EscapeMode) string
	InlineCode(text string) string
	Strong(text string) string

	AppendFrontMatter(meta PageMeta)
	AppendHeading(level int, text, id string)
	AppendParagraph(content string)
	AppendDescription(markdown string)
	AppendCode(code, language string)
	AppendList(items []string)
	AppendDebugPlaceholder(text string)

	EnterExpandableSection(id, title string)
	ExitExpandableSection()
	EnterTabbedSection(id string)
	EnterTab(id, title string)
	ExitTab()
	ExitTabbedSection()

	AppendProperty(row PropertyRow)
	AppendEmbedLink(embedName, title string)
	// AppendWidget inserts opaque widget markup; the markdown dialect drops JSX components.
	AppendWidget(markup string)

	Finalize() (string, error)
}

// baseRenderer holds output buffer and write-once state shared by all dialects.
type baseRenderer struct {
	site      *Site
	path      string
	out       strings.Builder
	imports   []string
	text      string
	finalized bool
}

// Path returns output path of the page.
func (b *baseRenderer) Path() string {
	return b.path
}

// InlineCode renders a code span.
func (b *baseRenderer) InlineCode(text string) string {
	return inlineCode(text)
}

// Strong renders bold inline text.
func (b *baseRenderer) Strong(text string) string {
	return "**" + text + "**"
}

// AppendFrontMatter writes YAML front matter block.
func (b *baseRenderer) AppendFrontMatter(meta PageMeta) {
	data, err := yaml.Marshal(meta)
	must(err)

	b.block("---\n" + strings.TrimRight(string(data), "\n") + "\n---")
}

// AppendCode writes fenced code block.
func (b *baseRenderer) AppendCode(code, language string) {
	code = strings.TrimRight(normalizeLineEndings(code), "\n")
	fence := codeFence(code)
	b.block(fence + language + "\n" + code + "\n" + fence)
}

// AppendList writes unordered list of composed items.
func (b *baseRenderer) AppendList(items []string) {
	if len(items) == 0 {
		return
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, descriptionListMarker+" "+item)
	}

	b.block(strings.Join(lines, "\n"))
}

// AppendWidget writes opaque widget markup as-is.
func (b *baseRenderer) AppendWidget(markup string) {
	if strings.TrimSpace(markup) == "" {
		return
	}

	b.block(markup)
}

// Finalize freezes the page and returns its text.
func (b *baseRenderer) Finalize() (string, error) {
	if b.finalized {
		return "", fmt.Errorf("%w: %s", ErrPageFinalized, b.path)
	}

	b.finalized = true
	b.text = ensureTrailingNewline(normalizeMarkdownOutput(b.withImports(b.out.String())))
	return b.text, nil
}

// requireImport records one import line emitted after front matter on finalize.
func (b *baseRenderer) requireImport(line string) {
	for _, existing := range b.imports {
		if existing == line {
			return
		}
	}

	b.imports = append(b.imports, line)
}

// withImports inserts collected import lines after the front matter block.
func (b *baseRenderer) withImports(text string) string {
	if len(b.imports) == 0 {
		return text
	}

	importBlock := strings.Join(b.imports, "\n") + "\n\n"
	if strings.HasPrefix(text, "---\n") {
		if end := strings.Index(text[4:], "\n---\n"); end >= 0 {
			split := 4 + end + len("\n---\n")
			return text[:split] + "\n" + importBlock + text[split:]
		}
	}

	return importBlock + text
}

// block appends one block separated by blank lines.
func (b *baseRenderer) block(content string) {
	if b.finalized {
		fail("append to finalized page %s", b.path)
	}

	b.out.WriteString(content)
	b.out.WriteString("\n\n")
}

// embedLink returns page-relative link to an embed page.
func (b *baseRenderer) embedLink(embedName string) string {
	return relativeLink(b.path, b.site.EmbedPath(embedName))
}

// formatTypeForRow returns single-line label or multi-line block flag.
func formatTypeForRow(row PropertyRow) (string, bool) {
	return FormatTypeLabel(row.Type)
}

// annotationText joins annotations with comma separator.
func annotationText(annotations []Annotation) string {
	parts := make([]string, 0, len(annotations))
	for _, annotation := range annotations {
		parts = append(parts, string(annotation))
	}

	return strings.Join(parts, ", ")
}

// headingLevels tracks nested section heading depth for heading-based dialects.
type headingLevels struct {
	last  int
	stack []int
}

// current returns heading level of innermost open section or last heading.
func (h *headingLevels) current() int {
	if len(h.stack) > 0 {
		return h.stack[len(h.stack)-1]
	}

	return h.last
}

// enter opens one nested level and returns its heading level.
func (h *headingLevels) enter() int {
	level := min(6, h.current()+1)
	h.stack = append(h.stack, level)
	return level
}

// exit closes innermost nested level.
func (h *headingLevels) exit() {
	if len(h.stack) == 0 {
		fail("unbalanced section exit")
	}

	h.stack = h.stack[:len(h.stack)-1]
}

// heading records an explicit heading level outside nested sections.
func (h *headingLevels) heading(level int) int {
	level = min(6, max(1, level))
	if len(h.stack) == 0 {
		h.last = level
	}

	return level
}

// quoteAttr wraps an already escaped attribute value in double quotes.
func quoteAttr(value string) string {
	return `"` + value + `"`
}

// headingLine renders an ATX heading with optional id attribute.
func headingLine(level int, text, id string) string {
	line := strings.Repeat("#", level) + " " + text
	if id != "" {
		line += " {#" + id + "}"
	}

	return line
}
