// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// markdownRenderer emits plain CommonMark; sections and tabs become nested headings.
type markdownRenderer struct {
	baseRenderer
	levels headingLevels
}

// Escape escapes text with CommonMark backslash escapes in native mode.
func (r *markdownRenderer) Escape(text string, mode EscapeMode) string {
	return escapeText(text, mode, markdownEscaper)
}

// AppendHeading writes ATX heading.
func (r *markdownRenderer) AppendHeading(level int, text, id string) {
	r.block(headingLine(r.levels.heading(level), r.Escape(sanitizeText(text), EscapeNative), id))
}

// AppendParagraph writes one paragraph of composed inline content.
func (r *markdownRenderer) AppendParagraph(content string) {
	if strings.TrimSpace(content) == "" {
		return
	}

	r.block(content)
}

// AppendDescription writes markdown description text.
func (r *markdownRenderer) AppendDescription(markdown string) {
	if text := formatDescription(markdown); text != "" {
		r.block(text)
	}
}

// AppendDebugPlaceholder writes visible placeholder as a blockquote.
func (r *markdownRenderer) AppendDebugPlaceholder(text string) {
	r.block("> _" + r.Escape(text, EscapeNative) + "_")
}

// EnterExpandableSection opens a nested heading section.
func (r *markdownRenderer) EnterExpandableSection(id, title string) {
	level := r.levels.enter()
	r.block(headingLine(level, r.Escape(sanitizeText(title), EscapeNative), id))
}

// ExitExpandableSection closes nested heading section.
func (r *markdownRenderer) ExitExpandableSection() {
	r.levels.exit()
}

// EnterTabbedSection is a no-op; each tab is a nested heading.
func (r *markdownRenderer) EnterTabbedSection(string) {}

// EnterTab opens one tab as a nested heading.
func (r *markdownRenderer) EnterTab(id, title string) {
	r.EnterExpandableSection(id, title)
}

// ExitTab closes one tab.
func (r *markdownRenderer) ExitTab() {
	r.levels.exit()
}

// ExitTabbedSection is a no-op.
func (r *markdownRenderer) ExitTabbedSection() {}

// AppendProperty writes property name, type and annotations.
func (r *markdownRenderer) AppendProperty(row PropertyRow) {
	label, multiline := formatTypeForRow(row)

	line := r.Strong(r.Escape(row.Name, EscapeNative))
	if !multiline {
		line += " " + r.InlineCode(label)
	}

	if len(row.Annotations) > 0 {
		line += " _(" + annotationText(row.Annotations) + ")_"
	}

	r.block(line)
	if multiline {
		r.AppendCode(label, "")
	}
}

// AppendEmbedLink writes markdown link to embed page.
func (r *markdownRenderer) AppendEmbedLink(embedName, title string) {
	r.block("See [" + r.Escape(title, EscapeNative) + "](" + r.embedLink(embedName) + ")")
}

// AppendWidget writes widget markup unless it is a JSX component,
// which plain CommonMark cannot host.
func (r *markdownRenderer) AppendWidget(markup string) {
	if isComponentMarkup(markup) {
		return
	}

	r.baseRenderer.AppendWidget(markup)
}

// isComponentMarkup reports whether markup opens with a capitalized JSX element.
func isComponentMarkup(markup string) bool {
	rest, ok := strings.CutPrefix(strings.TrimSpace(markup), "<")
	if !ok {
		return false
	}

	first, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsUpper(first)
}
