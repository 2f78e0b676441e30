// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import "strings"

const (
	mdxTabsImport    = "import Tabs from '@theme/Tabs';"
	mdxTabItemImport = "import TabItem from '@theme/TabItem';"
)

// mdxRenderer emits markdown extended with inline JSX: details blocks and tabs.
type mdxRenderer struct {
	baseRenderer
	levels headingLevels
}

// Escape escapes markdown specials and JSX delimiters in native mode.
func (r *mdxRenderer) Escape(text string, mode EscapeMode) string {
	return escapeText(text, mode, mdxEscaper)
}

// AppendHeading writes ATX heading.
func (r *mdxRenderer) AppendHeading(level int, text, id string) {
	r.block(headingLine(r.levels.heading(level), r.Escape(sanitizeText(text), EscapeNative), id))
}

// AppendParagraph writes one paragraph of composed inline content.
func (r *mdxRenderer) AppendParagraph(content string) {
	if strings.TrimSpace(content) == "" {
		return
	}

	r.block(content)
}

// AppendDescription writes markdown description with JSX delimiters escaped.
func (r *mdxRenderer) AppendDescription(markdown string) {
	if text := formatDescription(markdown); text != "" {
		r.block(escapeMDXSource(text))
	}
}

// AppendDebugPlaceholder writes visible admonition.
func (r *mdxRenderer) AppendDebugPlaceholder(text string) {
	r.block(":::note\n\n" + r.Escape(text, EscapeNative) + "\n\n:::")
}

// EnterExpandableSection opens a collapsible details block.
func (r *mdxRenderer) EnterExpandableSection(id, title string) {
	r.levels.enter()
	r.block("<details id=" + quoteAttr(r.Escape(id, EscapeHTML)) + ">\n<summary>" + r.Escape(sanitizeText(title), EscapeHTML) + "</summary>")
}

// ExitExpandableSection closes details block.
func (r *mdxRenderer) ExitExpandableSection() {
	r.levels.exit()
	r.block("</details>")
}

// EnterTabbedSection opens Tabs component.
func (r *mdxRenderer) EnterTabbedSection(id string) {
	r.requireImport(mdxTabsImport)
	r.requireImport(mdxTabItemImport)
	r.block("<Tabs groupId=" + quoteAttr(r.Escape(id, EscapeHTML)) + ">")
}

// EnterTab opens one TabItem.
func (r *mdxRenderer) EnterTab(id, title string) {
	r.levels.enter()
	r.block("<TabItem value=" + quoteAttr(r.Escape(id, EscapeHTML)) + " label=" + quoteAttr(r.Escape(title, EscapeHTML)) + ">")
}

// ExitTab closes TabItem.
func (r *mdxRenderer) ExitTab() {
	r.levels.exit()
	r.block("</TabItem>")
}

// ExitTabbedSection closes Tabs component.
func (r *mdxRenderer) ExitTabbedSection() {
	r.block("</Tabs>")
}

// AppendProperty writes property name, type and annotation badges.
func (r *mdxRenderer) AppendProperty(row PropertyRow) {
	label, multiline := formatTypeForRow(row)

	line := r.Strong(r.Escape(row.Name, EscapeNative))
	if !multiline {
		line += ": " + r.InlineCode(label)
	}

	for _, annotation := range row.Annotations {
		line += " <span className=" + quoteAttr("badge badge--"+string(annotation)) + ">" + string(annotation) + "</span>"
	}

	r.block(line)
	if multiline {
		r.AppendCode(label, "ts")
	}
}

// AppendEmbedLink writes markdown link to embed page.
func (r *mdxRenderer) AppendEmbedLink(embedName, title string) {
	r.block("See [" + r.Escape(title, EscapeNative) + "](" + r.embedLink(embedName) + ")")
}
