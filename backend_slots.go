// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import "strings"

// slotComponentsImport brings component slots into scope of every page using them.
const slotComponentsImport = "import { Property, Expandable, TabGroup, Tab, EmbedLink, DebugPlaceholder } from '@chunkdoc/components';"

// slotsRenderer emits component-slot markup: structure is carried by components
// and their props, text content sits in component children.
type slotsRenderer struct {
	baseRenderer
	levels headingLevels
}

// Escape escapes text as entities in native mode.
func (r *slotsRenderer) Escape(text string, mode EscapeMode) string {
	return escapeText(text, mode, slotEscaper)
}

// AppendHeading writes ATX heading.
func (r *slotsRenderer) AppendHeading(level int, text, id string) {
	r.block(headingLine(r.levels.heading(level), r.Escape(sanitizeText(text), EscapeNative), id))
}

// AppendParagraph writes one paragraph of composed inline content.
func (r *slotsRenderer) AppendParagraph(content string) {
	if strings.TrimSpace(content) == "" {
		return
	}

	r.block(content)
}

// AppendDescription writes markdown description with JSX delimiters escaped.
func (r *slotsRenderer) AppendDescription(markdown string) {
	if text := formatDescription(markdown); text != "" {
		r.block(escapeMDXSource(text))
	}
}

// AppendDebugPlaceholder writes placeholder component.
func (r *slotsRenderer) AppendDebugPlaceholder(text string) {
	r.requireImport(slotComponentsImport)
	r.block("<DebugPlaceholder>" + r.Escape(text, EscapeNative) + "</DebugPlaceholder>")
}

// EnterExpandableSection opens Expandable component.
func (r *slotsRenderer) EnterExpandableSection(id, title string) {
	r.requireImport(slotComponentsImport)
	r.levels.enter()
	r.block("<Expandable id=" + r.attr(id) + " title=" + r.attr(sanitizeText(title)) + ">")
}

// ExitExpandableSection closes Expandable component.
func (r *slotsRenderer) ExitExpandableSection() {
	r.levels.exit()
	r.block("</Expandable>")
}

// EnterTabbedSection opens TabGroup component.
func (r *slotsRenderer) EnterTabbedSection(id string) {
	r.requireImport(slotComponentsImport)
	r.block("<TabGroup id=" + r.attr(id) + ">")
}

// EnterTab opens one Tab component.
func (r *slotsRenderer) EnterTab(id, title string) {
	r.levels.enter()
	r.block("<Tab id=" + r.attr(id) + " title=" + r.attr(title) + ">")
}

// ExitTab closes Tab component.
func (r *slotsRenderer) ExitTab() {
	r.levels.exit()
	r.block("</Tab>")
}

// ExitTabbedSection closes TabGroup component.
func (r *slotsRenderer) ExitTabbedSection() {
	r.block("</TabGroup>")
}

// AppendProperty writes Property component; multi-line types go into the type slot.
func (r *slotsRenderer) AppendProperty(row PropertyRow) {
	r.requireImport(slotComponentsImport)
	label, multiline := formatTypeForRow(row)

	open := "<Property id=" + r.attr(row.ID) + " name=" + r.attr(row.Name)
	for _, annotation := range row.Annotations {
		open += " " + string(annotation)
	}

	if !multiline {
		r.block(open + " type=" + r.attr(label) + " />")
		return
	}

	fence := codeFence(label)
	r.block(open + ">\n<Property.Type>\n\n" + fence + "\n" + label + "\n" + fence + "\n\n</Property.Type>\n</Property>")
}

// AppendEmbedLink writes EmbedLink component.
func (r *slotsRenderer) AppendEmbedLink(embedName, title string) {
	r.requireImport(slotComponentsImport)
	r.block("<EmbedLink href=" + r.attr(r.embedLink(embedName)) + " title=" + r.attr(title) + " />")
}

// attr renders a quoted HTML-escaped attribute value.
func (r *slotsRenderer) attr(value string) string {
	return quoteAttr(r.Escape(value, EscapeHTML))
}
