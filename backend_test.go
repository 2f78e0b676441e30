// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"strings"
	"testing"
)

func TestEscapeModes(t *testing.T) {
	t.Parallel()

	const input = "a*b <T> {x}"

	cases := []struct {
		dialect Dialect
		mode    EscapeMode
		want    string
	}{
		{DialectMarkdown, EscapeNative, `a\*b \<T\> {x}`},
		{DialectMDX, EscapeNative, `a\*b &lt;T&gt; \{x\}`},
		{DialectSlots, EscapeNative, `a\*b &lt;T&gt; &#123;x&#125;`},
		{DialectMarkdown, EscapeRaw, input},
		{DialectSlots, EscapeRaw, input},
		{DialectMDX, EscapeHTML, "a*b &lt;T&gt; {x}"},
	}

	for _, tc := range cases {
		r := newTestRenderer(t, tc.dialect)
		if got := r.Escape(input, tc.mode); got != tc.want {
			t.Fatalf("%s mode %d: Escape = %q, want %q", tc.dialect, tc.mode, got, tc.want)
		}
	}
}

func TestMarkdownRendererSections(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, DialectMarkdown)
	r.AppendHeading(2, "Op", "op")
	r.EnterTabbedSection("op+responses")
	r.EnterTab("op+responses+200", "200")
	r.EnterExpandableSection("op+responses+200+pet", "Pet")
	r.AppendProperty(PropertyRow{
		ID:          "op+responses+200+pet+id",
		Name:        "id",
		Type:        TypeInfo{Label: "integer"},
		Annotations: []Annotation{AnnotationRequired, AnnotationDeprecated},
	})
	r.ExitExpandableSection()
	r.ExitTab()
	r.ExitTabbedSection()
	r.AppendDebugPlaceholder("missing")

	text := finalizeRenderer(t, r)
	assertContains(t, text, "## Op {#op}\n\n### 200 {#op+responses+200}\n\n#### Pet {#op+responses+200+pet}")
	assertContains(t, text, "**id** `integer` _(required, deprecated)_")
	assertContains(t, text, "> _missing_")
}

func TestMDXRendererSections(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, DialectMDX)
	r.EnterTabbedSection("op+responses")
	r.EnterTab("op+responses+200", "200")
	r.EnterExpandableSection("op+pet", "Pet")
	r.AppendProperty(PropertyRow{Name: "id", Type: TypeInfo{Label: "integer"}, Annotations: []Annotation{AnnotationRequired}})
	r.AppendDescription("Uses {braces} and <tags> but not `{code}`.")
	r.ExitExpandableSection()
	r.ExitTab()
	r.ExitTabbedSection()

	text := finalizeRenderer(t, r)
	assertContains(t, text, "---\n\nimport Tabs from '@theme/Tabs';\nimport TabItem from '@theme/TabItem';\n\n")
	assertContains(t, text, `<Tabs groupId="op+responses">`)
	assertContains(t, text, `<TabItem value="op+responses+200" label="200">`)
	assertContains(t, text, "<details id=\"op+pet\">\n<summary>Pet</summary>")
	assertContains(t, text, `**id**: `+"`integer`"+` <span className="badge badge--required">required</span>`)
	assertContains(t, text, "Uses \\{braces\\} and &lt;tags> but not `{code}`.")
	assertContains(t, text, "</details>\n\n</TabItem>\n\n</Tabs>")
}

func TestSlotsRendererComponents(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, DialectSlots)
	r.EnterExpandableSection("pet", `Pet "quoted"`)
	r.AppendProperty(PropertyRow{
		ID:          "pet+id",
		Name:        "id",
		Type:        TypeInfo{Label: "integer"},
		Annotations: []Annotation{AnnotationRequired},
	})
	r.ExitExpandableSection()
	r.AppendEmbedLink("Owner", "Owner")

	text := finalizeRenderer(t, r)
	assertContains(t, text, "import { Property, Expandable, TabGroup, Tab, EmbedLink, DebugPlaceholder } from '@chunkdoc/components';")
	assertContains(t, text, `<Expandable id="pet" title="Pet &#34;quoted&#34;">`)
	assertContains(t, text, `<Property id="pet+id" name="id" required type="integer" />`)
	assertContains(t, text, `<EmbedLink href="./_embeds/owner.mdx" title="Owner" />`)
	if strings.Count(text, "import {") != 1 {
		t.Fatalf("component import repeated:\n%s", text)
	}
}

func TestRendererMultiLineTypeBlock(t *testing.T) {
	t.Parallel()

	row := PropertyRow{
		Name: "value",
		Type: TypeInfo{Label: "union", Children: []TypeInfo{
			{Label: strings.Repeat("A", 40)},
			{Label: strings.Repeat("B", 40)},
		}},
	}

	wantBlock := "union<\n  " + strings.Repeat("A", 40) + ",\n  " + strings.Repeat("B", 40) + "\n>"

	markdown := newTestRenderer(t, DialectMarkdown)
	markdown.AppendProperty(row)
	assertContains(t, finalizeRenderer(t, markdown), "**value**\n\n```\n"+wantBlock+"\n```")

	mdx := newTestRenderer(t, DialectMDX)
	mdx.AppendProperty(row)
	assertContains(t, finalizeRenderer(t, mdx), "**value**\n\n```ts\n"+wantBlock+"\n```")

	slots := newTestRenderer(t, DialectSlots)
	slots.AppendProperty(row)
	assertContains(t, finalizeRenderer(t, slots), "<Property.Type>\n\n```\n"+wantBlock+"\n```\n\n</Property.Type>")
}

func TestAppendWidgetPerDialect(t *testing.T) {
	t.Parallel()

	const component = "<TryItNow\n  code={\"ping()\"}\n/>"

	cases := []struct {
		dialect Dialect
		markup  string
		want    bool
	}{
		{DialectMarkdown, component, false},
		{DialectMarkdown, "<iframe src=\"https://sandbox.example\"></iframe>", true},
		{DialectMarkdown, "[Try it](https://sandbox.example)", true},
		{DialectMDX, component, true},
		{DialectSlots, component, true},
	}

	for _, tc := range cases {
		r := newTestRenderer(t, tc.dialect)
		r.AppendWidget(tc.markup)

		text := finalizeRenderer(t, r)
		if got := strings.Contains(text, tc.markup); got != tc.want {
			t.Fatalf("%s widget %q present = %v, want %v:\n%s", tc.dialect, tc.markup, got, tc.want, text)
		}
	}
}

func TestAppendAfterFinalizeIsInternalError(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, DialectMarkdown)
	finalizeRenderer(t, r)

	defer func() {
		recovered := recover()
		if _, ok := recovered.(*InternalError); !ok {
			t.Fatalf("recovered = %v, want *InternalError", recovered)
		}
	}()

	r.AppendParagraph("late")
}

func newTestRenderer(t *testing.T, dialect Dialect) Renderer {
	t.Helper()

	site := newTestSite(t, Settings{Dialect: dialect})
	r, err := site.CreatePage(site.BuildPagePath("test", false), PageMeta{Title: "Test"})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	return r
}

func finalizeRenderer(t *testing.T, r Renderer) string {
	t.Helper()

	text, err := r.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	return text
}
