// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"slices"
	"strings"
)

// renderContext is the per-recursion schema rendering state.
type renderContext struct {
	compiler *compiler
	renderer Renderer
	// ancestors lists object names being rendered, outermost first.
	ancestors []string
	// depth counts inline object levels on the current page.
	depth    int
	idPrefix string
}

// push returns child context with label on the schema stack.
func (ctx renderContext) push(label string) renderContext {
	ancestors := make([]string, len(ctx.ancestors), len(ctx.ancestors)+1)
	copy(ancestors, ctx.ancestors)

	ctx.ancestors = append(ancestors, label)
	ctx.depth++
	ctx.idPrefix = joinID(ctx.idPrefix, label)
	return ctx
}

// onStack reports whether label is an ancestor of the current node.
func (ctx renderContext) onStack(label string) bool {
	return label != "" && slices.Contains(ctx.ancestors, label)
}

// renderTopLevel renders schema as the root of one page section.
// Objects push their own name so that self references are detected.
func (ctx renderContext) renderTopLevel(schema *SchemaValue, fm FrontMatter, name string) {
	resolved, err := ctx.compiler.store.ResolveSchema(schema)
	must(err)

	if resolved.Kind == KindObject {
		ctx = ctx.push(resolved.Name)
		fm = fm.merge(resolved.FrontMatter())
	}

	ctx.renderSchema(resolved, fm, name, false)
}

// renderSchema renders one schema node into the bound renderer.
func (ctx renderContext) renderSchema(schema *SchemaValue, fm FrontMatter, name string, expandable bool) {
	store := ctx.compiler.store
	resolved, err := store.ResolveSchema(schema)
	must(err)

	if resolved.Kind == KindObject {
		if len(resolved.Properties) == 0 {
			return
		}

		if expandable {
			ctx.renderer.EnterExpandableSection(ctx.idPrefix, name)
		}

		ctx.renderFrontMatter(fm.merge(resolved.FrontMatter()))
		for _, property := range resolved.Properties {
			ctx.renderField(resolved, property)
		}

		if expandable {
			ctx.renderer.ExitExpandableSection()
		}

		return
	}

	info, err := ResolveType(resolved, store)
	must(err)

	ctx.renderer.AppendProperty(PropertyRow{
		ID:   ctx.idPrefix,
		Name: name,
		Type: info,
	})

	ctx.renderFrontMatter(fm.merge(resolved.FrontMatter()))
	ctx.renderEnumValues(resolved)
	ctx.renderBreakouts(info.Breakouts)
}

// renderField renders one object property row and its breakouts.
func (ctx renderContext) renderField(parent *SchemaValue, property Property) {
	var annotations []Annotation
	if parent.IsRequired(property.Name) {
		annotations = append(annotations, AnnotationRequired)
	}

	ctx.renderRow(property.Name, property.Schema, annotations, property.Schema.FrontMatter())
}

// renderRow renders a named row, its front matter and its breakouts.
func (ctx renderContext) renderRow(name string, schema *SchemaValue, annotations []Annotation, fm FrontMatter) {
	store := ctx.compiler.store
	info, err := ResolveType(schema, store)
	must(err)

	resolved, err := store.ResolveSchema(schema)
	must(err)

	if ctx.onStack(namedType(schema, store)) {
		annotations = append(annotations, AnnotationRecursive)
	}

	ctx.renderer.AppendProperty(PropertyRow{
		ID:          joinID(ctx.idPrefix, name),
		Name:        name,
		Type:        info,
		Annotations: annotations,
	})

	// Object descriptions render with their expansion, not on the row.
	if resolved.Kind != KindObject {
		fm = fm.merge(resolved.FrontMatter())
	}

	ctx.renderFrontMatter(fm)
	ctx.renderEnumValues(resolved)
	ctx.renderBreakouts(info.Breakouts)
}

// renderBreakouts applies dedup, cycle, depth and inline expansion in order.
func (ctx renderContext) renderBreakouts(breakouts []Breakout) {
	seen := make(map[string]struct{}, len(breakouts))
	for _, breakout := range breakouts {
		// First occurrence wins; distinct schemas sharing a name collapse here.
		if _, dup := seen[breakout.Label]; dup {
			continue
		}

		seen[breakout.Label] = struct{}{}

		switch {
		case ctx.onStack(breakout.Label):
			ctx.renderer.AppendParagraph(ctx.renderer.InlineCode(breakout.Label) + " is circular; see the earlier definition.")
		case ctx.depth >= ctx.compiler.settings.MaxNestingLevel:
			ctx.renderEmbed(breakout)
		default:
			ctx.push(breakout.Label).renderSchema(breakout.Schema, FrontMatter{}, breakout.Label, true)
		}
	}
}

// renderEmbed renders breakout onto its embed page once and links to it.
func (ctx renderContext) renderEmbed(breakout Breakout) {
	c := ctx.compiler
	target, fresh, err := c.site.CreateEmbedPage(breakout.Label)
	must(err)

	if fresh {
		resolved, err := c.store.ResolveSchema(breakout.Schema)
		must(err)

		if resolved.Kind != KindObject {
			fail("embed %q is %s, not object", breakout.Label, resolved.Kind)
		}

		target.AppendHeading(1, breakout.Label, anchor(breakout.Label))

		// Nesting restarts on the new page; ancestors still mark cycles.
		embed := renderContext{
			compiler:  c,
			renderer:  target,
			ancestors: ctx.ancestors,
		}.push(breakout.Label)

		embed.renderSchema(resolved, resolved.FrontMatter(), breakout.Label, false)

		_, err = target.Finalize()
		must(err)

		c.logger.Debug().
			Str("embed", breakout.Label).
			Str("from", ctx.renderer.Path()).
			Msg("breakout promoted to embed page")
	}

	ctx.renderer.AppendEmbedLink(breakout.Label, breakout.Label)
}

// renderFrontMatter renders description, examples and default value.
func (ctx renderContext) renderFrontMatter(fm FrontMatter) {
	r := ctx.renderer
	placeholders := ctx.compiler.settings.ShowDebugPlaceholders

	if strings.TrimSpace(fm.Description) != "" {
		r.AppendDescription(fm.Description)
	} else if placeholders {
		r.AppendDebugPlaceholder("No description provided.")
	}

	switch len(fm.Examples) {
	case 0:
		if placeholders {
			r.AppendDebugPlaceholder("No example provided.")
		}
	case 1:
		r.AppendParagraph(r.Strong("Example:") + " " + r.InlineCode(fm.Examples[0]))
	default:
		items := make([]string, 0, len(fm.Examples))
		for _, example := range fm.Examples {
			items = append(items, r.InlineCode(example))
		}

		r.AppendParagraph(r.Strong("Examples:"))
		r.AppendList(items)
	}

	if fm.DefaultValue != nil {
		r.AppendParagraph(r.Strong("Default:") + " " + r.InlineCode(*fm.DefaultValue))
	} else if placeholders {
		r.AppendDebugPlaceholder("No default value.")
	}
}

// renderEnumValues lists enum literals explicitly.
func (ctx renderContext) renderEnumValues(schema *SchemaValue) {
	if schema.Kind != KindEnum || len(schema.Literals) == 0 {
		return
	}

	r := ctx.renderer
	values := make([]string, 0, len(schema.Literals))
	for _, literal := range schema.Literals {
		values = append(values, r.InlineCode(literal))
	}

	r.AppendParagraph(r.Strong("Values:") + " " + strings.Join(values, ", "))
}
