// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"slices"
	"strconv"
	"strings"
)

// parameterLocations fixes rendering order of parameter groups.
var parameterLocations = []string{"path", "query", "header", "cookie"}

// renderOperation renders one operation section into a tag page.
func (c *compiler) renderOperation(r Renderer, chunk Chunk) {
	op := chunk.Operation
	slug := firstNonEmpty(anchor(op.Slug), anchor(op.OperationID), anchor(chunk.ID))
	title := firstNonEmpty(op.Summary, op.OperationID, chunk.ID)

	r.AppendHeading(2, title, slug)
	if strings.TrimSpace(op.Summary) == "" {
		c.placeholder(r, "No summary provided.")
	}

	r.AppendParagraph(r.InlineCode(strings.ToUpper(strings.TrimSpace(op.Method)) + " " + op.Path))

	if op.Deprecated {
		r.AppendParagraph(r.Strong("Deprecated.") + " " + r.Escape("This operation may be removed in a future version.", EscapeNative))
	}

	c.description(r, op.Description)
	c.renderOperationSecurity(r, chunk, slug)
	c.renderParameters(r, op.Parameters, slug)
	c.renderRequestBody(r, op.RequestBody, slug)
	c.renderResponses(r, op.Responses, slug)
	c.renderUsage(r, op.OperationID, slug)

	c.logger.Debug().Str("operation", chunk.ID).Str("page", r.Path()).Msg("operation rendered")
}

// renderOperationSecurity renders the referenced security chunk.
func (c *compiler) renderOperationSecurity(r Renderer, chunk Chunk, slug string) {
	id := strings.TrimSpace(chunk.Operation.SecurityChunkID)
	if id == "" {
		c.placeholder(r, "No security requirements.")
		return
	}

	security, ok := c.store.Get(id)
	if !ok || security.Type != ChunkSecurity {
		fail("%w: operation %q references security %q", ErrMissingChunk, chunk.ID, id)
	}

	r.AppendHeading(3, "Security", joinID(slug, "security"))
	c.renderSecurityEntries(r, security.Security.Entries)
}

// renderSecurityEntries renders security scheme requirements as a list.
func (c *compiler) renderSecurityEntries(r Renderer, entries []SecurityEntry) {
	if len(entries) == 0 {
		c.placeholder(r, "No security schemes listed.")
		return
	}

	items := make([]string, 0, len(entries))
	for _, entry := range entries {
		item := r.Strong(r.Escape(entry.Name, EscapeNative))

		kind := entry.Type
		if entry.Scheme != "" {
			kind += " " + entry.Scheme
		}

		if kind = strings.TrimSpace(kind); kind != "" {
			item += " " + r.InlineCode(kind)
		}

		if entry.In != "" {
			item += " in " + r.Escape(entry.In, EscapeNative)
		}

		if description := sanitizeText(entry.Description); description != "" {
			item += ": " + r.Escape(description, EscapeNative)
		}

		items = append(items, item)
	}

	r.AppendList(items)
}

// renderParameters renders parameters grouped by location.
func (c *compiler) renderParameters(r Renderer, parameters []Parameter, slug string) {
	if len(parameters) == 0 {
		return
	}

	groups := make(map[string][]Parameter)
	locations := append([]string(nil), parameterLocations...)
	for _, parameter := range parameters {
		in := strings.ToLower(strings.TrimSpace(parameter.In))
		if _, known := groups[in]; !known && !slices.Contains(locations, in) {
			locations = append(locations, in)
		}

		groups[in] = append(groups[in], parameter)
	}

	for _, in := range locations {
		group := groups[in]
		if len(group) == 0 {
			continue
		}

		title := "Parameters"
		if in != "" {
			title = strings.ToUpper(in[:1]) + in[1:] + " parameters"
		}

		r.AppendHeading(3, title, joinID(slug, in, "parameters"))

		ctx := renderContext{compiler: c, renderer: r, idPrefix: joinID(slug, in)}
		for _, parameter := range group {
			var annotations []Annotation
			if parameter.Required || in == "path" {
				annotations = append(annotations, AnnotationRequired)
			}

			if parameter.Deprecated {
				annotations = append(annotations, AnnotationDeprecated)
			}

			schema := parameter.Schema
			if schema == nil {
				schema = &SchemaValue{Kind: KindString}
			}

			fm := schema.FrontMatter()
			if strings.TrimSpace(parameter.Description) != "" {
				fm.Description = parameter.Description
			}

			ctx.renderRow(parameter.Name, schema, annotations, fm)
		}
	}
}

// renderRequestBody renders request payload schema.
func (c *compiler) renderRequestBody(r Renderer, body *RequestBody, slug string) {
	if body == nil {
		return
	}

	id := joinID(slug, "request")
	r.AppendHeading(3, "Request body", id)

	if line := c.contentTypeLine(r, body.ContentType, body.Required); line != "" {
		r.AppendParagraph(line)
	}

	c.description(r, body.Description)

	if body.Schema != nil {
		renderContext{compiler: c, renderer: r, idPrefix: id}.renderTopLevel(body.Schema, FrontMatter{}, "body")
		c.renderExample(r, body.Schema)
	}
}

// renderResponses renders visible responses as one tab per status code.
func (c *compiler) renderResponses(r Renderer, responses []Response, slug string) {
	visible := make([]Response, 0, len(responses))
	counts := make(map[string]int)
	for _, response := range responses {
		if c.responseVisible(response.StatusCode) {
			visible = append(visible, response)
			counts[response.StatusCode]++
		}
	}

	if len(visible) == 0 {
		return
	}

	id := joinID(slug, "responses")
	r.AppendHeading(3, "Responses", id)
	r.EnterTabbedSection(id)

	seen := make(map[string]int, len(visible))
	for _, response := range visible {
		tabID := joinID(id, response.StatusCode)
		title := response.StatusCode
		if counts[response.StatusCode] > 1 && response.ContentType != "" {
			tabID = joinID(tabID, response.ContentType)
			title += " " + response.ContentType
		}

		seen[tabID]++
		if n := seen[tabID]; n > 1 {
			tabID = joinID(tabID, strconv.Itoa(n))
			title += " (" + strconv.Itoa(n) + ")"
		}

		r.EnterTab(tabID, title)

		c.description(r, response.Description)
		if line := c.contentTypeLine(r, response.ContentType, false); line != "" {
			r.AppendParagraph(line)
		}

		if response.Schema != nil {
			renderContext{compiler: c, renderer: r, idPrefix: tabID}.renderTopLevel(response.Schema, FrontMatter{}, "response")
			c.renderExample(r, response.Schema)
		}

		r.ExitTab()
	}

	r.ExitTabbedSection()
}

// responseVisible applies the configured response filter to a status code.
func (c *compiler) responseVisible(status string) bool {
	status = strings.TrimSpace(status)

	switch c.settings.VisibleResponses {
	case ResponsesAll:
		return true
	case ResponsesExplicit:
		return isStatusCode(status)
	case ResponsesSuccess:
		return strings.EqualFold(status, "2XX") || (isStatusCode(status) && status[0] == '2')
	default:
		fail("unhandled response filter %q", c.settings.VisibleResponses)
		return false
	}
}

// renderUsage renders usage snippet and optional interactive widget.
func (c *compiler) renderUsage(r Renderer, operationID, slug string) {
	if c.snippets == nil {
		return
	}

	snippet, ok := c.snippets.UsageSnippet(operationID)
	if !ok {
		c.placeholder(r, "No usage example available.")
		return
	}

	r.AppendHeading(3, "Usage", joinID(slug, "usage"))
	r.AppendCode(snippet.Code, snippet.Language)

	if c.widgets != nil {
		r.AppendWidget(c.widgets.Placeholder(c.widgetDeps, snippet.Code))
	}
}

// renderExample renders generated example payload when enabled.
func (c *compiler) renderExample(r Renderer, schema *SchemaValue) {
	if c.settings.ExampleFormat == ExampleFormatNone {
		return
	}

	data, err := GenerateExample(schema, c.store, c.settings.ExampleMode, c.settings.ExampleFormat)
	must(err)

	r.AppendParagraph(r.Strong("Example payload:"))
	r.AppendCode(string(data), string(c.settings.ExampleFormat))
}

// contentTypeLine composes content type and required marker.
func (c *compiler) contentTypeLine(r Renderer, contentType string, required bool) string {
	var line string
	if contentType = strings.TrimSpace(contentType); contentType != "" {
		line = r.Strong("Content type:") + " " + r.InlineCode(contentType)
	}

	if required {
		if line != "" {
			line += " "
		}

		line += r.Escape("(required)", EscapeNative)
	}

	return line
}

// isStatusCode reports whether status is a concrete three digit HTTP code.
func isStatusCode(status string) bool {
	if len(status) != 3 {
		return false
	}

	for i := 0; i < len(status); i++ {
		if status[i] < '0' || status[i] > '9' {
			return false
		}
	}

	return true
}
