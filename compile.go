// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// defaultSiteTitle labels the site when no about chunk provides a title.
	defaultSiteTitle = "API Reference"
	// untaggedSlug is the page collecting operations referenced by no tag.
	untaggedSlug = "untagged"
)

// Options configures one Compile call.
type Options struct {
	Settings Settings

	// Snippets provides usage examples per operation id; nil disables usage sections.
	Snippets SnippetSource
	// Widgets creates interactive playground markup next to usage snippets.
	Widgets WidgetFactory
	// WidgetDependencies is passed to every widget placeholder.
	WidgetDependencies map[string]string

	// Logger receives debug events; nil disables logging.
	Logger *zerolog.Logger
}

// compiler holds immutable inputs and the site of one compile.
type compiler struct {
	settings   Settings
	store      *ChunkStore
	site       *Site
	snippets   SnippetSource
	widgets    WidgetFactory
	widgetDeps map[string]string
	logger     zerolog.Logger
}

// Compile renders the chunk graph into a path to page text map.
//
// Compilation either completes or fails as a whole: on any error the returned map is nil.
func Compile(store *ChunkStore, opt Options) (out map[string]string, err error) {
	defer recoverInternal(&err)

	if store == nil {
		return nil, fmt.Errorf("%w: nil chunk store", ErrMissingChunk)
	}

	logger := zerolog.Nop()
	if opt.Logger != nil {
		logger = *opt.Logger
	}

	site, err := NewSite(opt.Settings, logger)
	if err != nil {
		return nil, err
	}

	c := &compiler{
		settings:   site.settings,
		store:      store,
		site:       site,
		snippets:   opt.Snippets,
		widgets:    opt.Widgets,
		widgetDeps: opt.WidgetDependencies,
		logger:     logger,
	}

	c.compileAbout()
	rendered := c.compileTags()
	c.compileUntagged(rendered)

	pages, err := site.Finalize()
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("chunks", store.Len()).
		Int("files", len(pages)).
		Msg("compile finished")

	return pages, nil
}

// CompileFile reads chunk graph from file and compiles it.
func CompileFile(path string, opt Options) (map[string]string, error) {
	store, err := ParseChunkGraphFile(path)
	if err != nil {
		return nil, err
	}

	return Compile(store, opt)
}

// compileAbout renders the site root page.
func (c *compiler) compileAbout() {
	var about AboutData
	if chunks := c.store.OfType(ChunkAbout); len(chunks) > 0 {
		about = *chunks[0].About
	}

	title := strings.TrimSpace(about.Title)
	if title == "" {
		title = defaultSiteTitle
	}

	c.site.SetTitle(title)

	r, err := c.site.CreatePage(c.site.BuildPagePath("", true), PageMeta{
		Title:           title,
		SidebarLabel:    "Overview",
		SidebarPosition: 1,
		Description:     summarize(about.Description),
	})
	must(err)

	r.AppendHeading(1, title, anchor(title))

	if version := strings.TrimSpace(about.Version); version != "" {
		r.AppendParagraph(r.Strong("Version:") + " " + r.InlineCode(version))
	} else {
		c.placeholder(r, "No API version provided.")
	}

	c.description(r, about.Description)

	if len(about.Servers) > 0 {
		r.AppendHeading(2, "Servers", "servers")

		items := make([]string, 0, len(about.Servers))
		for _, server := range about.Servers {
			item := r.InlineCode(server.URL)
			if description := sanitizeText(server.Description); description != "" {
				item += " " + r.Escape(description, EscapeNative)
			}

			items = append(items, item)
		}

		r.AppendList(items)
	}

	for _, chunk := range c.store.OfType(ChunkGlobalSecurity) {
		r.AppendHeading(2, "Authentication", "authentication")
		c.renderSecurityEntries(r, chunk.GlobalSecurity.Entries)
	}
}

// compileTags renders one page per tag and returns rendered operation ids.
func (c *compiler) compileTags() map[string]struct{} {
	rendered := make(map[string]struct{})

	for i, chunk := range c.store.OfType(ChunkTag) {
		tag := chunk.Tag
		name := firstNonEmpty(tag.Name, chunk.ID)
		slug := c.pageSlug(firstNonEmpty(anchor(tag.Slug), anchor(tag.Name), anchor(chunk.ID), "tag"))

		r, err := c.site.CreatePage(c.site.BuildPagePath(slug, false), PageMeta{
			Title:           name,
			SidebarLabel:    name,
			SidebarPosition: i + 2,
			Description:     summarize(tag.Description),
		})
		must(err)

		r.AppendHeading(1, name, slug)
		c.description(r, tag.Description)

		for _, id := range tag.OperationChunkIDs {
			operation, ok := c.store.Get(id)
			if !ok || operation.Type != ChunkOperation {
				fail("%w: tag %q references operation %q", ErrMissingChunk, chunk.ID, id)
			}

			c.renderOperation(r, operation)
			rendered[id] = struct{}{}
		}
	}

	return rendered
}

// compileUntagged collects operations no tag references onto one page.
func (c *compiler) compileUntagged(rendered map[string]struct{}) {
	var pending []Chunk
	for _, chunk := range c.store.OfType(ChunkOperation) {
		if _, ok := rendered[chunk.ID]; !ok {
			pending = append(pending, chunk)
		}
	}

	if len(pending) == 0 {
		return
	}

	c.logger.Debug().Int("operations", len(pending)).Msg("collecting untagged operations")

	slug := c.pageSlug(untaggedSlug)
	r, err := c.site.CreatePage(c.site.BuildPagePath(slug, false), PageMeta{
		Title:           "Untagged",
		SidebarLabel:    "Untagged",
		SidebarPosition: len(c.store.OfType(ChunkTag)) + 2,
	})
	must(err)

	r.AppendHeading(1, "Untagged", slug)
	for _, chunk := range pending {
		c.renderOperation(r, chunk)
	}
}

// pageSlug returns slug made unique among already created pages.
func (c *compiler) pageSlug(slug string) string {
	free := c.site.FreeSlug(slug, false)
	if free != slug {
		c.logger.Debug().Str("slug", slug).Str("renamed", free).Msg("page slug already taken")
	}

	return free
}

// description renders markdown text or a debug placeholder.
func (c *compiler) description(r Renderer, text string) {
	if strings.TrimSpace(text) != "" {
		r.AppendDescription(text)
		return
	}

	c.placeholder(r, "No description provided.")
}

// placeholder renders text only when debug placeholders are enabled.
func (c *compiler) placeholder(r Renderer, text string) {
	if c.settings.ShowDebugPlaceholders {
		r.AppendDebugPlaceholder(text)
	}
}

// firstNonEmpty returns first value that is not blank.
func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}

	return ""
}
