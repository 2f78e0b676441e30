// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// embedDir holds embed pages; the leading underscore keeps platforms from routing them.
	embedDir = "_embeds"
	// nestedPageName is the file name of every page in nested convention.
	nestedPageName = "page"
	// indexPageName is the file name of a section root in flat convention.
	indexPageName = "index"
)

// Site owns the slug to path mapping and every page render target of one compile.
type Site struct {
	settings  Settings
	logger    zerolog.Logger
	title     string
	pages     map[string]*pageEntry
	order     []string
	embeds    map[string]string
	finalized bool
}

// pageEntry is one reserved output page.
type pageEntry struct {
	meta     PageMeta
	embed    bool
	renderer Renderer
	base     *baseRenderer
}

// NewSite creates an empty site for normalized settings.
func NewSite(settings Settings, logger zerolog.Logger) (*Site, error) {
	settings, err := settings.Normalize()
	if err != nil {
		return nil, err
	}

	return &Site{
		settings: settings,
		logger:   logger,
		pages:    make(map[string]*pageEntry),
		embeds:   make(map[string]string),
	}, nil
}

// BuildPagePath returns output path for slug under one platform convention.
//
// Flat convention writes {outDir}/{slug}.{ext}, nested writes {outDir}/{slug}/page.{ext}.
// With appendIndex the slug names a section root page.
func BuildPagePath(outDir, slug string, convention Convention, ext string, appendIndex bool) string {
	slug = strings.Trim(slug, "/")

	var file string
	switch convention {
	case ConventionNested:
		file = path.Join(slug, nestedPageName+"."+ext)
	case ConventionFlat:
		if appendIndex || slug == "" {
			file = path.Join(slug, indexPageName+"."+ext)
		} else {
			file = slug + "." + ext
		}
	default:
		fail("unhandled page convention %q", convention)
	}

	return path.Join(outDir, file)
}

// BuildPagePath returns output path for slug under site settings.
func (s *Site) BuildPagePath(slug string, appendIndex bool) string {
	return BuildPagePath(s.settings.OutDir, slug, s.settings.Convention, s.settings.Dialect.Extension(), appendIndex)
}

// SetTitle sets label used by navigation scaffold files.
func (s *Site) SetTitle(title string) {
	s.title = title
}

// CreatePage reserves path and returns a fresh render target with front matter written.
func (s *Site) CreatePage(pagePath string, meta PageMeta) (Renderer, error) {
	entry, err := s.reserve(pagePath)
	if err != nil {
		return nil, err
	}

	entry.meta = meta
	entry.renderer.AppendFrontMatter(meta)

	s.logger.Debug().Str("path", pagePath).Str("label", meta.SidebarLabel).Msg("page created")
	return entry.renderer, nil
}

// CreateEmbedPage returns a fresh render target the first time name is requested.
// Later requests return false: the embed is already rendered and callers only link to it.
func (s *Site) CreateEmbedPage(name string) (Renderer, bool, error) {
	if s.finalized {
		return nil, false, ErrSiteFinalized
	}

	if _, exists := s.embeds[name]; exists {
		return nil, false, nil
	}

	pagePath := s.BuildPagePath(s.FreeSlug(embedDir+"/"+embedSlug(name), false), false)
	entry, err := s.reserve(pagePath)
	if err != nil {
		return nil, false, err
	}

	entry.embed = true
	s.embeds[name] = pagePath

	s.logger.Debug().Str("embed", name).Str("path", pagePath).Msg("embed page created")
	return entry.renderer, true, nil
}

// FreeSlug returns slug, or slug with a numeric suffix, whose page path is not reserved yet.
func (s *Site) FreeSlug(slug string, appendIndex bool) string {
	candidate := slug
	for n := 2; ; n++ {
		if _, taken := s.pages[s.BuildPagePath(candidate, appendIndex)]; !taken {
			return candidate
		}

		candidate = slug + "-" + strconv.Itoa(n)
	}
}

// EmbedPath returns output path of embed page for name.
// Names not created yet map to their unsuffixed path.
func (s *Site) EmbedPath(name string) string {
	if existing, ok := s.embeds[name]; ok {
		return existing
	}

	return s.BuildPagePath(embedDir+"/"+embedSlug(name), false)
}

// Finalize freezes every open page and returns path to text output with scaffold files.
func (s *Site) Finalize() (map[string]string, error) {
	if s.finalized {
		return nil, ErrSiteFinalized
	}

	s.finalized = true

	out := make(map[string]string, len(s.order)+1)
	for _, pagePath := range s.order {
		entry := s.pages[pagePath]
		text := entry.base.text
		if !entry.base.finalized {
			var err error
			text, err = entry.renderer.Finalize()
			if err != nil {
				return nil, err
			}
		}

		out[pagePath] = text
	}

	scaffoldPath, scaffold, err := s.scaffold()
	if err != nil {
		return nil, err
	}

	if _, exists := out[scaffoldPath]; exists {
		return nil, fmt.Errorf("%w: scaffold %s", ErrPageExists, scaffoldPath)
	}

	out[scaffoldPath] = scaffold
	s.logger.Debug().Int("pages", len(out)).Msg("site finalized")
	return out, nil
}

// reserve registers path and creates its dialect renderer.
func (s *Site) reserve(pagePath string) (*pageEntry, error) {
	if s.finalized {
		return nil, ErrSiteFinalized
	}

	if _, exists := s.pages[pagePath]; exists {
		return nil, fmt.Errorf("%w: %s", ErrPageExists, pagePath)
	}

	renderer, base := s.newRenderer(pagePath)
	entry := &pageEntry{renderer: renderer, base: base}
	s.pages[pagePath] = entry
	s.order = append(s.order, pagePath)
	return entry, nil
}

// newRenderer creates dialect renderer bound to path.
func (s *Site) newRenderer(pagePath string) (Renderer, *baseRenderer) {
	base := baseRenderer{site: s, path: pagePath}

	switch s.settings.Dialect {
	case DialectMarkdown:
		r := &markdownRenderer{baseRenderer: base}
		return r, &r.baseRenderer
	case DialectMDX:
		r := &mdxRenderer{baseRenderer: base}
		return r, &r.baseRenderer
	case DialectSlots:
		r := &slotsRenderer{baseRenderer: base}
		return r, &r.baseRenderer
	default:
		fail("unhandled dialect %q", s.settings.Dialect)
		return nil, nil
	}
}

// scaffold renders navigation metadata for the platform convention.
func (s *Site) scaffold() (string, string, error) {
	title := strings.TrimSpace(s.title)
	if title == "" {
		title = defaultSiteTitle
	}

	switch s.settings.Convention {
	case ConventionFlat:
		data, err := json.MarshalIndent(map[string]any{
			"label":    title,
			"position": 1,
			"link": map[string]string{
				"type": "doc",
				"id":   indexPageName,
			},
		}, "", "  ")
		if err != nil {
			return "", "", err
		}

		return path.Join(s.settings.OutDir, "_category_.json"), string(data) + "\n", nil
	case ConventionNested:
		data, err := s.nestedMeta()
		if err != nil {
			return "", "", err
		}

		return path.Join(s.settings.OutDir, "_meta.json"), data, nil
	default:
		fail("unhandled page convention %q", s.settings.Convention)
		return "", "", nil
	}
}

// nestedMeta renders ordered slug to sidebar label mapping of content pages
// and hides the embed directory from navigation.
func (s *Site) nestedMeta() (string, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")

	first := true
	for _, pagePath := range s.order {
		entry := s.pages[pagePath]
		if entry.embed {
			continue
		}

		key := s.relativeDir(pagePath)
		if key == "" {
			key = indexPageName
		}

		keyJSON, err := json.Marshal(key)
		if err != nil {
			return "", err
		}

		labelJSON, err := json.Marshal(entry.meta.SidebarLabel)
		if err != nil {
			return "", err
		}

		if !first {
			buf.WriteString(",\n")
		}

		first = false
		buf.WriteString("  ")
		buf.Write(keyJSON)
		buf.WriteString(": ")
		buf.Write(labelJSON)
	}

	if len(s.embeds) > 0 {
		if !first {
			buf.WriteString(",\n")
		}

		buf.WriteString(`  "` + embedDir + `": {"display": "hidden"}`)
	}

	buf.WriteString("\n}\n")
	return buf.String(), nil
}

// relativeDir returns page directory relative to output directory.
func (s *Site) relativeDir(pagePath string) string {
	dir := path.Dir(pagePath)
	switch {
	case dir == s.settings.OutDir:
		return ""
	case s.settings.OutDir == ".":
		return dir
	default:
		return strings.TrimPrefix(dir, s.settings.OutDir+"/")
	}
}

// embedSlug converts embed name into a path segment.
func embedSlug(name string) string {
	slug := anchor(name)
	if slug == "" {
		return "embed"
	}

	return slug
}

// relativeLink returns link from one output file to another.
func relativeLink(from, to string) string {
	fromDir := strings.Split(path.Dir(from), "/")
	toParts := strings.Split(to, "/")

	common := 0
	for common < len(fromDir) && common < len(toParts)-1 && fromDir[common] == toParts[common] {
		common++
	}

	parts := make([]string, 0, len(fromDir)-common+len(toParts)-common)
	for i := common; i < len(fromDir); i++ {
		if fromDir[i] != "." {
			parts = append(parts, "..")
		}
	}

	parts = append(parts, toParts[common:]...)
	link := strings.Join(parts, "/")
	if !strings.HasPrefix(link, "..") {
		link = "./" + link
	}

	return link
}
