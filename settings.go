// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"fmt"
	"path"
	"strings"
)

const (
	// defaultMaxNestingLevel bounds inline breakout depth when caller does not set one.
	defaultMaxNestingLevel = 3
	// defaultOutDir is used when caller does not provide output directory.
	defaultOutDir = "docs"
)

// Convention selects page path layout for the target publishing platform.
type Convention string

const (
	// ConventionFlat writes {outDir}/{slug}.{ext}.
	ConventionFlat Convention = "flat"
	// ConventionNested writes {outDir}/{slug}/page.{ext}.
	ConventionNested Convention = "nested"
)

// Dialect selects back-end renderer.
type Dialect string

const (
	// DialectMarkdown emits plain CommonMark.
	DialectMarkdown Dialect = "markdown"
	// DialectMDX emits markdown extended with inline JSX markup.
	DialectMDX Dialect = "mdx"
	// DialectSlots emits component-slot markup.
	DialectSlots Dialect = "slots"
)

// ResponseFilter selects which operation responses are rendered.
type ResponseFilter string

const (
	// ResponsesAll renders every response.
	ResponsesAll ResponseFilter = "all"
	// ResponsesExplicit renders responses with concrete three-digit status codes.
	ResponsesExplicit ResponseFilter = "explicit"
	// ResponsesSuccess renders 2xx responses only.
	ResponsesSuccess ResponseFilter = "success"
)

// Settings configures one compile.
type Settings struct {
	// OutDir is the output directory prefix of every generated path.
	OutDir string
	// Convention selects flat or nested page paths.
	Convention Convention
	// Dialect selects back-end renderer.
	Dialect Dialect
	// MaxNestingLevel bounds inline breakout expansion before embed pages are used.
	// Zero selects the default; 1 moves every breakout of a top-level object to an embed page.
	MaxNestingLevel int
	// ShowDebugPlaceholders renders visible markers for missing optional data.
	ShowDebugPlaceholders bool
	// VisibleResponses filters rendered operation responses.
	VisibleResponses ResponseFilter
	// ExampleFormat enables generated example payloads for bodies; empty disables them.
	ExampleFormat ExampleFormat
	// ExampleMode selects property coverage of generated example payloads.
	ExampleMode ExampleMode
}

// DefaultSettings returns settings with every field at its default.
func DefaultSettings() Settings {
	return Settings{
		OutDir:           defaultOutDir,
		Convention:       ConventionFlat,
		Dialect:          DialectMarkdown,
		MaxNestingLevel:  defaultMaxNestingLevel,
		VisibleResponses: ResponsesAll,
		ExampleMode:      ExampleModeAll,
	}
}

// Normalize validates settings and fills empty fields with defaults.
func (s Settings) Normalize() (Settings, error) {
	defaults := DefaultSettings()

	s.OutDir = strings.TrimSpace(s.OutDir)
	if s.OutDir == "" {
		s.OutDir = defaults.OutDir
	}
	s.OutDir = path.Clean(s.OutDir)

	convention, err := ParseConvention(string(s.Convention))
	if err != nil {
		return Settings{}, err
	}
	s.Convention = convention

	dialect, err := ParseDialect(string(s.Dialect))
	if err != nil {
		return Settings{}, err
	}
	s.Dialect = dialect

	filter, err := ParseResponseFilter(string(s.VisibleResponses))
	if err != nil {
		return Settings{}, err
	}
	s.VisibleResponses = filter

	if s.ExampleFormat, err = ParseExampleFormat(string(s.ExampleFormat)); err != nil {
		return Settings{}, err
	}

	if s.ExampleMode, err = ParseExampleMode(string(s.ExampleMode)); err != nil {
		return Settings{}, err
	}

	switch {
	case s.MaxNestingLevel == 0:
		s.MaxNestingLevel = defaults.MaxNestingLevel
	case s.MaxNestingLevel < 0:
		return Settings{}, fmt.Errorf("%w: max nesting level %d is negative", ErrInvalidSettings, s.MaxNestingLevel)
	}

	return s, nil
}

// ParseConvention normalizes convention name; empty selects flat.
func ParseConvention(value string) (Convention, error) {
	switch Convention(strings.ToLower(strings.TrimSpace(value))) {
	case "", ConventionFlat:
		return ConventionFlat, nil
	case ConventionNested:
		return ConventionNested, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownConvention, value)
	}
}

// ParseDialect normalizes dialect name; empty selects markdown.
func ParseDialect(value string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(value))) {
	case "", DialectMarkdown, "md":
		return DialectMarkdown, nil
	case DialectMDX:
		return DialectMDX, nil
	case DialectSlots:
		return DialectSlots, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownDialect, value)
	}
}

// ParseResponseFilter normalizes response filter name; empty selects all.
func ParseResponseFilter(value string) (ResponseFilter, error) {
	switch ResponseFilter(strings.ToLower(strings.TrimSpace(value))) {
	case "", ResponsesAll:
		return ResponsesAll, nil
	case ResponsesExplicit:
		return ResponsesExplicit, nil
	case ResponsesSuccess:
		return ResponsesSuccess, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownResponseFilter, value)
	}
}

// Extension returns output file extension for dialect.
func (d Dialect) Extension() string {
	if d == DialectMarkdown {
		return "md"
	}

	return "mdx"
}
