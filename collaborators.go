// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Snippet is a resolved usage example for one operation.
type Snippet struct {
	Code     string `yaml:"code"`
	Language string `yaml:"language"`
}

// SnippetSource looks up usage snippets by operation id.
type SnippetSource interface {
	UsageSnippet(operationID string) (Snippet, bool)
}

// SnippetMap is an in-memory SnippetSource.
type SnippetMap map[string]Snippet

// UsageSnippet implements SnippetSource.
func (m SnippetMap) UsageSnippet(operationID string) (Snippet, bool) {
	snippet, ok := m[operationID]
	if !ok || strings.TrimSpace(snippet.Code) == "" {
		return Snippet{}, false
	}

	return snippet, true
}

// UnmarshalYAML accepts either a plain code string or {code, language}.
func (s *Snippet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Code = node.Value
		return nil
	}

	type plain Snippet
	return node.Decode((*plain)(s))
}

// LoadSnippetsFile reads operationId to snippet mapping from YAML or JSON file.
func LoadSnippetsFile(path string) (SnippetMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSnippets, err)
	}

	snippets := make(SnippetMap)
	if err := yaml.Unmarshal(data, &snippets); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrReadSnippets, path, err)
	}

	return snippets, nil
}

// WidgetFactory creates opaque interactive widget markup for the publishing platform.
type WidgetFactory interface {
	Placeholder(dependencies map[string]string, code string) string
}

// WidgetFunc adapts a function to WidgetFactory.
type WidgetFunc func(dependencies map[string]string, code string) string

// Placeholder implements WidgetFactory.
func (f WidgetFunc) Placeholder(dependencies map[string]string, code string) string {
	return f(dependencies, code)
}

// JSXWidget renders a self-closing component whose props hold dependencies and code
// as JSON literals, hydrated by the surrounding platform.
type JSXWidget struct {
	Component string
}

// Placeholder implements WidgetFactory.
func (w JSXWidget) Placeholder(dependencies map[string]string, code string) string {
	component := strings.TrimSpace(w.Component)
	if component == "" {
		component = "TryItNow"
	}

	deps := []byte("{}")
	if len(dependencies) > 0 {
		// encoding/json sorts map keys.
		encoded, err := json.Marshal(dependencies)
		must(err)
		deps = encoded
	}

	source, err := json.Marshal(code)
	must(err)

	return "<" + component + "\n  dependencies={" + string(deps) + "}\n  code={" + string(source) + "}\n/>"
}
