// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// typeLabelInlineLimit is the maximum single-line type label width.
const typeLabelInlineLimit = 80

// TypeInfo is a renderable type signature for one schema node.
type TypeInfo struct {
	Label     string
	Children  []TypeInfo
	Breakouts []Breakout
}

// Breakout is a named object shape rendered in its own section or page.
type Breakout struct {
	Label  string
	Schema *SchemaValue
}

// ResolveType computes type signature and breakouts for schema.
func ResolveType(schema *SchemaValue, store *ChunkStore) (TypeInfo, error) {
	resolved, err := store.ResolveSchema(schema)
	if err != nil {
		return TypeInfo{}, err
	}

	switch {
	case resolved.Kind == KindObject:
		return TypeInfo{
			Label:     resolved.Name,
			Breakouts: []Breakout{{Label: resolved.Name, Schema: resolved}},
		}, nil
	case resolved.Kind.IsContainer():
		child, err := ResolveType(resolved.Items, store)
		if err != nil {
			return TypeInfo{}, err
		}

		return TypeInfo{
			Label:     string(resolved.Kind),
			Children:  []TypeInfo{child},
			Breakouts: child.Breakouts,
		}, nil
	case resolved.Kind == KindUnion:
		info := TypeInfo{
			Label:    string(KindUnion),
			Children: make([]TypeInfo, 0, len(resolved.Values)),
		}

		for _, value := range resolved.Values {
			child, err := ResolveType(value, store)
			if err != nil {
				return TypeInfo{}, err
			}

			info.Children = append(info.Children, child)
			info.Breakouts = append(info.Breakouts, child.Breakouts...)
		}

		return info, nil
	case resolved.Kind == KindEnum:
		info := TypeInfo{
			Label:    string(KindEnum),
			Children: make([]TypeInfo, 0, len(resolved.Literals)),
		}

		for _, literal := range resolved.Literals {
			info.Children = append(info.Children, TypeInfo{Label: literal})
		}

		return info, nil
	case resolved.Kind.IsPrimitive():
		return TypeInfo{Label: string(resolved.Kind)}, nil
	default:
		return TypeInfo{}, fmt.Errorf("%w %q", ErrUnknownSchemaKind, resolved.Kind)
	}
}

// FormatTypeLabel renders type label on one line when it fits, otherwise as an indented block.
func FormatTypeLabel(info TypeInfo) (string, bool) {
	single := singleLineLabel(info)
	if utf8.RuneCountInString(single) <= typeLabelInlineLimit {
		return single, false
	}

	var out strings.Builder
	writeMultiLineLabel(&out, info, 0)
	return out.String(), true
}

// singleLineLabel composes label<child, child> recursively.
func singleLineLabel(info TypeInfo) string {
	if len(info.Children) == 0 {
		return info.Label
	}

	parts := make([]string, 0, len(info.Children))
	for _, child := range info.Children {
		parts = append(parts, singleLineLabel(child))
	}

	return info.Label + "<" + strings.Join(parts, ", ") + ">"
}

// writeMultiLineLabel writes one child per line with two spaces per nesting level.
func writeMultiLineLabel(out *strings.Builder, info TypeInfo, level int) {
	out.WriteString(info.Label)
	if len(info.Children) == 0 {
		return
	}

	out.WriteString("<\n")
	for i, child := range info.Children {
		out.WriteString(strings.Repeat("  ", level+1))
		writeMultiLineLabel(out, child, level+1)
		if i < len(info.Children)-1 {
			out.WriteByte(',')
		}

		out.WriteByte('\n')
	}

	out.WriteString(strings.Repeat("  ", level))
	out.WriteByte('>')
}

// namedType returns object name reached through containers, or empty string.
func namedType(schema *SchemaValue, store *ChunkStore) string {
	resolved, err := store.ResolveSchema(schema)
	if err != nil {
		return ""
	}

	switch {
	case resolved.Kind == KindObject:
		return resolved.Name
	case resolved.Kind.IsContainer():
		return namedType(resolved.Items, store)
	default:
		return ""
	}
}
