// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ExampleModeAll builds example with all declared properties.
	ExampleModeAll ExampleMode = "all"
	// ExampleModeRequired builds example with required properties only.
	ExampleModeRequired ExampleMode = "required"
)

// ExampleMode configures example generation property coverage.
type ExampleMode string

const (
	// ExampleFormatNone disables example payload sections.
	ExampleFormatNone ExampleFormat = ""
	// ExampleFormatJSON encodes example payload as JSON.
	ExampleFormatJSON ExampleFormat = "json"
	// ExampleFormatYAML encodes example payload as YAML.
	ExampleFormatYAML ExampleFormat = "yaml"
)

// ExampleFormat configures output format for generated example payload.
type ExampleFormat string

// exampleScalarPlaceholders provides fallback values for primitive kinds.
var exampleScalarPlaceholders = map[SchemaKind]*yaml.Node{
	KindString:   yamlScalarNode("!!str", "<string>"),
	KindNumber:   yamlScalarNode("!!int", "0"),
	KindInteger:  yamlScalarNode("!!int", "0"),
	KindInt32:    yamlScalarNode("!!int", "0"),
	KindInt64:    yamlScalarNode("!!int", "0"),
	KindBigInt:   yamlScalarNode("!!int", "0"),
	KindFloat32:  yamlScalarNode("!!float", "0.0"),
	KindFloat64:  yamlScalarNode("!!float", "0.0"),
	KindDecimal:  yamlScalarNode("!!str", "0.00"),
	KindBoolean:  yamlScalarNode("!!bool", "false"),
	KindDate:     yamlScalarNode("!!str", "2006-01-02"),
	KindDateTime: yamlScalarNode("!!str", "2006-01-02T15:04:05Z"),
	KindBinary:   yamlScalarNode("!!str", "<binary>"),
	KindNull:     yamlScalarNode("!!null", "null"),
	KindAny:      yamlScalarNode("!!null", "null"),
}

// exampleBuilder converts schema graph into an ordered example node tree.
type exampleBuilder struct {
	store      *ChunkStore
	activeRefs map[string]int
	mode       ExampleMode
}

// GenerateExample returns example payload for schema encoded in selected format.
func GenerateExample(schema *SchemaValue, store *ChunkStore, mode ExampleMode, format ExampleFormat) ([]byte, error) {
	mode, err := ParseExampleMode(string(mode))
	if err != nil {
		return nil, err
	}

	format, err = ParseExampleFormat(string(format))
	if err != nil {
		return nil, err
	}

	builder := exampleBuilder{
		store:      store,
		mode:       mode,
		activeRefs: make(map[string]int),
	}

	root, err := builder.buildNode(schema)
	if err != nil {
		return nil, err
	}

	switch format {
	case ExampleFormatJSON:
		var out bytes.Buffer
		if err := writeExampleJSON(&out, root, 0); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeExample, err)
		}

		out.WriteByte('\n')
		return out.Bytes(), nil
	case ExampleFormatYAML:
		data, err := marshalExampleYAMLNode(root)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeExample, err)
		}

		return data, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownExampleFormat, format)
	}
}

// ParseExampleMode validates and normalizes caller mode value; empty selects all.
func ParseExampleMode(value string) (ExampleMode, error) {
	switch normalized := ExampleMode(strings.ToLower(strings.TrimSpace(value))); normalized {
	case "":
		return ExampleModeAll, nil
	case ExampleModeAll, ExampleModeRequired:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleMode, value)
	}
}

// ParseExampleFormat validates and normalizes caller format value; empty and none disable examples.
func ParseExampleFormat(value string) (ExampleFormat, error) {
	switch normalized := ExampleFormat(strings.ToLower(strings.TrimSpace(value))); normalized {
	case ExampleFormatNone, "none":
		return ExampleFormatNone, nil
	case ExampleFormatJSON, ExampleFormatYAML:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleFormat, value)
	}
}

// buildNode recursively builds example value for one schema node.
func (builder *exampleBuilder) buildNode(schema *SchemaValue) (*yaml.Node, error) {
	resolved, err := builder.store.ResolveSchema(schema)
	if err != nil {
		return nil, err
	}

	if node, ok := explicitExampleNode(schema.FrontMatter().merge(resolved.FrontMatter())); ok {
		return node, nil
	}

	switch {
	case resolved.Kind == KindObject:
		return builder.buildObject(resolved)
	case resolved.Kind == KindMap:
		item, err := builder.buildNode(resolved.Items)
		if err != nil {
			return nil, err
		}

		return &yaml.Node{
			Kind:    yaml.MappingNode,
			Tag:     "!!map",
			Content: []*yaml.Node{yamlScalarNode("!!str", "<key>"), item},
		}, nil
	case resolved.Kind.IsContainer():
		item, err := builder.buildNode(resolved.Items)
		if err != nil {
			return nil, err
		}

		return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: []*yaml.Node{item}}, nil
	case resolved.Kind == KindUnion:
		if len(resolved.Values) == 0 {
			return yamlScalarNode("!!null", "null"), nil
		}

		return builder.buildNode(resolved.Values[0])
	case resolved.Kind == KindEnum:
		if len(resolved.Literals) == 0 {
			return yamlScalarNode("!!null", "null"), nil
		}

		return literalNode(resolved.Literals[0]), nil
	default:
		placeholder, ok := exampleScalarPlaceholders[resolved.Kind]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownSchemaKind, resolved.Kind)
		}

		clone := *placeholder
		return &clone, nil
	}
}

// buildObject materializes object properties in declaration order.
// Objects already being built are emitted as null to stop recursion.
func (builder *exampleBuilder) buildObject(object *SchemaValue) (*yaml.Node, error) {
	if builder.activeRefs[object.Name] > 0 {
		return yamlScalarNode("!!null", "null"), nil
	}

	builder.activeRefs[object.Name]++
	defer func() { builder.activeRefs[object.Name]-- }()

	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, property := range object.Properties {
		if builder.mode == ExampleModeRequired && !object.IsRequired(property.Name) {
			continue
		}

		value, err := builder.buildNode(property.Schema)
		if err != nil {
			return nil, err
		}

		key := yamlScalarNode("!!str", property.Name)
		key.HeadComment = schemaKeyComment(property.Schema)
		out.Content = append(out.Content, key, value)
	}

	return out, nil
}

// explicitExampleNode returns first declared example as a node.
func explicitExampleNode(fm FrontMatter) (*yaml.Node, bool) {
	if len(fm.Examples) == 0 {
		return nil, false
	}

	return literalNode(fm.Examples[0]), true
}

// literalNode parses JSON-like literal text back into a YAML node.
func literalNode(literal string) *yaml.Node {
	var document yaml.Node
	if err := yaml.Unmarshal([]byte(literal), &document); err != nil || len(document.Content) == 0 {
		return yamlScalarNode("!!str", literal)
	}

	node := document.Content[0]
	if node.Kind == yaml.ScalarNode {
		node.Style = 0
	}

	return node
}

// schemaKeyComment builds YAML key comment from the first description line.
func schemaKeyComment(schema *SchemaValue) string {
	if schema == nil {
		return ""
	}

	line, _, _ := strings.Cut(strings.TrimSpace(schema.Description), "\n")
	return strings.TrimSpace(line)
}

// marshalExampleYAMLNode serializes example payload as YAML.
func marshalExampleYAMLNode(node *yaml.Node) ([]byte, error) {
	document := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{node},
	}

	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)

	if err := encoder.Encode(document); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// writeExampleJSON writes node tree as indented JSON keeping mapping order.
func writeExampleJSON(out *bytes.Buffer, node *yaml.Node, level int) error {
	indent := strings.Repeat("  ", level+1)

	switch node.Kind {
	case yaml.MappingNode:
		if len(node.Content) == 0 {
			out.WriteString("{}")
			return nil
		}

		out.WriteString("{\n")
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, err := json.Marshal(node.Content[i].Value)
			if err != nil {
				return err
			}

			out.WriteString(indent)
			out.Write(key)
			out.WriteString(": ")
			if err := writeExampleJSON(out, node.Content[i+1], level+1); err != nil {
				return err
			}

			if i+2 < len(node.Content) {
				out.WriteByte(',')
			}

			out.WriteByte('\n')
		}

		out.WriteString(strings.Repeat("  ", level) + "}")
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			out.WriteString("[]")
			return nil
		}

		out.WriteString("[\n")
		for i, item := range node.Content {
			out.WriteString(indent)
			if err := writeExampleJSON(out, item, level+1); err != nil {
				return err
			}

			if i+1 < len(node.Content) {
				out.WriteByte(',')
			}

			out.WriteByte('\n')
		}

		out.WriteString(strings.Repeat("  ", level) + "]")
	case yaml.AliasNode:
		return writeExampleJSON(out, node.Alias, level)
	default:
		out.WriteString(jsonScalar(node))
	}

	return nil
}

// jsonScalar renders one YAML scalar as JSON literal text.
func jsonScalar(node *yaml.Node) string {
	switch node.ShortTag() {
	case "!!null":
		return "null"
	case "!!bool":
		if value, err := strconv.ParseBool(node.Value); err == nil {
			return strconv.FormatBool(value)
		}
	case "!!int", "!!float":
		if _, err := strconv.ParseFloat(node.Value, 64); err == nil {
			return node.Value
		}
	}

	data, err := json.Marshal(node.Value)
	if err != nil {
		return `""`
	}

	return string(data)
}

// yamlScalarNode creates one scalar yaml.Node with explicit tag.
func yamlScalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   tag,
		Value: value,
	}
}
