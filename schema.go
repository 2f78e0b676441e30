// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// SchemaKind tags one SchemaValue variant.
type SchemaKind string

const (
	KindObject   SchemaKind = "object"
	KindArray    SchemaKind = "array"
	KindMap      SchemaKind = "map"
	KindSet      SchemaKind = "set"
	KindUnion    SchemaKind = "union"
	KindEnum     SchemaKind = "enum"
	KindChunk    SchemaKind = "chunk"
	KindString   SchemaKind = "string"
	KindNumber   SchemaKind = "number"
	KindInteger  SchemaKind = "integer"
	KindInt32    SchemaKind = "int32"
	KindInt64    SchemaKind = "int64"
	KindBigInt   SchemaKind = "bigint"
	KindFloat32  SchemaKind = "float32"
	KindFloat64  SchemaKind = "float64"
	KindDecimal  SchemaKind = "decimal"
	KindBoolean  SchemaKind = "boolean"
	KindDate     SchemaKind = "date"
	KindDateTime SchemaKind = "datetime"
	KindBinary   SchemaKind = "binary"
	KindNull     SchemaKind = "null"
	KindAny      SchemaKind = "any"
)

// primitiveKinds lists leaf kinds rendered by their own name.
var primitiveKinds = map[SchemaKind]struct{}{
	KindString:   {},
	KindNumber:   {},
	KindInteger:  {},
	KindInt32:    {},
	KindInt64:    {},
	KindBigInt:   {},
	KindFloat32:  {},
	KindFloat64:  {},
	KindDecimal:  {},
	KindBoolean:  {},
	KindDate:     {},
	KindDateTime: {},
	KindBinary:   {},
	KindNull:     {},
	KindAny:      {},
}

// IsPrimitive reports whether kind is a leaf primitive.
func (kind SchemaKind) IsPrimitive() bool {
	_, ok := primitiveKinds[kind]
	return ok
}

// IsContainer reports whether kind wraps a single items schema.
func (kind SchemaKind) IsContainer() bool {
	return kind == KindArray || kind == KindMap || kind == KindSet
}

// SchemaValue is one node of the recursively typed schema graph.
//
// Only the fields of the variant named by Kind are meaningful:
// object uses Name, Properties and Required; array, map and set use Items;
// union uses Values; enum uses Literals; chunk uses ChunkID.
type SchemaValue struct {
	Kind       SchemaKind
	Name       string
	Properties []Property
	Required   []string
	Items      *SchemaValue
	Values     []*SchemaValue
	Literals   []string
	ChunkID    string

	Description  string
	Examples     []string
	DefaultValue *string
}

// Property is one named object member in declaration order.
type Property struct {
	Name   string
	Schema *SchemaValue
}

// IsRequired reports whether property name is listed in the required set.
func (s *SchemaValue) IsRequired(name string) bool {
	for _, required := range s.Required {
		if required == name {
			return true
		}
	}

	return false
}

// FrontMatter returns description, examples and default of the schema node.
func (s *SchemaValue) FrontMatter() FrontMatter {
	if s == nil {
		return FrontMatter{}
	}

	return FrontMatter{
		Description:  s.Description,
		Examples:     s.Examples,
		DefaultValue: s.DefaultValue,
	}
}

// FrontMatter is descriptive metadata rendered after a schema row.
type FrontMatter struct {
	Description  string
	Examples     []string
	DefaultValue *string
}

// merge fills empty fields from fallback.
func (fm FrontMatter) merge(fallback FrontMatter) FrontMatter {
	if strings.TrimSpace(fm.Description) == "" {
		fm.Description = fallback.Description
	}

	if len(fm.Examples) == 0 {
		fm.Examples = fallback.Examples
	}

	if fm.DefaultValue == nil {
		fm.DefaultValue = fallback.DefaultValue
	}

	return fm
}

// UnmarshalYAML decodes one schema node while preserving property order.
func (s *SchemaValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: schema at line %d is not a mapping", ErrDecodeChunkGraph, node.Line)
	}

	*s = SchemaValue{}
	if kind := mappingValue(node, "type"); kind != nil {
		s.Kind = SchemaKind(strings.ToLower(strings.TrimSpace(kind.Value)))
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]

		var err error
		switch key {
		case "name":
			s.Name = value.Value
		case "chunkId":
			s.ChunkID = value.Value
		case "description":
			s.Description = value.Value
		case "required":
			err = value.Decode(&s.Required)
		case "examples":
			s.Examples, err = decodeLiteralList(value)
		case "defaultValue", "default":
			literal := literalText(value)
			s.DefaultValue = &literal
		case "items":
			s.Items = &SchemaValue{}
			err = value.Decode(s.Items)
		case "properties":
			s.Properties, err = decodeProperties(value)
		case "values":
			err = s.decodeValues(value)
		}

		if err != nil {
			return err
		}
	}

	return s.validateShape(node.Line)
}

// decodeValues assigns union alternatives or enum literals depending on kind.
func (s *SchemaValue) decodeValues(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("%w: values at line %d is not a sequence", ErrDecodeChunkGraph, node.Line)
	}

	if s.Kind == KindEnum {
		literals, err := decodeLiteralList(node)
		s.Literals = literals
		return err
	}

	s.Values = make([]*SchemaValue, 0, len(node.Content))
	for _, item := range node.Content {
		value := &SchemaValue{}
		if err := item.Decode(value); err != nil {
			return err
		}

		s.Values = append(s.Values, value)
	}

	return nil
}

// validateShape checks that variant fields required by Kind are present.
func (s *SchemaValue) validateShape(line int) error {
	switch {
	case s.Kind == KindObject:
		return nil
	case s.Kind.IsContainer():
		if s.Items == nil {
			return fmt.Errorf("%w: %s at line %d has no items", ErrDecodeChunkGraph, s.Kind, line)
		}

		return nil
	case s.Kind == KindUnion, s.Kind == KindEnum:
		return nil
	case s.Kind == KindChunk:
		if strings.TrimSpace(s.ChunkID) == "" {
			return fmt.Errorf("%w: chunk reference at line %d has no chunkId", ErrDecodeChunkGraph, line)
		}

		return nil
	case s.Kind.IsPrimitive():
		return nil
	default:
		return fmt.Errorf("%w %q at line %d", ErrUnknownSchemaKind, s.Kind, line)
	}
}

// decodeProperties decodes an ordered property mapping.
func decodeProperties(node *yaml.Node) ([]Property, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: properties at line %d is not a mapping", ErrDecodeChunkGraph, node.Line)
	}

	out := make([]Property, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		value := &SchemaValue{}
		if err := node.Content[i+1].Decode(value); err != nil {
			return nil, err
		}

		out = append(out, Property{Name: node.Content[i].Value, Schema: value})
	}

	return out, nil
}

// decodeLiteralList renders scalar sequence items as literal text.
func decodeLiteralList(node *yaml.Node) ([]string, error) {
	if node.Kind != yaml.SequenceNode {
		return []string{literalText(node)}, nil
	}

	out := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		out = append(out, literalText(item))
	}

	return out, nil
}

// literalText renders one YAML node as JSON-like literal text.
func literalText(node *yaml.Node) string {
	if node.Kind != yaml.ScalarNode {
		data, err := yaml.Marshal(node)
		if err != nil {
			return ""
		}

		return strings.TrimSpace(string(data))
	}

	switch node.Tag {
	case "!!str":
		return strconv.Quote(node.Value)
	case "!!null":
		return "null"
	default:
		return node.Value
	}
}
