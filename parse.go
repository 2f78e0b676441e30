// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// chunkEnvelope is the serialized form of one chunk.
type chunkEnvelope struct {
	ChunkType ChunkType `yaml:"chunkType"`
	ChunkData yaml.Node `yaml:"chunkData"`
}

// ParseChunkGraphFile reads chunk graph from YAML or JSON file.
func ParseChunkGraphFile(path string) (*ChunkStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadChunkGraph, err)
	}

	return ParseChunkGraph(data)
}

// ParseChunkGraph decodes chunk graph bytes into an ordered chunk store.
//
// The document is a mapping of chunk id to {chunkType, chunkData}, optionally
// nested under a top-level "chunks" key. JSON input is accepted as YAML.
func ParseChunkGraph(data []byte) (*ChunkStore, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrDecodeChunkGraph)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeChunkGraph, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	if nested := mappingValue(root, "chunks"); nested != nil && len(root.Content) == 2 && mappingValue(nested, "chunkType") == nil {
		root = nested
	}

	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: root must be a mapping of chunk ids", ErrDecodeChunkGraph)
	}

	chunks := make([]Chunk, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		id := root.Content[i].Value
		chunk, err := decodeChunk(id, root.Content[i+1])
		if err != nil {
			return nil, err
		}

		chunks = append(chunks, chunk)
	}

	return NewChunkStore(chunks...)
}

// decodeChunk decodes one chunk envelope into a typed chunk.
func decodeChunk(id string, node *yaml.Node) (Chunk, error) {
	var envelope chunkEnvelope
	if err := node.Decode(&envelope); err != nil {
		return Chunk{}, fmt.Errorf("%w: chunk %q: %w", ErrDecodeChunkGraph, id, err)
	}

	chunk := Chunk{ID: id, Type: envelope.ChunkType}

	var err error
	switch envelope.ChunkType {
	case ChunkAbout:
		chunk.About = &AboutData{}
		err = envelope.ChunkData.Decode(chunk.About)
	case ChunkTag:
		chunk.Tag = &TagData{}
		err = envelope.ChunkData.Decode(chunk.Tag)
	case ChunkSchema:
		chunk.Schema = &SchemaData{}
		err = envelope.ChunkData.Decode(chunk.Schema)
	case ChunkOperation:
		chunk.Operation = &OperationData{}
		err = envelope.ChunkData.Decode(chunk.Operation)
	case ChunkSecurity:
		chunk.Security = &SecurityData{}
		err = envelope.ChunkData.Decode(chunk.Security)
	case ChunkGlobalSecurity:
		chunk.GlobalSecurity = &SecurityData{}
		err = envelope.ChunkData.Decode(chunk.GlobalSecurity)
	default:
		return Chunk{}, fmt.Errorf("%w %q for chunk %q", ErrUnknownChunkType, envelope.ChunkType, id)
	}

	if err != nil {
		return Chunk{}, fmt.Errorf("%w: chunk %q: %w", ErrDecodeChunkGraph, id, err)
	}

	return chunk, nil
}

// mappingValue returns value node for key in a mapping node.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}

	return nil
}
