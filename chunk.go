// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"fmt"
	"strings"
)

// ChunkType tags the payload carried by one Chunk.
type ChunkType string

const (
	ChunkAbout          ChunkType = "about"
	ChunkTag            ChunkType = "tag"
	ChunkSchema         ChunkType = "schema"
	ChunkOperation      ChunkType = "operation"
	ChunkSecurity       ChunkType = "security"
	ChunkGlobalSecurity ChunkType = "globalSecurity"
)

// Chunk is one addressable unit of parsed API-description content.
// Exactly one payload pointer matching Type is set.
type Chunk struct {
	ID   string
	Type ChunkType

	About          *AboutData
	Tag            *TagData
	Schema         *SchemaData
	Operation      *OperationData
	Security       *SecurityData
	GlobalSecurity *SecurityData
}

// AboutData describes the API as a whole.
type AboutData struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Version     string   `yaml:"version"`
	Servers     []Server `yaml:"servers"`
}

// Server is one API base URL.
type Server struct {
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

// TagData groups operations onto one page.
type TagData struct {
	Name              string   `yaml:"name"`
	Slug              string   `yaml:"slug"`
	Description       string   `yaml:"description"`
	OperationChunkIDs []string `yaml:"operationChunkIds"`
}

// SchemaData wraps a named schema value.
type SchemaData struct {
	Value *SchemaValue `yaml:"value"`
}

// OperationData describes one API operation.
type OperationData struct {
	OperationID     string       `yaml:"operationId"`
	Slug            string       `yaml:"slug"`
	Method          string       `yaml:"method"`
	Path            string       `yaml:"path"`
	Summary         string       `yaml:"summary"`
	Description     string       `yaml:"description"`
	Deprecated      bool         `yaml:"deprecated"`
	SecurityChunkID string       `yaml:"securityChunkId"`
	Parameters      []Parameter  `yaml:"parameters"`
	RequestBody     *RequestBody `yaml:"requestBody"`
	Responses       []Response   `yaml:"responses"`
}

// Parameter is one path, query, header or cookie parameter.
type Parameter struct {
	Name        string       `yaml:"name"`
	In          string       `yaml:"in"`
	Required    bool         `yaml:"required"`
	Deprecated  bool         `yaml:"deprecated"`
	Description string       `yaml:"description"`
	Schema      *SchemaValue `yaml:"schema"`
}

// RequestBody is the operation payload.
type RequestBody struct {
	Description string       `yaml:"description"`
	Required    bool         `yaml:"required"`
	ContentType string       `yaml:"contentType"`
	Schema      *SchemaValue `yaml:"schema"`
}

// Response is one status code and content type pair.
type Response struct {
	StatusCode  string       `yaml:"statusCode"`
	Description string       `yaml:"description"`
	ContentType string       `yaml:"contentType"`
	Schema      *SchemaValue `yaml:"schema"`
}

// SecurityData lists security requirements.
type SecurityData struct {
	Entries []SecurityEntry `yaml:"entries"`
}

// SecurityEntry is one security scheme requirement.
type SecurityEntry struct {
	Name        string `yaml:"name"`
	In          string `yaml:"in"`
	Type        string `yaml:"type"`
	Scheme      string `yaml:"scheme"`
	Description string `yaml:"description"`
}

// ChunkStore is an immutable, insertion-ordered id to Chunk mapping.
type ChunkStore struct {
	order  []string
	chunks map[string]Chunk
}

// NewChunkStore builds a store from chunks in the given order.
func NewChunkStore(chunks ...Chunk) (*ChunkStore, error) {
	store := &ChunkStore{
		order:  make([]string, 0, len(chunks)),
		chunks: make(map[string]Chunk, len(chunks)),
	}

	for _, chunk := range chunks {
		if _, exists := store.chunks[chunk.ID]; exists {
			return nil, fmt.Errorf("%w %q", ErrDuplicateChunk, chunk.ID)
		}

		if err := chunk.validate(); err != nil {
			return nil, err
		}

		store.order = append(store.order, chunk.ID)
		store.chunks[chunk.ID] = chunk
	}

	return store, nil
}

// Get returns chunk by id.
func (store *ChunkStore) Get(id string) (Chunk, bool) {
	chunk, ok := store.chunks[id]
	return chunk, ok
}

// IDs returns chunk ids in insertion order.
func (store *ChunkStore) IDs() []string {
	out := make([]string, len(store.order))
	copy(out, store.order)
	return out
}

// Len returns number of chunks.
func (store *ChunkStore) Len() int {
	return len(store.order)
}

// OfType returns chunks of one type in insertion order.
func (store *ChunkStore) OfType(chunkType ChunkType) []Chunk {
	out := make([]Chunk, 0)
	for _, id := range store.order {
		chunk := store.chunks[id]
		if chunk.Type == chunkType {
			out = append(out, chunk)
		}
	}

	return out
}

// ResolveSchema follows chunk references until a non-reference value is reached.
func (store *ChunkStore) ResolveSchema(value *SchemaValue) (*SchemaValue, error) {
	if value == nil {
		return nil, fmt.Errorf("%w: nil schema value", ErrMissingChunk)
	}

	var seen map[string]struct{}
	for value.Kind == KindChunk {
		if seen == nil {
			seen = make(map[string]struct{}, 2)
		}

		if _, ok := seen[value.ChunkID]; ok {
			return nil, fmt.Errorf("%w at %q", ErrReferenceCycle, value.ChunkID)
		}

		seen[value.ChunkID] = struct{}{}

		chunk, ok := store.chunks[value.ChunkID]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingChunk, value.ChunkID)
		}

		if chunk.Type != ChunkSchema || chunk.Schema == nil || chunk.Schema.Value == nil {
			return nil, fmt.Errorf("%w: chunk %q is %s, not schema", ErrMissingChunk, chunk.ID, chunk.Type)
		}

		value = chunk.Schema.Value
	}

	return value, nil
}

// validate checks that the payload pointer matches the chunk type.
func (chunk Chunk) validate() error {
	if strings.TrimSpace(chunk.ID) == "" {
		return fmt.Errorf("%w: empty chunk id", ErrDecodeChunkGraph)
	}

	var present bool
	switch chunk.Type {
	case ChunkAbout:
		present = chunk.About != nil
	case ChunkTag:
		present = chunk.Tag != nil
	case ChunkSchema:
		present = chunk.Schema != nil && chunk.Schema.Value != nil
	case ChunkOperation:
		present = chunk.Operation != nil
	case ChunkSecurity:
		present = chunk.Security != nil
	case ChunkGlobalSecurity:
		present = chunk.GlobalSecurity != nil
	default:
		return fmt.Errorf("%w %q for chunk %q", ErrUnknownChunkType, chunk.Type, chunk.ID)
	}

	if !present {
		return fmt.Errorf("%w: chunk %q has no %s data", ErrDecodeChunkGraph, chunk.ID, chunk.Type)
	}

	return nil
}
