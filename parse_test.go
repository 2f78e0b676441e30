// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseChunkGraphPreservesOrder(t *testing.T) {
	t.Parallel()

	store, err := ParseChunkGraphFile(filepath.Join("testdata", "petstore.yaml"))
	if err != nil {
		t.Fatalf("ParseChunkGraphFile: %v", err)
	}

	got := strings.Join(store.IDs(), ",")
	want := "about,auth,petAuth,Owner,Pet,Error,pets,getPet,listPets,ping"
	if got != want {
		t.Fatalf("ids = %s, want %s", got, want)
	}

	pet, ok := store.Get("Pet")
	if !ok {
		t.Fatal("missing Pet chunk")
	}

	names := make([]string, 0, len(pet.Schema.Value.Properties))
	for _, property := range pet.Schema.Value.Properties {
		names = append(names, property.Name)
	}

	if strings.Join(names, ",") != "id,status,tags,owner" {
		t.Fatalf("property order = %v", names)
	}

	status := pet.Schema.Value.Properties[1].Schema
	if status.Kind != KindEnum || strings.Join(status.Literals, ",") != `"available","pending","sold"` {
		t.Fatalf("status enum = %+v", status)
	}

	if status.DefaultValue == nil || *status.DefaultValue != `"available"` {
		t.Fatalf("status default = %v", status.DefaultValue)
	}

	if len(store.OfType(ChunkOperation)) != 3 {
		t.Fatalf("operations = %d, want 3", len(store.OfType(ChunkOperation)))
	}
}

func TestParseChunkGraphAcceptsJSON(t *testing.T) {
	t.Parallel()

	store, err := ParseChunkGraph([]byte(`{
  "s": {"chunkType": "schema", "chunkData": {"value": {"type": "union", "values": [{"type": "string"}, {"type": "null"}]}}},
  "t": {"chunkType": "tag", "chunkData": {"name": "T", "operationChunkIds": []}}
}`))
	if err != nil {
		t.Fatalf("ParseChunkGraph: %v", err)
	}

	chunk, _ := store.Get("s")
	if len(chunk.Schema.Value.Values) != 2 || chunk.Schema.Value.Values[1].Kind != KindNull {
		t.Fatalf("union values = %+v", chunk.Schema.Value.Values)
	}
}

func TestParseChunkGraphSingleChunkNamedChunks(t *testing.T) {
	t.Parallel()

	store, err := ParseChunkGraph([]byte(`
chunks:
  chunkType: about
  chunkData:
    title: Odd
`))
	if err != nil {
		t.Fatalf("ParseChunkGraph: %v", err)
	}

	chunk, ok := store.Get("chunks")
	if !ok || chunk.About.Title != "Odd" {
		t.Fatalf("chunk = %+v, %v", chunk, ok)
	}
}

func TestParseChunkGraphErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		data string
		want error
	}{
		{"empty", "  ", ErrDecodeChunkGraph},
		{"not mapping", "- a\n- b\n", ErrDecodeChunkGraph},
		{"unknown chunk type", "x: {chunkType: widget, chunkData: {}}", ErrUnknownChunkType},
		{"unknown schema kind", "x: {chunkType: schema, chunkData: {value: {type: tuple}}}", ErrUnknownSchemaKind},
		{"array without items", "x: {chunkType: schema, chunkData: {value: {type: array}}}", ErrDecodeChunkGraph},
		{"chunk without id", "x: {chunkType: schema, chunkData: {value: {type: chunk}}}", ErrDecodeChunkGraph},
		{"schema without value", "x: {chunkType: schema, chunkData: {}}", ErrDecodeChunkGraph},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseChunkGraph([]byte(tc.data)); !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestParseChunkGraphFileMissing(t *testing.T) {
	t.Parallel()

	_, err := ParseChunkGraphFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrReadChunkGraph) {
		t.Fatalf("error = %v, want ErrReadChunkGraph", err)
	}
}

func TestNewChunkStoreRejectsDuplicates(t *testing.T) {
	t.Parallel()

	about := Chunk{ID: "a", Type: ChunkAbout, About: &AboutData{}}
	if _, err := NewChunkStore(about, about); !errors.Is(err, ErrDuplicateChunk) {
		t.Fatalf("error = %v, want ErrDuplicateChunk", err)
	}
}
