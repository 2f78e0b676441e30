// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"errors"
	"strings"
	"testing"
)

func TestResolveTypeLabels(t *testing.T) {
	t.Parallel()

	store := mustStore(t, Chunk{
		ID:   "Pet",
		Type: ChunkSchema,
		Schema: &SchemaData{Value: &SchemaValue{
			Kind: KindObject,
			Name: "Pet",
		}},
	})

	petRef := &SchemaValue{Kind: KindChunk, ChunkID: "Pet"}

	cases := []struct {
		name      string
		schema    *SchemaValue
		want      string
		breakouts []string
	}{
		{"primitive", &SchemaValue{Kind: KindDateTime}, "datetime", nil},
		{"object", petRef, "Pet", []string{"Pet"}},
		{"array", &SchemaValue{Kind: KindArray, Items: petRef}, "array<Pet>", []string{"Pet"}},
		{"nested containers", &SchemaValue{Kind: KindMap, Items: &SchemaValue{Kind: KindSet, Items: &SchemaValue{Kind: KindString}}}, "map<set<string>>", nil},
		{"union", &SchemaValue{Kind: KindUnion, Values: []*SchemaValue{petRef, {Kind: KindNull}}}, "union<Pet, null>", []string{"Pet"}},
		{"empty union", &SchemaValue{Kind: KindUnion}, "union", nil},
		{"enum", &SchemaValue{Kind: KindEnum, Literals: []string{`"a"`, "1"}}, `enum<"a", 1>`, nil},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			info, err := ResolveType(tc.schema, store)
			if err != nil {
				t.Fatalf("ResolveType: %v", err)
			}

			got, multiline := FormatTypeLabel(info)
			if got != tc.want || multiline {
				t.Fatalf("label = %q (multiline %v), want %q", got, multiline, tc.want)
			}

			labels := make([]string, 0, len(info.Breakouts))
			for _, breakout := range info.Breakouts {
				labels = append(labels, breakout.Label)
			}

			if strings.Join(labels, ",") != strings.Join(tc.breakouts, ",") {
				t.Fatalf("breakouts = %v, want %v", labels, tc.breakouts)
			}
		})
	}
}

func TestFormatTypeLabelMultiLine(t *testing.T) {
	t.Parallel()

	info := TypeInfo{
		Label: "union",
		Children: []TypeInfo{
			{Label: "CustomerShippingAddress"},
			{Label: "array", Children: []TypeInfo{{Label: "CustomerBillingAddress"}}},
			{Label: "WarehousePickupLocation"},
		},
	}

	got, multiline := FormatTypeLabel(info)
	if !multiline {
		t.Fatalf("expected multi-line label, got %q", got)
	}

	want := "union<\n  CustomerShippingAddress,\n  array<\n    CustomerBillingAddress\n  >,\n  WarehousePickupLocation\n>"
	if got != want {
		t.Fatalf("label =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatTypeLabelThreshold(t *testing.T) {
	t.Parallel()

	exact := TypeInfo{Label: "array", Children: []TypeInfo{{Label: strings.Repeat("x", 80-len("array<>"))}}}
	if _, multiline := FormatTypeLabel(exact); multiline {
		t.Fatal("80 character label must stay single-line")
	}

	over := TypeInfo{Label: "array", Children: []TypeInfo{{Label: strings.Repeat("x", 81-len("array<>"))}}}
	if _, multiline := FormatTypeLabel(over); !multiline {
		t.Fatal("81 character label must be multi-line")
	}
}

func TestResolveTypeDeterministic(t *testing.T) {
	t.Parallel()

	store := mustStore(t)
	schema := &SchemaValue{Kind: KindUnion, Values: []*SchemaValue{
		{Kind: KindObject, Name: "B"},
		{Kind: KindObject, Name: "A"},
		{Kind: KindArray, Items: &SchemaValue{Kind: KindObject, Name: "C"}},
	}}

	first, err := ResolveType(schema, store)
	if err != nil {
		t.Fatalf("ResolveType: %v", err)
	}

	for i := 0; i < 10; i++ {
		next, err := ResolveType(schema, store)
		if err != nil {
			t.Fatalf("ResolveType: %v", err)
		}

		a, _ := FormatTypeLabel(first)
		b, _ := FormatTypeLabel(next)
		if a != b || a != "union<B, A, array<C>>" {
			t.Fatalf("labels differ: %q vs %q", a, b)
		}
	}
}

func TestResolveTypeErrors(t *testing.T) {
	t.Parallel()

	store := mustStore(t, Chunk{ID: "about", Type: ChunkAbout, About: &AboutData{}})

	if _, err := ResolveType(&SchemaValue{Kind: "tuple"}, store); !errors.Is(err, ErrUnknownSchemaKind) {
		t.Fatalf("error = %v, want ErrUnknownSchemaKind", err)
	}

	if _, err := ResolveType(&SchemaValue{Kind: KindChunk, ChunkID: "missing"}, store); !errors.Is(err, ErrMissingChunk) {
		t.Fatalf("error = %v, want ErrMissingChunk", err)
	}

	if _, err := ResolveType(&SchemaValue{Kind: KindChunk, ChunkID: "about"}, store); !errors.Is(err, ErrMissingChunk) {
		t.Fatalf("error = %v, want ErrMissingChunk for non-schema chunk", err)
	}
}

func TestResolveSchemaDetectsReferenceCycle(t *testing.T) {
	t.Parallel()

	store := mustStore(t,
		Chunk{ID: "a", Type: ChunkSchema, Schema: &SchemaData{Value: &SchemaValue{Kind: KindChunk, ChunkID: "b"}}},
		Chunk{ID: "b", Type: ChunkSchema, Schema: &SchemaData{Value: &SchemaValue{Kind: KindChunk, ChunkID: "a"}}},
	)

	if _, err := store.ResolveSchema(&SchemaValue{Kind: KindChunk, ChunkID: "a"}); !errors.Is(err, ErrReferenceCycle) {
		t.Fatalf("error = %v, want ErrReferenceCycle", err)
	}
}

func mustStore(t *testing.T, chunks ...Chunk) *ChunkStore {
	t.Helper()

	store, err := NewChunkStore(chunks...)
	if err != nil {
		t.Fatalf("NewChunkStore: %v", err)
	}

	return store
}
