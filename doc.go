// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

/*
Package chunkdoc compiles a chunk graph describing an HTTP API into a set of
documentation pages.

A chunk graph is an ordered mapping of chunk ids to typed chunks (about,
globalSecurity, security, tag, operation, schema). Schemas may reference each
other by chunk id, including cyclically. Compile walks the graph and returns a
map of output path to page text in one of three dialects: plain markdown, MDX
and component slots. Nested schemas are rendered inline up to a nesting limit
and moved to shared embed pages below it; cycles are reported once instead of
being expanded.

Compile from file:

	pages, err := chunkdoc.CompileFile("api.chunks.yaml", chunkdoc.Options{
		Settings: chunkdoc.Settings{
			OutDir:          "docs",
			Dialect:         chunkdoc.DialectMDX,
			Convention:      chunkdoc.ConventionNested,
			MaxNestingLevel: 2,
		},
	})
	if err != nil {
		return err
	}

	for path, text := range pages {
		fmt.Println(path, len(text))
	}

Compile a parsed graph with usage snippets and an interactive widget:

	store, err := chunkdoc.ParseChunkGraphFile("api.chunks.yaml")
	if err != nil {
		return err
	}

	snippets, err := chunkdoc.LoadSnippetsFile("snippets.yaml")
	if err != nil {
		return err
	}

	pages, err := chunkdoc.Compile(store, chunkdoc.Options{
		Settings: chunkdoc.DefaultSettings(),
		Snippets: snippets,
		Widgets:  chunkdoc.JSXWidget{},
	})

Compilation is all-or-nothing: malformed input and internal invariant
violations both surface as errors and no partial page map is returned.
Internal failures match ErrInternal with errors.Is.

Generate example payload for a schema:

	schema := &chunkdoc.SchemaValue{Kind: chunkdoc.KindChunk, ChunkID: "Pet"}
	yamlExample, err := chunkdoc.GenerateExample(schema, store, chunkdoc.ExampleModeRequired, chunkdoc.ExampleFormatYAML)
	if err != nil {
		return err
	}

	fmt.Println(string(yamlExample))

Enable generated example payloads for request and response bodies:

	pages, err := chunkdoc.Compile(store, chunkdoc.Options{
		Settings: chunkdoc.Settings{
			ExampleFormat: chunkdoc.ExampleFormatJSON,
			ExampleMode:   chunkdoc.ExampleModeAll,
		},
	})
*/
package chunkdoc
