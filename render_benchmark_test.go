// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"os"
	"path/filepath"
	"testing"
)

// BenchmarkParseChunkGraph measures chunk graph decoding and validation cost.
func BenchmarkParseChunkGraph(b *testing.B) {
	graphPath := filepath.Join("testdata", "petstore.yaml")
	graphBytes := readBenchmarkFile(b, graphPath)

	b.ReportAllocs()
	b.SetBytes(int64(len(graphBytes)))

	for i := 0; i < b.N; i++ {
		if _, err := ParseChunkGraph(graphBytes); err != nil {
			b.Fatalf("ParseChunkGraph: %v", err)
		}
	}
}

// BenchmarkCompileMarkdown measures in-memory compile flow for plain markdown.
func BenchmarkCompileMarkdown(b *testing.B) {
	benchmarkCompile(b, DialectMarkdown, ConventionFlat)
}

// BenchmarkCompileMDX measures in-memory compile flow for MDX pages.
func BenchmarkCompileMDX(b *testing.B) {
	benchmarkCompile(b, DialectMDX, ConventionNested)
}

// BenchmarkCompileSlots measures in-memory compile flow for component slots.
func BenchmarkCompileSlots(b *testing.B) {
	benchmarkCompile(b, DialectSlots, ConventionFlat)
}

// BenchmarkCompileFile measures read + parse + compile flow from file path.
func BenchmarkCompileFile(b *testing.B) {
	graphPath := filepath.Join("testdata", "petstore.yaml")

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := CompileFile(graphPath, Options{Settings: Settings{MaxNestingLevel: 1}})
		if err != nil {
			b.Fatalf("CompileFile: %v", err)
		}
	}
}

// benchmarkCompile runs common in-memory benchmark for selected dialect.
func benchmarkCompile(b *testing.B, dialect Dialect, convention Convention) {
	graphPath := filepath.Join("testdata", "petstore.yaml")
	store, err := ParseChunkGraph(readBenchmarkFile(b, graphPath))
	if err != nil {
		b.Fatalf("ParseChunkGraph: %v", err)
	}

	options := Options{
		Settings: Settings{
			Dialect:               dialect,
			Convention:            convention,
			MaxNestingLevel:       2,
			ShowDebugPlaceholders: true,
			ExampleFormat:         ExampleFormatJSON,
		},
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Compile(store, options); err != nil {
			b.Fatalf("Compile: %v", err)
		}
	}
}

// readBenchmarkFile loads benchmark fixture file and fails benchmark on read errors.
func readBenchmarkFile(b *testing.B, path string) []byte {
	b.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		b.Fatalf("read benchmark file %q: %v", path, err)
	}

	if len(data) == 0 {
		b.Fatalf("empty benchmark file: %s", path)
	}

	return data
}
