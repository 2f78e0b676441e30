// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSnippetsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snippets.yaml")
	data := "getPet: client.getPet(1)\nlistPets:\n  code: client.listPets()\n  language: ts\nblank: \"  \"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write snippets: %v", err)
	}

	snippets, err := LoadSnippetsFile(path)
	if err != nil {
		t.Fatalf("LoadSnippetsFile: %v", err)
	}

	if got, ok := snippets.UsageSnippet("getPet"); !ok || got.Code != "client.getPet(1)" || got.Language != "" {
		t.Fatalf("getPet snippet = %+v, %v", got, ok)
	}

	if got, ok := snippets.UsageSnippet("listPets"); !ok || got.Language != "ts" {
		t.Fatalf("listPets snippet = %+v, %v", got, ok)
	}

	if _, ok := snippets.UsageSnippet("blank"); ok {
		t.Fatal("blank snippet must be treated as missing")
	}

	if _, err := LoadSnippetsFile(filepath.Join(t.TempDir(), "none.yaml")); !errors.Is(err, ErrReadSnippets) {
		t.Fatalf("error = %v, want ErrReadSnippets", err)
	}
}

func TestJSXWidgetPlaceholder(t *testing.T) {
	t.Parallel()

	got := JSXWidget{Component: "Playground"}.Placeholder(nil, "a(\"</script>\")")
	want := "<Playground\n  dependencies={{}}\n  code={\"a(\\\"\\u003c/script\\u003e\\\")\"}\n/>"
	if got != want {
		t.Fatalf("placeholder = %q, want %q", got, want)
	}

	fn := WidgetFunc(func(deps map[string]string, code string) string {
		return deps["sdk"] + ":" + code
	})

	if got := fn.Placeholder(map[string]string{"sdk": "1"}, "x"); got != "1:x" {
		t.Fatalf("WidgetFunc placeholder = %q", got)
	}
}
