// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPlainText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  string
	}{
		{"A **bold** and _soft_ word.", "A bold and soft word."},
		{"Use `client.get()` with [docs](https://example.com).", "Use client.get() with docs."},
		{"# Title\n\nBody line\ncontinues.", "Title Body line continues."},
		{"- one\n- two", "one two"},
		{"Text\n\n```go\nfmt.Println()\n```\n\nAfter", "Text After"},
		{"See <https://example.com>", "See https://example.com"},
	}

	for _, tc := range cases {
		if got := PlainText(tc.input); got != tc.want {
			t.Fatalf("PlainText(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSummarizeFirstParagraphAndTruncation(t *testing.T) {
	t.Parallel()

	if got := summarize("First *para*.\n\nSecond para."); got != "First para." {
		t.Fatalf("summarize = %q", got)
	}

	long := strings.Repeat("word ", 60)
	got := summarize(long)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("summary not truncated: %q", got)
	}

	if utf8.RuneCountInString(got) > summaryMaxRunes+3 {
		t.Fatalf("summary too long: %d runes", utf8.RuneCountInString(got))
	}

	if strings.Contains(got, "wor...") {
		t.Fatalf("summary cut inside word: %q", got)
	}
}
