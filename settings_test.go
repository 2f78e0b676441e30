// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"errors"
	"testing"
)

func TestSettingsNormalizeMaxNestingLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		level int
		want  int
	}{
		{0, defaultMaxNestingLevel},
		{1, 1},
		{7, 7},
	}

	for _, tc := range cases {
		got, err := Settings{MaxNestingLevel: tc.level}.Normalize()
		if err != nil {
			t.Fatalf("Normalize(%d): %v", tc.level, err)
		}

		if got.MaxNestingLevel != tc.want {
			t.Fatalf("Normalize(%d) MaxNestingLevel = %d, want %d", tc.level, got.MaxNestingLevel, tc.want)
		}
	}

	if _, err := (Settings{MaxNestingLevel: -1}).Normalize(); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("Normalize(-1) error = %v, want ErrInvalidSettings", err)
	}
}

func TestSettingsNormalizeCleansOutDir(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":             defaultOutDir,
		"  ":           defaultOutDir,
		"./site/api/ ": "site/api",
		"/srv/docs/":   "/srv/docs",
	}

	for input, want := range cases {
		got, err := Settings{OutDir: input}.Normalize()
		if err != nil {
			t.Fatalf("Normalize(%q): %v", input, err)
		}

		if got.OutDir != want {
			t.Fatalf("Normalize(%q) OutDir = %q, want %q", input, got.OutDir, want)
		}
	}
}
