// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/chunkdoc

package chunkdoc

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestBuildPagePath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		slug        string
		convention  Convention
		ext         string
		appendIndex bool
		want        string
	}{
		{"pets", ConventionFlat, "md", false, "docs/pets.md"},
		{"pets", ConventionFlat, "md", true, "docs/pets/index.md"},
		{"", ConventionFlat, "md", true, "docs/index.md"},
		{"/store/orders/", ConventionFlat, "mdx", false, "docs/store/orders.mdx"},
		{"pets", ConventionNested, "mdx", false, "docs/pets/page.mdx"},
		{"pets", ConventionNested, "mdx", true, "docs/pets/page.mdx"},
		{"", ConventionNested, "mdx", true, "docs/page.mdx"},
	}

	for _, tc := range cases {
		for i := 0; i < 2; i++ {
			got := BuildPagePath("docs", tc.slug, tc.convention, tc.ext, tc.appendIndex)
			if got != tc.want {
				t.Fatalf("BuildPagePath(%q, %s, %v) = %q, want %q", tc.slug, tc.convention, tc.appendIndex, got, tc.want)
			}
		}
	}
}

func TestSiteCreatePageTwiceFails(t *testing.T) {
	t.Parallel()

	site := newTestSite(t, Settings{})

	if _, err := site.CreatePage("docs/a.md", PageMeta{Title: "A"}); err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	if _, err := site.CreatePage("docs/a.md", PageMeta{Title: "A"}); !errors.Is(err, ErrPageExists) {
		t.Fatalf("error = %v, want ErrPageExists", err)
	}
}

func TestSiteCreateEmbedPageOnce(t *testing.T) {
	t.Parallel()

	site := newTestSite(t, Settings{})

	first, fresh, err := site.CreateEmbedPage("Owner")
	if err != nil || !fresh || first == nil {
		t.Fatalf("first CreateEmbedPage = %v, %v, %v", first, fresh, err)
	}

	if first.Path() != "docs/_embeds/owner.md" {
		t.Fatalf("embed path = %q", first.Path())
	}

	second, fresh, err := site.CreateEmbedPage("Owner")
	if err != nil || fresh || second != nil {
		t.Fatalf("second CreateEmbedPage = %v, %v, %v", second, fresh, err)
	}
}

func TestSiteCreateEmbedPageSlugCollision(t *testing.T) {
	t.Parallel()

	site := newTestSite(t, Settings{})

	names := []string{"Foo.Bar", "Foo Bar", "foo_bar", "$$$", "%%%"}
	want := []string{
		"docs/_embeds/foo-bar.md",
		"docs/_embeds/foo-bar-2.md",
		"docs/_embeds/foo-bar-3.md",
		"docs/_embeds/embed.md",
		"docs/_embeds/embed-2.md",
	}

	for i, name := range names {
		r, fresh, err := site.CreateEmbedPage(name)
		if err != nil || !fresh {
			t.Fatalf("CreateEmbedPage(%q) = %v, %v", name, fresh, err)
		}

		if r.Path() != want[i] {
			t.Fatalf("CreateEmbedPage(%q) path = %q, want %q", name, r.Path(), want[i])
		}

		if got := site.EmbedPath(name); got != want[i] {
			t.Fatalf("EmbedPath(%q) = %q, want %q", name, got, want[i])
		}
	}
}

func TestSiteFreeSlug(t *testing.T) {
	t.Parallel()

	site := newTestSite(t, Settings{})
	for _, pagePath := range []string{"docs/index.md", "docs/pets.md", "docs/pets-2.md"} {
		if _, err := site.CreatePage(pagePath, PageMeta{}); err != nil {
			t.Fatalf("CreatePage(%q): %v", pagePath, err)
		}
	}

	cases := map[string]string{
		"pets":  "pets-3",
		"index": "index-2",
		"cats":  "cats",
	}

	for slug, want := range cases {
		if got := site.FreeSlug(slug, false); got != want {
			t.Fatalf("FreeSlug(%q) = %q, want %q", slug, got, want)
		}
	}
}

func TestSiteFinalizeTwiceFails(t *testing.T) {
	t.Parallel()

	site := newTestSite(t, Settings{})
	r, err := site.CreatePage(site.BuildPagePath("", true), PageMeta{Title: "Home", SidebarLabel: "Home"})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}

	r.AppendParagraph("body")

	out, err := site.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	assertContains(t, out["docs/index.md"], "---\ntitle: Home\nsidebar_label: Home\nsidebar_position: 0\n---\n\nbody\n")

	if _, err := site.Finalize(); !errors.Is(err, ErrSiteFinalized) {
		t.Fatalf("error = %v, want ErrSiteFinalized", err)
	}

	if _, err := site.CreatePage("docs/b.md", PageMeta{}); !errors.Is(err, ErrSiteFinalized) {
		t.Fatalf("error = %v, want ErrSiteFinalized", err)
	}
}

func TestRendererFinalizeTwiceFails(t *testing.T) {
	t.Parallel()

	for _, dialect := range []Dialect{DialectMarkdown, DialectMDX, DialectSlots} {
		site := newTestSite(t, Settings{Dialect: dialect})
		r, err := site.CreatePage(site.BuildPagePath("x", false), PageMeta{})
		if err != nil {
			t.Fatalf("CreatePage: %v", err)
		}

		if _, err := r.Finalize(); err != nil {
			t.Fatalf("%s: Finalize: %v", dialect, err)
		}

		if _, err := r.Finalize(); !errors.Is(err, ErrPageFinalized) {
			t.Fatalf("%s: error = %v, want ErrPageFinalized", dialect, err)
		}
	}
}

func TestSiteFinalizeKeepsPreviouslyFinalizedPage(t *testing.T) {
	t.Parallel()

	site := newTestSite(t, Settings{})
	embed, _, err := site.CreateEmbedPage("Thing")
	if err != nil {
		t.Fatalf("CreateEmbedPage: %v", err)
	}

	embed.AppendHeading(1, "Thing", "thing")
	if _, err := embed.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	out, err := site.Finalize()
	if err != nil {
		t.Fatalf("site Finalize: %v", err)
	}

	if got := out["docs/_embeds/thing.md"]; got != "# Thing {#thing}\n" {
		t.Fatalf("embed page = %q", got)
	}
}

func TestRelativeLink(t *testing.T) {
	t.Parallel()

	cases := []struct {
		from, to, want string
	}{
		{"docs/pets.md", "docs/_embeds/owner.md", "./_embeds/owner.md"},
		{"docs/pets/page.mdx", "docs/_embeds/owner/page.mdx", "../_embeds/owner/page.mdx"},
		{"docs/_embeds/a.md", "docs/_embeds/b.md", "./b.md"},
		{"docs/_embeds/a/page.mdx", "docs/_embeds/b/page.mdx", "../b/page.mdx"},
	}

	for _, tc := range cases {
		if got := relativeLink(tc.from, tc.to); got != tc.want {
			t.Fatalf("relativeLink(%q, %q) = %q, want %q", tc.from, tc.to, got, tc.want)
		}
	}
}

func newTestSite(t *testing.T, settings Settings) *Site {
	t.Helper()

	site, err := NewSite(settings, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSite: %v", err)
	}

	return site
}
