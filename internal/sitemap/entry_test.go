package sitemap

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestMergeCombinesByLoc(t *testing.T) {
	older := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	a := []Entry{{
		Loc:        "https://example.com/ypiresies",
		LastMod:    older,
		Priority:   PriorityPage,
		Alternates: []Alternate{{Hreflang: "el", Href: "https://example.com/ypiresies"}},
	}}
	b := []Entry{{
		Loc:        "https://example.com/ypiresies",
		LastMod:    newer,
		Priority:   PriorityHome,
		Alternates: []Alternate{{Hreflang: "en", Href: "https://example.com/en/services"}},
	}}

	want := []Entry{{
		Loc:      "https://example.com/ypiresies",
		LastMod:  newer,
		Priority: PriorityHome,
		Alternates: []Alternate{
			{Hreflang: "el", Href: "https://example.com/ypiresies"},
			{Hreflang: "en", Href: "https://example.com/en/services"},
		},
	}}

	if got := Merge(a, b); !reflect.DeepEqual(got, want) {
		t.Fatalf("Merge(a, b) = %+v, want %+v", got, want)
	}
	// Commutative: swapping the operands must not change the result.
	if got := Merge(b, a); !reflect.DeepEqual(got, want) {
		t.Fatalf("Merge(b, a) = %+v, want %+v", got, want)
	}
}

func TestMergeAlternateConflict(t *testing.T) {
	a := []Entry{{
		Loc:        "https://example.com/",
		Alternates: []Alternate{{Hreflang: "en", Href: "https://example.com/en/home"}},
	}}
	b := []Entry{{
		Loc:        "https://example.com/",
		Alternates: []Alternate{{Hreflang: "en", Href: "https://example.com/en"}},
	}}

	for _, sets := range [][][]Entry{{a, b}, {b, a}} {
		got := Merge(sets...)
		if len(got) != 1 || len(got[0].Alternates) != 1 {
			t.Fatalf("unexpected merge result: %+v", got)
		}
		if got[0].Alternates[0].Href != "https://example.com/en" {
			t.Fatalf("conflict must keep the smaller href, got %q", got[0].Alternates[0].Href)
		}
	}
}

func TestMergeSortsOutput(t *testing.T) {
	got := Merge([]Entry{
		{Loc: "https://example.com/b"},
		{Loc: "https://example.com/a"},
	})
	if got[0].Loc != "https://example.com/a" || got[1].Loc != "https://example.com/b" {
		t.Fatalf("entries must be sorted by Loc: %+v", got)
	}
}

func TestRender(t *testing.T) {
	entries := []Entry{
		{
			Loc:      "https://example.com/nea/proto-arthro",
			LastMod:  time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
			Priority: PriorityPost,
			Alternates: []Alternate{
				{Hreflang: "el", Href: "https://example.com/nea/proto-arthro"},
				{Hreflang: "en", Href: "https://example.com/en/news/first-post"},
			},
		},
		{Loc: "https://example.com/a&b"},
	}

	doc := string(Render(entries))

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`xmlns:xhtml="http://www.w3.org/1999/xhtml"`,
		`<loc>https://example.com/nea/proto-arthro</loc>`,
		`<lastmod>2026-03-01T12:30:00Z</lastmod>`,
		`<priority>0.7</priority>`,
		`<xhtml:link rel="alternate" hreflang="en" href="https://example.com/en/news/first-post"/>`,
		`<loc>https://example.com/a&amp;b</loc>`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("rendered document missing %q:\n%s", want, doc)
		}
	}

	// The zero LastMod entry must not emit a lastmod element.
	if strings.Count(doc, "<lastmod>") != 1 {
		t.Fatalf("expected exactly one lastmod, got:\n%s", doc)
	}
}
