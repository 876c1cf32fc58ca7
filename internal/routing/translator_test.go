package routing

import (
	"testing"

	"github.com/motify/sitekit/internal/slugmap"
	"github.com/motify/sitekit/locales"
	"github.com/motify/sitekit/pkg/interfaces"
)

func newTestLocales(t *testing.T) locales.Config {
	t.Helper()
	cfg, err := locales.NewConfig(
		locales.Definition{Code: "el", BlogBase: "nea", Default: true},
		locales.Definition{Code: "en", BlogBase: "news"},
	)
	if err != nil {
		t.Fatalf("new locale config: %v", err)
	}
	return cfg
}

func translated(slug, counterpart string) interfaces.Entity {
	return interfaces.Entity{
		ID:          "id-" + slug,
		Slug:        slug,
		Translation: &interfaces.Translation{Slug: counterpart},
	}
}

func newTestMaps(t *testing.T, cfg locales.Config) slugmap.Maps {
	t.Helper()
	builder := slugmap.NewBuilder(cfg, nil)
	return builder.Build(slugmap.Listings{
		Pages: map[locales.Locale][]interfaces.Entity{
			"el": {translated("ypiresies", "services")},
			"en": {translated("services", "ypiresies")},
		},
		Posts: map[locales.Locale][]interfaces.Entity{
			"el": {translated("proto-arthro", "first-post")},
			"en": {translated("first-post", "proto-arthro")},
		},
		Categories: map[locales.Locale][]interfaces.Entity{
			"el": {translated("texnologia", "technology")},
			"en": {translated("technology", "texnologia")},
		},
		Projects: map[locales.Locale][]interfaces.Entity{
			"el": {translated("ktirio-a", "building-a")},
			"en": {translated("building-a", "ktirio-a")},
		},
		BlogBases: map[locales.Locale]string{"el": "nea", "en": "news"},
	})
}

func TestTranslate(t *testing.T) {
	cfg := newTestLocales(t)
	maps := newTestMaps(t, cfg)
	tr := NewTranslator(cfg)

	cases := []struct {
		name   string
		path   string
		target locales.Locale
		want   string
	}{
		{"home to en", "/", "en", "/en"},
		{"home slug collapses", "/home", "en", "/en"},
		{"en home to el", "/en", "el", "/"},
		{"post el to en", "/nea/proto-arthro", "en", "/en/news/first-post"},
		{"post en to el", "/en/news/first-post", "el", "/nea/proto-arthro"},
		{"category el to en", "/nea/category/texnologia", "en", "/en/news/category/technology"},
		{"category en to el", "/en/news/category/technology", "el", "/nea/category/texnologia"},
		{"blog index el to en", "/nea", "en", "/en/news"},
		{"blog index en to el", "/en/news", "el", "/nea"},
		{"project el to en", "/projects/ktirio-a", "en", "/en/projects/building-a"},
		{"project index", "/projects", "en", "/en/projects"},
		{"page el to en", "/ypiresies", "en", "/en/services"},
		{"page en to el", "/en/services", "el", "/ypiresies"},
		{"unmapped slug falls back", "/agnosto", "en", "/en/agnosto"},
		{"unmapped post falls back", "/nea/agnosto", "en", "/en/news/agnosto"},
		{"trailing slash ignored", "/nea/proto-arthro/", "en", "/en/news/first-post"},
		{"same locale is identity", "/nea/proto-arthro", "el", "/nea/proto-arthro"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tr.Translate(tc.path, tc.target, maps); got != tc.want {
				t.Fatalf("Translate(%q, %q) = %q, want %q", tc.path, tc.target, got, tc.want)
			}
		})
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	cfg := newTestLocales(t)
	maps := newTestMaps(t, cfg)
	tr := NewTranslator(cfg)

	paths := []string{
		"/",
		"/nea",
		"/nea/proto-arthro",
		"/nea/category/texnologia",
		"/projects",
		"/projects/ktirio-a",
		"/ypiresies",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			there := tr.Translate(path, "en", maps)
			back := tr.Translate(there, "el", maps)
			if back != path {
				t.Fatalf("round trip %q -> %q -> %q", path, there, back)
			}
		})
	}
}

func TestTranslateDetailed(t *testing.T) {
	cfg := newTestLocales(t)
	maps := newTestMaps(t, cfg)
	tr := NewTranslator(cfg)

	t.Run("mapped post reports translated", func(t *testing.T) {
		result := tr.TranslateDetailed("/nea/proto-arthro", "en", maps)
		if result.Kind != KindPost || result.Source != "el" || !result.Translated {
			t.Fatalf("unexpected result: %+v", result)
		}
	})

	t.Run("unmapped slug reports untranslated", func(t *testing.T) {
		result := tr.TranslateDetailed("/nea/agnosto", "en", maps)
		if result.Translated {
			t.Fatalf("expected untranslated fallback, got %+v", result)
		}
		if result.Path != "/en/news/agnosto" {
			t.Fatalf("fallback path wrong: %q", result.Path)
		}
	})

	t.Run("index shapes always translated", func(t *testing.T) {
		for _, path := range []string{"/", "/nea", "/projects"} {
			if result := tr.TranslateDetailed(path, "en", maps); !result.Translated {
				t.Fatalf("index path %q must report translated", path)
			}
		}
	})
}

func TestClassificationOrder(t *testing.T) {
	cfg := newTestLocales(t)
	maps := newTestMaps(t, cfg)
	tr := NewTranslator(cfg)

	cases := []struct {
		path string
		kind Kind
		slug string
	}{
		{"/nea/proto-arthro", KindPost, "proto-arthro"},
		{"/nea/category/texnologia", KindCategory, "texnologia"},
		{"/nea", KindBlogIndex, ""},
		{"/nea/category", KindBlogIndex, ""},
		{"/news/first-post", KindPost, "first-post"}, // either base classifies
		{"/projects/ktirio-a", KindProject, "ktirio-a"},
		{"/projects/ktirio-a/extra", KindProject, "ktirio-a"},
		{"/projects", KindProjectIndex, ""},
		{"/", KindHome, ""},
		{"/home", KindHome, ""},
		{"/ypiresies", KindPage, "ypiresies"},
		{"/ypiresies/extra", KindPage, "ypiresies"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			shape := tr.Parse(tc.path, maps)
			if shape.Kind != tc.kind || shape.Slug != tc.slug {
				t.Fatalf("Parse(%q) = %+v, want kind=%q slug=%q", tc.path, shape, tc.kind, tc.slug)
			}
		})
	}
}

func TestTranslateWithEmptyMaps(t *testing.T) {
	cfg := newTestLocales(t)
	tr := NewTranslator(cfg)
	maps := slugmap.Empty()

	// Configured blog bases keep classification working without maps.
	if got := tr.Translate("/nea/proto-arthro", "en", maps); got != "/en/news/proto-arthro" {
		t.Fatalf("expected identity slug under translated base, got %q", got)
	}
	if got := tr.Translate("/ypiresies", "en", maps); got != "/en/ypiresies" {
		t.Fatalf("expected identity page fallback, got %q", got)
	}
}
