package sitemap

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/motify/sitekit/internal/caching"
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
		t.Fatalf("locales config: %v", err)
	}
	return cfg
}

type fakeSource struct {
	pages      map[locales.Locale][]interfaces.Entity
	posts      map[locales.Locale][]interfaces.Post
	categories map[locales.Locale][]interfaces.Category
	projects   map[locales.Locale][]interfaces.Entity
	projectErr error
	calls      int
}

func (f *fakeSource) ListPages(_ context.Context, locale locales.Locale) ([]interfaces.Entity, error) {
	f.calls++
	return f.pages[locale], nil
}

func (f *fakeSource) ListPosts(_ context.Context, locale locales.Locale) ([]interfaces.Post, error) {
	return f.posts[locale], nil
}

func (f *fakeSource) ListCategories(_ context.Context, locale locales.Locale) ([]interfaces.Category, error) {
	return f.categories[locale], nil
}

func (f *fakeSource) ListProjects(_ context.Context, locale locales.Locale) ([]interfaces.Entity, error) {
	if f.projectErr != nil {
		return nil, f.projectErr
	}
	return f.projects[locale], nil
}

func (f *fakeSource) Menus(context.Context, locales.Locale) ([]interfaces.Menu, error) {
	return nil, nil
}

func (f *fakeSource) BlogBases(context.Context) (map[locales.Locale]string, error) {
	return nil, nil
}

func (f *fakeSource) SendEmail(context.Context, interfaces.EmailInput) error {
	return nil
}

type staticMaps struct{ maps slugmap.Maps }

func (s staticMaps) Maps(context.Context) (slugmap.Maps, error) { return s.maps, nil }

func translated(slugValue, other string) interfaces.Entity {
	return interfaces.Entity{
		ID:          slugValue,
		Slug:        slugValue,
		ModifiedAt:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Translation: &interfaces.Translation{Slug: other},
	}
}

func buildTestMaps(t *testing.T, cfg locales.Config) slugmap.Maps {
	t.Helper()
	return slugmap.NewBuilder(cfg, nil).Build(slugmap.Listings{
		Pages: map[locales.Locale][]interfaces.Entity{
			"el": {translated("ypiresies", "services")},
			"en": {translated("services", "ypiresies")},
		},
		Posts: map[locales.Locale][]interfaces.Entity{
			"el": {translated("proto-arthro", "first-post")},
			"en": {translated("first-post", "proto-arthro")},
		},
		BlogBases: map[locales.Locale]string{"el": "nea", "en": "news"},
	})
}

func TestBuildSitemap(t *testing.T) {
	cfg := newTestLocales(t)
	source := &fakeSource{
		pages: map[locales.Locale][]interfaces.Entity{
			"el": {translated("ypiresies", "services"), translated("home", "home")},
			"en": {translated("services", "ypiresies")},
		},
		posts: map[locales.Locale][]interfaces.Post{
			"el": {{Entity: translated("proto-arthro", "first-post")}},
			"en": {{Entity: translated("first-post", "proto-arthro")}},
		},
		categories: map[locales.Locale][]interfaces.Category{
			"el": {{Entity: translated("texnologia", "technology")}},
		},
		projects: map[locales.Locale][]interfaces.Entity{
			"el": {translated("ktirio-a", "building-a")},
		},
	}
	svc := NewService(source, staticMaps{buildTestMaps(t, cfg)}, cfg, "https://example.com/", nil, nil)

	raw, err := svc.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	doc := string(raw)

	for _, want := range []string{
		"<loc>https://example.com/</loc>",
		"<loc>https://example.com/en</loc>",
		"<loc>https://example.com/nea</loc>",
		"<loc>https://example.com/en/news</loc>",
		"<loc>https://example.com/ypiresies</loc>",
		"<loc>https://example.com/en/services</loc>",
		"<loc>https://example.com/nea/proto-arthro</loc>",
		"<loc>https://example.com/en/news/first-post</loc>",
		"<loc>https://example.com/nea/category/texnologia</loc>",
		"<loc>https://example.com/projects/ktirio-a</loc>",
		`hreflang="x-default" href="https://example.com/"`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("sitemap missing %q:\n%s", want, doc)
		}
	}

	// The home page surfacing through the page listing keeps top priority
	// and must not duplicate the static home entry.
	if strings.Count(doc, "<loc>https://example.com/</loc>") != 1 {
		t.Fatalf("duplicate home entries:\n%s", doc)
	}
}

func TestBuildSitemapSkipsFailedSection(t *testing.T) {
	cfg := newTestLocales(t)
	source := &fakeSource{
		pages: map[locales.Locale][]interfaces.Entity{
			"el": {translated("ypiresies", "services")},
		},
		projectErr: errors.New("backend down"),
	}
	svc := NewService(source, staticMaps{slugmap.Empty()}, cfg, "https://example.com", nil, nil)

	raw, err := svc.Build(context.Background())
	if err != nil {
		t.Fatalf("a failed section must not fail the build: %v", err)
	}
	if !strings.Contains(string(raw), "<loc>https://example.com/ypiresies</loc>") {
		t.Fatalf("healthy sections must still render:\n%s", raw)
	}
}

func TestBuildSitemapCaches(t *testing.T) {
	cfg := newTestLocales(t)
	source := &fakeSource{}
	store := caching.NewMemoryStore()
	svc := NewService(source, staticMaps{slugmap.Empty()}, cfg, "https://example.com", store, nil)

	ctx := context.Background()
	first, err := svc.Build(ctx)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	callsAfterFirst := source.calls

	second, err := svc.Build(ctx)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if source.calls != callsAfterFirst {
		t.Fatalf("second build must serve from cache")
	}
	if string(first) != string(second) {
		t.Fatalf("cached document differs")
	}

	if err := store.InvalidateTags(ctx, caching.TagSitemap); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := svc.Build(ctx); err != nil {
		t.Fatalf("build: %v", err)
	}
	if source.calls == callsAfterFirst {
		t.Fatalf("invalidation must force a rebuild")
	}
}
