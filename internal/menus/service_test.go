package menus

import (
	"context"
	"testing"

	urlkit "github.com/goliatone/go-urlkit"

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
	menus map[locales.Locale][]interfaces.Menu
}

func (f *fakeSource) ListPages(context.Context, locales.Locale) ([]interfaces.Entity, error) {
	return nil, nil
}

func (f *fakeSource) ListPosts(context.Context, locales.Locale) ([]interfaces.Post, error) {
	return nil, nil
}

func (f *fakeSource) ListCategories(context.Context, locales.Locale) ([]interfaces.Category, error) {
	return nil, nil
}

func (f *fakeSource) ListProjects(context.Context, locales.Locale) ([]interfaces.Entity, error) {
	return nil, nil
}

func (f *fakeSource) Menus(_ context.Context, locale locales.Locale) ([]interfaces.Menu, error) {
	return f.menus[locale], nil
}

func (f *fakeSource) BlogBases(context.Context) (map[locales.Locale]string, error) {
	return nil, nil
}

func (f *fakeSource) SendEmail(context.Context, interfaces.EmailInput) error {
	return nil
}

type staticMaps struct{ maps slugmap.Maps }

func (s staticMaps) Maps(context.Context) (slugmap.Maps, error) { return s.maps, nil }

func newTestManager() *urlkit.RouteManager {
	return urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "site",
				BaseURL: "https://example.com",
				Paths: map[string]string{
					"home":     "/",
					"blog":     "/nea",
					"projects": "/projects",
					"project":  "/projects/:slug",
					"page":     "/:slug",
				},
				Groups: []urlkit.GroupConfig{
					{
						Name: "en",
						Path: "/en",
						Paths: map[string]string{
							"home":     "/",
							"blog":     "/news",
							"projects": "/projects",
							"project":  "/projects/:slug",
							"page":     "/:slug",
						},
					},
				},
			},
		},
	})
}

func newTestService(t *testing.T, menusByLocale map[locales.Locale][]interfaces.Menu, manager *urlkit.RouteManager) *Service {
	t.Helper()
	cfg := newTestLocales(t)
	return NewService(
		&fakeSource{menus: menusByLocale},
		staticMaps{slugmap.Empty()},
		cfg,
		"https://example.com",
		manager,
		nil,
	)
}

func TestMenusLocalizesInternalItems(t *testing.T) {
	svc := newTestService(t, map[locales.Locale][]interfaces.Menu{
		"en": {
			{
				Name:     "Main",
				Location: "PRIMARY",
				Items: []interfaces.MenuItem{
					{ID: "i1", Label: "Services", URI: "/services"},
					{ID: "i2", Label: "Projects", URI: "/projects/building-a"},
				},
			},
		},
	}, newTestManager())

	menus, err := svc.Menus(context.Background(), "en")
	if err != nil {
		t.Fatalf("menus: %v", err)
	}
	if len(menus) != 1 || len(menus[0].Items) != 2 {
		t.Fatalf("unexpected menus: %+v", menus)
	}

	services := menus[0].Items[0]
	if services.Href != "/en/services" {
		t.Fatalf("href = %q", services.Href)
	}
	if services.URL != "https://example.com/en/services" {
		t.Fatalf("url = %q", services.URL)
	}
	if services.External {
		t.Fatalf("internal item marked external")
	}

	project := menus[0].Items[1]
	if project.Href != "/en/projects/building-a" {
		t.Fatalf("href = %q", project.Href)
	}
	if project.URL != "https://example.com/en/projects/building-a" {
		t.Fatalf("url = %q", project.URL)
	}
}

func TestMenusExternalItemsPassThrough(t *testing.T) {
	svc := newTestService(t, map[locales.Locale][]interfaces.Menu{
		"el": {
			{
				Location: "FOOTER",
				Items: []interfaces.MenuItem{
					{ID: "i1", Label: "Facebook", URL: "https://facebook.com/motify", Target: "_blank", IsExternal: true},
					{ID: "i2", Label: "Mail", URI: "mailto:team@motify.gr"},
				},
			},
		},
	}, newTestManager())

	menus, err := svc.Menus(context.Background(), "el")
	if err != nil {
		t.Fatalf("menus: %v", err)
	}

	facebook := menus[0].Items[0]
	if facebook.Href != "https://facebook.com/motify" || !facebook.External {
		t.Fatalf("unexpected item: %+v", facebook)
	}
	if facebook.Target != "_blank" {
		t.Fatalf("target = %q", facebook.Target)
	}

	mail := menus[0].Items[1]
	if mail.Href != "mailto:team@motify.gr" || !mail.External {
		t.Fatalf("uri schemes must stay external: %+v", mail)
	}
}

func TestMenusUnknownLocaleFallsBack(t *testing.T) {
	svc := newTestService(t, map[locales.Locale][]interfaces.Menu{
		"el": {{Location: "PRIMARY", Items: []interfaces.MenuItem{{ID: "i1", Label: "Αρχική", URI: "/"}}}},
	}, nil)

	menus, err := svc.Menus(context.Background(), "de")
	if err != nil {
		t.Fatalf("menus: %v", err)
	}
	if len(menus) != 1 || menus[0].Items[0].Label != "Αρχική" {
		t.Fatalf("expected default-locale menus, got %+v", menus)
	}
}

func TestMenusWithoutRouteManager(t *testing.T) {
	svc := newTestService(t, map[locales.Locale][]interfaces.Menu{
		"el": {{Location: "PRIMARY", Items: []interfaces.MenuItem{{ID: "i1", Label: "Υπηρεσίες", URI: "/ypiresies"}}}},
	}, nil)

	menus, err := svc.Menus(context.Background(), "el")
	if err != nil {
		t.Fatalf("menus: %v", err)
	}

	item := menus[0].Items[0]
	if item.Href != "/ypiresies" {
		t.Fatalf("href = %q", item.Href)
	}
	// Without a manager the canonical URL falls back to origin plus path.
	if item.URL != "https://example.com/ypiresies" {
		t.Fatalf("url = %q", item.URL)
	}
}
