// Package sitekit is the runtime behind a bilingual marketing site backed
// by a headless WordPress: it resolves translated slugs between locales,
// localizes paths and menus, builds the sitemap, and exposes the cache
// revalidation webhook the backend calls on publish.
package sitekit

import (
	"net/http"

	"github.com/motify/sitekit/internal/blog"
	"github.com/motify/sitekit/internal/contact"
	"github.com/motify/sitekit/internal/di"
	sitehttp "github.com/motify/sitekit/internal/http"
	"github.com/motify/sitekit/internal/menus"
	"github.com/motify/sitekit/internal/routing"
	"github.com/motify/sitekit/internal/sitemap"
	"github.com/motify/sitekit/internal/slugmap"
	"github.com/motify/sitekit/locales"
	"github.com/motify/sitekit/pkg/interfaces"
)

// SlugMapService exports the slug map service contract.
type SlugMapService = *slugmap.Service

// SitemapService exports the sitemap builder contract.
type SitemapService = *sitemap.Service

// MenuService exports the menu localization contract.
type MenuService = *menus.Service

// BlogService exports the blog index contract.
type BlogService = *blog.Service

// ContactService exports the contact form contract.
type ContactService = *contact.Service

// Translator exports the path translator.
type Translator = routing.Translator

// Links exports the link localizer.
type Links = routing.Links

// ContentSource exports the content backend contract.
type ContentSource = interfaces.ContentSource

// Option re-exports DI overrides for hosts embedding the module.
type Option = di.Option

// WithContentSource replaces the WPGraphQL source, mainly for tests.
var WithContentSource = di.WithContentSource

// WithLoggerProvider replaces the go-logger provider.
var WithLoggerProvider = di.WithLoggerProvider

// Module is the top level sitekit runtime façade.
type Module struct {
	container *di.Container
}

// New constructs the module from a validated configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Locales returns the immutable locale configuration.
func (m *Module) Locales() locales.Config {
	return m.container.Locales()
}

// SlugMaps returns the slug map service.
func (m *Module) SlugMaps() SlugMapService {
	return m.container.SlugMaps()
}

// Translator returns the path translator.
func (m *Module) Translator() Translator {
	return m.container.Translator()
}

// Links returns the link localizer.
func (m *Module) Links() Links {
	return m.container.Links()
}

// Sitemap returns the sitemap service.
func (m *Module) Sitemap() SitemapService {
	return m.container.Sitemap()
}

// Menus returns the menu service.
func (m *Module) Menus() MenuService {
	return m.container.Menus()
}

// Blog returns the blog index service.
func (m *Module) Blog() BlogService {
	return m.container.Blog()
}

// Contact returns the contact service, nil when the feature is disabled.
func (m *Module) Contact() ContactService {
	return m.container.Contact()
}

// Source returns the content source, cache decorated when enabled.
func (m *Module) Source() ContentSource {
	return m.container.Source()
}

// Handler returns the module mounted on a fresh ServeMux.
func (m *Module) Handler() http.Handler {
	mux := http.NewServeMux()
	m.Register(mux)
	return mux
}

// Register mounts the HTTP surface on an existing mux.
func (m *Module) Register(mux *http.ServeMux) {
	if api := m.container.API(); api != nil {
		api.Register(mux)
	}
}

// API exposes the HTTP surface for hosts doing their own mounting.
func (m *Module) API() *sitehttp.API {
	return m.container.API()
}

// Close releases held resources such as the snapshot database.
func (m *Module) Close() error {
	return m.container.Close()
}
