// Package di wires the sitekit services from a runtime configuration.
package di

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/motify/sitekit/internal/blog"
	"github.com/motify/sitekit/internal/caching"
	"github.com/motify/sitekit/internal/contact"
	sitehttp "github.com/motify/sitekit/internal/http"
	"github.com/motify/sitekit/internal/i18n"
	"github.com/motify/sitekit/internal/logging"
	"github.com/motify/sitekit/internal/logging/gologger"
	"github.com/motify/sitekit/internal/menus"
	"github.com/motify/sitekit/internal/routing"
	"github.com/motify/sitekit/internal/runtimeconfig"
	"github.com/motify/sitekit/internal/sitemap"
	"github.com/motify/sitekit/internal/slugmap"
	"github.com/motify/sitekit/internal/snapshot"
	"github.com/motify/sitekit/internal/source"
	"github.com/motify/sitekit/locales"
	"github.com/motify/sitekit/pkg/interfaces"
)

// Container holds the wired service graph.
type Container struct {
	cfg        runtimeconfig.Config
	locales    locales.Config
	provider   interfaces.LoggerProvider
	store      *caching.MemoryStore
	db         *bun.DB
	source     interfaces.ContentSource
	slugmaps   *slugmap.Service
	translator routing.Translator
	links      routing.Links
	sitemap    *sitemap.Service
	menus      *menus.Service
	blog       *blog.Service
	contact    *contact.Service
	api        *sitehttp.API
}

// Option overrides a dependency before wiring.
type Option func(*options)

type options struct {
	source   interfaces.ContentSource
	provider interfaces.LoggerProvider
}

// WithContentSource replaces the WPGraphQL-backed source, mainly for tests.
func WithContentSource(src interfaces.ContentSource) Option {
	return func(o *options) { o.source = src }
}

// WithLoggerProvider replaces the go-logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *options) { o.provider = provider }
}

// NewContainer validates the configuration and wires every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var overrides options
	for _, opt := range opts {
		opt(&overrides)
	}

	defs := make([]locales.Definition, 0, len(cfg.Locales.Definitions))
	for _, def := range cfg.Locales.Definitions {
		defs = append(defs, locales.Definition{
			Code:     locales.Locale(def.Code),
			BlogBase: def.BlogBase,
			Default:  def.Default,
		})
	}
	localeCfg, err := locales.NewConfig(defs...)
	if err != nil {
		return nil, err
	}

	c := &Container{cfg: cfg, locales: localeCfg}

	c.provider = overrides.provider
	if c.provider == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		c.provider = provider
	}

	if cfg.Cache.Enabled {
		c.store = caching.NewMemoryStore()
	}

	if err := c.wireSource(overrides); err != nil {
		return nil, err
	}
	if err := c.wireServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) wireSource(overrides options) error {
	if overrides.source != nil {
		c.source = overrides.source
	} else {
		clientOpts := []source.ClientOption{}
		if c.cfg.Source.AuthToken != "" {
			clientOpts = append(clientOpts, source.WithAuthToken(c.cfg.Source.AuthToken))
		}
		if c.cfg.Source.Timeout > 0 {
			clientOpts = append(clientOpts, source.WithHTTPClient(&http.Client{Timeout: c.cfg.Source.Timeout}))
		}
		client, err := source.NewClient(c.cfg.Source.Endpoint, clientOpts...)
		if err != nil {
			return err
		}
		c.source = source.New(client, c.locales, logging.SourceLogger(c.provider))
	}

	if c.store != nil {
		c.source = caching.NewCachedSource(c.source, c.store, logging.CacheLogger(c.provider))
	}
	return nil
}

func (c *Container) wireServices() error {
	slugOpts := []slugmap.ServiceOption{}
	if c.store != nil {
		slugOpts = append(slugOpts, slugmap.WithStore(c.store))
	}

	if c.cfg.Snapshot.Enabled {
		sqlDB, err := sql.Open("sqlite3", c.cfg.Snapshot.Path)
		if err != nil {
			return fmt.Errorf("sitekit: open snapshot database: %w", err)
		}
		c.db = bun.NewDB(sqlDB, sqlitedialect.New())
		if err := snapshot.EnsureSchema(context.Background(), c.db); err != nil {
			return fmt.Errorf("sitekit: ensure snapshot schema: %w", err)
		}

		cacheService, err := repocache.NewCacheService(repocache.DefaultConfig())
		if err != nil {
			return fmt.Errorf("sitekit: snapshot cache service: %w", err)
		}
		snapshots := snapshot.NewServiceWithCache(
			c.db, cacheService, repocache.NewDefaultKeySerializer(), logging.SnapshotLogger(c.provider))
		slugOpts = append(slugOpts, slugmap.WithSnapshots(snapshots))
	}

	c.slugmaps = slugmap.NewService(c.source, c.locales, logging.SlugMapLogger(c.provider), slugOpts...)
	c.translator = routing.NewTranslator(c.locales)
	c.links = routing.NewLinks(c.locales)

	var store interfaces.TagStore
	if c.store != nil {
		store = c.store
	}
	c.sitemap = sitemap.NewService(
		c.source, c.slugmaps, c.locales, c.cfg.SiteURL, store, logging.SitemapLogger(c.provider))

	var manager *urlkit.RouteManager
	if c.cfg.Navigation != nil {
		manager = urlkit.NewRouteManager(c.cfg.Navigation)
	}
	c.menus = menus.NewService(
		c.source, c.slugmaps, c.locales, c.cfg.SiteURL, manager, logging.MenusLogger(c.provider))

	c.blog = blog.NewService(c.source, c.slugmaps, c.locales, logging.BlogLogger(c.provider))

	if c.cfg.Contact.Enabled {
		bundle, err := i18n.Load(c.locales)
		if err != nil {
			return err
		}
		c.contact = contact.NewService(
			c.source, bundle, c.locales, c.cfg.Contact.To, c.cfg.Contact.From, logging.ContactLogger(c.provider))
	}

	c.api = sitehttp.New(sitehttp.Options{
		Config:  c.locales,
		Maps:    c.slugmaps,
		Store:   store,
		Sitemap: c.sitemap,
		Menus:   c.menus,
		Blog:    c.blog,
		Contact: c.contact,
		Secret:  c.cfg.Revalidate.Secret,
		Logger:  logging.HTTPLogger(c.provider),
	})
	return nil
}

// Locales returns the immutable locale configuration.
func (c *Container) Locales() locales.Config { return c.locales }

// LoggerProvider returns the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.provider }

// Store returns the tag store, nil when caching is disabled.
func (c *Container) Store() interfaces.TagStore {
	if c.store == nil {
		return nil
	}
	return c.store
}

// Source returns the content source, cache decorated when enabled.
func (c *Container) Source() interfaces.ContentSource { return c.source }

// SlugMaps returns the slug map service.
func (c *Container) SlugMaps() *slugmap.Service { return c.slugmaps }

// Translator returns the path translator.
func (c *Container) Translator() routing.Translator { return c.translator }

// Links returns the link localizer.
func (c *Container) Links() routing.Links { return c.links }

// Sitemap returns the sitemap service.
func (c *Container) Sitemap() *sitemap.Service { return c.sitemap }

// Menus returns the menu service.
func (c *Container) Menus() *menus.Service { return c.menus }

// Blog returns the blog service.
func (c *Container) Blog() *blog.Service { return c.blog }

// Contact returns the contact service, nil when the feature is disabled.
func (c *Container) Contact() *contact.Service { return c.contact }

// API returns the HTTP surface.
func (c *Container) API() *sitehttp.API { return c.api }

// Close releases held resources.
func (c *Container) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
