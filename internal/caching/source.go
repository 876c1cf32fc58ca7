package caching

import (
	"context"
	"time"

	"github.com/motify/sitekit/internal/logging"
	"github.com/motify/sitekit/locales"
	"github.com/motify/sitekit/pkg/interfaces"
)

// TTL classes for cached backend queries. Revalidation normally arrives by
// webhook; the TTLs only bound staleness when notifications are missed.
const (
	TTLVeryLong = 24 * time.Hour
	TTLLong     = 12 * time.Hour
	TTLMedium   = 2 * time.Hour
)

// CachedSource decorates a ContentSource with tag-partitioned caching.
// Each query class is stored under a stable key carrying the tags that a
// change notification for the corresponding content type resolves to.
type CachedSource struct {
	inner  interfaces.ContentSource
	store  interfaces.TagStore
	logger interfaces.Logger
}

var _ interfaces.ContentSource = (*CachedSource)(nil)

// NewCachedSource wraps inner with the given tag store.
func NewCachedSource(inner interfaces.ContentSource, store interfaces.TagStore, logger interfaces.Logger) *CachedSource {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &CachedSource{inner: inner, store: store, logger: logger}
}

func (s *CachedSource) ListPages(ctx context.Context, locale locales.Locale) ([]interfaces.Entity, error) {
	return cached(ctx, s, "wp:pages-by-locale:"+string(locale), TTLMedium,
		[]string{TagSitemap, TagPages},
		func() ([]interfaces.Entity, error) { return s.inner.ListPages(ctx, locale) })
}

func (s *CachedSource) ListPosts(ctx context.Context, locale locales.Locale) ([]interfaces.Post, error) {
	return cached(ctx, s, "wp:posts-by-locale:"+string(locale), TTLMedium,
		[]string{TagSitemap, TagPosts},
		func() ([]interfaces.Post, error) { return s.inner.ListPosts(ctx, locale) })
}

func (s *CachedSource) ListCategories(ctx context.Context, locale locales.Locale) ([]interfaces.Category, error) {
	return cached(ctx, s, "wp:categories-by-locale:"+string(locale), TTLMedium,
		[]string{TagSitemap, TagPosts},
		func() ([]interfaces.Category, error) { return s.inner.ListCategories(ctx, locale) })
}

func (s *CachedSource) ListProjects(ctx context.Context, locale locales.Locale) ([]interfaces.Entity, error) {
	return cached(ctx, s, "wp:projects-by-locale:"+string(locale), TTLMedium,
		[]string{TagSitemap, TagProjects},
		func() ([]interfaces.Entity, error) { return s.inner.ListProjects(ctx, locale) })
}

func (s *CachedSource) Menus(ctx context.Context, locale locales.Locale) ([]interfaces.Menu, error) {
	return cached(ctx, s, "wp:menus:"+string(locale), TTLVeryLong,
		[]string{TagMenus},
		func() ([]interfaces.Menu, error) { return s.inner.Menus(ctx, locale) })
}

func (s *CachedSource) BlogBases(ctx context.Context) (map[locales.Locale]string, error) {
	return cached(ctx, s, "wp:blog-page-slugs", TTLVeryLong,
		[]string{TagPages, TagSlugs},
		func() (map[locales.Locale]string, error) { return s.inner.BlogBases(ctx) })
}

// SendEmail is a write and always passes through.
func (s *CachedSource) SendEmail(ctx context.Context, input interfaces.EmailInput) error {
	return s.inner.SendEmail(ctx, input)
}

// cached serves key from the store when possible, otherwise fetches and
// stores the result. Cache errors are logged and treated as misses; the
// decorator never turns a cache problem into a request failure.
func cached[T any](ctx context.Context, s *CachedSource, key string, ttl time.Duration, tags []string, fetch func() (T, error)) (T, error) {
	if s.store != nil {
		raw, err := s.store.Get(ctx, key)
		if err != nil {
			s.logger.Warn("cache read failed", "key", key, "error", err)
		} else if raw != nil {
			if value, ok := raw.(T); ok {
				return value, nil
			}
		}
	}

	value, err := fetch()
	if err != nil {
		return value, err
	}

	if s.store != nil {
		if err := s.store.SetWithTags(ctx, key, value, ttl, tags...); err != nil {
			s.logger.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return value, nil
}
