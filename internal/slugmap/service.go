package slugmap

import (
	"context"
	"sync"
	"time"

	"github.com/motify/sitekit/internal/caching"
	"github.com/motify/sitekit/internal/logging"
	"github.com/motify/sitekit/locales"
	"github.com/motify/sitekit/pkg/interfaces"
)

const (
	mapsKey = "wp:slug-maps"
	mapsTTL = 24 * time.Hour
)

// Snapshots persists the last successfully fetched listings so slug maps
// survive a cold start while the content backend is unreachable.
type Snapshots interface {
	SaveListings(ctx context.Context, listings Listings) error
	LoadListings(ctx context.Context) (Listings, bool, error)
}

// Service assembles slug maps on demand. Fetches for every (content type,
// locale) axis run concurrently; a failed axis degrades to an empty listing
// so a single upstream hiccup never takes translation down entirely.
type Service struct {
	source    interfaces.ContentSource
	builder   *Builder
	store     interfaces.TagStore
	snapshots Snapshots
	cfg       locales.Config
	logger    interfaces.Logger

	mu sync.Mutex
}

// ServiceOption customizes the service.
type ServiceOption func(*Service)

// WithStore caches built maps in the tag store under the slugs tag.
func WithStore(store interfaces.TagStore) ServiceOption {
	return func(s *Service) { s.store = store }
}

// WithSnapshots enables last-known-good persistence of listings.
func WithSnapshots(snapshots Snapshots) ServiceOption {
	return func(s *Service) { s.snapshots = snapshots }
}

// NewService wires a slug map service over a content source.
func NewService(source interfaces.ContentSource, cfg locales.Config, logger interfaces.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	svc := &Service{
		source:  source,
		builder: NewBuilder(cfg, logger),
		cfg:     cfg,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Maps returns the current slug maps, building them from fresh listings when
// the cached copy has been invalidated or expired.
func (s *Service) Maps(ctx context.Context) (Maps, error) {
	if s.store != nil {
		if raw, err := s.store.Get(ctx, mapsKey); err != nil {
			s.logger.Warn("slugmap: cache read failed", "error", err)
		} else if maps, ok := raw.(Maps); ok {
			return maps, nil
		}
	}

	// Builds are cheap but the upstream fetch is not; serialize so a burst
	// of requests after an invalidation triggers one fetch, not many.
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		if raw, err := s.store.Get(ctx, mapsKey); err == nil {
			if maps, ok := raw.(Maps); ok {
				return maps, nil
			}
		}
	}

	listings, failures := s.fetchListings(ctx)
	total := len(Types)*2 + 1
	switch {
	case failures == 0:
		if s.snapshots != nil {
			if err := s.snapshots.SaveListings(ctx, listings); err != nil {
				s.logger.Warn("slugmap: snapshot save failed", "error", err)
			}
		}
	case failures >= total:
		if restored, ok := s.restoreSnapshot(ctx); ok {
			listings = restored
		}
	default:
		s.logger.Warn("slugmap: partial listings fetch", "failed_axes", failures)
	}

	maps := s.builder.Build(listings)
	if s.store != nil {
		if err := s.store.SetWithTags(ctx, mapsKey, maps, mapsTTL, caching.TagSlugs); err != nil {
			s.logger.Warn("slugmap: cache write failed", "error", err)
		}
	}
	return maps, nil
}

func (s *Service) restoreSnapshot(ctx context.Context) (Listings, bool) {
	if s.snapshots == nil {
		return Listings{}, false
	}
	restored, ok, err := s.snapshots.LoadListings(ctx)
	if err != nil {
		s.logger.Warn("slugmap: snapshot load failed", "error", err)
		return Listings{}, false
	}
	if ok {
		s.logger.Info("slugmap: serving listings from snapshot")
	}
	return restored, ok
}

// fetchListings gathers every axis concurrently. Failed axes are logged and
// left empty; the second return value counts them.
func (s *Service) fetchListings(ctx context.Context) (Listings, int) {
	listings := Listings{
		Pages:      map[locales.Locale][]interfaces.Entity{},
		Posts:      map[locales.Locale][]interfaces.Entity{},
		Categories: map[locales.Locale][]interfaces.Entity{},
		Projects:   map[locales.Locale][]interfaces.Entity{},
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		failures int
	)

	fail := func(axis string, locale locales.Locale, err error) {
		s.logger.Warn("slugmap: listing fetch failed",
			"axis", axis, "locale", string(locale), "error", err)
		mu.Lock()
		failures++
		mu.Unlock()
	}

	for _, locale := range s.cfg.All() {
		locale := locale

		wg.Add(4)
		go func() {
			defer wg.Done()
			entities, err := s.source.ListPages(ctx, locale)
			if err != nil {
				fail("pages", locale, err)
				return
			}
			mu.Lock()
			listings.Pages[locale] = entities
			mu.Unlock()
		}()
		go func() {
			defer wg.Done()
			posts, err := s.source.ListPosts(ctx, locale)
			if err != nil {
				fail("posts", locale, err)
				return
			}
			entities := make([]interfaces.Entity, 0, len(posts))
			for _, post := range posts {
				entities = append(entities, post.Entity)
			}
			mu.Lock()
			listings.Posts[locale] = entities
			mu.Unlock()
		}()
		go func() {
			defer wg.Done()
			categories, err := s.source.ListCategories(ctx, locale)
			if err != nil {
				fail("categories", locale, err)
				return
			}
			entities := make([]interfaces.Entity, 0, len(categories))
			for _, category := range categories {
				entities = append(entities, category.Entity)
			}
			mu.Lock()
			listings.Categories[locale] = entities
			mu.Unlock()
		}()
		go func() {
			defer wg.Done()
			entities, err := s.source.ListProjects(ctx, locale)
			if err != nil {
				fail("projects", locale, err)
				return
			}
			mu.Lock()
			listings.Projects[locale] = entities
			mu.Unlock()
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		bases, err := s.source.BlogBases(ctx)
		if err != nil {
			fail("blog-bases", "", err)
			return
		}
		mu.Lock()
		listings.BlogBases = bases
		mu.Unlock()
	}()

	wg.Wait()
	return listings, failures
}
