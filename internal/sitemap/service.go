package sitemap

import (
	"context"
	"strings"
	"time"

	"github.com/motify/sitekit/internal/caching"
	"github.com/motify/sitekit/internal/logging"
	"github.com/motify/sitekit/internal/routing"
	"github.com/motify/sitekit/internal/slugmap"
	"github.com/motify/sitekit/locales"
	"github.com/motify/sitekit/pkg/interfaces"
)

const (
	xmlKey = "wp:sitemap-xml"
	xmlTTL = 12 * time.Hour
)

// MapsProvider yields current slug maps; satisfied by the slugmap service.
type MapsProvider interface {
	Maps(ctx context.Context) (slugmap.Maps, error)
}

// Service builds the sitemap document from live listings.
type Service struct {
	source  interfaces.ContentSource
	maps    MapsProvider
	links   routing.Links
	cfg     locales.Config
	siteURL string
	store   interfaces.TagStore
	logger  interfaces.Logger
}

// NewService wires a sitemap builder. siteURL is the absolute origin
// prepended to every localized path.
func NewService(source interfaces.ContentSource, maps MapsProvider, cfg locales.Config, siteURL string, store interfaces.TagStore, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		source:  source,
		maps:    maps,
		links:   routing.NewLinks(cfg),
		cfg:     cfg,
		siteURL: strings.TrimRight(strings.TrimSpace(siteURL), "/"),
		store:   store,
		logger:  logger,
	}
}

// Build returns the rendered sitemap XML, cached until the sitemap tag is
// invalidated.
func (s *Service) Build(ctx context.Context) ([]byte, error) {
	if s.store != nil {
		if raw, err := s.store.Get(ctx, xmlKey); err == nil {
			if doc, ok := raw.([]byte); ok {
				return doc, nil
			}
		}
	}

	maps, err := s.maps.Maps(ctx)
	if err != nil {
		return nil, err
	}

	var sets [][]Entry
	for _, locale := range s.cfg.All() {
		sets = append(sets, s.staticEntries(locale, maps))
		sets = append(sets, s.pageEntries(ctx, locale))
		sets = append(sets, s.postEntries(ctx, locale, maps))
		sets = append(sets, s.categoryEntries(ctx, locale, maps))
		sets = append(sets, s.projectEntries(ctx, locale))
	}

	doc := Render(Merge(sets...))
	if s.store != nil {
		if err := s.store.SetWithTags(ctx, xmlKey, doc, xmlTTL, caching.TagSitemap); err != nil {
			s.logger.Warn("sitemap: cache write failed", "error", err)
		}
	}
	return doc, nil
}

func (s *Service) abs(path string) string {
	return s.siteURL + path
}

// alternates links the two locale variants of one path plus the x-default
// pointing at the default-locale variant.
func (s *Service) alternates(locale locales.Locale, self string, other locales.Locale, counterpart string) []Alternate {
	alts := []Alternate{{Hreflang: string(locale), Href: self}}
	if counterpart != "" {
		alts = append(alts, Alternate{Hreflang: string(other), Href: counterpart})
	}
	switch {
	case locale == s.cfg.Default():
		alts = append(alts, Alternate{Hreflang: "x-default", Href: self})
	case counterpart != "":
		alts = append(alts, Alternate{Hreflang: "x-default", Href: counterpart})
	}
	return alts
}

func (s *Service) staticEntries(locale locales.Locale, maps slugmap.Maps) []Entry {
	other := s.cfg.Other(locale)

	home := s.abs(s.links.HomePath(locale))
	blog := s.abs(s.links.BlogIndexPath(locale, maps))
	projects := s.abs(s.links.ProjectIndexPath(locale))

	return []Entry{
		{
			Loc:        home,
			Priority:   PriorityHome,
			Alternates: s.alternates(locale, home, other, s.abs(s.links.HomePath(other))),
		},
		{
			Loc:        blog,
			Priority:   PriorityBlogIndex,
			Alternates: s.alternates(locale, blog, other, s.abs(s.links.BlogIndexPath(other, maps))),
		},
		{
			Loc:        projects,
			Priority:   PriorityProjectIndex,
			Alternates: s.alternates(locale, projects, other, s.abs(s.links.ProjectIndexPath(other))),
		},
	}
}

func (s *Service) pageEntries(ctx context.Context, locale locales.Locale) []Entry {
	pages, err := s.source.ListPages(ctx, locale)
	if err != nil {
		s.logger.Warn("sitemap: pages listing failed", "locale", string(locale), "error", err)
		return nil
	}

	other := s.cfg.Other(locale)
	entries := make([]Entry, 0, len(pages))
	for _, page := range pages {
		if page.Slug == "" {
			continue
		}
		self := s.abs(s.links.PagePath(page.Slug, locale))
		counterpart := ""
		if page.Translated() {
			counterpart = s.abs(s.links.PagePath(page.Translation.Slug, other))
		}
		entries = append(entries, Entry{
			Loc:        self,
			LastMod:    page.ModifiedAt,
			Priority:   s.pagePriority(page.Slug),
			Alternates: s.alternates(locale, self, other, counterpart),
		})
	}
	return entries
}

// pagePriority keeps the home page at the top when it surfaces through the
// page listing rather than the static set.
func (s *Service) pagePriority(slug string) float64 {
	if slug == routing.HomeSlug {
		return PriorityHome
	}
	return PriorityPage
}

func (s *Service) postEntries(ctx context.Context, locale locales.Locale, maps slugmap.Maps) []Entry {
	posts, err := s.source.ListPosts(ctx, locale)
	if err != nil {
		s.logger.Warn("sitemap: posts listing failed", "locale", string(locale), "error", err)
		return nil
	}

	other := s.cfg.Other(locale)
	entries := make([]Entry, 0, len(posts))
	for _, post := range posts {
		if post.Slug == "" {
			continue
		}
		self := s.abs(s.links.PostPath(post.Slug, locale, maps))
		counterpart := ""
		if post.Translated() {
			counterpart = s.abs(s.links.PostPath(post.Translation.Slug, other, maps))
		}
		entries = append(entries, Entry{
			Loc:        self,
			LastMod:    post.ModifiedAt,
			Priority:   PriorityPost,
			Alternates: s.alternates(locale, self, other, counterpart),
		})
	}
	return entries
}

func (s *Service) categoryEntries(ctx context.Context, locale locales.Locale, maps slugmap.Maps) []Entry {
	categories, err := s.source.ListCategories(ctx, locale)
	if err != nil {
		s.logger.Warn("sitemap: categories listing failed", "locale", string(locale), "error", err)
		return nil
	}

	other := s.cfg.Other(locale)
	entries := make([]Entry, 0, len(categories))
	for _, category := range categories {
		if category.Slug == "" {
			continue
		}
		self := s.abs(s.links.CategoryPath(category.Slug, locale, maps))
		counterpart := ""
		if category.Translated() {
			counterpart = s.abs(s.links.CategoryPath(category.Translation.Slug, other, maps))
		}
		entries = append(entries, Entry{
			Loc:        self,
			Priority:   PriorityCategory,
			Alternates: s.alternates(locale, self, other, counterpart),
		})
	}
	return entries
}

func (s *Service) projectEntries(ctx context.Context, locale locales.Locale) []Entry {
	projects, err := s.source.ListProjects(ctx, locale)
	if err != nil {
		s.logger.Warn("sitemap: projects listing failed", "locale", string(locale), "error", err)
		return nil
	}

	other := s.cfg.Other(locale)
	entries := make([]Entry, 0, len(projects))
	for _, project := range projects {
		if project.Slug == "" {
			continue
		}
		self := s.abs(s.links.ProjectPath(project.Slug, locale))
		counterpart := ""
		if project.Translated() {
			counterpart = s.abs(s.links.ProjectPath(project.Translation.Slug, other))
		}
		entries = append(entries, Entry{
			Loc:        self,
			LastMod:    project.ModifiedAt,
			Priority:   PriorityProject,
			Alternates: s.alternates(locale, self, other, counterpart),
		})
	}
	return entries
}
