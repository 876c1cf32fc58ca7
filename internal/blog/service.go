// Package blog assembles the locale-aware blog index: localized post links,
// the featured selection, and per-category counts.
package blog

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/motify/sitekit/internal/logging"
	"github.com/motify/sitekit/internal/routing"
	"github.com/motify/sitekit/internal/slugmap"
	"github.com/motify/sitekit/locales"
	"github.com/motify/sitekit/pkg/interfaces"
)

// excerptLimit caps the plain-text excerpt length in runes.
const excerptLimit = 240

// IndexPost is one post entry on the blog index.
type IndexPost struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Href       string    `json:"href"`
	Excerpt    string    `json:"excerpt,omitempty"`
	ModifiedAt time.Time `json:"modified_at,omitempty"`
	Categories []string  `json:"categories,omitempty"`
	Featured   bool      `json:"featured"`
}

// CategorySummary is one category with its localized link and post count.
type CategorySummary struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Href  string `json:"href"`
	Count int    `json:"count"`
}

// Index is the assembled blog landing payload.
type Index struct {
	Posts      []IndexPost       `json:"posts"`
	Featured   *IndexPost        `json:"featured,omitempty"`
	Categories []CategorySummary `json:"categories"`
}

// MapsProvider yields current slug maps; satisfied by the slugmap service.
type MapsProvider interface {
	Maps(ctx context.Context) (slugmap.Maps, error)
}

// Service builds blog index payloads.
type Service struct {
	source interfaces.ContentSource
	maps   MapsProvider
	cfg    locales.Config
	links  routing.Links
	policy *bluemonday.Policy
	logger interfaces.Logger
}

// NewService wires the blog service. Excerpts arrive as backend HTML and
// are stripped to plain text before they leave this package.
func NewService(source interfaces.ContentSource, maps MapsProvider, cfg locales.Config, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		source: source,
		maps:   maps,
		cfg:    cfg,
		links:  routing.NewLinks(cfg),
		policy: bluemonday.StrictPolicy(),
		logger: logger,
	}
}

// Index returns the blog landing payload for a locale. A non-empty category
// slug narrows the post list; counts always cover the full set.
func (s *Service) Index(ctx context.Context, locale locales.Locale, category string) (Index, error) {
	if !s.cfg.Contains(locale) {
		locale = s.cfg.Default()
	}
	category = strings.TrimSpace(category)

	posts, err := s.source.ListPosts(ctx, locale)
	if err != nil {
		return Index{}, err
	}

	maps := slugmap.Empty()
	if s.maps != nil {
		if m, err := s.maps.Maps(ctx); err != nil {
			s.logger.Warn("blog: slug maps unavailable", "error", err)
		} else {
			maps = m
		}
	}

	index := Index{}
	counts := map[string]int{}
	for _, post := range posts {
		for _, slug := range post.Categories {
			counts[slug]++
		}
		if category != "" && !hasCategory(post, category) {
			continue
		}
		entry := s.toIndexPost(post, locale, maps)
		if entry.Featured && index.Featured == nil {
			featured := entry
			index.Featured = &featured
		}
		index.Posts = append(index.Posts, entry)
	}
	// The newest post carries the spotlight when nothing is sticky.
	if index.Featured == nil && len(index.Posts) > 0 {
		featured := index.Posts[0]
		index.Featured = &featured
	}

	index.Categories = s.categorySummaries(ctx, locale, maps, counts)
	return index, nil
}

func (s *Service) toIndexPost(post interfaces.Post, locale locales.Locale, maps slugmap.Maps) IndexPost {
	return IndexPost{
		ID:         post.ID,
		Title:      post.Title,
		Slug:       post.Slug,
		Href:       s.links.PostPath(post.Slug, locale, maps),
		Excerpt:    s.plainExcerpt(post.Excerpt),
		ModifiedAt: post.ModifiedAt,
		Categories: post.Categories,
		Featured:   post.Featured,
	}
}

func (s *Service) categorySummaries(ctx context.Context, locale locales.Locale, maps slugmap.Maps, counts map[string]int) []CategorySummary {
	categories, err := s.source.ListCategories(ctx, locale)
	if err != nil {
		s.logger.Warn("blog: categories listing failed", "locale", string(locale), "error", err)
		return nil
	}

	summaries := make([]CategorySummary, 0, len(categories))
	for _, category := range categories {
		if category.Slug == "" {
			continue
		}
		summaries = append(summaries, CategorySummary{
			Slug:  category.Slug,
			Name:  category.Name,
			Href:  s.links.CategoryPath(category.Slug, locale, maps),
			Count: counts[category.Slug],
		})
	}
	return summaries
}

// plainExcerpt strips markup and truncates on a rune boundary.
func (s *Service) plainExcerpt(html string) string {
	text := strings.TrimSpace(s.policy.Sanitize(html))
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= excerptLimit {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:excerptLimit])) + "…"
}

func hasCategory(post interfaces.Post, slug string) bool {
	for _, category := range post.Categories {
		if category == slug {
			return true
		}
	}
	return false
}
