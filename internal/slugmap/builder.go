package slugmap

import (
	"strings"

	slug "github.com/goliatone/go-slug"

	"github.com/motify/sitekit/internal/logging"
	"github.com/motify/sitekit/locales"
	"github.com/motify/sitekit/pkg/interfaces"
)

// Listings groups the already-fetched entity records per content type and
// locale. The builder performs no I/O; a missing or nil listing simply
// yields an empty map for that axis.
type Listings struct {
	Pages      map[locales.Locale][]interfaces.Entity
	Posts      map[locales.Locale][]interfaces.Entity
	Categories map[locales.Locale][]interfaces.Entity
	Projects   map[locales.Locale][]interfaces.Entity
	BlogBases  map[locales.Locale]string
}

// Builder constructs slug maps from entity listings.
type Builder struct {
	cfg    locales.Config
	logger interfaces.Logger
}

// NewBuilder returns a builder for the given locale pair. The logger is
// optional and only used to surface upstream data inconsistencies.
func NewBuilder(cfg locales.Config, logger interfaces.Logger) *Builder {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Builder{cfg: cfg, logger: logger}
}

// Build derives one directional map per (content type, locale) pair.
//
// Invariants:
//   - An entry exists only when both the source slug and the translation
//     slug are non-empty.
//   - Untranslated entities produce no entry.
//   - A duplicate source slug overwrites the earlier entry; duplicates
//     indicate an upstream inconsistency and are logged, not rejected.
func (b *Builder) Build(listings Listings) Maps {
	byType := make(map[ContentType]map[locales.Locale]map[string]string, len(Types))
	byType[TypePages] = b.buildType(TypePages, listings.Pages)
	byType[TypePosts] = b.buildType(TypePosts, listings.Posts)
	byType[TypeCategories] = b.buildType(TypeCategories, listings.Categories)
	byType[TypeProjects] = b.buildType(TypeProjects, listings.Projects)

	bases := make(map[locales.Locale]string, 2)
	for _, locale := range b.cfg.All() {
		base := ""
		if listings.BlogBases != nil {
			base = strings.Trim(strings.TrimSpace(listings.BlogBases[locale]), "/")
		}
		if base == "" {
			base = b.cfg.BlogBase(locale)
		}
		bases[locale] = base
	}

	return Maps{byType: byType, blogBases: bases}
}

func (b *Builder) buildType(contentType ContentType, byLocale map[locales.Locale][]interfaces.Entity) map[locales.Locale]map[string]string {
	out := make(map[locales.Locale]map[string]string, 2)
	for _, locale := range b.cfg.All() {
		entries := map[string]string{}
		for _, entity := range byLocale[locale] {
			source := strings.TrimSpace(entity.Slug)
			if source == "" || !entity.Translated() {
				continue
			}
			if !slug.IsValid(source) {
				b.logger.Warn("slugmap: skipping invalid slug",
					"type", string(contentType), "locale", string(locale), "slug", source)
				continue
			}
			if _, exists := entries[source]; exists {
				b.logger.Warn("slugmap: duplicate slug overwrites earlier entry",
					"type", string(contentType), "locale", string(locale), "slug", source)
			}
			entries[source] = strings.TrimSpace(entity.Translation.Slug)
		}
		out[locale] = entries
	}
	return out
}
