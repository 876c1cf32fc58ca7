package slugmap

import (
	"github.com/motify/sitekit/locales"
)

// ContentType discriminates the slug-mapped content families.
type ContentType string

const (
	TypePages      ContentType = "pages"
	TypePosts      ContentType = "posts"
	TypeCategories ContentType = "categories"
	TypeProjects   ContentType = "projects"
)

// Types lists every slug-mapped content type.
var Types = []ContentType{TypePages, TypePosts, TypeCategories, TypeProjects}

// Maps holds, for each content type and source locale, the mapping from a
// slug in that locale to the translated slug in the sibling locale. A map
// entry exists only when the source entity carried a non-empty translation
// reference; untranslated slugs are absent, never self-mapped. The two
// directions are independent maps and are not required to be inverses of
// each other.
//
// Maps are immutable once built and safe to share across concurrent
// readers.
type Maps struct {
	byType map[ContentType]map[locales.Locale]map[string]string
	// BlogBases carries the per-locale blog landing segment resolved
	// alongside the maps, so path translation and map construction stay on
	// the same snapshot.
	blogBases map[locales.Locale]string
}

// Empty returns a Maps value with no entries. Lookups against it fall back
// to identity, which is the safe degraded mode when the content source is
// unavailable.
func Empty() Maps {
	return Maps{}
}

// Lookup returns the translated slug for (contentType, source locale,
// slug). The second return reports whether a mapping existed; callers must
// apply the fallback-to-same-slug policy themselves.
func (m Maps) Lookup(contentType ContentType, source locales.Locale, slug string) (string, bool) {
	if m.byType == nil {
		return "", false
	}
	byLocale, ok := m.byType[contentType]
	if !ok {
		return "", false
	}
	entries, ok := byLocale[source]
	if !ok {
		return "", false
	}
	translated, ok := entries[slug]
	return translated, ok
}

// Len reports the number of entries for one (type, locale) direction.
func (m Maps) Len(contentType ContentType, source locales.Locale) int {
	if m.byType == nil {
		return 0
	}
	return len(m.byType[contentType][source])
}

// BlogBase returns the blog landing segment captured for the locale, or ""
// when none was resolved.
func (m Maps) BlogBase(locale locales.Locale) string {
	if m.blogBases == nil {
		return ""
	}
	return m.blogBases[locale]
}
