// Package caching provides the tag-partitioned cache used between the
// content source and the derived services, plus the static table that maps
// content-change notifications to the cache tags they must invalidate.
package caching

import "strings"

// Cache partition tags. The "wp:" namespace matches the tag vocabulary the
// content backend sends with change notifications.
const (
	TagPages    = "wp:pages"
	TagPosts    = "wp:posts"
	TagProjects = "wp:projects"
	TagMenus    = "wp:menus"
	TagMetadata = "wp:metadata"
	TagSitemap  = "wp:sitemap"
	TagSlugs    = "wp:slugs"
)

// UniversalTags returns every partition tag. Unknown content types resolve
// to this set: invalidating everything is the conservative default that
// favors correctness over cache efficiency.
func UniversalTags() []string {
	return []string{
		TagPages,
		TagPosts,
		TagProjects,
		TagMenus,
		TagMetadata,
		TagSitemap,
		TagSlugs,
	}
}

// ResolveTags maps a content-change notification to the cache tags to
// invalidate. Explicit tags take precedence and are returned verbatim.
// Every content type that can alter a slug or translation relationship
// includes the slug-map and sitemap tags alongside its primary tag.
func ResolveTags(contentType string, explicit []string) []string {
	if len(explicit) > 0 {
		return explicit
	}

	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "post", "posts":
		return []string{TagPosts, TagSitemap, TagSlugs}
	case "project", "projects":
		return []string{TagProjects, TagSitemap, TagSlugs}
	case "page", "pages":
		return []string{TagPages, TagMetadata, TagSitemap, TagSlugs}
	case "service", "services":
		return []string{TagPages, TagMetadata, TagSitemap, TagSlugs}
	case "menu", "menus":
		return []string{TagMenus}
	case "category", "categories":
		return []string{TagPosts, TagSitemap, TagSlugs}
	case "feature", "features":
		return []string{TagPages, TagMetadata, TagSitemap, TagSlugs}
	case "settings", "metadata":
		return []string{TagMetadata, TagPages}
	case "sitemap":
		return []string{TagSitemap}
	default:
		return UniversalTags()
	}
}
