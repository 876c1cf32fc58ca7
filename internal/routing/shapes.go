package routing

import (
	"strings"

	"github.com/motify/sitekit/locales"
)

// Kind names the recognized path shapes, in match order.
type Kind string

const (
	KindHome         Kind = "home"
	KindPost         Kind = "post"
	KindCategory     Kind = "category"
	KindBlogIndex    Kind = "blog_index"
	KindProject      Kind = "project"
	KindProjectIndex Kind = "project_index"
	KindPage         Kind = "page"
)

// projectsSegment is the locale-invariant discriminator for project paths.
const projectsSegment = "projects"

// categorySegment separates category listings under the blog base.
const categorySegment = "category"

// HomeSlug is the page slug reserved for the front page; it never appears
// in a URL.
const HomeSlug = "home"

// Shape is the transient decomposition of a URL path: the locale implied by
// its prefix, the content-type discriminator, and the translatable slug
// segment (empty for index and home shapes). Shapes are request scoped and
// never persisted.
type Shape struct {
	Kind   Kind
	Source locales.Locale
	Slug   string
}

// matcher classifies a prefix-stripped segment list. Matchers are consulted
// in order; the first match wins.
type matcher struct {
	kind  Kind
	match func(segments []string, blogAlias func(string) bool) (slug string, ok bool)
}

// matchers is the ordered shape dispatch table. The ordering mirrors the
// translation rules: post and category shapes are more specific than the
// blog index, project detail more specific than the project index, and the
// generic page shape is the terminal catch-all.
var matchers = []matcher{
	{kind: KindPost, match: func(segments []string, blogAlias func(string) bool) (string, bool) {
		if len(segments) == 2 && blogAlias(segments[0]) && segments[1] != categorySegment {
			return segments[1], true
		}
		return "", false
	}},
	{kind: KindCategory, match: func(segments []string, blogAlias func(string) bool) (string, bool) {
		if len(segments) == 3 && blogAlias(segments[0]) && segments[1] == categorySegment {
			return segments[2], true
		}
		return "", false
	}},
	{kind: KindBlogIndex, match: func(segments []string, blogAlias func(string) bool) (string, bool) {
		if len(segments) > 0 && blogAlias(segments[0]) {
			return "", true
		}
		return "", false
	}},
	{kind: KindProject, match: func(segments []string, _ func(string) bool) (string, bool) {
		if len(segments) >= 2 && segments[0] == projectsSegment {
			return segments[1], true
		}
		return "", false
	}},
	{kind: KindProjectIndex, match: func(segments []string, _ func(string) bool) (string, bool) {
		if len(segments) == 1 && segments[0] == projectsSegment {
			return "", true
		}
		return "", false
	}},
	{kind: KindHome, match: func(segments []string, _ func(string) bool) (string, bool) {
		if len(segments) == 0 || segments[0] == HomeSlug {
			return "", true
		}
		return "", false
	}},
	{kind: KindPage, match: func(segments []string, _ func(string) bool) (string, bool) {
		return segments[0], true
	}},
}

// splitSegments breaks a path into its non-empty segments.
func splitSegments(path string) []string {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
