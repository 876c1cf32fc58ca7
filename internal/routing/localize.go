package routing

import (
	"strings"

	"github.com/motify/sitekit/internal/slugmap"
	"github.com/motify/sitekit/locales"
)

// externalPrefixes mark hrefs that must never be locale-rewritten.
var externalPrefixes = []string{"http://", "https://", "//", "mailto:", "tel:"}

// IsExternal reports whether href targets something outside the site.
func IsExternal(href string) bool {
	for _, prefix := range externalPrefixes {
		if strings.HasPrefix(href, prefix) {
			return true
		}
	}
	return false
}

// Links builds locale-aware internal links. Like Translator it is a pure
// value over the locale configuration.
type Links struct {
	cfg locales.Config
}

// NewLinks returns a link builder bound to the locale configuration.
func NewLinks(cfg locales.Config) Links {
	return Links{cfg: cfg}
}

// Localize prefixes an internal href with the locale (default locale stays
// unprefixed) and leaves external URLs and fragment anchors untouched. The operation is
// idempotent: localizing an already-localized href is a no-op.
func (l Links) Localize(href string, locale locales.Locale) string {
	if href == "" {
		return "#"
	}
	if IsExternal(href) || strings.HasPrefix(href, "#") {
		return href
	}

	normalized := href
	if normalized == "/" {
		normalized = ""
	} else {
		normalized = strings.TrimRight(normalized, "/")
	}
	if normalized != "" && !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}

	prefix := "/" + string(locale)

	if locale == l.cfg.Default() {
		// Defensive strip: callers should not pass pre-prefixed paths but
		// idempotence requires tolerating them.
		if normalized == prefix {
			return "/"
		}
		if strings.HasPrefix(normalized, prefix+"/") {
			stripped := normalized[len(prefix):]
			if stripped == "" {
				return "/"
			}
			return stripped
		}
		if normalized == "" {
			return "/"
		}
		return normalized
	}

	if normalized == prefix || strings.HasPrefix(normalized, prefix+"/") {
		return normalized
	}
	if normalized == "" {
		return prefix
	}
	return prefix + normalized
}

// Prefix returns the URL prefix for the locale.
func (l Links) Prefix(locale locales.Locale) string {
	return l.cfg.Prefix(locale)
}

// HomePath returns the front-page path for the locale.
func (l Links) HomePath(locale locales.Locale) string {
	if prefix := l.cfg.Prefix(locale); prefix != "" {
		return prefix
	}
	return "/"
}

// PagePath returns the localized path for a generic page slug. The home
// slug collapses to the locale's front page.
func (l Links) PagePath(slug string, locale locales.Locale) string {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" || slug == HomeSlug {
		return l.HomePath(locale)
	}
	return l.Localize("/"+slug, locale)
}

// BlogIndexPath returns the localized blog landing path.
func (l Links) BlogIndexPath(locale locales.Locale, maps slugmap.Maps) string {
	return l.Localize("/"+l.blogBase(locale, maps), locale)
}

// PostPath returns the localized path for a post slug.
func (l Links) PostPath(slug string, locale locales.Locale, maps slugmap.Maps) string {
	return l.Localize("/"+l.blogBase(locale, maps)+"/"+slug, locale)
}

// CategoryPath returns the localized path for a blog category slug.
func (l Links) CategoryPath(slug string, locale locales.Locale, maps slugmap.Maps) string {
	return l.Localize("/"+l.blogBase(locale, maps)+"/"+categorySegment+"/"+slug, locale)
}

// ProjectIndexPath returns the localized projects landing path.
func (l Links) ProjectIndexPath(locale locales.Locale) string {
	return l.Localize("/"+projectsSegment, locale)
}

// ProjectPath returns the localized path for a project slug.
func (l Links) ProjectPath(slug string, locale locales.Locale) string {
	return l.Localize("/"+projectsSegment+"/"+slug, locale)
}

func (l Links) blogBase(locale locales.Locale, maps slugmap.Maps) string {
	if base := maps.BlogBase(locale); base != "" {
		return base
	}
	return l.cfg.BlogBase(locale)
}
