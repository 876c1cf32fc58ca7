package routing

import (
	"github.com/motify/sitekit/internal/slugmap"
	"github.com/motify/sitekit/locales"
)

// Translator maps URL paths between the two locales using the slug maps.
// It is a pure value; every method is total over well-formed string paths
// and safe for concurrent use.
type Translator struct {
	cfg locales.Config
}

// NewTranslator returns a translator bound to the locale configuration.
func NewTranslator(cfg locales.Config) Translator {
	return Translator{cfg: cfg}
}

// Result reports the outcome of a detailed translation. Translated is false
// when the path fell back to the source slug because no map entry existed;
// index and home shapes carry no slug and always report true.
type Result struct {
	Path       string
	Kind       Kind
	Source     locales.Locale
	Translated bool
}

// Translate returns the target-locale path for path. Missing map entries
// fall back to the source slug unchanged, so untranslated content stays
// reachable at the same slug under both locales.
func (t Translator) Translate(path string, target locales.Locale, maps slugmap.Maps) string {
	return t.TranslateDetailed(path, target, maps).Path
}

// TranslateDetailed is Translate plus the shape classification and the
// no-confident-translation signal. The returned path always begins with
// "/" (default locale) or "/{locale}" and is never empty.
func (t Translator) TranslateDetailed(path string, target locales.Locale, maps slugmap.Maps) Result {
	source, segments := t.cfg.SplitPrefix(splitSegments(path))
	shape := t.classify(source, segments, maps)
	return Result{
		Path:       t.assemble(shape, target, maps),
		Kind:       shape.Kind,
		Source:     source,
		Translated: target == source || t.hasMapping(shape, maps),
	}
}

// Parse classifies a path without translating it.
func (t Translator) Parse(path string, maps slugmap.Maps) Shape {
	source, segments := t.cfg.SplitPrefix(splitSegments(path))
	return t.classify(source, segments, maps)
}

func (t Translator) classify(source locales.Locale, segments []string, maps slugmap.Maps) Shape {
	aliases := t.blogAliases(maps)
	isAlias := func(segment string) bool { return aliases[segment] }

	for _, m := range matchers {
		if len(segments) == 0 && m.kind != KindHome {
			continue
		}
		if slug, ok := m.match(segments, isAlias); ok {
			return Shape{Kind: m.kind, Source: source, Slug: slug}
		}
	}
	// The page matcher is total for non-empty segment lists, so only the
	// empty path reaches this point.
	return Shape{Kind: KindHome, Source: source}
}

// blogAliases returns the set of blog base segments across both locales.
// Matching uses the union so a path keeps its blog classification no
// matter which locale prefix it carried.
func (t Translator) blogAliases(maps slugmap.Maps) map[string]bool {
	aliases := make(map[string]bool, 2)
	for _, locale := range t.cfg.All() {
		if base := maps.BlogBase(locale); base != "" {
			aliases[base] = true
		}
		aliases[t.cfg.BlogBase(locale)] = true
	}
	return aliases
}

func (t Translator) targetBlogBase(target locales.Locale, maps slugmap.Maps) string {
	if base := maps.BlogBase(target); base != "" {
		return base
	}
	return t.cfg.BlogBase(target)
}

func (t Translator) assemble(shape Shape, target locales.Locale, maps slugmap.Maps) string {
	prefix := t.cfg.Prefix(target)

	switch shape.Kind {
	case KindHome:
		if prefix == "" {
			return "/"
		}
		return prefix
	case KindBlogIndex:
		return prefix + "/" + t.targetBlogBase(target, maps)
	case KindPost:
		slug := t.mapSlug(slugmap.TypePosts, shape, target, maps)
		return prefix + "/" + t.targetBlogBase(target, maps) + "/" + slug
	case KindCategory:
		slug := t.mapSlug(slugmap.TypeCategories, shape, target, maps)
		return prefix + "/" + t.targetBlogBase(target, maps) + "/" + categorySegment + "/" + slug
	case KindProjectIndex:
		return prefix + "/" + projectsSegment
	case KindProject:
		slug := t.mapSlug(slugmap.TypeProjects, shape, target, maps)
		return prefix + "/" + projectsSegment + "/" + slug
	default:
		slug := t.mapSlug(slugmap.TypePages, shape, target, maps)
		if slug == "" {
			if prefix == "" {
				return "/"
			}
			return prefix
		}
		return prefix + "/" + slug
	}
}

// mapSlug applies the directional slug map for the shape's source locale,
// falling back to the source slug when no entry exists. Translating a path
// into its own locale is the identity on the slug.
func (t Translator) mapSlug(contentType slugmap.ContentType, shape Shape, target locales.Locale, maps slugmap.Maps) string {
	if target == shape.Source {
		return shape.Slug
	}
	if translated, ok := maps.Lookup(contentType, shape.Source, shape.Slug); ok && translated != "" {
		return translated
	}
	return shape.Slug
}

func (t Translator) hasMapping(shape Shape, maps slugmap.Maps) bool {
	var contentType slugmap.ContentType
	switch shape.Kind {
	case KindPost:
		contentType = slugmap.TypePosts
	case KindCategory:
		contentType = slugmap.TypeCategories
	case KindProject:
		contentType = slugmap.TypeProjects
	case KindPage:
		contentType = slugmap.TypePages
	default:
		// Index and home shapes carry no slug; nothing to miss.
		return true
	}
	_, ok := maps.Lookup(contentType, shape.Source, shape.Slug)
	return ok
}
