// Package sitemap assembles the bilingual sitemap: one entry per canonical
// URL with hreflang alternates linking the locale variants.
package sitemap

import (
	"sort"
	"time"
)

// Per-section priorities. Landing pages outrank detail pages; posts sit
// below the rest because the blog archive churns fastest.
const (
	PriorityHome         = 1.0
	PriorityBlogIndex    = 0.9
	PriorityProjectIndex = 0.9
	PriorityCategory     = 0.8
	PriorityProject      = 0.8
	PriorityPage         = 0.8
	PriorityPost         = 0.7
)

// Alternate is one hreflang link attached to an entry.
type Alternate struct {
	Hreflang string
	Href     string
}

// Entry is a single sitemap URL.
type Entry struct {
	Loc        string
	LastMod    time.Time
	Priority   float64
	Alternates []Alternate
}

// Merge combines entry sets keyed by Loc. The operation is commutative:
//   - the later LastMod wins,
//   - the higher Priority wins,
//   - alternates are unioned; when both sides carry the same hreflang with
//     different hrefs the lexicographically smaller href is kept.
//
// Output is sorted by Loc so renders are deterministic.
func Merge(sets ...[]Entry) []Entry {
	merged := map[string]*Entry{}
	for _, set := range sets {
		for _, entry := range set {
			existing, ok := merged[entry.Loc]
			if !ok {
				copied := entry
				copied.Alternates = append([]Alternate(nil), entry.Alternates...)
				merged[entry.Loc] = &copied
				continue
			}
			if entry.LastMod.After(existing.LastMod) {
				existing.LastMod = entry.LastMod
			}
			if entry.Priority > existing.Priority {
				existing.Priority = entry.Priority
			}
			existing.Alternates = unionAlternates(existing.Alternates, entry.Alternates)
		}
	}

	out := make([]Entry, 0, len(merged))
	for _, entry := range merged {
		sort.Slice(entry.Alternates, func(i, j int) bool {
			return entry.Alternates[i].Hreflang < entry.Alternates[j].Hreflang
		})
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Loc < out[j].Loc })
	return out
}

func unionAlternates(a, b []Alternate) []Alternate {
	byLang := map[string]string{}
	for _, alt := range a {
		byLang[alt.Hreflang] = alt.Href
	}
	for _, alt := range b {
		current, ok := byLang[alt.Hreflang]
		if !ok || alt.Href < current {
			byLang[alt.Hreflang] = alt.Href
		}
	}
	out := make([]Alternate, 0, len(byLang))
	for lang, href := range byLang {
		out = append(out, Alternate{Hreflang: lang, Href: href})
	}
	return out
}
