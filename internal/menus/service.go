// Package menus projects backend navigation menus into locale-aware links.
// Internal items are rewritten through the path localizer; canonical
// absolute URLs for the well-known sections come from a go-urlkit route
// manager so the URL scheme lives in configuration, not code.
package menus

import (
	"context"
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/motify/sitekit/internal/logging"
	"github.com/motify/sitekit/internal/routing"
	"github.com/motify/sitekit/internal/slugmap"
	"github.com/motify/sitekit/locales"
	"github.com/motify/sitekit/pkg/interfaces"
)

// LocalizedItem is one navigation entry ready for rendering: Href is the
// site-relative localized path, URL the canonical absolute form.
type LocalizedItem struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Href     string `json:"href"`
	URL      string `json:"url,omitempty"`
	Target   string `json:"target,omitempty"`
	External bool   `json:"external"`
}

// LocalizedMenu groups the localized items of one menu location.
type LocalizedMenu struct {
	Name     string          `json:"name"`
	Location string          `json:"location"`
	Items    []LocalizedItem `json:"items"`
}

// MapsProvider yields current slug maps; satisfied by the slugmap service.
type MapsProvider interface {
	Maps(ctx context.Context) (slugmap.Maps, error)
}

// Service localizes menus fetched from the content source.
type Service struct {
	source  interfaces.ContentSource
	maps    MapsProvider
	cfg     locales.Config
	links   routing.Links
	manager *urlkit.RouteManager
	siteURL string
	logger  interfaces.Logger

	mu         sync.RWMutex
	groupCache map[locales.Locale]*urlkit.Group
}

// NewService wires the menu service. The route manager is optional; without
// it canonical URLs fall back to siteURL plus the localized path.
func NewService(source interfaces.ContentSource, maps MapsProvider, cfg locales.Config, siteURL string, manager *urlkit.RouteManager, logger interfaces.Logger) *Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		source:     source,
		maps:       maps,
		cfg:        cfg,
		links:      routing.NewLinks(cfg),
		manager:    manager,
		siteURL:    strings.TrimRight(strings.TrimSpace(siteURL), "/"),
		logger:     logger,
		groupCache: map[locales.Locale]*urlkit.Group{},
	}
}

// Menus returns every registered menu for the locale with localized links.
func (s *Service) Menus(ctx context.Context, locale locales.Locale) ([]LocalizedMenu, error) {
	if !s.cfg.Contains(locale) {
		locale = s.cfg.Default()
	}

	raw, err := s.source.Menus(ctx, locale)
	if err != nil {
		return nil, err
	}

	maps := slugmap.Empty()
	if s.maps != nil {
		if m, err := s.maps.Maps(ctx); err != nil {
			s.logger.Warn("menus: slug maps unavailable", "error", err)
		} else {
			maps = m
		}
	}

	out := make([]LocalizedMenu, 0, len(raw))
	for _, menu := range raw {
		localized := LocalizedMenu{Name: menu.Name, Location: menu.Location}
		for _, item := range menu.Items {
			localized.Items = append(localized.Items, s.localizeItem(item, locale, maps))
		}
		out = append(out, localized)
	}
	return out, nil
}

func (s *Service) localizeItem(item interfaces.MenuItem, locale locales.Locale, maps slugmap.Maps) LocalizedItem {
	if item.IsExternal || routing.IsExternal(item.URI) {
		href := item.URL
		if href == "" {
			href = item.URI
		}
		return LocalizedItem{
			ID:       item.ID,
			Label:    item.Label,
			Href:     href,
			URL:      href,
			Target:   item.Target,
			External: true,
		}
	}

	href := s.links.Localize(item.URI, locale)
	return LocalizedItem{
		ID:     item.ID,
		Label:  item.Label,
		Href:   href,
		URL:    s.canonicalURL(href, locale, maps),
		Target: item.Target,
	}
}

// canonicalURL builds the absolute form of a localized path. Well-known
// sections resolve through the route manager; everything else is the site
// origin plus the path.
func (s *Service) canonicalURL(href string, locale locales.Locale, maps slugmap.Maps) string {
	shape := routing.NewTranslator(s.cfg).Parse(href, maps)

	if url, ok := s.buildRoute(locale, shape); ok {
		return url
	}
	return s.siteURL + href
}

// routeNames maps path shapes to the route names registered with urlkit.
var routeNames = map[routing.Kind]string{
	routing.KindHome:         "home",
	routing.KindBlogIndex:    "blog",
	routing.KindProjectIndex: "projects",
	routing.KindProject:      "project",
	routing.KindPage:         "page",
}

func (s *Service) buildRoute(locale locales.Locale, shape routing.Shape) (string, bool) {
	if s.manager == nil {
		return "", false
	}
	name, ok := routeNames[shape.Kind]
	if !ok {
		return "", false
	}

	group, err := s.groupFor(locale)
	if err != nil || group == nil {
		return "", false
	}

	builder, err := safeBuilder(group, name)
	if err != nil {
		s.logger.Debug("menus: no route for shape", "route", name, "error", err)
		return "", false
	}
	if shape.Slug != "" {
		builder.WithParam("slug", shape.Slug)
	}

	url, err := builder.Build()
	if err != nil {
		s.logger.Debug("menus: route build failed", "route", name, "error", err)
		return "", false
	}
	return url, true
}

// groupFor resolves the urlkit group for a locale: the root group for the
// default locale, a same-named child group otherwise.
func (s *Service) groupFor(locale locales.Locale) (*urlkit.Group, error) {
	s.mu.RLock()
	group, ok := s.groupCache[locale]
	s.mu.RUnlock()
	if ok {
		return group, nil
	}

	root, err := lookupGroup(s.manager, "site")
	if err != nil {
		return nil, err
	}
	group = root
	if locale != s.cfg.Default() {
		group, err = lookupChildGroup(root, string(locale))
		if err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	s.groupCache[locale] = group
	s.mu.Unlock()
	return group, nil
}

// urlkit panics on unknown groups and routes; confine that to an error.
func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("menus: route %q not found: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("menus: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("menus: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	if parent == nil {
		return nil, fmt.Errorf("menus: parent group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("menus: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, err
}
