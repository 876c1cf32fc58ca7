package interfaces

import (
	"context"
	"time"

	"github.com/motify/sitekit/locales"
)

// Translation is the cross-locale reference attached to an entity: the slug
// (and optionally id) of the sibling-locale counterpart.
type Translation struct {
	Slug string
	ID   string
}

// Entity is a read-only snapshot of one unit of translatable content as
// returned by the content backend. Entities are never mutated by sitekit.
type Entity struct {
	ID          string
	Slug        string
	URI         string
	ModifiedAt  time.Time
	Translation *Translation
}

// Translated reports whether the entity carries a usable cross-locale
// reference.
func (e Entity) Translated() bool {
	return e.Translation != nil && e.Translation.Slug != ""
}

// MenuItem is one navigation entry for a (locale, menu location) pair.
// Items pointing at backend-managed nodes carry a relative URI; external
// items carry an absolute URL and are never locale-rewritten.
type MenuItem struct {
	ID         string
	Label      string
	URI        string
	URL        string
	Target     string
	IsExternal bool
}

// Menu groups the items registered under one menu location.
type Menu struct {
	Name     string
	Location string
	Items    []MenuItem
}

// Post is the blog listing projection of a post entity.
type Post struct {
	Entity
	Title      string
	Excerpt    string
	Featured   bool
	Categories []string
}

// Category is the blog category projection, including the cross-locale
// reference used by the slug maps.
type Category struct {
	Entity
	Name string
}

// EmailInput drives the backend sendEmail mutation used by the contact
// form. ClientMutationID is a caller-supplied idempotency token.
type EmailInput struct {
	ClientMutationID string
	To               string
	From             string
	ReplyTo          string
	Subject          string
	Body             string
}

// ContentSource is the read-only oracle sitekit consumes. Implementations
// issue structured queries against the content backend; every method is
// safe for concurrent use. Listing methods return the complete published
// set for one locale.
type ContentSource interface {
	ListPages(ctx context.Context, locale locales.Locale) ([]Entity, error)
	ListPosts(ctx context.Context, locale locales.Locale) ([]Post, error)
	ListCategories(ctx context.Context, locale locales.Locale) ([]Category, error)
	ListProjects(ctx context.Context, locale locales.Locale) ([]Entity, error)
	Menus(ctx context.Context, locale locales.Locale) ([]Menu, error)
	// BlogBases resolves the per-locale blog landing slugs from the
	// backend, falling back to the configured literals when the backend
	// does not expose them.
	BlogBases(ctx context.Context) (map[locales.Locale]string, error)
	SendEmail(ctx context.Context, input EmailInput) error
}
