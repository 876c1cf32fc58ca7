package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/motify/sitekit/internal/logging"
	"github.com/motify/sitekit/locales"
	"github.com/motify/sitekit/pkg/interfaces"
)

// WordPress reports modified timestamps in site-local time without an
// offset; RFC3339 is accepted for installs that return UTC.
const wpTimeLayout = "2006-01-02T15:04:05"

var menuLocations = []string{"PRIMARY", "FOOTER", "FOOTER_SECONDARY", "ABSOLUTE_FOOTER"}

// Source talks to WPGraphQL and exposes the typed content listings the rest
// of the module consumes. It carries a locale config so it can compute the
// translation direction for each request.
type Source struct {
	client *Client
	cfg    locales.Config
	logger interfaces.Logger
}

// New creates a Source on top of a configured client.
func New(client *Client, cfg locales.Config, logger interfaces.Logger) *Source {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Source{client: client, cfg: cfg, logger: logger}
}

// languageCode maps a locale to the WPGraphQL enum value. Polylang exposes
// languages as upper-cased two-letter codes.
func languageCode(locale locales.Locale) string {
	return strings.ToUpper(string(locale))
}

func (s *Source) listVariables(locale locales.Locale, after string) map[string]any {
	vars := map[string]any{
		"language":            languageCode(locale),
		"translationLanguage": languageCode(s.cfg.Other(locale)),
		"first":               pageSize,
	}
	if after != "" {
		vars["after"] = after
	}
	return vars
}

type pageInfo struct {
	EndCursor   string `json:"endCursor"`
	HasNextPage bool   `json:"hasNextPage"`
}

type translationNode struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

func (t *translationNode) toTranslation() *interfaces.Translation {
	if t == nil {
		return nil
	}
	return &interfaces.Translation{ID: t.ID, Slug: t.Slug}
}

type entityNode struct {
	ID          string           `json:"id"`
	Slug        string           `json:"slug"`
	URI         string           `json:"uri"`
	Modified    string           `json:"modified"`
	Translation *translationNode `json:"translation"`
}

func (n entityNode) toEntity() interfaces.Entity {
	return interfaces.Entity{
		ID:          n.ID,
		Slug:        n.Slug,
		URI:         n.URI,
		ModifiedAt:  parseModified(n.Modified),
		Translation: n.Translation.toTranslation(),
	}
}

func parseModified(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(wpTimeLayout, value); err == nil {
		return ts
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts
	}
	return time.Time{}
}

// ListPages returns all published pages for the locale, walking the cursor
// until the upstream reports no further page.
func (s *Source) ListPages(ctx context.Context, locale locales.Locale) ([]interfaces.Entity, error) {
	var entities []interfaces.Entity
	after := ""
	for {
		var data struct {
			Pages struct {
				PageInfo pageInfo     `json:"pageInfo"`
				Nodes    []entityNode `json:"nodes"`
			} `json:"pages"`
		}
		if err := s.client.Do(ctx, "PagesByLocale", pagesQuery, s.listVariables(locale, after), &data); err != nil {
			return nil, err
		}
		for _, node := range data.Pages.Nodes {
			entities = append(entities, node.toEntity())
		}
		if !data.Pages.PageInfo.HasNextPage {
			return entities, nil
		}
		after = data.Pages.PageInfo.EndCursor
	}
}

type postNode struct {
	entityNode
	Title      string `json:"title"`
	Excerpt    string `json:"excerpt"`
	IsSticky   bool   `json:"isSticky"`
	Categories struct {
		Nodes []struct {
			Slug string `json:"slug"`
		} `json:"nodes"`
	} `json:"categories"`
}

// ListPosts returns all published posts for the locale.
func (s *Source) ListPosts(ctx context.Context, locale locales.Locale) ([]interfaces.Post, error) {
	var posts []interfaces.Post
	after := ""
	for {
		var data struct {
			Posts struct {
				PageInfo pageInfo   `json:"pageInfo"`
				Nodes    []postNode `json:"nodes"`
			} `json:"posts"`
		}
		if err := s.client.Do(ctx, "PostsByLocale", postsQuery, s.listVariables(locale, after), &data); err != nil {
			return nil, err
		}
		for _, node := range data.Posts.Nodes {
			post := interfaces.Post{
				Entity:   node.toEntity(),
				Title:    node.Title,
				Excerpt:  node.Excerpt,
				Featured: node.IsSticky,
			}
			for _, cat := range node.Categories.Nodes {
				post.Categories = append(post.Categories, cat.Slug)
			}
			posts = append(posts, post)
		}
		if !data.Posts.PageInfo.HasNextPage {
			return posts, nil
		}
		after = data.Posts.PageInfo.EndCursor
	}
}

// ListCategories returns the category terms for the locale. Category
// vocabularies are small; a single page is enough.
func (s *Source) ListCategories(ctx context.Context, locale locales.Locale) ([]interfaces.Category, error) {
	var data struct {
		Categories struct {
			Nodes []struct {
				ID          string           `json:"id"`
				Slug        string           `json:"slug"`
				Name        string           `json:"name"`
				Translation *translationNode `json:"translation"`
			} `json:"nodes"`
		} `json:"categories"`
	}
	vars := map[string]any{
		"language":            languageCode(locale),
		"translationLanguage": languageCode(s.cfg.Other(locale)),
	}
	if err := s.client.Do(ctx, "CategoriesByLocale", categoriesQuery, vars, &data); err != nil {
		return nil, err
	}

	categories := make([]interfaces.Category, 0, len(data.Categories.Nodes))
	for _, node := range data.Categories.Nodes {
		categories = append(categories, interfaces.Category{
			Entity: interfaces.Entity{
				ID:          node.ID,
				Slug:        node.Slug,
				Translation: node.Translation.toTranslation(),
			},
			Name: node.Name,
		})
	}
	return categories, nil
}

// ListProjects returns all published projects for the locale.
func (s *Source) ListProjects(ctx context.Context, locale locales.Locale) ([]interfaces.Entity, error) {
	var entities []interfaces.Entity
	after := ""
	for {
		var data struct {
			Projects struct {
				PageInfo pageInfo     `json:"pageInfo"`
				Nodes    []entityNode `json:"nodes"`
			} `json:"projects"`
		}
		if err := s.client.Do(ctx, "ProjectsByLocale", projectsQuery, s.listVariables(locale, after), &data); err != nil {
			return nil, err
		}
		for _, node := range data.Projects.Nodes {
			entities = append(entities, node.toEntity())
		}
		if !data.Projects.PageInfo.HasNextPage {
			return entities, nil
		}
		after = data.Projects.PageInfo.EndCursor
	}
}

// BlogBases resolves the blog index slug per locale from the WordPress
// reading settings. The page-for-posts id points at the page in one locale;
// its translation supplies the other.
func (s *Source) BlogBases(ctx context.Context) (map[locales.Locale]string, error) {
	var settings struct {
		ReadingSettings struct {
			PageForPosts int `json:"pageForPosts"`
		} `json:"readingSettings"`
	}
	if err := s.client.Do(ctx, "BlogPageSettings", blogPageSettingsQuery, nil, &settings); err != nil {
		return nil, err
	}
	if settings.ReadingSettings.PageForPosts == 0 {
		return map[locales.Locale]string{}, nil
	}

	bases := map[locales.Locale]string{}
	for _, locale := range s.cfg.All() {
		var data struct {
			Page *struct {
				Slug     string `json:"slug"`
				Language struct {
					Code string `json:"code"`
				} `json:"language"`
				Translation *struct {
					Slug string `json:"slug"`
				} `json:"translation"`
			} `json:"page"`
		}
		vars := map[string]any{
			"id":                  settings.ReadingSettings.PageForPosts,
			"translationLanguage": languageCode(s.cfg.Other(locale)),
		}
		if err := s.client.Do(ctx, "BlogPageByID", blogPageByIDQuery, vars, &data); err != nil {
			return nil, err
		}
		if data.Page == nil {
			continue
		}
		pageLocale := locales.Locale(strings.ToLower(data.Page.Language.Code))
		if !s.cfg.Contains(pageLocale) {
			pageLocale = locale
		}
		if data.Page.Slug != "" {
			bases[pageLocale] = data.Page.Slug
		}
		if data.Page.Translation != nil && data.Page.Translation.Slug != "" {
			bases[s.cfg.Other(pageLocale)] = data.Page.Translation.Slug
		}
		if len(bases) == 2 {
			break
		}
	}
	return bases, nil
}

// menuLocation returns the registered menu location name for a locale.
// Non-default locales use suffixed registrations.
func (s *Source) menuLocation(base string, locale locales.Locale) string {
	if locale == s.cfg.Default() {
		return base
	}
	return base + "___" + languageCode(locale)
}

// Menus returns every registered menu for the locale, keyed by its base
// location name. A location with no assigned menu yields an empty menu
// rather than an error.
func (s *Source) Menus(ctx context.Context, locale locales.Locale) ([]interfaces.Menu, error) {
	menus := make([]interfaces.Menu, 0, len(menuLocations))
	for _, location := range menuLocations {
		var data struct {
			Menus struct {
				Nodes []struct {
					Name      string `json:"name"`
					MenuItems struct {
						Nodes []struct {
							ID            string `json:"id"`
							Label         string `json:"label"`
							URI           string `json:"uri"`
							URL           string `json:"url"`
							Target        string `json:"target"`
							ConnectedNode *struct {
								Node struct {
									Typename string `json:"__typename"`
								} `json:"node"`
							} `json:"connectedNode"`
						} `json:"nodes"`
					} `json:"menuItems"`
				} `json:"nodes"`
			} `json:"menus"`
		}
		vars := map[string]any{"location": s.menuLocation(location, locale)}
		if err := s.client.Do(ctx, "MenuByLocation", menuQuery, vars, &data); err != nil {
			return nil, err
		}

		menu := interfaces.Menu{Location: location}
		if len(data.Menus.Nodes) == 0 {
			s.logger.Debug("source: no menu assigned to location",
				"location", location, "locale", string(locale))
		}
		if len(data.Menus.Nodes) > 0 {
			node := data.Menus.Nodes[0]
			menu.Name = node.Name
			for _, item := range node.MenuItems.Nodes {
				menu.Items = append(menu.Items, interfaces.MenuItem{
					ID:         item.ID,
					Label:      item.Label,
					URI:        item.URI,
					URL:        item.URL,
					Target:     item.Target,
					IsExternal: item.ConnectedNode == nil,
				})
			}
		}
		menus = append(menus, menu)
	}
	return menus, nil
}

// SendEmail delivers a message through the upstream sendEmail mutation.
func (s *Source) SendEmail(ctx context.Context, input interfaces.EmailInput) error {
	var data struct {
		SendEmail struct {
			Sent    bool   `json:"sent"`
			Message string `json:"message"`
		} `json:"sendEmail"`
	}
	vars := map[string]any{
		"input": map[string]any{
			"clientMutationId": input.ClientMutationID,
			"to":               input.To,
			"from":             input.From,
			"replyTo":          input.ReplyTo,
			"subject":          input.Subject,
			"body":             input.Body,
		},
	}
	if err := s.client.Do(ctx, "SendEmail", sendEmailMutation, vars, &data); err != nil {
		return err
	}
	if !data.SendEmail.Sent {
		return goerrors.Wrap(
			fmt.Errorf("upstream refused delivery: %s", data.SendEmail.Message),
			goerrors.CategoryExternal,
			"source: send email failed",
		).WithTextCode(codeQueryErrors)
	}
	return nil
}

var _ interfaces.ContentSource = (*Source)(nil)
