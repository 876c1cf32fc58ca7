package http

import (
	"context"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/motify/sitekit/internal/blog"
	"github.com/motify/sitekit/internal/caching"
	"github.com/motify/sitekit/internal/contact"
	"github.com/motify/sitekit/internal/logging"
	"github.com/motify/sitekit/internal/menus"
	"github.com/motify/sitekit/internal/routing"
	"github.com/motify/sitekit/internal/sitemap"
	"github.com/motify/sitekit/internal/slugmap"
	"github.com/motify/sitekit/locales"
	"github.com/motify/sitekit/pkg/interfaces"
)

// secretHeader carries the shared revalidation secret.
const secretHeader = "x-revalidate-secret"

// MapsProvider yields current slug maps; satisfied by the slugmap service.
type MapsProvider interface {
	Maps(ctx context.Context) (slugmap.Maps, error)
}

// API bundles the handlers for the public HTTP surface.
type API struct {
	cfg        locales.Config
	translator routing.Translator
	maps       MapsProvider
	store      interfaces.TagStore
	sitemap    *sitemap.Service
	menus      *menus.Service
	blog       *blog.Service
	contact    *contact.Service
	secret     string
	logger     interfaces.Logger
}

// Options collects the API dependencies.
type Options struct {
	Config  locales.Config
	Maps    MapsProvider
	Store   interfaces.TagStore
	Sitemap *sitemap.Service
	Menus   *menus.Service
	Blog    *blog.Service
	Contact *contact.Service
	// Secret guards POST /api/revalidate. An empty secret disables the
	// endpoint rather than leaving it open.
	Secret string
	Logger interfaces.Logger
}

// New constructs the API.
func New(opts Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &API{
		cfg:        opts.Config,
		translator: routing.NewTranslator(opts.Config),
		maps:       opts.Maps,
		store:      opts.Store,
		sitemap:    opts.Sitemap,
		menus:      opts.Menus,
		blog:       opts.Blog,
		contact:    opts.Contact,
		secret:     strings.TrimSpace(opts.Secret),
		logger:     logger,
	}
}

// Register wires the routes onto the mux.
func (api *API) Register(mux *http.ServeMux) {
	if mux == nil {
		return
	}
	mux.HandleFunc("GET /healthz", api.handleHealth)
	mux.HandleFunc("GET /sitemap.xml", api.handleSitemap)
	mux.HandleFunc("GET /api/translate-path", api.handleTranslatePath)
	mux.HandleFunc("GET /api/menus", api.handleMenus)
	mux.HandleFunc("GET /api/blog", api.handleBlog)
	mux.HandleFunc("POST /api/contact", api.handleContact)
	mux.HandleFunc("POST /api/revalidate", api.handleRevalidate)
}

func (api *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type translatePathResponse struct {
	Path       string `json:"path"`
	Kind       string `json:"kind"`
	Source     string `json:"source_locale"`
	Target     string `json:"target_locale"`
	Translated bool   `json:"translated"`
}

func (api *API) handleTranslatePath(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSpace(r.URL.Query().Get("path"))
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "path query parameter required"})
		return
	}
	target := queryLocale(r, "locale", api.cfg)

	maps := slugmap.Empty()
	if api.maps != nil {
		m, err := api.maps.Maps(r.Context())
		if err != nil {
			api.logger.Warn("http: slug maps unavailable, translating without mappings", "error", err)
		} else {
			maps = m
		}
	}

	result := api.translator.TranslateDetailed(path, target, maps)
	writeJSON(w, http.StatusOK, translatePathResponse{
		Path:       result.Path,
		Kind:       string(result.Kind),
		Source:     string(result.Source),
		Target:     string(target),
		Translated: result.Translated,
	})
}

func (api *API) handleSitemap(w http.ResponseWriter, r *http.Request) {
	if api.sitemap == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	doc, err := api.sitemap.Build(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (api *API) handleMenus(w http.ResponseWriter, r *http.Request) {
	if api.menus == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	locale := queryLocale(r, "locale", api.cfg)
	localized, err := api.menus.Menus(r.Context(), locale)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"locale": string(locale),
		"menus":  localized,
	})
}

func (api *API) handleBlog(w http.ResponseWriter, r *http.Request) {
	if api.blog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	locale := queryLocale(r, "locale", api.cfg)
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	index, err := api.blog.Index(r.Context(), locale, category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"locale": string(locale),
		"index":  index,
	})
}

func (api *API) handleContact(w http.ResponseWriter, r *http.Request) {
	if api.contact == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	var msg contact.Message
	if err := decodeJSON(r, &msg); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	if err := api.contact.Submit(r.Context(), msg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sent":    true,
		"message": api.contact.SuccessMessage(msg.Locale),
	})
}

type revalidatePayload struct {
	// Secret is the body-carried alternative to the header.
	Secret      string   `json:"secret,omitempty"`
	ContentType string   `json:"contentType,omitempty"`
	// Type is a shorthand alias some webhook senders use for contentType.
	Type string   `json:"type,omitempty"`
	Tags []string `json:"tags,omitempty"`
}

func (p revalidatePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ContentType, validation.Length(0, 64)),
		validation.Field(&p.Type, validation.Length(0, 64)),
		validation.Field(&p.Tags, validation.Each(validation.Required, validation.Length(1, 64))),
	)
}

func (p revalidatePayload) contentType() string {
	if p.ContentType != "" {
		return p.ContentType
	}
	return p.Type
}

// handleRevalidate invalidates cache tags on behalf of the content backend.
// A misconfigured server (no secret) answers 500 so the webhook shows up as
// failing instead of silently doing nothing.
func (api *API) handleRevalidate(w http.ResponseWriter, r *http.Request) {
	if api.secret == "" {
		api.logger.Error("http: revalidation secret not configured")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error", Message: "revalidation secret not configured"})
		return
	}

	var payload revalidatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	if err := payload.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	provided := r.Header.Get(secretHeader)
	if provided == "" {
		provided = payload.Secret
	}
	if provided != api.secret {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	contentType := payload.contentType()
	tags := caching.ResolveTags(contentType, payload.Tags)
	if api.store != nil {
		if err := api.store.InvalidateTags(r.Context(), tags...); err != nil {
			writeError(w, err)
			return
		}
	}

	api.logger.Info("http: cache tags revalidated", "type", contentType, "tags", strings.Join(tags, ","))
	writeJSON(w, http.StatusOK, map[string]any{
		"revalidated": true,
		"tags":        tags,
	})
}
