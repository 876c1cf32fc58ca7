// Package http exposes the sitekit HTTP surface: path translation, the
// sitemap, localized menus, the blog index, the contact form, and the
// tag-based revalidation webhook.
package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/motify/sitekit/locales"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	payload := errorResponse{Message: err.Error()}
	switch {
	case goerrors.IsCategory(err, goerrors.CategoryValidation):
		payload.Error = "validation_failed"
		return http.StatusUnprocessableEntity, payload
	case goerrors.IsCategory(err, goerrors.CategoryExternal):
		payload.Error = "upstream_unavailable"
		return http.StatusBadGateway, payload
	default:
		payload.Error = "internal_error"
		return http.StatusInternalServerError, payload
	}
}

// queryLocale reads a locale query parameter, defaulting to the configured
// default locale when missing or unknown.
func queryLocale(r *http.Request, key string, cfg locales.Config) locales.Locale {
	value := locales.Locale(strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key))))
	if cfg.Contains(value) {
		return value
	}
	return cfg.Default()
}
