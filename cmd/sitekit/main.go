package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	urlkit "github.com/goliatone/go-urlkit"

	sitekit "github.com/motify/sitekit"
)

func main() {
	cfg := sitekit.DefaultConfig()
	cfg.SiteURL = envOr("SITEKIT_SITE_URL", "https://motify.gr")
	cfg.Source.Endpoint = os.Getenv("SITEKIT_GRAPHQL_ENDPOINT")
	cfg.Source.AuthToken = os.Getenv("SITEKIT_WP_AUTH_TOKEN")
	cfg.Revalidate.Secret = os.Getenv("SITEKIT_REVALIDATE_SECRET")
	cfg.HTTP.Addr = envOr("SITEKIT_ADDR", cfg.HTTP.Addr)
	cfg.Logging.Level = envOr("SITEKIT_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = envOr("SITEKIT_LOG_FORMAT", cfg.Logging.Format)

	if path := strings.TrimSpace(os.Getenv("SITEKIT_SNAPSHOT_PATH")); path != "" {
		cfg.Snapshot.Enabled = true
		cfg.Snapshot.Path = path
	}
	if to := strings.TrimSpace(os.Getenv("SITEKIT_CONTACT_TO")); to != "" {
		cfg.Contact.Enabled = true
		cfg.Contact.To = to
		cfg.Contact.From = envOr("SITEKIT_CONTACT_FROM", "no-reply@motify.gr")
	}

	cfg.Navigation = &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    "site",
				BaseURL: cfg.SiteURL,
				Paths: map[string]string{
					"home":     "/",
					"blog":     "/nea",
					"projects": "/projects",
					"project":  "/projects/:slug",
					"page":     "/:slug",
				},
				Groups: []urlkit.GroupConfig{
					{
						Name: "en",
						Path: "/en",
						Paths: map[string]string{
							"home":     "/",
							"blog":     "/news",
							"projects": "/projects",
							"project":  "/projects/:slug",
							"page":     "/:slug",
						},
					},
				},
			},
		},
	}

	module, err := sitekit.New(cfg)
	if err != nil {
		log.Fatalf("initialise sitekit: %v", err)
	}
	defer module.Close()

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           module.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("sitekit listening on %s", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
