// Package runtimeconfig aggregates the startup configuration for sitekit.
package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

var ErrSiteURLRequired = errors.New("sitekit config: site URL is required")
var ErrGraphQLEndpointRequired = errors.New("sitekit config: graphql endpoint is required")
var ErrLocaleRequired = errors.New("sitekit config: both locale definitions are required")
var ErrContactMailboxRequired = errors.New("sitekit config: contact feature requires to and from addresses")
var ErrSnapshotPathRequired = errors.New("sitekit config: snapshot feature requires a database path")
var ErrLoggingLevelInvalid = errors.New("sitekit config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("sitekit config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for sitekit.
type Config struct {
	// SiteURL is the public origin, without a trailing slash.
	SiteURL string
	Source  SourceConfig
	Locales LocalesConfig
	Cache   CacheConfig
	// Navigation configures the urlkit route manager used for canonical
	// menu URLs. Nil disables route-based resolution.
	Navigation *urlkit.Config
	Snapshot   SnapshotConfig
	Contact    ContactConfig
	Revalidate RevalidateConfig
	HTTP       HTTPConfig
	Logging    LoggingConfig
}

// SourceConfig points at the WPGraphQL backend.
type SourceConfig struct {
	Endpoint  string
	AuthToken string
	Timeout   time.Duration
}

// LocaleDefinition describes one locale for config surfaces.
type LocaleDefinition struct {
	Code     string
	BlogBase string
	Default  bool
}

// LocalesConfig captures the locale pair.
type LocalesConfig struct {
	Definitions []LocaleDefinition
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled bool
}

// SnapshotConfig enables last-known-good persistence through SQLite.
type SnapshotConfig struct {
	Enabled bool
	// Path is the SQLite database file.
	Path string
}

// ContactConfig wires the contact form mailboxes.
type ContactConfig struct {
	Enabled bool
	To      string
	From    string
}

// RevalidateConfig guards the cache invalidation webhook.
type RevalidateConfig struct {
	Secret string
}

// HTTPConfig captures listener settings.
type HTTPConfig struct {
	Addr string
}

// LoggingConfig captures options for the gologger provider.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns defaults for the motify.gr deployment shape: Greek
// default locale, English sibling, in-memory cache enabled.
func DefaultConfig() Config {
	return Config{
		Locales: LocalesConfig{
			Definitions: []LocaleDefinition{
				{Code: "el", BlogBase: "nea", Default: true},
				{Code: "en", BlogBase: "news"},
			},
		},
		Cache: CacheConfig{Enabled: true},
		Source: SourceConfig{
			Timeout: 15 * time.Second,
		},
		Snapshot: SnapshotConfig{
			Path: "sitekit.db",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.SiteURL) == "" {
		return ErrSiteURLRequired
	}
	if strings.TrimSpace(cfg.Source.Endpoint) == "" {
		return ErrGraphQLEndpointRequired
	}
	if len(cfg.Locales.Definitions) != 2 {
		return ErrLocaleRequired
	}
	if cfg.Contact.Enabled {
		if strings.TrimSpace(cfg.Contact.To) == "" || strings.TrimSpace(cfg.Contact.From) == "" {
			return ErrContactMailboxRequired
		}
	}
	if cfg.Snapshot.Enabled && strings.TrimSpace(cfg.Snapshot.Path) == "" {
		return ErrSnapshotPathRequired
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
