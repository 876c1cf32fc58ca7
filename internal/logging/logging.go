package logging

import (
	"context"
	"maps"

	"github.com/motify/sitekit/pkg/interfaces"
)

const (
	rootModule       = "sitekit"
	sourceModule     = "sitekit.source"
	slugmapModule    = "sitekit.slugmap"
	sitemapModule    = "sitekit.sitemap"
	cacheModule      = "sitekit.cache"
	httpModule       = "sitekit.http"
	menusModule      = "sitekit.menus"
	contactModule    = "sitekit.contact"
	snapshotModule   = "sitekit.snapshot"
	blogModule       = "sitekit.blog"
	revalidateModule = "sitekit.revalidate"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{"module": module})
}

// SourceLogger returns the namespace reserved for the content source adapter.
func SourceLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sourceModule)
}

// SlugMapLogger returns the namespace reserved for slug map construction.
func SlugMapLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, slugmapModule)
}

// SitemapLogger returns the namespace reserved for sitemap generation.
func SitemapLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sitemapModule)
}

// CacheLogger returns the namespace reserved for the cache layer.
func CacheLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, cacheModule)
}

// HTTPLogger returns the namespace reserved for the HTTP surface.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// MenusLogger returns the namespace reserved for menu resolution.
func MenusLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, menusModule)
}

// ContactLogger returns the namespace reserved for the contact pipeline.
func ContactLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contactModule)
}

// SnapshotLogger returns the namespace reserved for snapshot persistence.
func SnapshotLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, snapshotModule)
}

// BlogLogger returns the namespace reserved for blog index assembly.
func BlogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, blogModule)
}

// RevalidateLogger returns the namespace reserved for cache invalidation.
func RevalidateLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, revalidateModule)
}

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Callers can pass nil or an
// empty map safely.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// NoOp returns a logger that drops every entry. It satisfies the Logger
// contract so services can operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
