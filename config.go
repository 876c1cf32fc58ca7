package sitekit

import "github.com/motify/sitekit/internal/runtimeconfig"

// Config re-exports the runtime configuration for module hosts.
type Config = runtimeconfig.Config

// SourceConfig re-exports the backend settings.
type SourceConfig = runtimeconfig.SourceConfig

// LocalesConfig re-exports the locale pair settings.
type LocalesConfig = runtimeconfig.LocalesConfig

// LocaleDefinition re-exports a single locale definition.
type LocaleDefinition = runtimeconfig.LocaleDefinition

// CacheConfig re-exports the cache toggles.
type CacheConfig = runtimeconfig.CacheConfig

// SnapshotConfig re-exports the snapshot persistence settings.
type SnapshotConfig = runtimeconfig.SnapshotConfig

// ContactConfig re-exports the contact form settings.
type ContactConfig = runtimeconfig.ContactConfig

// RevalidateConfig re-exports the webhook settings.
type RevalidateConfig = runtimeconfig.RevalidateConfig

// HTTPConfig re-exports the listener settings.
type HTTPConfig = runtimeconfig.HTTPConfig

// LoggingConfig re-exports the go-logger options.
type LoggingConfig = runtimeconfig.LoggingConfig

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
