// Package locales defines the closed locale set served by sitekit and the
// URL conventions attached to it: the default locale is unprefixed, every
// other locale is prefixed with its code.
package locales

import (
	"errors"
	"fmt"
	"strings"
)

// Locale is a two-letter language code from the configured set.
type Locale string

var (
	ErrDefaultLocaleRequired = errors.New("locales: exactly one default locale is required")
	ErrLocalePairRequired    = errors.New("locales: exactly two locales are required")
	ErrLocaleCodeInvalid     = errors.New("locales: locale code is invalid")
	ErrBlogBaseRequired      = errors.New("locales: blog base segment is required")
)

// Definition describes one supported locale.
type Definition struct {
	Code Locale
	// BlogBase is the blog index path segment for this locale. It differs
	// per locale because the blog landing page carries a translated slug
	// ("nea" vs "news").
	BlogBase string
	Default  bool
}

// Config is the immutable locale configuration constructed once at startup
// and passed explicitly to every consumer. sitekit supports exactly two
// locales; Other is therefore well defined.
type Config struct {
	defs     [2]Definition
	defaults Locale
}

// NewConfig validates the locale pair and returns an immutable Config.
func NewConfig(defs ...Definition) (Config, error) {
	if len(defs) != 2 {
		return Config{}, ErrLocalePairRequired
	}

	var cfg Config
	defaultCount := 0
	for i, def := range defs {
		code := Locale(strings.ToLower(strings.TrimSpace(string(def.Code))))
		if len(code) != 2 {
			return Config{}, fmt.Errorf("%w: %q", ErrLocaleCodeInvalid, def.Code)
		}
		base := strings.Trim(strings.TrimSpace(def.BlogBase), "/")
		if base == "" {
			return Config{}, fmt.Errorf("%w: locale %q", ErrBlogBaseRequired, code)
		}
		cfg.defs[i] = Definition{Code: code, BlogBase: base, Default: def.Default}
		if def.Default {
			defaultCount++
			cfg.defaults = code
		}
	}
	if cfg.defs[0].Code == cfg.defs[1].Code {
		return Config{}, fmt.Errorf("%w: duplicate code %q", ErrLocaleCodeInvalid, cfg.defs[0].Code)
	}
	if defaultCount != 1 {
		return Config{}, ErrDefaultLocaleRequired
	}
	return cfg, nil
}

// Default returns the unprefixed locale.
func (c Config) Default() Locale {
	return c.defaults
}

// All returns both locales, default first.
func (c Config) All() []Locale {
	out := make([]Locale, 0, 2)
	out = append(out, c.defaults)
	out = append(out, c.Other(c.defaults))
	return out
}

// Other returns the sibling of the given locale. Any input other than the
// first configured locale maps to that first locale, so the pair stays closed
// even for unknown inputs.
func (c Config) Other(locale Locale) Locale {
	if c.defs[0].Code == locale {
		return c.defs[1].Code
	}
	return c.defs[0].Code
}

// Contains reports whether code names a configured locale.
func (c Config) Contains(code Locale) bool {
	return code == c.defs[0].Code || code == c.defs[1].Code
}

// BlogBase returns the blog index segment for the locale.
func (c Config) BlogBase(locale Locale) string {
	for _, def := range c.defs {
		if def.Code == locale {
			return def.BlogBase
		}
	}
	return c.defs[0].BlogBase
}

// BlogBases returns every configured blog base segment. Paths beginning
// with either base are blog paths regardless of the source locale.
func (c Config) BlogBases() []string {
	return []string{c.defs[0].BlogBase, c.defs[1].BlogBase}
}

// Prefix returns the URL prefix for the locale: "" for the default locale,
// "/{code}" otherwise.
func (c Config) Prefix(locale Locale) string {
	if locale == c.defaults {
		return ""
	}
	return "/" + string(locale)
}

// SplitPrefix strips a recognized locale prefix from path segments and
// returns the implied source locale. Paths without a recognized prefix
// belong to the default locale.
func (c Config) SplitPrefix(segments []string) (Locale, []string) {
	if len(segments) > 0 && c.Contains(Locale(segments[0])) {
		return Locale(segments[0]), segments[1:]
	}
	return c.defaults, segments
}
