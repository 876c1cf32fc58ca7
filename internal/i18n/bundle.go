// Package i18n carries the static UI strings sitekit emits itself, keyed by
// locale. Content translation lives in the slug maps; this covers the
// handful of messages that are not backend content.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/motify/sitekit/locales"
)

//go:embed messages/*.json
var messageFiles embed.FS

// Bundle resolves message keys per locale with fallback to the default
// locale. Bundles are immutable after Load.
type Bundle struct {
	cfg      locales.Config
	messages map[locales.Locale]map[string]string
}

// Load parses the embedded message files for the configured locales.
func Load(cfg locales.Config) (*Bundle, error) {
	bundle := &Bundle{
		cfg:      cfg,
		messages: map[locales.Locale]map[string]string{},
	}
	for _, locale := range cfg.All() {
		data, err := messageFiles.ReadFile(fmt.Sprintf("messages/%s.json", locale))
		if err != nil {
			return nil, fmt.Errorf("i18n: read messages for %q: %w", locale, err)
		}
		table := map[string]string{}
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("i18n: decode messages for %q: %w", locale, err)
		}
		bundle.messages[locale] = table
	}
	return bundle, nil
}

// T resolves a message key for a locale. Missing keys fall back to the
// default locale, then to the key itself so gaps stay visible.
func (b *Bundle) T(locale locales.Locale, key string) string {
	if table, ok := b.messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if table, ok := b.messages[b.cfg.Default()]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	return key
}

// Has reports whether a key exists for the locale without fallback.
func (b *Bundle) Has(locale locales.Locale, key string) bool {
	table, ok := b.messages[locale]
	if !ok {
		return false
	}
	_, ok = table[key]
	return ok
}
