package sitemap

import (
	"encoding/xml"
	"strconv"
	"strings"
)

const (
	urlsetOpen = `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9" xmlns:xhtml="http://www.w3.org/1999/xhtml">`
	header     = `<?xml version="1.0" encoding="UTF-8"?>`
)

// Render serializes entries as a sitemap XML document.
func Render(entries []Entry) []byte {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(urlsetOpen)
	b.WriteString("\n")

	for _, entry := range entries {
		b.WriteString("  <url>\n")
		b.WriteString("    <loc>")
		writeEscaped(&b, entry.Loc)
		b.WriteString("</loc>\n")
		if !entry.LastMod.IsZero() {
			b.WriteString("    <lastmod>")
			b.WriteString(entry.LastMod.UTC().Format("2006-01-02T15:04:05Z07:00"))
			b.WriteString("</lastmod>\n")
		}
		if entry.Priority > 0 {
			b.WriteString("    <priority>")
			b.WriteString(strconv.FormatFloat(entry.Priority, 'f', 1, 64))
			b.WriteString("</priority>\n")
		}
		for _, alt := range entry.Alternates {
			b.WriteString(`    <xhtml:link rel="alternate" hreflang="`)
			writeEscaped(&b, alt.Hreflang)
			b.WriteString(`" href="`)
			writeEscaped(&b, alt.Href)
			b.WriteString("\"/>\n")
		}
		b.WriteString("  </url>\n")
	}

	b.WriteString("</urlset>\n")
	return []byte(b.String())
}

func writeEscaped(b *strings.Builder, value string) {
	xml.EscapeText(b, []byte(value))
}
