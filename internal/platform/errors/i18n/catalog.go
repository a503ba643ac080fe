// Package i18n provides internationalization support for error messages.
package i18n

import (
	"bytes"
	"strings"
	"text/template"

	"golang.org/x/text/language"
)

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

var catalogs = map[string]*Catalog{
	"en-US": enUSCatalog,
	"pt-BR": ptBRCatalog,
}

var matcher = newMatcher()

func newMatcher() language.Matcher {
	// The first tag is the fallback when no supported locale matches.
	tags := []language.Tag{language.MustParse("en-US"), language.MustParse("pt-BR")}
	return language.NewMatcher(tags)
}

// GetCatalog returns the catalog for the given locale.
// Unknown or empty locales resolve to en-US through language matching, so
// requests like "pt" or "en-GB" land on the closest supported catalog.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = BaseLocale
	}
	if c, ok := catalogs[requested]; ok {
		return c
	}

	tag, _ := language.MatchStrings(matcher, requested)
	base, _ := tag.Base()
	region, _ := tag.Region()
	resolved := base.String() + "-" + region.String()
	if c, ok := catalogs[resolved]; ok {
		return c
	}
	return catalogs[BaseLocale]
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the error code itself if no template is found.
// Templates are always executed even with nil/empty metadata to ensure
// consistent output (template variables without metadata render as empty).
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}

	if metadata == nil {
		metadata = map[string]string{}
	}

	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}
