package docpress

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFiles embed.FS

// translationTable maps flat dotted keys to translated strings.
type translationTable map[string]string

// Catalog holds one translation table per locale plus the fallback locale
// used for lookups against a locale with no table. Read-only after
// construction, so concurrent renders share it without locking.
type Catalog struct {
	tables   map[Locale]translationTable
	fallback Locale
}

// NewCatalog creates an empty catalog with the given fallback locale.
func NewCatalog(fallback Locale) *Catalog {
	return &Catalog{
		tables:   make(map[Locale]translationTable),
		fallback: fallback,
	}
}

// Merge adds entries to a locale's table, overriding existing keys.
func (c *Catalog) Merge(locale Locale, entries map[string]string) {
	table, ok := c.tables[locale]
	if !ok {
		table = make(translationTable, len(entries))
		c.tables[locale] = table
	}
	for k, v := range entries {
		table[k] = v
	}
}

// MergeYAML adds entries parsed from a YAML document with nested sections;
// nesting flattens into dotted keys.
func (c *Catalog) MergeYAML(locale Locale, data []byte) error {
	entries, err := parseTranslationYAML(data)
	if err != nil {
		return err
	}
	c.Merge(locale, entries)
	return nil
}

// Lookup resolves a key against the locale's table with {param}-style
// placeholder interpolation. A missing key returns the key itself; a
// missing locale falls back to the fallback locale's table.
func (c *Catalog) Lookup(key string, locale Locale, params map[string]string) string {
	table, ok := c.tables[locale]
	if !ok {
		table = c.tables[c.fallback]
	}

	text, ok := table[key]
	if !ok {
		// Unknown keys surface verbatim so a missing entry is visible in
		// the document rather than silently blank.
		return key
	}

	for name, value := range params {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}

// Clone returns an independent copy, so per-engine overrides never touch
// the shared default catalog.
func (c *Catalog) Clone() *Catalog {
	clone := NewCatalog(c.fallback)
	for locale, table := range c.tables {
		entries := make(map[string]string, len(table))
		for k, v := range table {
			entries[k] = v
		}
		clone.tables[locale] = entries
	}
	return clone
}

// parseTranslationYAML flattens a nested YAML mapping into dotted keys.
func parseTranslationYAML(data []byte) (map[string]string, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse translation table: %w", err)
	}

	entries := make(map[string]string)
	flattenTranslations("", raw, entries)
	return entries, nil
}

func flattenTranslations(prefix string, node map[string]interface{}, into map[string]string) {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]interface{}:
			flattenTranslations(full, v, into)
		case string:
			into[full] = v
		default:
			into[full] = fmt.Sprintf("%v", v)
		}
	}
}

// defaultCatalog carries the embedded en/vi tables. Loaded once at init;
// read-only afterwards.
var defaultCatalog = loadDefaultCatalog()

func loadDefaultCatalog() *Catalog {
	catalog := NewCatalog(DefaultLocale)
	for _, locale := range SupportedLocales() {
		data, err := localeFiles.ReadFile("locales/" + string(locale) + ".yaml")
		if err != nil {
			panic(fmt.Sprintf("docpress: embedded locale %s missing: %v", locale, err))
		}
		if err := catalog.MergeYAML(locale, data); err != nil {
			panic(fmt.Sprintf("docpress: embedded locale %s invalid: %v", locale, err))
		}
	}
	return catalog
}

// DefaultCatalog returns a copy of the built-in translation tables.
func DefaultCatalog() *Catalog {
	return defaultCatalog.Clone()
}

// Translate resolves a key against the built-in tables. Engines with merged
// custom tables use their own catalog instead.
func Translate(key string, locale Locale, params map[string]string) string {
	return defaultCatalog.Lookup(key, locale, params)
}
