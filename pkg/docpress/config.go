package docpress

import (
	"errors"
	"os"
	"strings"
)

// Config contains the engine's configuration switches.
type Config struct {
	// WatchEnabled turns on template hot reload: the loader watches the
	// backing source and invalidates changed entries. Off means a name is
	// never re-read after its first load for the process lifetime.
	WatchEnabled bool
	// StrictValidation fails a render on validation issues instead of
	// logging them and proceeding.
	StrictValidation bool
	// DefaultLocale is used when a render is asked for with an
	// unrecognized locale tag.
	DefaultLocale Locale
}

// DefaultConfig returns the default configuration: no watching, lenient
// validation, English fallback.
func DefaultConfig() *Config {
	return &Config{
		WatchEnabled:     false,
		StrictValidation: false,
		DefaultLocale:    DefaultLocale,
	}
}

// ConfigFromEnvironment creates a configuration from DOCPRESS_* environment
// variables, falling back to defaults for unset or unparseable values.
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	if val := os.Getenv("DOCPRESS_WATCH"); val != "" {
		config.WatchEnabled = parseBool(val)
	}

	if val := os.Getenv("DOCPRESS_STRICT"); val != "" {
		config.StrictValidation = parseBool(val)
	}

	if val := os.Getenv("DOCPRESS_DEFAULT_LOCALE"); val != "" {
		if locale, ok := ParseLocale(val); ok {
			config.DefaultLocale = locale
		}
	}

	return config
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, ok := ParseLocale(string(c.DefaultLocale)); !ok {
		return errors.New("unsupported default locale: " + string(c.DefaultLocale))
	}
	return nil
}

// parseBool parses a boolean value from a string.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
