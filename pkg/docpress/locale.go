package docpress

// Locale selects the translation table and the date/address formatting
// rules for one render call. The set is closed; currency formatting is
// deliberately locale-invariant in this domain.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleVI Locale = "vi"
)

// DefaultLocale is the fallback table for translation lookups against an
// unknown locale.
const DefaultLocale = LocaleEN

// SupportedLocales lists every locale the formatter has rules for.
func SupportedLocales() []Locale {
	return []Locale{LocaleEN, LocaleVI}
}

// ParseLocale maps a locale tag to the closed enumeration. Unknown tags
// report ok=false; callers decide whether to fall back or reject.
func ParseLocale(tag string) (Locale, bool) {
	switch Locale(tag) {
	case LocaleEN:
		return LocaleEN, true
	case LocaleVI:
		return LocaleVI, true
	default:
		return DefaultLocale, false
	}
}
