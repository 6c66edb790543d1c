package docpress

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// currencySymbol is appended to every formatted amount. Currency display is
// the same in every supported locale; only text and dates vary.
const currencySymbol = "₫"

// currencyGroupSep separates thousands groups in formatted amounts.
const currencyGroupSep = "."

// FormatCurrency renders a numeric amount as a thousands-grouped integer
// followed by the currency symbol. Identical output for every locale, and
// zero renders as "0 ₫".
func FormatCurrency(amount float64, locale Locale) string {
	n := int64(math.Round(amount))
	neg := n < 0
	if neg {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := strings.Join(groups, currencyGroupSep)
	if neg {
		out = "-" + out
	}
	return out + " " + currencySymbol
}

// dateLayouts gives the day/month/year field order per locale.
var dateLayouts = map[Locale]string{
	LocaleEN: "01/02/2006",
	LocaleVI: "02/01/2006",
}

// dateInputFormats are the string encodings the formatter accepts for date
// values arriving from a data context.
var dateInputFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate renders day, month, and year in the locale's field order.
// Accepts a time.Time, an ISO-style date string, or a Unix timestamp;
// anything else is an InvalidDateError, the only formatter error.
func FormatDate(value interface{}, locale Locale) (string, error) {
	t, err := parseDate(value)
	if err != nil {
		return "", err
	}
	layout, ok := dateLayouts[locale]
	if !ok {
		layout = dateLayouts[DefaultLocale]
	}
	return t.Format(layout), nil
}

// parseDate interprets the date encodings a data context may carry.
func parseDate(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, NewInvalidDateError(value)
		}
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, NewInvalidDateError(value)
		}
		return parseDate(*v)
	case string:
		for _, layout := range dateInputFormats {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, NewInvalidDateError(value)
	case int64:
		return time.Unix(v, 0).UTC(), nil
	case int:
		return time.Unix(int64(v), 0).UTC(), nil
	case float64:
		return time.Unix(int64(v), 0).UTC(), nil
	default:
		return time.Time{}, NewInvalidDateError(value)
	}
}

// Address is the structured input for FormatAddress.
type Address struct {
	Name       string
	Lines      []string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
}

// FormatAddress joins address fields into the fixed multi-line layout:
// name, street lines, city/state/postal, country, then phone. The line
// order never varies by locale; only the phone label does.
func FormatAddress(addr Address, locale Locale) string {
	var lines []string

	if addr.Name != "" {
		lines = append(lines, addr.Name)
	}
	for _, l := range addr.Lines {
		if l != "" {
			lines = append(lines, l)
		}
	}

	var cityParts []string
	if addr.City != "" {
		cityParts = append(cityParts, addr.City)
	}
	if addr.State != "" {
		cityParts = append(cityParts, addr.State)
	}
	locality := strings.Join(cityParts, ", ")
	if addr.PostalCode != "" {
		if locality != "" {
			locality += " " + addr.PostalCode
		} else {
			locality = addr.PostalCode
		}
	}
	if locality != "" {
		lines = append(lines, locality)
	}

	if addr.Country != "" {
		lines = append(lines, addr.Country)
	}
	if addr.Phone != "" {
		label := Translate("address.phone_label", locale, nil)
		lines = append(lines, label+": "+FormatPhoneNumber(addr.Phone, locale))
	}

	return strings.Join(lines, "\n")
}

// phoneRule rewrites a national trunk prefix into the country code.
type phoneRule struct {
	trunkPrefix string
	countryCode string
}

var phoneRules = map[Locale]phoneRule{
	LocaleVI: {trunkPrefix: "0", countryCode: "+84"},
}

// FormatPhoneNumber normalizes a national number into international form
// for locales with a trunk-prefix rule. Input that does not look like a
// trunk-prefixed digit string passes through untouched.
func FormatPhoneNumber(phone string, locale Locale) string {
	rule, ok := phoneRules[locale]
	if !ok {
		return phone
	}

	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '.' {
			return -1
		}
		return r
	}, strings.TrimSpace(phone))

	if !strings.HasPrefix(cleaned, rule.trunkPrefix) {
		return phone
	}
	rest := cleaned[len(rule.trunkPrefix):]
	if rest == "" || !isDigits(rest) {
		return phone
	}
	return rule.countryCode + " " + rest
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
