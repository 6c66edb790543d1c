package docpress

import "strings"

// htmlEscaper rewrites the characters that can break out of an HTML text
// context. The replacement set and entities are fixed; output is part of the
// engine's compatibility contract.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// EscapeHTML converts raw text into HTML-safe text. Every interpolated value
// passes through here unless the template asks for raw output.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
