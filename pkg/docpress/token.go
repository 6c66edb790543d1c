package docpress

import (
	"regexp"
	"strings"
)

// TokenType represents the type of a template token.
type TokenType int

const (
	TokenText TokenType = iota
	TokenVariable
	TokenRawVariable
	TokenIf
	TokenElse
	TokenEndIf
	TokenEach
	TokenEndEach
	TokenTranslate
)

func (t TokenType) String() string {
	switch t {
	case TokenText:
		return "text"
	case TokenVariable:
		return "variable"
	case TokenRawVariable:
		return "raw"
	case TokenIf:
		return "#if"
	case TokenElse:
		return "else"
	case TokenEndIf:
		return "/if"
	case TokenEach:
		return "#each"
	case TokenEndEach:
		return "/each"
	case TokenTranslate:
		return "t"
	default:
		return "unknown"
	}
}

// Token is one lexical unit of a template: literal text or a directive.
// Pos is the byte offset of the token in the source, used for error
// reporting and validation issues.
type Token struct {
	Type  TokenType
	Value string
	Raw   string
	Pos   int
}

// Raw triple-stash markers must match before the double-stash alternative.
var tokenRegex = regexp.MustCompile(`\{\{\{\s*([^}]*?)\s*\}\}\}|\{\{([^}]*)\}\}`)

// translateRegex matches a translation directive with a single- or
// double-quoted key.
var translateRegex = regexp.MustCompile(`^t\s+(?:'([^']*)'|"([^"]*)")$`)

// Tokenize splits a template string into tokens. Directive markers with
// empty content pass through as literal text; structural problems are left
// for the parser, which has enough context to report them.
func Tokenize(input string) []Token {
	var tokens []Token
	lastEnd := 0

	for _, match := range tokenRegex.FindAllStringSubmatchIndex(input, -1) {
		if match[0] > lastEnd {
			tokens = append(tokens, Token{
				Type:  TokenText,
				Value: input[lastEnd:match[0]],
				Pos:   lastEnd,
			})
		}

		raw := input[match[0]:match[1]]
		if match[2] >= 0 {
			// Triple-stash: raw interpolation, never escaped.
			tokens = append(tokens, Token{
				Type:  TokenRawVariable,
				Value: strings.TrimSpace(input[match[2]:match[3]]),
				Raw:   raw,
				Pos:   match[0],
			})
		} else {
			content := strings.TrimSpace(input[match[4]:match[5]])
			if content == "" {
				tokens = append(tokens, Token{Type: TokenText, Value: raw, Pos: match[0]})
			} else {
				tok := classifyToken(content)
				tok.Raw = raw
				tok.Pos = match[0]
				tokens = append(tokens, tok)
			}
		}

		lastEnd = match[1]
	}

	if lastEnd < len(input) {
		tokens = append(tokens, Token{Type: TokenText, Value: input[lastEnd:], Pos: lastEnd})
	}

	return tokens
}

// classifyToken determines the directive type from the marker content.
func classifyToken(content string) Token {
	switch {
	case content == "else":
		return Token{Type: TokenElse}
	case content == "/if":
		return Token{Type: TokenEndIf}
	case content == "/each":
		return Token{Type: TokenEndEach}
	case content == "#if" || strings.HasPrefix(content, "#if "):
		return Token{
			Type:  TokenIf,
			Value: strings.TrimSpace(strings.TrimPrefix(content, "#if")),
		}
	case content == "#each" || strings.HasPrefix(content, "#each "):
		return Token{
			Type:  TokenEach,
			Value: strings.TrimSpace(strings.TrimPrefix(content, "#each")),
		}
	case content == "t" || strings.HasPrefix(content, "t "):
		if m := translateRegex.FindStringSubmatch(content); m != nil {
			key := m[1]
			if key == "" {
				key = m[2]
			}
			return Token{Type: TokenTranslate, Value: key}
		}
		// Malformed key quoting; the parser reports it with position info.
		return Token{Type: TokenTranslate, Value: ""}
	default:
		return Token{Type: TokenVariable, Value: content}
	}
}
