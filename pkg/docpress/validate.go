package docpress

import (
	"fmt"
	"strings"
)

// IssueCode classifies a validation issue.
type IssueCode string

const (
	IssueUnclosedBlock      IssueCode = "UNCLOSED_BLOCK"
	IssueUnexpectedClose    IssueCode = "UNEXPECTED_CLOSE"
	IssueCrossedBlock       IssueCode = "CROSSED_BLOCK"
	IssueMalformedDirective IssueCode = "MALFORMED_DIRECTIVE"
	IssueMissingPlaceholder IssueCode = "MISSING_PLACEHOLDER"
)

// ValidationIssue is one problem found by static validation.
type ValidationIssue struct {
	Code     IssueCode
	Message  string
	Tag      string
	Position int
}

func (i ValidationIssue) String() string {
	if i.Tag != "" {
		return fmt.Sprintf("%s at offset %d near %q: %s", i.Code, i.Position, i.Tag, i.Message)
	}
	return fmt.Sprintf("%s: %s", i.Code, i.Message)
}

// ValidationResult reports whether a template passed static validation.
// Issues are data; validation never fails a render on its own.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// Validate statically checks template text: every block tag closes, tags
// do not cross, and directives are well formed. It does not evaluate
// data-dependent correctness; a valid template may still reference paths
// that are always absent.
func Validate(text string) ValidationResult {
	return ValidateRequired(text, nil)
}

// ValidateRequired additionally checks that each required placeholder path
// appears somewhere in the template as an interpolation.
func ValidateRequired(text string, required []string) ValidationResult {
	var issues []ValidationIssue
	seen := make(map[string]bool)

	// Stack of open block tokens, for nearest-unclosed-tag matching.
	var stack []Token

	for _, tok := range Tokenize(text) {
		switch tok.Type {
		case TokenIf, TokenEach:
			if tok.Value == "" {
				issues = append(issues, ValidationIssue{
					Code:     IssueMalformedDirective,
					Message:  tok.Type.String() + " requires a path",
					Tag:      tok.Raw,
					Position: tok.Pos,
				})
			}
			stack = append(stack, tok)

		case TokenEndIf, TokenEndEach:
			want := TokenIf
			if tok.Type == TokenEndEach {
				want = TokenEach
			}
			if len(stack) == 0 {
				issues = append(issues, ValidationIssue{
					Code:     IssueUnexpectedClose,
					Message:  tok.Type.String() + " without an open block",
					Tag:      tok.Raw,
					Position: tok.Pos,
				})
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.Type != want {
				issues = append(issues, ValidationIssue{
					Code: IssueCrossedBlock,
					Message: fmt.Sprintf("%s closes %s opened at offset %d",
						tok.Type, top.Type, top.Pos),
					Tag:      tok.Raw,
					Position: tok.Pos,
				})
			}

		case TokenElse:
			if !insideIf(stack) {
				issues = append(issues, ValidationIssue{
					Code:     IssueMalformedDirective,
					Message:  "else outside a conditional block",
					Tag:      tok.Raw,
					Position: tok.Pos,
				})
			}

		case TokenTranslate:
			if tok.Value == "" {
				issues = append(issues, ValidationIssue{
					Code:     IssueMalformedDirective,
					Message:  "translation directive requires a quoted key",
					Tag:      tok.Raw,
					Position: tok.Pos,
				})
			}

		case TokenVariable, TokenRawVariable:
			seen[strings.TrimSpace(tok.Value)] = true
		}
	}

	for _, open := range stack {
		issues = append(issues, ValidationIssue{
			Code:     IssueUnclosedBlock,
			Message:  open.Type.String() + " block is never closed",
			Tag:      open.Raw,
			Position: open.Pos,
		})
	}

	for _, path := range required {
		if !seen[path] {
			issues = append(issues, ValidationIssue{
				Code:    IssueMissingPlaceholder,
				Message: fmt.Sprintf("required placeholder {{%s}} is missing", path),
				Tag:     "{{" + path + "}}",
			})
		}
	}

	return ValidationResult{Valid: len(issues) == 0, Issues: issues}
}

// insideIf reports whether the innermost open block is a conditional. An
// else belongs to the nearest unclosed #if only.
func insideIf(stack []Token) bool {
	return len(stack) > 0 && stack[len(stack)-1].Type == TokenIf
}
