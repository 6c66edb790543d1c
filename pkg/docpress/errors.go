package docpress

import "fmt"

// NotFoundError reports that no backing file exists for a template name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template %q not found", e.Name)
}

// NewNotFoundError creates a not-found error for a template name.
func NewNotFoundError(name string) error {
	return &NotFoundError{Name: name}
}

// CorruptError reports a backing file that exists but cannot be read.
type CorruptError struct {
	Name  string
	Cause error
}

func (e *CorruptError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template %q unreadable: %v", e.Name, e.Cause)
	}
	return fmt.Sprintf("template %q unreadable", e.Name)
}

func (e *CorruptError) Unwrap() error {
	return e.Cause
}

// NewCorruptError creates a corrupt-template error wrapping the read failure.
func NewCorruptError(name string, cause error) error {
	return &CorruptError{Name: name, Cause: cause}
}

// TemplateSyntaxError reports malformed directive syntax: an unterminated
// block, a stray closing tag, or a block directive with no path.
type TemplateSyntaxError struct {
	Message  string
	Token    string
	Position int
}

func (e *TemplateSyntaxError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("template syntax error at offset %d near %q: %s", e.Position, e.Token, e.Message)
	}
	return fmt.Sprintf("template syntax error at offset %d: %s", e.Position, e.Message)
}

// NewTemplateSyntaxError creates a syntax error with source position information.
func NewTemplateSyntaxError(message, token string, position int) error {
	return &TemplateSyntaxError{Message: message, Token: token, Position: position}
}

// InvalidDateError reports date input the formatter cannot interpret. A bad
// date is a data-integrity bug worth surfacing, so unlike missing paths it
// is not silently degraded.
type InvalidDateError struct {
	Input interface{}
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date value: %v (%T)", e.Input, e.Input)
}

// NewInvalidDateError creates an invalid-date error for the given input.
func NewInvalidDateError(input interface{}) error {
	return &InvalidDateError{Input: input}
}

// ValidationError is returned by a strict-mode render when static
// validation found issues. Lenient renders log the issues and proceed.
type ValidationError struct {
	Name   string
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("template %q failed validation: %s", e.Name, e.Issues[0])
	}
	return fmt.Sprintf("template %q failed validation with %d issues", e.Name, len(e.Issues))
}

// IsNotFound checks if an error is a template not-found error.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsCorrupt checks if an error is a corrupt-template error.
func IsCorrupt(err error) bool {
	_, ok := err.(*CorruptError)
	return ok
}

// IsTemplateSyntaxError checks if an error is a template syntax error.
func IsTemplateSyntaxError(err error) bool {
	_, ok := err.(*TemplateSyntaxError)
	return ok
}

// IsInvalidDate checks if an error is an invalid-date error.
func IsInvalidDate(err error) bool {
	_, ok := err.(*InvalidDateError)
	return ok
}
