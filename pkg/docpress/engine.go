package docpress

import (
	"fmt"

	"go.uber.org/zap"
)

// TemplateData is the data context for one render operation: a tree of
// plain values the caller assembles from the business document. It is
// converted to the engine's value model once per render and never mutated.
type TemplateData map[string]interface{}

// DocumentKind names one of the fixed documents the engine renders.
type DocumentKind string

const (
	OrderConfirmation DocumentKind = "order-confirmation"
	Invoice           DocumentKind = "invoice"
)

// stylesheetName is the shared stylesheet every document embeds.
const stylesheetName = "styles.css"

func (k DocumentKind) templateName() string {
	return string(k) + ".html"
}

// titleKey is the translation key for the document's HTML title.
func (k DocumentKind) titleKey() string {
	switch k {
	case Invoice:
		return "invoice.title"
	default:
		return "order.title"
	}
}

// Engine orchestrates load, validate, and directive processing for the
// fixed document kinds. Safe for concurrent use: templates are immutable
// after load and each render gets its own scope.
type Engine struct {
	config   *Config
	src      Source
	loader   *Loader
	catalog  *Catalog
	log      *zap.Logger
	required map[DocumentKind][]string

	forceStrict bool
	forceWatch  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig replaces the engine configuration.
func WithConfig(config *Config) Option {
	return func(e *Engine) {
		e.config = config
	}
}

// WithSource sets the template source. The default is the embedded
// order-confirmation and invoice templates.
func WithSource(src Source) Option {
	return func(e *Engine) {
		e.src = src
	}
}

// WithLogger sets the engine logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithStrictValidation makes validation issues fail the render instead of
// being logged as warnings. Takes effect regardless of its position
// relative to WithConfig.
func WithStrictValidation() Option {
	return func(e *Engine) {
		e.forceStrict = true
	}
}

// WithWatch turns on template hot reload for watchable sources. Takes
// effect regardless of its position relative to WithConfig.
func WithWatch() Option {
	return func(e *Engine) {
		e.forceWatch = true
	}
}

// WithTranslations merges additional entries into the locale's translation
// table, overriding built-in keys.
func WithTranslations(locale Locale, entries map[string]string) Option {
	return func(e *Engine) {
		e.catalog.Merge(locale, entries)
	}
}

// WithRequiredPlaceholders sets the placeholder paths validation demands
// for a document kind.
func WithRequiredPlaceholders(kind DocumentKind, paths ...string) Option {
	return func(e *Engine) {
		e.required[kind] = paths
	}
}

// New creates an engine with the given options.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		config:   DefaultConfig(),
		catalog:  DefaultCatalog(),
		log:      zap.NewNop(),
		required: make(map[DocumentKind][]string),
	}
	for _, opt := range opts {
		opt(e)
	}

	// Copy the config so the flag options win in any argument order and
	// later caller mutation of a passed Config cannot reach the engine.
	cfg := *e.config
	if e.forceStrict {
		cfg.StrictValidation = true
	}
	if e.forceWatch {
		cfg.WatchEnabled = true
	}
	e.config = &cfg

	if err := e.config.Validate(); err != nil {
		return nil, err
	}

	if e.src == nil {
		e.src = DefaultSource()
	}
	e.loader = NewLoader(e.src, WithLoaderLogger(e.log))

	if e.config.WatchEnabled {
		if err := e.loader.EnableWatch(); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Render produces the complete document markup for a kind, data context,
// and locale: load template and stylesheet, validate, process directives,
// wrap in the document shell. Idempotent given an unchanged cache.
func (e *Engine) Render(kind DocumentKind, data TemplateData, locale Locale) (string, error) {
	loc, ok := ParseLocale(string(locale))
	if !ok {
		e.log.Warn("unknown locale, using default",
			zap.String("locale", string(locale)),
			zap.String("default", string(e.config.DefaultLocale)),
		)
		loc = e.config.DefaultLocale
	}

	tmpl, err := e.loader.Load(kind.templateName())
	if err != nil {
		return "", err
	}

	if err := e.checkValidation(tmpl, e.required[kind]); err != nil {
		return "", err
	}

	// The stylesheet is emitted verbatim, so it bypasses the directive
	// parser: a literal {{ in the CSS is not a template error.
	style, styleErr := e.loader.LoadText(stylesheetName)
	switch {
	case styleErr == nil:
	case IsNotFound(styleErr):
		// A document without its stylesheet still renders; a missing
		// optional part never fails the whole confirmation.
		e.log.Warn("shared stylesheet missing", zap.String("template", stylesheetName))
	default:
		return "", styleErr
	}

	ctx := &renderContext{locale: loc, catalog: e.catalog, log: e.log}
	body, err := evaluate(tmpl.AST, FromGo(data), ctx)
	if err != nil {
		return "", err
	}

	return documentShell(ctx.translate(kind.titleKey(), nil), style, body), nil
}

// RenderString processes a one-off template string against a data context,
// without the document shell or validation pass.
func (e *Engine) RenderString(text string, data TemplateData, locale Locale) (string, error) {
	loc, ok := ParseLocale(string(locale))
	if !ok {
		loc = e.config.DefaultLocale
	}

	ast, err := Parse(text)
	if err != nil {
		return "", err
	}

	ctx := &renderContext{locale: loc, catalog: e.catalog, log: e.log}
	return evaluate(ast, FromGo(data), ctx)
}

// checkValidation runs static validation; lenient mode logs issues at warn
// level, strict mode fails the render.
func (e *Engine) checkValidation(tmpl *Template, required []string) error {
	result := ValidateRequired(tmpl.Text, required)
	if result.Valid {
		return nil
	}

	if e.config.StrictValidation {
		return &ValidationError{Name: tmpl.Name, Issues: result.Issues}
	}
	for _, issue := range result.Issues {
		e.log.Warn("template validation issue",
			zap.String("template", tmpl.Name),
			zap.String("code", string(issue.Code)),
			zap.String("issue", issue.Message),
			zap.Int("offset", issue.Position),
		)
	}
	return nil
}

// Validate statically checks a document kind's template, including its
// required placeholders, without rendering.
func (e *Engine) Validate(kind DocumentKind) (ValidationResult, error) {
	// Read the raw text rather than Load: an unparseable template must
	// still produce a result with its issues as data, not an error.
	text, err := e.loader.ReadText(kind.templateName())
	if err != nil {
		return ValidationResult{}, err
	}
	return ValidateRequired(text, e.required[kind]), nil
}

// Invalidate drops one document's cached template; the next render
// re-reads the source.
func (e *Engine) Invalidate(kind DocumentKind) {
	e.loader.Invalidate(kind.templateName())
}

// InvalidateAll drops every cached template, including the stylesheet.
func (e *Engine) InvalidateAll() {
	e.loader.InvalidateAll()
}

// Close releases the loader's watcher, if watching was enabled.
func (e *Engine) Close() error {
	return e.loader.Close()
}

// documentShell wraps a processed body in the fixed head/style/body frame.
func documentShell(title, style, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
%s</style>
</head>
<body>
%s</body>
</html>
`, EscapeHTML(title), style, body)
}
