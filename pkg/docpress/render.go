package docpress

import (
	"strings"

	"go.uber.org/zap"
)

// renderContext carries the per-render bindings: the active locale, the
// translation catalog, and the logger. It holds no mutable state, so one
// context serves a whole recursive evaluation.
type renderContext struct {
	locale  Locale
	catalog *Catalog
	log     *zap.Logger
}

func (ctx *renderContext) translate(key string, params map[string]string) string {
	return ctx.catalog.Lookup(key, ctx.locale, params)
}

// formatValue stringifies a value for interpolation, routing hinted values
// through the locale formatter first.
func (ctx *renderContext) formatValue(v Value) (string, error) {
	switch v.Hint() {
	case HintCurrency:
		return FormatCurrency(v.Num(), ctx.locale), nil
	case HintDate:
		if t, ok := v.Time(); ok {
			return FormatDate(t, ctx.locale)
		}
		return FormatDate(v.Str(), ctx.locale)
	default:
		return v.Stringify(), nil
	}
}

// evaluate runs a parsed template against a root data context. Data-level
// absence never fails; the only render-time failures are invalid dates on
// hinted fields.
func evaluate(nodes []Node, data Value, ctx *renderContext) (string, error) {
	var out strings.Builder
	if err := renderBody(nodes, ctx, rootScope(data), &out); err != nil {
		return "", err
	}
	return out.String(), nil
}
