// Package docpress renders order-confirmation and invoice documents from a
// small handlebars-style template language, with a localization pipeline
// for currency, dates, addresses, and translated labels.
//
// # Quick Start
//
//	engine, err := docpress.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	data := docpress.TemplateData{
//	    "orderNumber": "SO-2026-0042",
//	    "total":       docpress.Currency(1250000),
//	    "items": []map[string]interface{}{
//	        {"name": "Áo thun", "quantity": 2, "lineTotal": docpress.Currency(500000)},
//	    },
//	}
//
//	html, err := engine.Render(docpress.OrderConfirmation, data, docpress.LocaleVI)
//
// # Template Syntax
//
// All directives use double curly braces:
//
//	{{path}}                        - escaped interpolation
//	{{{path}}}                      - raw (unescaped) interpolation
//	{{#if path}}...{{/if}}          - conditional block
//	{{#if path}}...{{else}}...{{/if}}
//	{{#each path}}...{{/each}}      - loop; "this" is the current element
//	{{t 'key'}}                     - translation lookup
//
// Paths are dotted with optional bracket indexing: customer.name,
// items[0].sku, this.quantity. A missing path never fails a render; it
// interpolates as the empty string and is falsy in conditionals.
//
// Conditionals inside a loop body re-evaluate for every iteration against
// that iteration's scope, and loops always emit iterations in list order.
//
// # Templates
//
// The engine ships with embedded defaults for both document kinds and the
// shared stylesheet. Point it at your own with WithSource, and turn on
// hot reload during development with WithWatch:
//
//	src := docpress.NewDirSource("./templates")
//	engine, err := docpress.New(docpress.WithSource(src), docpress.WithWatch())
//
// Without watching, a template is read at most once per process lifetime;
// call Invalidate to force a re-read.
package docpress
