// Package template binds prompt templates to call-time arguments.
//
// A template is a list of literal fragments with a placeholder between each
// pair. When the template is executed, every placeholder is resolved to a
// raw value and the fragments and values are handed to a format.Formatter,
// which stringifies the values and cleans up the text.
//
// # Placeholders
//
//   - ".name" or ".user.name": a key path into the arguments (see Key)
//   - a Resolver, func(Args) any or func(Args) (any, error): called with the arguments
//   - anything else: used as is
//
// Key paths try the whole path as a key first, then walk maps, exported
// struct fields and slice indexes segment by segment. A key path that
// cannot be resolved is rendered as the placeholder string itself, so a
// typo shows up in the output instead of failing. Use Validate to reject
// missing arguments up front.
//
// # Example
//
//	greet := template.Bind(
//	    []string{"\n  Hello ", ".\n  You were born ", " days ago.\n"},
//	    ".name",
//	    template.Resolver(func(a template.Args) any {
//	        return int(time.Since(a["birthday"].(time.Time)).Hours() / 24)
//	    }),
//	)
//	out, err := greet.Execute(template.Args{"name": "John", "birthday": birthday})
//
// # Text Syntax
//
// Templates can also be written as text with double-brace placeholders:
//
//	tmpl, err := template.Parse("Hello {{name}}, your plan is {{ .account.plan }}.")
//	vars := tmpl.Variables() // ["name", "account.plan"]
//
// There are no conditionals, loops or helpers. Lists, booleans and dates
// are rendered by the stringify rules of the formatter instead.
//
// # Custom Formatters
//
// Bind templates to a configured formatter through a Binder:
//
//	b := template.New(format.New(format.Config{Transformers: myTransforms}))
//	tmpl := b.Bind(fragments, ".name")
package template
