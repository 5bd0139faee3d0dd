package template

import (
	"fmt"
	"strings"

	"github.com/randalmurphal/promptkit/format"
)

// Args is the argument bag a bound template is executed with.
type Args = map[string]any

// Resolver computes a placeholder value from the arguments.
type Resolver func(args Args) any

// Binder binds templates to a Formatter.
type Binder struct {
	formatter *format.Formatter
}

// New creates a Binder formatting with f. A nil f means format.Default.
func New(f *format.Formatter) *Binder {
	if f == nil {
		f = format.Default
	}
	return &Binder{formatter: f}
}

// Default binds templates to format.Default.
var Default = New(nil)

// Template is a set of literal fragments and placeholders waiting for
// arguments. It is immutable and may be executed concurrently.
type Template struct {
	fragments    []string
	placeholders []any
	formatter    *format.Formatter
}

// Bind creates a template from literal fragments and the placeholders
// between them. A placeholder is a key path string starting with KeyPrefix,
// a Resolver (or plain func(Args) any, or func(Args) (any, error)), or any
// other value, which is used as is.
//
//	greet := template.Bind([]string{"Hello ", ", today is ", ""}, ".name", template.Resolver(func(template.Args) any {
//	    return time.Now()
//	}))
//	out, err := greet.Execute(template.Args{"name": "John"})
func (b *Binder) Bind(fragments []string, placeholders ...any) *Template {
	return &Template{
		fragments:    append([]string(nil), fragments...),
		placeholders: append([]any(nil), placeholders...),
		formatter:    b.formatter,
	}
}

// Bind binds with Default.
func Bind(fragments []string, placeholders ...any) *Template {
	return Default.Bind(fragments, placeholders...)
}

// Execute resolves every placeholder against args and formats the result.
// Errors from resolvers and conversion rules are returned unchanged; a
// fragment/placeholder count mismatch wraps format.ErrArity.
func (t *Template) Execute(args Args) (format.Prompt, error) {
	values := make([]any, len(t.placeholders))
	for i, p := range t.placeholders {
		v, err := Resolve(p, args)
		if err != nil {
			return "", err
		}
		values[i] = v
	}
	return t.formatter.Format(t.fragments, values...)
}

// MustExecute is like Execute but panics on error.
func (t *Template) MustExecute(args Args) format.Prompt {
	out, err := t.Execute(args)
	if err != nil {
		panic(fmt.Sprintf("template.MustExecute: %v", err))
	}
	return out
}

// Variables returns the key paths referenced by the template, in order of
// first appearance.
func (t *Template) Variables() []string {
	seen := make(map[string]bool)
	var result []string
	for _, p := range t.placeholders {
		path, ok := keyPath(p)
		if !ok || seen[path] {
			continue
		}
		seen[path] = true
		result = append(result, path)
	}
	return result
}

// Validate checks that every key path resolves against args.
// Execute does not require this: a missing key is rendered as the
// placeholder text itself.
func (t *Template) Validate(args Args) error {
	var missing []string
	for _, path := range t.Variables() {
		if _, ok := lookup(args, path); !ok {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrVariable, strings.Join(missing, ", "))
	}
	return nil
}
