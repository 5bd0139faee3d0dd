package format

import (
	"fmt"
	"strings"

	"github.com/randalmurphal/promptkit/registry"
	"github.com/randalmurphal/promptkit/stringify"
	"github.com/randalmurphal/promptkit/transform"
)

// Prompt marks a string produced by a Formatter. It is an alias of string
// and carries no runtime behavior.
type Prompt = string

// Config configures a Formatter. The zero value uses the built-in rules.
type Config struct {
	// Stringifiers replaces the conversion rules. Nil means
	// stringify.Builtins().
	Stringifiers *registry.Registry[stringify.Rule]

	// Transformers replaces the text transforms. Nil means
	// transform.Builtins().
	Transformers *registry.Registry[transform.Transformer]

	// ExtraStringifiers are merged into Stringifiers under ExtensionOrder.
	ExtraStringifiers []registry.Entry[stringify.Rule]

	// ExtraTransformers are merged into Transformers under ExtensionOrder.
	ExtraTransformers []registry.Entry[transform.Transformer]

	// ExtensionOrder controls how the Extra entries are merged.
	// After (default) keeps existing rules first; Before gives the extra
	// rules priority.
	ExtensionOrder registry.Order
}

// Formatter stringifies interpolated values, joins them with the literal
// fragments of a template and cleans up the result.
// A Formatter is immutable and safe for concurrent use.
type Formatter struct {
	stringifier *stringify.Dispatcher
	pipeline    transform.Pipeline
}

// New creates a Formatter from cfg.
func New(cfg Config) *Formatter {
	rules := cfg.Stringifiers
	if rules == nil {
		rules = stringify.Builtins()
	}
	if len(cfg.ExtraStringifiers) > 0 {
		rules = rules.WithOrder(cfg.ExtensionOrder).Extend(cfg.ExtraStringifiers...)
	}

	transforms := cfg.Transformers
	if transforms == nil {
		transforms = transform.Builtins()
	}
	if len(cfg.ExtraTransformers) > 0 {
		transforms = transforms.WithOrder(cfg.ExtensionOrder).Extend(cfg.ExtraTransformers...)
	}

	return &Formatter{
		stringifier: stringify.New(rules),
		pipeline:    transform.NewPipeline(transforms),
	}
}

// Default is the Formatter with built-in rules.
var Default = New(Config{})

// Format interleaves fragments with the stringified values and runs the
// result through the transform pipeline. There must be exactly one value
// fewer than fragments. Errors returned by conversion rules are passed
// through unchanged.
//
//	out, err := f.Format([]string{"Hello\n  ", "\n  World\n"}, name)
func (f *Formatter) Format(fragments []string, values ...any) (Prompt, error) {
	if len(fragments) == 0 {
		if len(values) > 0 {
			return "", fmt.Errorf("%w: no fragments for %d values", ErrArity, len(values))
		}
		return "", nil
	}
	if len(values) != len(fragments)-1 {
		return "", fmt.Errorf("%w: %d fragments need %d values, got %d",
			ErrArity, len(fragments), len(fragments)-1, len(values))
	}

	var b strings.Builder
	b.WriteString(fragments[0])
	for i, v := range values {
		s, err := f.stringifier.Stringify(v)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
		b.WriteString(fragments[i+1])
	}
	return f.pipeline.Apply(b.String()), nil
}

// MustFormat is like Format but panics on error.
func (f *Formatter) MustFormat(fragments []string, values ...any) Prompt {
	out, err := f.Format(fragments, values...)
	if err != nil {
		panic(fmt.Sprintf("format.MustFormat: %v", err))
	}
	return out
}

// Stringify converts a single value with the formatter's rules, without
// running the transform pipeline.
func (f *Formatter) Stringify(value any) (string, error) {
	return f.stringifier.Stringify(value)
}

// Clean runs text through the transform pipeline only.
func (f *Formatter) Clean(text string) Prompt {
	return f.pipeline.Apply(text)
}

// Format formats with Default.
func Format(fragments []string, values ...any) (Prompt, error) {
	return Default.Format(fragments, values...)
}
