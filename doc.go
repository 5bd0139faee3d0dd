// Package promptkit builds clean LLM prompts from templates and values.
//
// Prompts are written as literal fragments with values between them. The
// values are converted to text by an ordered list of named rules, the
// assembled text is cleaned up by an ordered list of named transforms, and
// both lists can be picked from, trimmed and extended. Each subpackage can
// be used on its own:
//
//   - registry: ordered, named rule lists with pick, omit and extend
//   - stringify: value to text conversion with cycle detection
//   - transform: text cleanup steps and the pipeline that applies them
//   - format: interleaves fragments and values into a prompt
//   - template: templates bound to call-time arguments, plus {{name}} text syntax
//   - tokens: token estimation
//   - truncate: line-aware truncation to a token budget
//   - config: formatters from YAML, TOML or JSON files, with hot reload
//
// # Quick Start
//
// Formatting values into a prompt:
//
//	import "github.com/randalmurphal/promptkit/format"
//	out, err := format.Format(
//	    []string{"\n    Today is ", ".\n    Rules:\n    ", "\n"},
//	    time.Now(), []string{"be brief", "cite sources"},
//	)
//
// Templates with arguments:
//
//	import "github.com/randalmurphal/promptkit/template"
//	greet := template.MustParse("Hello {{name}}, you are on the {{account.Plan}} plan.")
//	out, err := greet.Execute(template.Args{"name": "Ann", "account": acct})
//
// Custom rules:
//
//	f := format.New(format.Config{
//	    ExtraStringifiers: []registry.Entry[stringify.Rule]{
//	        registry.NewEntry(stringify.Date, stringify.DateLayout("2006-01-02")),
//	    },
//	})
//
// # Design Philosophy
//
//   - Rule lists are immutable values; every operation returns a new one
//   - Formatters are safe for concurrent use
//   - Each package usable independently
//   - Sensible defaults with full configurability
package promptkit
