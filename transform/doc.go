// Package transform cleans up assembled prompt text.
//
// A Pipeline folds the text through an ordered registry of Transformers,
// first to last. The built-ins run in this order:
//
//  1. lineEndings: CRLF to LF
//  2. comments: strip "//" line comments ("\//" is not a comment)
//  3. dedent: drop spaces and tabs around newlines
//  4. spaces: collapse runs of spaces and tabs
//  5. blankLines: keep at most one blank line
//  6. trim: trim the whole text
//
// The built-in pipeline is idempotent: applying it to its own output
// changes nothing.
//
// Additional transformers:
//
//	rules := transform.Builtins().Extend(
//	    registry.NewEntry("redact", transform.Replace(regexp.MustCompile(`sk-\w+`), "[redacted]")),
//	    registry.NewEntry(transform.BudgetName, transform.Budget(2000, truncate.FromEnd)),
//	)
//	out := transform.NewPipeline(rules).Apply(text)
package transform
