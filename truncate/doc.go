// Package truncate shortens prompts to fit a token limit.
//
// Prompts are line oriented, so whole lines are kept where possible and a
// marker line shows where content was removed:
//
//	t := truncate.New(truncate.FromMiddle)
//	out, cut := t.Truncate(prompt, 2000)
//
// Strategies:
//
//   - FromEnd: keep the beginning
//   - FromMiddle: keep the beginning and the end
//   - FromStart: keep the end
//
// Token counts come from a tokens.Counter; the default is the estimating
// counter from the tokens package.
package truncate
