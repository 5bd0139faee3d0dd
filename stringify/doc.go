// Package stringify converts arbitrary values into prompt text.
//
// A Dispatcher walks an ordered registry of rules and applies the first one
// whose predicate matches. Rules receive the dispatcher's Func so that
// containers can stringify their elements with the same rule set, including
// any caller overrides.
//
// # Built-in Rules
//
// In priority order:
//
//   - date: time.Time and *time.Time as "January 2, 2006"
//   - boolean: true as "true", false as "" (false flags vanish from prompts)
//   - sequence: slices and arrays as "- " bullets, one element per line
//   - text: strings, string pointers and byte slices unchanged
//
// Anything else goes to Fallback: nil becomes "", other values are rendered
// as JSON.
//
// # Overriding Rules
//
// Replace a built-in by extending the registry under the same name:
//
//	rules := stringify.Builtins().Extend(
//	    registry.NewEntry(stringify.Date, stringify.DateLayout("02.01.2006")),
//	)
//	s, _ := stringify.New(rules).Stringify(time.Now())
//
// # Cycles
//
// Slices, maps and pointers that are revisited while they are still being
// stringified are replaced by CircularReference. Identity is by reference,
// so equal but distinct values are rendered normally.
package stringify
