// Package config builds formatters from YAML, TOML or JSON files.
//
// A configuration file selects built-in rules by name, tunes the date and
// list rules, adds regular expression replacements and an optional token
// budget:
//
//	extension_order: after
//	stringifiers:
//	  omit: [boolean]
//	  date_layout: "02 Jan 2006"
//	  list_marker: "* "
//	transformers:
//	  omit: [comments]
//	  replace:
//	    - name: redact
//	      pattern: "sk-[A-Za-z0-9]+"
//	      with: "[key]"
//	  max_tokens: 2000
//	  truncate: middle
//
// The decoder is chosen from the file extension (.yaml, .yml, .toml, .json).
// Unknown keys are errors. Unknown rule names in pick or omit are ignored
// and logged at debug level.
//
// # Loading
//
//	f, err := config.LoadFormatter("prompts/formatter.yaml")
//	out, err := f.Format(fragments, values...)
//
// # Hot Reload
//
// A Watcher reloads the formatter whenever the file changes and keeps the
// last good formatter when a change fails to load:
//
//	w, err := config.NewWatcher("prompts/formatter.yaml")
//	go w.Run(ctx)
//	out, err := w.Formatter().Format(fragments, values...)
//
// # Schema
//
// Schema returns a JSON Schema for the file format, suitable for editor
// validation of YAML and JSON files.
package config
