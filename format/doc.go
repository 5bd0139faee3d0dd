// Package format builds clean prompt text from template fragments and
// arbitrary values.
//
// A template is given as its literal fragments plus the values between
// them, the shape of a tagged template literal:
//
//	out, err := format.Format(
//	    []string{"\n    Adhere to the following guidelines:\n    ", "\n  "},
//	    []string{"Be concise", "Cite sources"},
//	)
//	// out: "Adhere to the following guidelines:\n- Be concise\n- Cite sources"
//
// Each value is converted by the stringify package, the pieces are joined,
// and the text is cleaned by the transform package.
//
// # Configuration
//
// A Formatter can replace or extend either rule set:
//
//	f := format.New(format.Config{
//	    ExtraStringifiers: []registry.Entry[stringify.Rule]{
//	        registry.NewEntry(stringify.Date, stringify.DateLayout("2006-01-02")),
//	    },
//	    Transformers: transform.Builtins().Omit(transform.Comments),
//	})
//
// Formatters share no mutable state, so differently configured Formatters
// can be used side by side and from many goroutines.
package format
