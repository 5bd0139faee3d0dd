package template

import "errors"

// Sentinel errors for template operations.
var (
	// ErrEmpty is returned when the template text is empty.
	ErrEmpty = errors.New("template is empty")

	// ErrParse is returned when the template text contains an unsupported
	// or malformed placeholder.
	ErrParse = errors.New("template parse error")

	// ErrVariable is returned by Validate when a referenced argument is missing.
	ErrVariable = errors.New("required variable missing")
)
