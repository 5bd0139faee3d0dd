package config

import "errors"

// Sentinel errors for configuration loading.
var (
	// ErrUnsupportedFormat indicates a file extension or Kind with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrInvalid indicates a file that decodes but does not describe a
	// valid formatter: unknown keys, bad patterns, bad enum values.
	ErrInvalid = errors.New("invalid formatter config")
)
