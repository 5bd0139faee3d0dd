package format

import "errors"

// ErrArity is returned when the number of values does not match the
// number of fragments minus one.
var ErrArity = errors.New("fragment and value count mismatch")
