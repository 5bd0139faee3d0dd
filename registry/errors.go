package registry

import "errors"

// ErrInvalidOrder is returned by ParseOrder for anything other than
// "before" or "after".
var ErrInvalidOrder = errors.New("invalid extension order")
