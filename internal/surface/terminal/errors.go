package terminal

import "errors"

// ErrInvalidTrigger is returned for an unknown context-menu trigger name.
var ErrInvalidTrigger = errors.New("invalid context menu trigger")
