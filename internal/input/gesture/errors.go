package gesture

import "errors"

// ErrRefreshPanic is recorded as the session error when the refresh function panics.
var ErrRefreshPanic = errors.New("refresh panicked")
