package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidKeyword   = errors.New("invalid keyword")
	ErrUnknownStrategy  = errors.New("unknown strategy")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
)
