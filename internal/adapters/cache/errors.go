package cache

import "errors"

// Sentinel errors returned by New.
var (
	ErrInvalidTTL        = errors.New("cache ttl must be positive")
	ErrInvalidMaxEntries = errors.New("cache max entries must be positive")
)
