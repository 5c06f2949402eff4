package probe

import "errors"

// Sentinel errors returned by Run.
var (
	ErrUnhealthy      = errors.New("service unhealthy")
	ErrVerification   = errors.New("verification failed")
	ErrInvalidConfig  = errors.New("invalid probe config")
	ErrNothingToWrite = errors.New("no observations to save")
)
