package types

import "errors"

// Sentinel errors shared between the service and its transports.
var (
	// ErrNotStarted is returned by operations invoked before the service starts.
	ErrNotStarted = errors.New("service not started")
	// ErrUnknownCategory is returned for a personal-best category that is not configured.
	ErrUnknownCategory = errors.New("unknown distance category")
)
