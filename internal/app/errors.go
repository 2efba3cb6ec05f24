package service

import "github.com/okian/pacetrend/internal/domain/types"

// Errors returned by the Service.
var (
	ErrNotStarted      = types.ErrNotStarted
	ErrUnknownCategory = types.ErrUnknownCategory
)
