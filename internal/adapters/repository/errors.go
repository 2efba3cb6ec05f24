package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrInvalidID = errors.New("activity id must not be empty")
	ErrStoreFull = errors.New("activity store is full")
)
