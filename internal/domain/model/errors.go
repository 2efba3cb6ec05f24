package model

import "errors"

// Sentinel error kinds for domain validation. These allow errors.Is/As from callers.
var (
	// ErrMissingField marks a record that lacks a required field.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidField marks a record whose field holds an impossible value.
	ErrInvalidField = errors.New("invalid field")
	// ErrInvalidConfig marks structurally invalid caller configuration.
	ErrInvalidConfig = errors.New("invalid configuration")
)
