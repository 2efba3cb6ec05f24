package source

import "errors"

// Sentinel error kinds for activity sources. These allow errors.Is/As from callers.
var (
	// ErrFetch marks a transport or upstream failure.
	ErrFetch = errors.New("fetch activities failed")
	// ErrToken marks a missing, unreadable or unrefreshable access token.
	ErrToken = errors.New("access token unavailable")
	// ErrParse marks an undecodable payload or file.
	ErrParse = errors.New("parse activities failed")
)
