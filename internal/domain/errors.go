package domain

import "errors"

// Access-layer failure taxonomy. ErrNotFound deliberately covers both a
// record that does not exist and one the caller does not own, so callers
// cannot probe for other users' resources.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// Chat errors
var (
	ErrParentMessageMismatch = errors.New("parent message belongs to a different project")
	ErrUnknownModel          = errors.New("unknown model")
)

// Sandbox errors
var (
	ErrInvalidTransition = errors.New("invalid sandbox status transition")
	ErrSandboxExpired    = errors.New("sandbox has expired")
)
