// Package common defines shared sentinel errors used across the fincoach
// server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal        = errors.New("internal error")
	ErrorUnauthorized    = errors.New("unauthorized")
	ErrorInvalidArgument = errors.New("invalid argument")

	// Registration conflict on the unique email column.
	ErrorDuplicateEmail = errors.New("email already exists")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Model provider errors.
	ErrorConfigurationMissing    = errors.New("model credential is not configured")
	ErrorUpstreamUnavailable     = errors.New("model provider unavailable")
	ErrorMalformedUpstreamOutput = errors.New("malformed model output")
)
