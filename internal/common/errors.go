// Package common defines shared constants and sentinel errors used across
// cyberdoom components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors. Login reports one sentinel for both unknown email and
	// wrong password so the two cases are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")

	// Signup errors.
	ErrInvalidSecretKey = errors.New("invalid secret key")
	ErrEmailTaken       = errors.New("email already registered")

	// Credit errors.
	ErrInsufficientCredits = errors.New("insufficient credits")
)
