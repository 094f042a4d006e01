package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// Verification outcomes. These are user-facing conditions, not infrastructure failures.
var (
	ErrNoValidCode    = errors.New("no valid verification code")
	ErrInvalidCode    = errors.New("invalid verification code")
	ErrExpiredCode    = errors.New("verification code expired")
	ErrDeliveryFailed = errors.New("delivery failed")
	ErrNotConfigured  = errors.New("provider not configured")
)
