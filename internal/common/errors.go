// Package common defines shared sentinel errors used across the store,
// scheduler and CLI layers of plantkeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository/store-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors, surfaced to the user as messages and never fatal.
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidNumber      = errors.New("invalid number")
	ErrIntervalOutOfRange = errors.New("interval out of range")
	ErrUnknownTimeUnit    = errors.New("unknown time unit")

	// Notification errors.
	ErrPermissionDenied = errors.New("notification permission denied")
)
