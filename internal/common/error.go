// Package common defines shared constants and sentinel errors used across
// the papergrader client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Client-side input errors, raised before any network call is made.
	ErrValidation = errors.New("validation error")

	// Generic internal failure.
	ErrorInternal = errors.New("internal error")
)
