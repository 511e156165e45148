// Package common defines shared sentinel errors and small helpers used across
// ArcheData layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrVersionConflict = errors.New("version conflict")

	// Service-level errors.
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotAuthenticated     = errors.New("not logged in")
	ErrForbidden            = errors.New("forbidden")
	ErrValidation           = errors.New("validation error")
)
