package services

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. Callers cannot tell the two apart, by requirement.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrEmailTaken = errors.New("email already registered")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")

	// ErrValidation wraps record invariant failures so handlers can
	// answer 400 with the message intact.
	ErrValidation = errors.New("validation failed")
)
