package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrValidation marks caller mistakes rejected before any side effect.
	ErrValidation = errors.New("validation failed")

	// ErrCapabilityDenied is returned when the location capability is
	// refused or unavailable; callers must leave state unchanged.
	ErrCapabilityDenied = errors.New("location capability denied")

	// ErrTransition marks an admin status change the lifecycle forbids.
	ErrTransition = errors.New("status transition not allowed")
)
