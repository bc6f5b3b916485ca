package service

import "errors"

var (
	// ErrValidation marks input rejected before any storage call.
	// No partial state change has happened when it is returned.
	ErrValidation = errors.New("validation failed")

	// ErrTagAttached reports that an attach was a no-op because the
	// tag is already present on the todo.
	ErrTagAttached = errors.New("tag already attached")
)
