package resource

import "errors"

var (
	// ErrResourceNotFound indicates the resource doesn't exist.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrUnknownTask indicates a task reference that doesn't resolve.
	ErrUnknownTask = errors.New("referenced task not found")
	// ErrInvalidInput indicates invalid input for resource operations.
	ErrInvalidInput = errors.New("invalid resource input")
)
