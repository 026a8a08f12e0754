package progress

import "errors"

var (
	// ErrEntryNotFound indicates the progress entry doesn't exist.
	ErrEntryNotFound = errors.New("progress entry not found")
	// ErrUnknownTask indicates a task reference that doesn't resolve.
	ErrUnknownTask = errors.New("referenced task not found")
	// ErrInvalidInput indicates invalid input for progress operations.
	ErrInvalidInput = errors.New("invalid progress input")
)
