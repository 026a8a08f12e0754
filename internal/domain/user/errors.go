package user

import "errors"

var (
	// ErrUserNotFound indicates the user doesn't exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidInput indicates invalid input for user operations.
	ErrInvalidInput = errors.New("invalid user input")
)
