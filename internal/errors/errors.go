package errors

import (
	"errors"
	"fmt"
)

// Common error types for the inventory console
var (
	// Session errors
	ErrSessionAbsent      = errors.New("session absent")
	ErrSessionInvalidated = errors.New("session invalidated by server")
	ErrInvalidProfile     = errors.New("invalid user profile")
	ErrUnknownRole        = errors.New("unknown role")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Transport errors
	ErrInvalidBaseURL = errors.New("invalid API base URL")
	ErrAPI            = errors.New("inventory API error")

	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
