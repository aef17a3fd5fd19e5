package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Field-specific conflicts. Both match ErrAlreadyExists.
	ErrUsernameExists = fmt.Errorf("username %w", ErrAlreadyExists)
	ErrEmailExists    = fmt.Errorf("email %w", ErrAlreadyExists)
	ErrFundExists     = fmt.Errorf("fund %w", ErrAlreadyExists)

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrValidation     = errors.New("validation error")

	// ErrWrongPassword rejects a password change. It matches ErrorUnauthorized.
	ErrWrongPassword = fmt.Errorf("current password %w", ErrorUnauthorized)

	// ErrInvalidToken is the only error a token verification ever yields,
	// whether the token is malformed, forged or expired.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnavailable reports that an upstream service could not be reached.
	ErrUnavailable = errors.New("service unavailable")
)

// ValidationError describes client input that failed validation. The message
// is safe to show to the caller.
type ValidationError struct {
	Msg string
}

// NewValidationError returns a *ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string { return e.Msg }

// Is makes errors.Is(err, ErrValidation) report true.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
