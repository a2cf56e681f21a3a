package utils

import (
	"errors"
	"fmt"
)

// Error kinds. Every error leaving a service wraps exactly one of these.
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrInvalidState  = errors.New("invalid state")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrDatabaseError = errors.New("database error")
)

// AppError carries a kind, a human-readable message and optional detail.
// errors.Is matches both the kind and the cause.
type AppError struct {
	Kind    error
	Reason  string
	Message string
	Field   string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Authentication failures. Each is a distinct reason but all reject the call.
var (
	ErrTokenMissing       = &AppError{Kind: ErrUnauthorized, Reason: "token_missing", Message: "Authorization header missing"}
	ErrTokenMalformed     = &AppError{Kind: ErrUnauthorized, Reason: "token_malformed", Message: "Malformed token"}
	ErrTokenExpired       = &AppError{Kind: ErrUnauthorized, Reason: "token_expired", Message: "Token expired"}
	ErrTokenInvalid       = &AppError{Kind: ErrUnauthorized, Reason: "token_invalid", Message: "Invalid token"}
	ErrTokenRevoked       = &AppError{Kind: ErrUnauthorized, Reason: "token_revoked", Message: "Token has been revoked"}
	ErrUnknownUser        = &AppError{Kind: ErrUnauthorized, Reason: "user_not_found", Message: "User not found"}
	ErrAccountInactive    = &AppError{Kind: ErrUnauthorized, Reason: "user_inactive", Message: "User is inactive"}
	ErrInvalidCredentials = &AppError{Kind: ErrUnauthorized, Reason: "invalid_credentials", Message: "Invalid email or password"}
	ErrInsufficientRole   = &AppError{Kind: ErrForbidden, Reason: "insufficient_role", Message: "Forbidden: insufficient permissions"}
)

func NewValidationError(field, message string) *AppError {
	return &AppError{Kind: ErrValidation, Field: field, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: ErrNotFound, Message: message}
}

func NewInvalidStateError(message string) *AppError {
	return &AppError{Kind: ErrInvalidState, Message: message}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: ErrConflict, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: ErrForbidden, Reason: "forbidden", Message: message}
}

// NewDatabaseError hides the store error behind a generic message.
// The cause is kept for logs and non-production responses.
func NewDatabaseError(cause error) *AppError {
	return &AppError{Kind: ErrDatabaseError, Message: "Internal server error", Cause: cause}
}

// KindName returns the stable, client-facing name of err's kind.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrForbidden):
		return "auth_error"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "internal_error"
	}
}
