package entities

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Configuration errors
	ErrGameNotFound   ErrorCode = "GAME_NOT_FOUND"
	ErrInvalidCatalog ErrorCode = "INVALID_CATALOG"

	// Input errors
	ErrInvalidBet     ErrorCode = "INVALID_BET"
	ErrInvalidSkill   ErrorCode = "INVALID_SKILL"
	ErrInvalidHistory ErrorCode = "INVALID_HISTORY"

	// System errors
	ErrDatabaseError ErrorCode = "DATABASE_ERROR"
	ErrInternalError ErrorCode = "INTERNAL_ERROR"
)

// EngineError represents an engine-related error
type EngineError struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new EngineError
func NewEngineError(code ErrorCode, message string) *EngineError {
	return &EngineError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in an EngineError
func WrapError(code ErrorCode, message string, err error) *EngineError {
	return &EngineError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsEngineError checks if an error is an EngineError with a specific code
func IsEngineError(err error, code ErrorCode) bool {
	var engineErr *EngineError
	if !errors.As(err, &engineErr) {
		return false
	}
	return engineErr.Code == code
}
