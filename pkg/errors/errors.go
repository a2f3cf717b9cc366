// Package errors provides coded, structured errors for patchling.
//
// Every user-facing failure carries an ErrorCode so callers and tests can
// branch on the category without matching message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// PDX script errors
	ErrParse ErrorCode = "PARSE"

	// Rules errors
	ErrUnsafeName ErrorCode = "UNSAFE_NAME"
	ErrLifecycle  ErrorCode = "LIFECYCLE"

	// Filesystem errors
	ErrIO ErrorCode = "IO"

	// Mod and game data errors
	ErrModInvalid       ErrorCode = "MOD_INVALID"
	ErrGameDataNotFound ErrorCode = "GAME_DATA_NOT_FOUND"
)

// PatchlingError represents a structured error with code and details
type PatchlingError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PatchlingError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PatchlingError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PatchlingError) Is(target error) bool {
	var targetErr *PatchlingError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PatchlingError with the given code and message
func New(code ErrorCode, message string) *PatchlingError {
	return &PatchlingError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PatchlingError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PatchlingError {
	return &PatchlingError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PatchlingError
func Wrap(err error, code ErrorCode, message string) *PatchlingError {
	if err == nil {
		return nil
	}
	return &PatchlingError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PatchlingError {
	if err == nil {
		return nil
	}
	return &PatchlingError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PatchlingError) WithDetail(key string, value interface{}) *PatchlingError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code anywhere in its chain
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var pErr *PatchlingError
		if !errors.As(err, &pErr) {
			return false
		}
		if pErr.Code == code {
			return true
		}
		err = pErr.Wrapped
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PatchlingError
func GetErrorCode(err error) ErrorCode {
	var pErr *PatchlingError
	if errors.As(err, &pErr) {
		return pErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PatchlingError
func GetErrorDetails(err error) map[string]interface{} {
	var pErr *PatchlingError
	if errors.As(err, &pErr) {
		return pErr.Details
	}
	return nil
}
