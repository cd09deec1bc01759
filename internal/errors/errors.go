// Package errors defines the stable error code system for extract-gates.
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable error code string.
type Code string

// Error codes. The set is closed: the command layer matches on these explicitly.
const (
	EUsage Code = "E_USAGE"

	// Recoverable failures: reported on stderr, exit status stays 0.
	EInvalidConfig  Code = "E_INVALID_CONFIG"  // unsupported setting, replaced by its default
	EFileNotFound   Code = "E_FILE_NOT_FOUND"  // story path does not exist
	EMalformedInput Code = "E_MALFORMED_INPUT" // story content is not valid YAML
	EInternal       Code = "E_INTERNAL"        // any other read or traversal failure
)

// Error is the standard error type for extract-gates errors.
type Error struct {
	Code    Code
	Msg     string
	Cause   error
	Details map[string]string // optional structured context
}

// Error returns the stable error format: "CODE: message".
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Msg: msg}
}

// NewWithDetails creates a new Error with code, message, and details.
// Details map is copied (nil if empty).
func NewWithDetails(code Code, msg string, details map[string]string) error {
	return &Error{Code: code, Msg: msg, Details: copyDetails(details)}
}

// Wrap creates a new Error wrapping an underlying error.
func Wrap(code Code, msg string, err error) error {
	return &Error{Code: code, Msg: msg, Cause: err}
}

// WrapWithDetails creates a new Error wrapping an underlying error with details.
func WrapWithDetails(code Code, msg string, err error, details map[string]string) error {
	return &Error{Code: code, Msg: msg, Cause: err, Details: copyDetails(details)}
}

// GetCode extracts the error code from an error, or empty string if not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// AsError returns (*Error, true) if err is or wraps an *Error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsRecoverable reports whether err is reported on stderr without changing
// the exit status.
func IsRecoverable(err error) bool {
	switch GetCode(err) {
	case EInvalidConfig, EFileNotFound, EMalformedInput, EInternal:
		return true
	}
	return false
}

func copyDetails(details map[string]string) map[string]string {
	if len(details) == 0 {
		return nil
	}
	cp := make(map[string]string, len(details))
	for k, v := range details {
		cp[k] = v
	}
	return cp
}

// ExitCode returns the process exit code for an error.
// Returns 0 for nil and for recoverable extraction failures, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if IsRecoverable(err) {
		return 0
	}
	return 1
}
