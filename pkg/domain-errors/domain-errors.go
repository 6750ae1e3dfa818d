package domainerrors

import (
	"errors"
	"fmt"
)

// Code represents a domain error category independent of transport layer.
// These codes describe what went wrong in business logic terms, not HTTP terms.
type Code string

const (
	CodeNotFound           Code = "not_found"
	CodeBadRequest         Code = "bad_request"         // Body could not be decoded
	CodeValidation         Code = "validation_failed"   // Command failed field or workflow validation
	CodeInternal           Code = "internal_error"      // Store, cache or broker failure
	CodeConflict           Code = "conflict"            // Duplicate id or email, or a request verified twice
	CodeForbidden          Code = "forbidden"           // Supervisor acting on another supervisor's request
	CodeInvalidState       Code = "invalid_state"       // Request is no longer Pending
	CodeTimeout            Code = "timeout"             // Unit of work exceeded its deadline
	CodeInvariantViolation Code = "invariant_violation" // Model constructor rejected its inputs
)

// IsFault reports whether the code describes a failure of the service itself
// rather than an outcome the caller caused. Faults are logged at error level,
// mark trace spans as failed and map to 5xx responses.
func (c Code) IsFault() bool {
	return c == CodeInternal || c == CodeTimeout
}

// Error wraps domain or infrastructure failures with a stable code.
// It is transport-agnostic and can be used across service, store, and other layers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// NotFound reports a missing entity as "<entity> with ID <id> not found".
func NotFound(entity string, entityID fmt.Stringer) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s with ID %s not found", entity, entityID)}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost domain error in the chain,
// or CodeInternal when err carries no domain code.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
