package tac

import (
	"errors"
	"fmt"
)

// Error is returned by the engine for configuration problems and for sink
// failures.
//
// Configuration errors (invalid pattern, empty separator) are raised before
// any scanning starts and never produce partial output. Write errors wrap the
// sink's error, so errors.Is(err, syscall.EPIPE) keeps working.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Pattern is the offending expression (for INVALID_PATTERN).
	Pattern string

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeInvalidPattern indicates a separator pattern failed to compile.
	ErrCodeInvalidPattern ErrorCode = "INVALID_PATTERN"

	// ErrCodeEmptySeparator indicates a zero-length string separator.
	ErrCodeEmptySeparator ErrorCode = "EMPTY_SEPARATOR"

	// ErrCodeWriteZero indicates the sink accepted zero bytes without an error.
	ErrCodeWriteZero ErrorCode = "WRITE_ZERO"

	// ErrCodeWriteFailed indicates the sink returned an error.
	ErrCodeWriteFailed ErrorCode = "WRITE_FAILED"
)

// ErrWriteZero is the sentinel matched by errors.Is for the write-zero condition.
var ErrWriteZero = errors.New("write returned zero bytes")

// errInvalidWrite reports a sink claiming more bytes than it was given.
var errInvalidWrite = errors.New("invalid write result")

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Pattern != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s %q: %v", e.Code, e.Message, e.Pattern, e.Err)
		}
		return fmt.Sprintf("%s: %s %q", e.Code, e.Message, e.Pattern)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsPatternError returns true if err is an invalid-pattern error.
// Uses errors.As to handle wrapped errors.
func IsPatternError(err error) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Code == ErrCodeInvalidPattern
	}
	return false
}

// IsConfigError returns true if err was raised before any scanning began.
func IsConfigError(err error) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Code == ErrCodeInvalidPattern || te.Code == ErrCodeEmptySeparator
	}
	return false
}

// IsWriteZero returns true if the sink stopped making progress.
func IsWriteZero(err error) bool {
	return errors.Is(err, ErrWriteZero)
}

func newPatternError(expr string, err error) *Error {
	return &Error{
		Code:    ErrCodeInvalidPattern,
		Message: "invalid separator pattern",
		Pattern: expr,
		Err:     err,
	}
}

func newWriteError(err error) *Error {
	return &Error{
		Code:    ErrCodeWriteFailed,
		Message: "write failed",
		Err:     err,
	}
}

func newWriteZeroError() *Error {
	return &Error{
		Code:    ErrCodeWriteZero,
		Message: "sink made no progress",
		Err:     ErrWriteZero,
	}
}
