package usecase

import (
	"errors"
	"fmt"
)

// ErrorCode is the stable, client-facing name of a chat failure.
type ErrorCode string

const (
	ErrorInvalidInput ErrorCode = "INVALID_INPUT"
	ErrorRateLimited  ErrorCode = "RATE_LIMITED"
	ErrorUpstream     ErrorCode = "UPSTREAM_ERROR"
	ErrorInternal     ErrorCode = "INTERNAL_ERROR"
)

// Error carries a code for the caller and a reason for the logs.
type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}

// CodeOf returns the code of the first *Error in err's chain, or
// ErrorInternal when there is none.
func CodeOf(err error) ErrorCode {
	var ucErr *Error
	if !errors.As(err, &ucErr) || ucErr == nil {
		return ErrorInternal
	}
	return ucErr.Code
}

// Reason returns the reason of the first *Error in err's chain, if any.
func Reason(err error) string {
	var ucErr *Error
	if !errors.As(err, &ucErr) || ucErr == nil {
		return ""
	}
	return ucErr.Reason
}
