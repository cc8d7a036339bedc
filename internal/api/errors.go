package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes every caller branches on.
// Match with errors.Is against the error returned by any operation.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrTimeout            = errors.New("request timed out")
	ErrNetwork            = errors.New("network error")
	ErrServer             = errors.New("server error")
)

// Error is the classified failure of one remote operation.
type Error struct {
	kind       error // one of the sentinels above
	StatusCode int
	Message    string
	cause      error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.kind.Error(), e.Message)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.kind.Error(), e.cause)
	}
	return e.kind.Error()
}

func (e *Error) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	return e.kind
}

func (e *Error) Is(target error) bool {
	if target == e.kind {
		return true
	}
	// A timeout is still a network failure to callers that only care
	// about transient vs. terminal.
	return e.kind == ErrTimeout && target == ErrNetwork
}

func newError(kind error, status int, message string, cause error) *Error {
	return &Error{kind: kind, StatusCode: status, Message: message, cause: cause}
}

// Fatal reports whether the error ends the session (as opposed to a
// non-fatal notice the current view can absorb).
func Fatal(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// Retryable reports whether the failed call may be reissued safely.
// Only transport timeouts qualify: the request may never have reached
// the server, and every read here is idempotent.
func Retryable(err error) bool {
	return errors.Is(err, ErrTimeout)
}
