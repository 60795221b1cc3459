package gateway

import (
	"errors"
	"fmt"
)

// Failure kinds cover transport and auth-layer outcomes only. Business
// failures (invalid voucher, insufficient stock, validation errors) ride
// the 200 response envelope and are the caller's to branch on.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrTimeout         = errors.New("request timeout")
	ErrNetwork         = errors.New("network failure")
	ErrServer          = errors.New("server error")
)

// Error carries the failure kind, the HTTP status when a response was
// received, and the decoded body when one was available for diagnostics.
// errors.Is matches against the kind sentinels above.
type Error struct {
	Kind   error
	Status int
	Result *Result
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.cause)
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Kind, e.Status)
	}
	return e.Kind.Error()
}

func (e *Error) Is(target error) bool { return e.Kind == target }

func (e *Error) Unwrap() error { return e.cause }
