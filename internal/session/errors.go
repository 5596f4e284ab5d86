package session

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes session failures.
type ErrorCode string

const (
	// ErrCodeAlreadyExists indicates registration with an email in use.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// ErrCodeAuthenticationFailed indicates the email/password pair did not
	// match. Whether the email or the password was wrong is not disclosed.
	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
)

// Error is returned by Register and Authenticate. The prior session is
// always left untouched when an Error is returned.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying cause (optional)
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsAlreadyExists reports whether err is a registration conflict.
func IsAlreadyExists(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == ErrCodeAlreadyExists
	}
	return false
}

// IsAuthenticationFailed reports whether err is a credential mismatch.
func IsAuthenticationFailed(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == ErrCodeAuthenticationFailed
	}
	return false
}

func newAlreadyExists(cause error) *Error {
	return &Error{
		Code:    ErrCodeAlreadyExists,
		Message: "an account with this email already exists",
		Err:     cause,
	}
}

func newAuthenticationFailed() *Error {
	return &Error{
		Code:    ErrCodeAuthenticationFailed,
		Message: "invalid email or password",
	}
}
