package chatterbox

import (
	"errors"
	"fmt"
)

// ErrorCode represents a categorized error type.
type ErrorCode int

const (
	ErrorUnknown ErrorCode = iota

	// Transport errors (reported by a Stream)
	ErrorTransportClosed
	ErrorTransport

	// Protocol errors
	ErrorMalformedPayload
	ErrorRequestFailed
	ErrorRateLimited

	// Client-side errors
	ErrorUnsendableCommand
	ErrorInvalidConfig
	ErrorNotRunning
	ErrorQueueFull
)

// String returns the string representation of an ErrorCode.
func (e ErrorCode) String() string {
	switch e {
	case ErrorUnknown:
		return "unknown"
	case ErrorTransportClosed:
		return "transport_closed"
	case ErrorTransport:
		return "transport_error"
	case ErrorMalformedPayload:
		return "malformed_payload"
	case ErrorRequestFailed:
		return "request_failed"
	case ErrorRateLimited:
		return "rate_limited"
	case ErrorUnsendableCommand:
		return "unsendable_command"
	case ErrorInvalidConfig:
		return "invalid_config"
	case ErrorNotRunning:
		return "not_running"
	case ErrorQueueFull:
		return "queue_full"
	default:
		return fmt.Sprintf("unknown_code_%d", e)
	}
}

// SessionError is a structured error with code and context.
type SessionError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s (wrapped: %v)", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for errors.Unwrap support.
func (e *SessionError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface for error comparison.
func (e *SessionError) Is(target error) bool {
	t, ok := target.(*SessionError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new SessionError with the given code and message.
func NewError(code ErrorCode, message string) *SessionError {
	return &SessionError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with a SessionError.
func WrapError(code ErrorCode, message string, err error) *SessionError {
	return &SessionError{
		Code:    code,
		Message: message,
		Wrapped: err,
	}
}

// Sentinels usable with errors.Is; only the code is compared.
var (
	ErrTransportClosed  = NewError(ErrorTransportClosed, "stream closed")
	ErrTransportFailure = NewError(ErrorTransport, "transport failure")
	ErrUnsendable       = NewError(ErrorUnsendableCommand, "nothing to send")
	ErrMalformedPayload = NewError(ErrorMalformedPayload, "malformed payload")
	ErrNotRunning       = NewError(ErrorNotRunning, "session is not running")
	ErrRateLimited      = NewError(ErrorRateLimited, "rate limited by relay")
	ErrQueueFull        = NewError(ErrorQueueFull, "outbound queue full")
)

// CodeOf returns the ErrorCode of err, or ErrorUnknown.
func CodeOf(err error) ErrorCode {
	var se *SessionError
	if !errors.As(err, &se) {
		return ErrorUnknown
	}
	return se.Code
}

// IsClosed reports whether err signals that the push-stream has ended.
func IsClosed(err error) bool {
	return err != nil && CodeOf(err) == ErrorTransportClosed
}

// IsTransportError checks if an error is a stream-level failure of any kind.
func IsTransportError(err error) bool {
	if err == nil {
		return false
	}
	code := CodeOf(err)
	return code == ErrorTransportClosed || code == ErrorTransport
}
