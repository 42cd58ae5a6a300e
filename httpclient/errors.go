package httpclient

import (
	"errors"
	"fmt"

	apperrors "github.com/kbukum/servicekit/errors"
	"github.com/kbukum/servicekit/resilience"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates a request or connection timeout.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates a connection failure (refused, DNS, unreachable).
	ErrCodeConnection
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRequestFailed indicates a non-2xx response other than 404.
	ErrCodeRequestFailed
	// ErrCodeValidation indicates a request or response failed validation.
	ErrCodeValidation
	// ErrCodeCircuitOpen indicates the circuit breaker rejected the call.
	ErrCodeCircuitOpen
	// ErrCodeSaturated indicates the bulkhead rejected the call because too
	// many requests were already in flight.
	ErrCodeSaturated
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRequestFailed:
		return "request_failed"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeCircuitOpen:
		return "circuit_open"
	case ErrCodeSaturated:
		return "saturated"
	default:
		return "unknown"
	}
}

// Error is a structured HTTP client error with classification.
// It carries the operation and service it originated from so callers can
// log and alert without unwrapping.
type Error struct {
	// Service identifies the dependency the call was made against.
	Service string
	// Operation is the logical operation that failed (e.g. "get_user").
	Operation string
	// StatusCode is the HTTP status code (0 for connection-level errors).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Retryable indicates whether the operation can be retried.
	Retryable bool
	// Body is the original response body (may be nil).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	prefix := "httpclient"
	if e.Service != "" && e.Operation != "" {
		prefix = fmt.Sprintf("%s: %s", e.Service, e.Operation)
	} else if e.Service != "" {
		prefix = e.Service
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (HTTP %d): %s", prefix, e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", prefix, e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithContext tags the error with the service and operation it came from
// and returns the receiver.
func (e *Error) WithContext(service, operation string) *Error {
	e.Service = service
	e.Operation = operation
	return e
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{
		Code:      ErrCodeTimeout,
		Message:   err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error {
	return &Error{
		Code:      ErrCodeConnection,
		Message:   err.Error(),
		Retryable: true,
		Err:       err,
	}
}

// NewNotFoundError creates a not-found error.
func NewNotFoundError(body []byte) *Error {
	return &Error{
		StatusCode: 404,
		Code:       ErrCodeNotFound,
		Message:    statusMessage(404, body),
		Retryable:  false,
		Body:       body,
	}
}

// NewRequestFailedError creates an error for a non-2xx response.
func NewRequestFailedError(statusCode int, body []byte) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       ErrCodeRequestFailed,
		Message:    statusMessage(statusCode, body),
		Retryable:  false,
		Body:       body,
	}
}

// statusMessage prefers the upstream error payload's message over the bare
// status code.
func statusMessage(statusCode int, body []byte) string {
	if msg, ok := apperrors.ParseErrorBody(body); ok {
		return msg
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}

// NewValidationError creates a validation error.
func NewValidationError(msg string) *Error {
	return &Error{
		Code:      ErrCodeValidation,
		Message:   msg,
		Retryable: false,
	}
}

// NewCircuitOpenError wraps a circuit breaker rejection. errors.Is against
// resilience.ErrCircuitOpen still matches through Unwrap.
func NewCircuitOpenError(service string) *Error {
	return &Error{
		Service:   service,
		Code:      ErrCodeCircuitOpen,
		Message:   "circuit breaker is open",
		Retryable: false,
		Err:       resilience.ErrCircuitOpen,
	}
}

// NewSaturatedError wraps a bulkhead rejection. The failure is local to the
// caller rather than the dependency, and is not retryable: an immediate
// retry would contend for the same slots.
func NewSaturatedError(err error) *Error {
	return &Error{
		Code:      ErrCodeSaturated,
		Message:   err.Error(),
		Retryable: false,
		Err:       err,
	}
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for 2xx status codes; 404 maps to not-found, everything
// else to request-failed.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == 404:
		return NewNotFoundError(body)
	default:
		return NewRequestFailedError(statusCode, body)
	}
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNotFound
}

// IsRequestFailed checks if an error is a non-2xx request failure.
func IsRequestFailed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeRequestFailed
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeValidation
}

// IsSaturated checks if an error is a bulkhead rejection.
func IsSaturated(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeSaturated
}

// IsCircuitOpen checks if an error is a circuit breaker rejection.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, resilience.ErrCircuitOpen)
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}
