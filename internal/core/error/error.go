package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// ValidationErrorMessage describes recoverable order validation failures.
	ValidationErrorMessage = "order validation failed"
	// ClassificationErrorMessage describes classifier failures or timeouts.
	ClassificationErrorMessage = "classification failed"
	// SessionNotFoundMessage describes lookups against unknown session ids.
	SessionNotFoundMessage = "session not found"
	// GraphConfigMessage describes fatal workflow construction failures.
	GraphConfigMessage = "workflow graph misconfigured"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes missing Redis keys.
	RedisNotFoundMessage = "redis key not found"
)

// Sentinels for the engine's error taxonomy. Recoverable errors are recorded
// into session state and never abort the session; ErrGraphConfig is fatal and
// only ever surfaces at workflow construction time.
var (
	ErrValidation      = errors.New("validation error")
	ErrClassification  = errors.New("classification error")
	ErrLookupMiss      = errors.New("no catalog match")
	ErrSessionNotFound = errors.New("session not found")
	ErrGraphConfig     = errors.New("graph configuration error")
)

// Error wraps an underlying error with an HTTP-ish status and safe message.
type Error struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error with the provided information.
func New(err error, status int, message string) *Error {
	return &Error{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// NewValidation wraps a violation description as a recoverable validation error.
func NewValidation(reason string) *Error {
	return New(fmt.Errorf("%w: %s", ErrValidation, reason), http.StatusUnprocessableEntity, ValidationErrorMessage)
}

// NewClassification wraps a classifier failure, including timeouts.
func NewClassification(err error) *Error {
	return New(fmt.Errorf("%w: %v", ErrClassification, err), http.StatusBadGateway, ClassificationErrorMessage)
}

// NewGraphConfig wraps a fatal workflow construction failure.
func NewGraphConfig(err error) *Error {
	return New(fmt.Errorf("%w: %v", ErrGraphConfig, err), http.StatusInternalServerError, GraphConfigMessage)
}

// Is reports whether the target matches the underlying error or the Error itself.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to Error or the wrapped error in a chain.
func (e *Error) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**Error); ok {
		*t = e
		return true
	}
	return false
}
