package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when a required setting (such as the Drive folder) is missing.
	ErrConfiguration = errors.New("configuration error")
	// ErrAuth is returned when no usable credentials are available.
	ErrAuth = errors.New("authentication error")
	// ErrFetch is returned when a remote listing or download fails.
	ErrFetch = errors.New("fetch error")
	// ErrDecode is returned when document bytes cannot be decoded to text.
	ErrDecode = errors.New("decode error")
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSyncInProgress is returned when a sync run is triggered while another is active.
	ErrSyncInProgress = errors.New("sync already in progress")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
