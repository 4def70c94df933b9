// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrCollectionNotSet = errors.New("source collection not configured")
	ErrProfileNotFound  = errors.New("mapping profile not found")
	ErrDataNotFound     = errors.New("data not found")
	ErrDatabaseError    = errors.New("database error")
	ErrRateLimited      = errors.New("rate limited")
	ErrTimeout          = errors.New("operation timed out")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrInputValidation  = errors.New("input validation failed")
)

// FetchError represents an error from the document-database source.
type FetchError struct {
	Collection string
	Status     int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch error [%s] status %d: %s: %v", e.Collection, e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("fetch error [%s] status %d: %s", e.Collection, e.Status, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a new FetchError.
func NewFetchError(collection string, status int, message string, err error) *FetchError {
	return &FetchError{
		Collection: collection,
		Status:     status,
		Message:    message,
		Err:        err,
	}
}

// ProfileError represents an error handling a mapping profile.
type ProfileError struct {
	Profile string
	Message string
	Err     error
}

func (e *ProfileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("profile error [%s]: %s: %v", e.Profile, e.Message, e.Err)
	}
	return fmt.Sprintf("profile error [%s]: %s", e.Profile, e.Message)
}

func (e *ProfileError) Unwrap() error {
	return e.Err
}

// NewProfileError creates a new ProfileError.
func NewProfileError(profile, message string, err error) *ProfileError {
	return &ProfileError{
		Profile: profile,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a boundary contract violation. Malformed
// cell data never produces one; only malformed input at the boundary
// does.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
