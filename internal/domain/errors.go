// Package domain contains content types and errors.
// Domain errors represent content-level failures, NOT HTTP errors.
// Adapters map them to status codes, placeholders or exit codes.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates two records of the same kind share an id.
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates a record or request failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrFetchFailed indicates metadata or content could not be read.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrBuildFatal indicates a batch could not start.
	ErrBuildFatal = errors.New("build aborted")

	// ErrBuildPartial indicates a batch finished with failed records.
	ErrBuildPartial = errors.New("build incomplete")
)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Kind Kind
	ID   string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Kind, e.ID)
	}

	return fmt.Sprintf("%s not found: no id supplied", e.Kind)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(kind Kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// ConflictError reports a duplicated record id.
type ConflictError struct {
	Kind Kind
	ID   string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict: id %q appears more than once", e.Kind, e.ID)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError creates a conflict error for a duplicated id.
func NewConflictError(kind Kind, id string) error {
	return &ConflictError{Kind: kind, ID: id}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error including the invalid value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// FetchError reports an unreachable metadata list or content file.
type FetchError struct {
	Resource string
	Reason   string
	Err      error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("fetching %s: %s", e.Resource, e.Reason)
	}

	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.Resource, e.Err)
	}

	return "fetching " + e.Resource + " failed"
}

// Unwrap returns the sentinel and the underlying cause.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFetchFailed}
	}

	return []error{ErrFetchFailed, e.Err}
}

// NewFetchError creates a fetch error for a resource.
func NewFetchError(resource, reason string) error {
	return &FetchError{Resource: resource, Reason: reason}
}

// WrapFetchError creates a fetch error that keeps the underlying cause.
func WrapFetchError(resource string, err error) error {
	return &FetchError{Resource: resource, Err: err}
}

// BuildError reports a batch that aborted before writing anything.
type BuildError struct {
	Kind Kind
	Err  error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("%s build aborted: %v", e.Kind, e.Err)
}

// Unwrap returns the sentinel and the underlying cause.
func (e *BuildError) Unwrap() []error {
	return []error{ErrBuildFatal, e.Err}
}

// NewBuildError creates a fatal build error.
func NewBuildError(kind Kind, err error) error {
	return &BuildError{Kind: kind, Err: err}
}

// PartialBuildError reports a batch where some records failed.
type PartialBuildError struct {
	Kind      Kind
	Succeeded int
	Total     int
}

// Error implements the error interface.
func (e *PartialBuildError) Error() string {
	return fmt.Sprintf("%s build incomplete: %d of %d records written", e.Kind, e.Succeeded, e.Total)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *PartialBuildError) Unwrap() error {
	return ErrBuildPartial
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsFetchFailure checks if an error is a fetch failure.
func IsFetchFailure(err error) bool {
	return errors.Is(err, ErrFetchFailed)
}

// IsBuildFatal checks if an error aborted a batch.
func IsBuildFatal(err error) bool {
	return errors.Is(err, ErrBuildFatal)
}

// IsBuildPartial checks if a batch finished with failed records.
func IsBuildPartial(err error) bool {
	return errors.Is(err, ErrBuildPartial)
}
