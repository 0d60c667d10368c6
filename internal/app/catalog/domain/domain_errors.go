package domain

import (
	"errors"
	"fmt"
)

// Domain errors as sentinel values
var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrMalformedFilter = errors.New("malformed filter")

	// Entity lookups
	ErrCarNotFound        = fmt.Errorf("car %w", ErrNotFound)
	ErrDealerNotFound     = fmt.Errorf("dealer %w", ErrNotFound)
	ErrCategoryNotFound   = fmt.Errorf("category %w", ErrNotFound)
	ErrSectionNotFound    = fmt.Errorf("inspection section %w", ErrNotFound)
	ErrSubsectionNotFound = fmt.Errorf("inspection subsection %w", ErrNotFound)

	// Value errors
	ErrNegativePrice   = errors.New("price cannot be negative")
	ErrInvalidDiscount = errors.New("discount price must be positive and not above price")
	ErrInvalidScore    = errors.New("score must be between 0 and 10 with one decimal")
	ErrUnknownEnum     = errors.New("unknown enum value")
	ErrAmbiguousLookup = errors.New("key matches more than one row")
)

// ValidationError reports a rejected input value. Param names the offending
// query parameter or CSV column.
type ValidationError struct {
	Param  string
	Reason string
	Err    error
}

// NewValidationError creates a ValidationError for param.
func NewValidationError(param, reason string, cause error) *ValidationError {
	return &ValidationError{Param: param, Reason: reason, Err: cause}
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Param, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// Unwrap exposes both ErrValidation and the underlying cause to errors.Is.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}
