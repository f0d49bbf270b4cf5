package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure cases
var (
	// ErrInvalidInput indicates the scan input text is unusable (missing
	// separator, undecodable hex payload)
	ErrInvalidInput = errors.New("invalid scan input")

	// ErrInvalidAddress indicates a hardware address that does not contain
	// exactly 12 hex digits
	ErrInvalidAddress = errors.New("invalid hardware address")

	// ErrMalformedElement indicates an information element that violates its
	// length contract. Construction is aborted, no descriptor is produced.
	ErrMalformedElement = errors.New("malformed information element")

	// ErrInvalidVenueInfo indicates a venue-info field with an out-of-range
	// group code. Callers treat venue data as absent.
	ErrInvalidVenueInfo = errors.New("invalid venue info")
)

// ElementError wraps a per-element decode failure with the element tag
type ElementError struct {
	Tag int   // IE tag that failed to decode
	Err error // Underlying error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("element %d: %v", e.Tag, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

// ValidationError wraps validation errors with the invalid value
type ValidationError struct {
	Field string // Field that failed validation
	Value string // Invalid value
	Err   error  // Underlying error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
