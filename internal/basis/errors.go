package basis

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrInvalidCatalog        = errors.New("invalid basis catalog")
	ErrUnknownRepresentation = errors.New("unknown basis representation")
	ErrInvalidSliceCount     = errors.New("number of shell slices does not match number of centers")
	ErrDescendingRange       = errors.New("shell slice stop is smaller than start")
	ErrOutOfBounds           = errors.New("shell slice exceeds number of shells")
	ErrNegativeIndex         = errors.New("shell index should not be negative")
	ErrAsymmetricSlice       = errors.New("first two shell slices must be identical")
)

// SliceError reports which slice failed validation and the bound it violated.
type SliceError struct {
	Err   error // One of the Err* sentinels above
	Axis  int   // Offending axis, -1 when the error concerns the whole list
	Slice Slice // Offending slice (zero for count errors)
	Bound int   // Expected bound: center count, shell count or 0
	Got   int   // Number of slices received (count errors only)
}

// Error implements the error interface.
func (e *SliceError) Error() string {
	if e.Axis < 0 {
		return fmt.Sprintf("%v: expected %d, got %d", e.Err, e.Bound, e.Got)
	}
	return fmt.Sprintf("%v: axis %d slice %v (bound %d)", e.Err, e.Axis, e.Slice, e.Bound)
}

// Unwrap returns the sentinel so callers can use errors.Is.
func (e *SliceError) Unwrap() error {
	return e.Err
}

// catalogError wraps ErrInvalidCatalog with details.
func catalogError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCatalog, fmt.Sprintf(format, args...))
}
