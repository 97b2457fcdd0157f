package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a catalog item that does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrInvalidDimension signals a feature vector whose length differs from the catalog's.
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrUserNotFound signals a missing user profile.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists signals a duplicate user profile.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidRequest signals malformed input (bad algorithm, negative k, empty title).
	ErrInvalidRequest = errors.New("invalid request")
)

// DimensionError wraps ErrInvalidDimension with the expected and actual lengths.
type DimensionError struct {
	Expected int
	Actual   int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: expected %d features, got %d", ErrInvalidDimension.Error(), e.Expected, e.Actual)
}

func (e *DimensionError) Unwrap() error { return ErrInvalidDimension }

// NewDimensionError creates an invalid dimension error.
func NewDimensionError(expected, actual int) error {
	return &DimensionError{Expected: expected, Actual: actual}
}
