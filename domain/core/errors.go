package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrSampleNotFound  = fmt.Errorf("%w: sample dataset", ErrNotFound)

	// Load errors
	ErrEmptyDataset    = errors.New("dataset contains no rows")
	ErrNoColumns       = errors.New("dataset contains no columns")
	ErrUnsupportedFile = errors.New("unsupported file format")

	// Query errors
	ErrInvalidFilter = errors.New("invalid filter specification")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewInvalidFilterError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidFilter, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsEmptyDatasetError(err error) bool {
	return errors.Is(err, ErrEmptyDataset)
}

func IsLoadError(err error) bool {
	return errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrNoColumns) ||
		errors.Is(err, ErrUnsupportedFile)
}
