package xentropy

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMode is returned when a mode tag is not one of the recognized tags.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrUnsupportedContainer is returned when a dataset is not a numeric
	// slice, a mat.Vector, or a Series.
	ErrUnsupportedContainer = errors.New("unsupported dataset container")

	// ErrNonNumeric is returned when an accepted container holds a value that is not a number.
	ErrNonNumeric = errors.New("non-numeric value in dataset")

	// ErrLengthMismatch is returned when paired inputs differ in length.
	ErrLengthMismatch = errors.New("dataset length mismatch")

	// ErrInvalidGrid is returned for empty or ragged joint probability grids.
	ErrInvalidGrid = errors.New("invalid joint probability grid")
)

type InvalidModeError struct {
	Value string
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode provided: %q, must be one of %v", e.Value, modeTags)
}

func (e *InvalidModeError) Unwrap() error {
	return ErrInvalidMode
}

type UnsupportedContainerError struct {
	Type string
}

func (e *UnsupportedContainerError) Error() string {
	return fmt.Sprintf("unsupported dataset type %s, must provide a numeric slice, mat.Vector, or Series", e.Type)
}

func (e *UnsupportedContainerError) Unwrap() error {
	return ErrUnsupportedContainer
}
