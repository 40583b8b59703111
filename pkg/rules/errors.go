package rules

import "errors"

var (
	// ErrInvalidLength is returned when a string, sequence or object has the wrong size.
	ErrInvalidLength = errors.New("invalid length")

	// ErrOutOfRange is returned when a number falls outside the allowed bounds.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidFormat is returned when a string does not match the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidValue is returned when a value is not among the allowed ones.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNotApplicable is returned when a rule receives a value of a kind it cannot measure.
	ErrNotApplicable = errors.New("rule does not apply to value")
)
