package market

import "errors"

var (
	// ErrMissingRate is returned when a rate table has no entry for a code.
	ErrMissingRate = errors.New("missing rate")

	// ErrInvalidRate is returned when a table entry is not a positive,
	// finite number.
	ErrInvalidRate = errors.New("invalid rate")

	// ErrDivideByZero is returned when a conversion would divide by a zero
	// or non-finite rate.
	ErrDivideByZero = errors.New("divide by zero")
)
