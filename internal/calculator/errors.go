package calculator

import "errors"

var (
	// ErrInvalidInput is returned when a numeric value is missing or not a finite number.
	ErrInvalidInput = errors.New("value is required and must be a finite number")
	// ErrInvalidDimension is returned when a dimension is zero or negative.
	ErrInvalidDimension = errors.New("dimension must be a positive number")
	// ErrDimensionTooLarge is returned when a dimension exceeds MaxDimensionFeet after conversion.
	ErrDimensionTooLarge = errors.New("dimension exceeds maximum allowed value (1000 feet when converted)")
	// ErrUnknownUnit is never returned by the calculator. It is attached to the
	// warning logged when an unrecognised unit falls back to feet.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrShapeMismatch is returned when a bed's shape does not match the dimensions it carries.
	ErrShapeMismatch = errors.New("shape does not match the supplied dimensions")
	// ErrNegativePrice is returned when a soil price per unit is negative.
	ErrNegativePrice = errors.New("price per unit cannot be negative")
	// ErrTooManyBags is returned when the bag count does not fit in an int.
	ErrTooManyBags = errors.New("bag count exceeds the maximum supported value")
)

// DimensionError names the field that failed validation.
type DimensionError struct {
	Field string
	Err   error
}

// NewDimensionError wraps err with the name of the offending field.
func NewDimensionError(field string, err error) *DimensionError {
	return &DimensionError{Field: field, Err: err}
}

func (e *DimensionError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *DimensionError) Unwrap() error {
	return e.Err
}
