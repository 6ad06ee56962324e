package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Validation errors
	ErrValidation       = errors.New("validation failed")
	ErrColumnNotFound   = fmt.Errorf("%w: column not found", ErrValidation)
	ErrNonNumericColumn = fmt.Errorf("%w: column must contain numeric data", ErrValidation)
	ErrInvalidLevel     = fmt.Errorf("%w: significance level must be one of 1, 2, 5, 10, 15", ErrValidation)

	// Defensive fallback when no branch produced a test result
	ErrNoResult = errors.New("no test result produced")

	// Statistical collaborator failures
	ErrInsufficientData   = errors.New("insufficient data for analysis")
	ErrLengthMismatch     = errors.New("paired series must have equal length")
	ErrZeroVariance       = errors.New("zero variance in differences")
	ErrAllZeroDifferences = errors.New("all paired differences are zero")
)

// Error constructors with context
func NewValidationError(field string, reason string) error {
	return fmt.Errorf("%w for %s: %s", ErrValidation, field, reason)
}

func NewColumnError(column string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, column)
}

func NewNonNumericError(column string, row int) error {
	return fmt.Errorf("%w: %q at row %d", ErrNonNumericColumn, column, row)
}

func NewLevelError(level int) error {
	return fmt.Errorf("%w: got %d", ErrInvalidLevel, level)
}

func NewNoResultError(level int) error {
	return fmt.Errorf("%w for significance level %d", ErrNoResult, level)
}

// Error checking helpers
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsNoResultError(err error) bool {
	return errors.Is(err, ErrNoResult)
}
