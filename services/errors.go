package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the service layer. Controllers map these to
// HTTP statuses; everything else is treated as an upstream store failure.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrInvalidScore = fmt.Errorf("sub-scores must be between 1 and 5")
	ErrValidation   = errors.New("validation failed")
)

// validationError wraps ErrValidation with a field-level message.
func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
