package models

import (
	"errors"
	"fmt"
)

// ErrValidation marks entity invariant violations. Batch pipelines check it
// with errors.Is to decide whether an item can be skipped.
var ErrValidation = errors.New("validation failed")

func validationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
