package saccade

import (
	"errors"
	"fmt"
)

// Domain errors for engine construction and updates.
var (
	// ErrInvalidConfig indicates a rejected engine configuration.
	ErrInvalidConfig = errors.New("saccade: invalid engine configuration")

	// ErrEmptyField indicates a field with no rows or no columns.
	ErrEmptyField = errors.New("saccade: field has no cells")

	// ErrShapeMismatch indicates a field whose dimensions differ from the
	// ones the engine was initialized with.
	ErrShapeMismatch = errors.New("saccade: field shape changed since initialization")
)

// TickError wraps an error with the frame it happened on.
type TickError struct {
	Tick    int
	Rows    int
	Cols    int
	Wrapped error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d (%dx%d): %v", e.Tick, e.Rows, e.Cols, e.Wrapped)
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}
