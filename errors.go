package receiptstudio

import (
	"errors"
	"fmt"
)

// Sentinel errors for common editing and export failure conditions.
var (
	ErrNoTemplate  = errors.New("receiptstudio: no template selected")
	ErrLastItem    = errors.New("receiptstudio: at least one line item is required")
	ErrRendering   = errors.New("receiptstudio: rendering failed")
	ErrEmptyRaster = errors.New("receiptstudio: raster surface is empty")
	ErrDeclined    = errors.New("receiptstudio: action not confirmed")
)

// OpError represents an error that occurred during a specific editor
// operation. It wraps an underlying error and includes the operation name
// for context.
type OpError struct {
	Op  string // operation name, e.g. "Export", "DeleteItem"
	Err error  // underlying error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("receiptstudio.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("receiptstudio.%s: unknown error", e.Op)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// NewOpError creates an OpError wrapping err with operation context.
func NewOpError(op string, err error) *OpError {
	return &OpError{Op: op, Err: err}
}
