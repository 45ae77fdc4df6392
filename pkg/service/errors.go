package service

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotInitialized is returned when a prediction is requested before
	// any successful Initialize call. Not retryable without
	// re-initializing.
	ErrNotInitialized = errors.New("predictor not initialized")

	// ErrUnknownNode is returned when the requested node id is absent
	// from the node table.
	ErrUnknownNode = errors.New("unknown node")
)

// PredictError provides structured error information for predictor
// operations.
type PredictError struct {
	Op     string // operation that failed (e.g. "PredictFailureImpact")
	NodeID string // node id involved, if any
	Cause  error
}

// Error implements the error interface.
func (e *PredictError) Error() string {
	if e.NodeID != "" {
		return fmt.Sprintf("%s node %q: %v", e.Op, e.NodeID, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *PredictError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *PredictError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
