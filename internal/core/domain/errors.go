package domain

import "errors"

// ============================================================================
// Inference Errors
// ============================================================================

var (
	ErrModelUnavailable = errors.New("model not loaded")
	ErrInvalidInput     = errors.New("invalid input")
	ErrPredictionFailed = errors.New("prediction failed")
)

// Load errors (recorded as the reason of an unavailable artifact)
var (
	ErrUnknownBackend = errors.New("unknown backend")
	ErrNotLoaded      = errors.New("not loaded")
	ErrNoLoader       = errors.New("no loader registered for backend")
)

// ============================================================================
// Content / Auth Errors
// ============================================================================

var (
	ErrMissingCredentials = errors.New("Email and password are required")
	ErrInvalidCredentials = errors.New("Invalid email or password")
)

// PredictionError is the single error shape returned by the inference gateway.
// Kind is one of ErrModelUnavailable, ErrInvalidInput or ErrPredictionFailed.
type PredictionError struct {
	Kind    error
	Backend string
	Message string
}

func (e *PredictionError) Error() string {
	return e.Message
}

func (e *PredictionError) Unwrap() error {
	return e.Kind
}
