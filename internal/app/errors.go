package service

import "errors"

// Sentinel kinds for service errors.
var (
	// ErrModelUnavailable is returned for every prediction when no model loaded.
	ErrModelUnavailable = errors.New("Model not loaded. Service unavailable.") //nolint:stylecheck,revive // message is part of the HTTP contract
	// ErrPrediction marks failures during feature construction or inference.
	ErrPrediction = errors.New("prediction failed")
)

// PredictionError wraps the cause of a failed inference. It matches both
// ErrPrediction and the cause with errors.Is.
type PredictionError struct {
	Cause error
}

func (e *PredictionError) Error() string {
	return "Prediction error: " + e.Cause.Error()
}

func (e *PredictionError) Unwrap() []error {
	return []error{ErrPrediction, e.Cause}
}
