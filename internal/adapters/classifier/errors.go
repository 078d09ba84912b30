package classifier

import "errors"

// Sentinel kinds for classifier errors.
var (
	ErrModelNotFound     = errors.New("model file not found")
	ErrDecodeModel       = errors.New("decode model failed")
	ErrUnsupportedFormat = errors.New("unsupported model format")
	ErrFeatureMismatch   = errors.New("model features do not match input schema")
	ErrInvalidInput      = errors.New("invalid classifier input")
)
