package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrBodyTooBig = errors.New("request body too large")
)

// WrapKind tags err with an operation name and a sentinel kind so callers
// can match the kind with errors.Is while logs keep the full chain.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}
