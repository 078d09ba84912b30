// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for input validation.
var (
	ErrMissingField = errors.New("field required")
	ErrInvalidField = errors.New("invalid field")
)

// FeatureOrder is the column order the classifier was trained on.
var FeatureOrder = []string{"age", "income", "loan_amount", "credit_score"} //nolint:gochecknoglobals // fixed training contract

// FeatureCount is len(FeatureOrder).
const FeatureCount = 4

// LoanInput is a single applicant submitted for scoring.
type LoanInput struct {
	Age         int     // applicant age in years
	Income      float64 // annual income
	LoanAmount  float64 // requested principal
	CreditScore int     // bureau score
}

// Features returns a new feature row in FeatureOrder.
func (in LoanInput) Features() []float64 {
	return []float64{
		float64(in.Age),
		in.Income,
		in.LoanAmount,
		float64(in.CreditScore),
	}
}

// IntegerField converts a decoded JSON number to int, rejecting values with
// a fractional part or outside the int64 range.
func IntegerField(name string, v float64) (int, error) {
	if err := FloatField(name, v); err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
		return 0, fmt.Errorf("%w: %s: value is not a valid integer", ErrInvalidField, name)
	}
	return int(v), nil
}

// FloatField rejects non-finite numbers.
func FloatField(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s: value is not a finite number", ErrInvalidField, name)
	}
	return nil
}
