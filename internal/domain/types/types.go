// Package types contains common types used across the application
package types

// Prediction is the response body of POST /predict.
type Prediction struct {
	LoanDefaultProbability float64 `json:"loan_default_probability"`
}
