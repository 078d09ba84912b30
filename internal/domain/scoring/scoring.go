// Package scoring turns a loan application into a default probability using
// a probability-estimating model.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/okian/loanapi/internal/domain/model"
)

// Default scoring configuration constants.
const (
	DefaultPositiveClassIndex = 1
	DefaultPrecision          = 4
)

// Sentinel errors returned by Score.
var (
	ErrEmptyOutput     = errors.New("model returned no probabilities")
	ErrClassIndex      = errors.New("positive class index out of range")
	ErrInvalidEstimate = errors.New("model returned an invalid probability")
)

// Model is the probability-estimation capability the scorer needs.
type Model interface {
	PredictProba(ctx context.Context, rows [][]float64) ([][]float64, error)
}

// Result carries the model output before and after rounding.
type Result struct {
	Raw         float64
	Probability float64
}

// Scorer computes a default probability for an application.
type Scorer interface {
	Score(ctx context.Context, in model.LoanInput) (Result, error)
}

// Option applies a configuration option to the ProbabilityScorer.
type Option func(*ProbabilityScorer)

// WithPositiveClassIndex selects the probability column reported as the
// default probability.
func WithPositiveClassIndex(idx int) Option {
	return func(s *ProbabilityScorer) {
		if idx >= 0 {
			s.classIndex = idx
		}
	}
}

// WithPrecision sets the number of decimals kept. Negative disables rounding.
func WithPrecision(decimals int) Option {
	return func(s *ProbabilityScorer) {
		s.precision = decimals
	}
}

// ProbabilityScorer implements Scorer over a Model.
type ProbabilityScorer struct {
	model      Model
	classIndex int
	precision  int
}

// NewProbabilityScorer creates a scorer for m.
func NewProbabilityScorer(m Model, opts ...Option) *ProbabilityScorer {
	s := &ProbabilityScorer{
		model:      m,
		classIndex: DefaultPositiveClassIndex,
		precision:  DefaultPrecision,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score builds the single-row feature matrix, asks the model for class
// probabilities and returns the positive-class column of the first row.
func (s *ProbabilityScorer) Score(ctx context.Context, in model.LoanInput) (Result, error) {
	proba, err := s.model.PredictProba(ctx, [][]float64{in.Features()})
	if err != nil {
		return Result{}, err
	}
	if len(proba) == 0 || len(proba[0]) == 0 {
		return Result{}, ErrEmptyOutput
	}
	row := proba[0]
	if s.classIndex >= len(row) {
		return Result{}, fmt.Errorf("%w: index %d, model returned %d classes", ErrClassIndex, s.classIndex, len(row))
	}

	raw := row[s.classIndex]
	if math.IsNaN(raw) || raw < 0 || raw > 1 {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidEstimate, raw)
	}
	return Result{Raw: raw, Probability: Round(raw, s.precision)}, nil
}

// ClassIndex returns the configured positive class column.
func (s *ProbabilityScorer) ClassIndex() int { return s.classIndex }

// Precision returns the configured number of decimals.
func (s *ProbabilityScorer) Precision() int { return s.precision }

// Round rounds the exact decimal value of p to the given number of
// decimals. Exact ties go to the even digit. Negative decimals return p
// unchanged.
func Round(p float64, decimals int) float64 {
	if decimals < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return p
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(p, 'f', decimals, 64), 64)
	if err != nil {
		return p
	}
	return r
}
