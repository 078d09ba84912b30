// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/okian/loanapi/internal/adapters/classifier"
	"github.com/okian/loanapi/internal/domain/model"
	"github.com/okian/loanapi/internal/domain/scoring"
	"github.com/okian/loanapi/internal/domain/types"
	"github.com/okian/loanapi/pkg/logger"
	"github.com/okian/loanapi/pkg/metrics"
)

const nanosecondsPerMillisecond = 1e6

// Service scores loan applications with a model loaded once at startup.
// It is immutable after New; the model may be absent.
type Service struct {
	classifier classifier.Classifier
	scorer     scoring.Scorer

	positiveClassIndex int
	precision          int

	logger logger.Logger

	served      atomic.Int64
	failed      atomic.Int64
	unavailable atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClassifier injects the loaded model. A nil classifier leaves the
// service without a model; every prediction then fails with
// ErrModelUnavailable.
func WithClassifier(c classifier.Classifier) Option {
	return func(s *Service) {
		s.classifier = c
	}
}

// WithPositiveClassIndex sets which probability column is the default class.
func WithPositiveClassIndex(idx int) Option {
	return func(s *Service) {
		if idx >= 0 {
			s.positiveClassIndex = idx
		}
	}
}

// WithPrecision sets the number of decimals in responses. Negative disables rounding.
func WithPrecision(decimals int) Option {
	return func(s *Service) {
		s.precision = decimals
	}
}

// New constructs a Service.
func New(opts ...Option) *Service {
	s := &Service{
		positiveClassIndex: scoring.DefaultPositiveClassIndex,
		precision:          scoring.DefaultPrecision,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.classifier != nil {
		s.scorer = scoring.NewProbabilityScorer(s.classifier,
			scoring.WithPositiveClassIndex(s.positiveClassIndex),
			scoring.WithPrecision(s.precision),
		)
	}
	return s
}

// Predict returns the default probability for in.
func (s *Service) Predict(ctx context.Context, in model.LoanInput) (types.Prediction, error) {
	if s.scorer == nil {
		s.unavailable.Add(1)
		metrics.RecordPrediction(metrics.OutcomeUnavailable)
		return types.Prediction{}, ErrModelUnavailable
	}

	start := time.Now()
	res, err := s.scorer.Score(ctx, in)
	metrics.RecordPredictionLatency(float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond)
	if err != nil {
		s.failed.Add(1)
		metrics.RecordPrediction(metrics.OutcomeError)
		s.logger.Warn(ctx, "prediction failed", logger.Error(err))
		return types.Prediction{}, &PredictionError{Cause: err}
	}

	s.served.Add(1)
	metrics.RecordPrediction(metrics.OutcomeSuccess)
	metrics.RecordPredictionProbability(res.Probability)
	return types.Prediction{LoanDefaultProbability: res.Probability}, nil
}

// Ready reports whether a model is loaded.
func (s *Service) Ready() bool {
	return s.classifier != nil
}

// ModelInfo describes the loaded model. ok is false when none is loaded.
func (s *Service) ModelInfo() (info classifier.Info, ok bool) {
	if s.classifier == nil {
		return classifier.Info{}, false
	}
	return s.classifier.Info(), true
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	stats := map[string]interface{}{
		"modelLoaded":        s.Ready(),
		"positiveClassIndex": s.positiveClassIndex,
		"precision":          s.precision,
		"predictionsServed":  s.served.Load(),
		"predictionsFailed":  s.failed.Load(),
		"modelUnavailable":   s.unavailable.Load(),
	}
	if info, ok := s.ModelInfo(); ok {
		stats["modelKind"] = info.Kind
		stats["modelVersion"] = info.Version
	}
	return stats
}
