package smoke

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/okian/loanapi/pkg/logger"
)

const (
	directoryPermission = 0o750
	filePermission      = 0o600
	percentage          = 100
)

// ErrUnhealthy is returned when at least one request did not succeed.
var ErrUnhealthy = errors.New("smoke run had failures")

// Run executes a complete smoke run and returns its statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting loan api smoke run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("applicants", config.NumApplicants),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Bool("verbose", config.Verbose))

	client := NewClient(config.BaseURL, config.Timeout)

	// Step 1: Check the model is loaded
	if err := client.CheckReady(ctx); err != nil {
		return stats, fmt.Errorf("readiness check failed: %w", err)
	}
	log.Info(ctx, "service is ready")

	// Step 2: Generate applicants
	applicants, err := generateApplicants(ctx, config.NumApplicants)
	if err != nil {
		return stats, fmt.Errorf("applicant generation failed: %w", err)
	}
	stats.Generated = len(applicants)

	// Step 3: Score concurrently
	submit(ctx, client, config, applicants, stats)

	// Step 4: Optional dump
	if config.OutputFile != "" {
		if err := saveApplicants(ctx, config.OutputFile, applicants); err != nil {
			log.Warn(ctx, "failed to save applicants to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if !stats.Healthy() {
		return stats, ErrUnhealthy
	}
	log.Info(ctx, "smoke run completed successfully")
	return stats, nil
}

type result struct {
	outcome Outcome
	prob    float64
	detail  string
}

// submit scores applicants with a fixed worker pool.
func submit(ctx context.Context, client *Client, config *Config, applicants []Applicant, stats *Stats) {
	workers := config.Workers
	if workers < 1 {
		workers = 1
	}
	log := logger.Get()
	log.Info(ctx, "submitting applicants", logger.Int("count", len(applicants)), logger.Int("workers", workers))

	jobs := make(chan Applicant, workers*2)
	results := make(chan result, workers*2)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for a := range jobs {
				outcome, p, detail := client.Predict(ctx, a)
				if config.Verbose {
					log.Debug(ctx, "scored applicant", logger.Any("applicant", a), logger.Float64("probability", p), logger.String("detail", detail))
				}
				results <- result{outcome: outcome, prob: p, detail: detail}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, a := range applicants {
			select {
			case <-ctx.Done():
				return
			case jobs <- a:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var sum float64
	stats.MinProb = math.Inf(1)
	stats.MaxProb = math.Inf(-1)
	for r := range results {
		stats.Submitted++
		switch r.outcome {
		case OutcomeSuccess:
			stats.Successful++
			sum += r.prob
			stats.MinProb = math.Min(stats.MinProb, r.prob)
			stats.MaxProb = math.Max(stats.MaxProb, r.prob)
			continue
		case OutcomeClientError:
			stats.ClientErrors++
		case OutcomeServerError:
			stats.ServerErrors++
		case OutcomeUnavailable:
			stats.Unavailable++
		case OutcomeOutOfRange:
			stats.OutOfRange++
		case OutcomeFailed:
			stats.Failed++
		}
		log.Warn(ctx, "prediction request failed", logger.Int("outcome", int(r.outcome)), logger.String("detail", r.detail))
	}
	if stats.Successful > 0 {
		stats.MeanProb = sum / float64(stats.Successful)
	} else {
		stats.MinProb, stats.MaxProb = 0, 0
	}
}

// saveApplicants writes the generated applicants as a JSON array.
func saveApplicants(ctx context.Context, filename string, applicants []Applicant) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(applicants, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal applicants: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	logger.Get().Info(ctx, "applicants saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, perSecond float64
	if stats.Submitted > 0 {
		successRate = float64(stats.Successful) / float64(stats.Submitted) * percentage
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("clientErrors", stats.ClientErrors),
		logger.Int("serverErrors", stats.ServerErrors),
		logger.Int("unavailable", stats.Unavailable),
		logger.Int("outOfRange", stats.OutOfRange),
		logger.Int("failed", stats.Failed),
		logger.Float64("minProbability", stats.MinProb),
		logger.Float64("maxProbability", stats.MaxProb),
		logger.Float64("meanProbability", stats.MeanProb),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", perSecond))
}
