package smoke

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Outcome classifies a single /predict call.
type Outcome int

// Outcomes.
const (
	OutcomeSuccess Outcome = iota
	OutcomeClientError
	OutcomeServerError
	OutcomeUnavailable
	OutcomeOutOfRange
	OutcomeFailed
)

// ErrNotReady is returned when /readyz does not report a loaded model.
var ErrNotReady = errors.New("service not ready")

// Client talks to the prediction service.
type Client struct {
	base string
	rest *resty.Client
}

// NewClient creates a client with the given per-request timeout.
func NewClient(base string, timeout time.Duration) *Client {
	r := resty.New()
	if timeout > 0 {
		r.SetTimeout(timeout)
	} else {
		r.SetTimeout(10 * time.Second)
	}
	r.SetHeader("Content-Type", "application/json")
	return &Client{base: base, rest: r}
}

// CheckReady verifies the service has a model loaded.
func (c *Client) CheckReady(ctx context.Context) error {
	resp, err := c.rest.R().SetContext(ctx).Get(c.base + "/readyz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", ErrNotReady, resp.StatusCode(), resp.String())
	}
	return nil
}

// Predict posts one applicant and classifies the response. The probability
// is only meaningful for OutcomeSuccess.
func (c *Client) Predict(ctx context.Context, a Applicant) (Outcome, float64, string) {
	pred := &Prediction{}
	detail := &detailResponse{}
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(a).
		SetResult(pred).
		SetError(detail).
		Post(c.base + "/predict")
	if err != nil {
		return OutcomeFailed, 0, err.Error()
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusOK:
		p := pred.LoanDefaultProbability
		if p < 0 || p > 1 {
			return OutcomeOutOfRange, p, fmt.Sprintf("probability %v outside [0, 1]", p)
		}
		return OutcomeSuccess, p, ""
	case code == http.StatusServiceUnavailable:
		return OutcomeUnavailable, 0, detail.Detail
	case code >= http.StatusInternalServerError:
		return OutcomeServerError, 0, detail.Detail
	default:
		return OutcomeClientError, 0, detail.Detail
	}
}
