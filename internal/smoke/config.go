package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL       string        // Base URL of the service
	NumApplicants int           // Number of applicants to generate and score
	Workers       int           // Number of concurrent workers
	Timeout       time.Duration // HTTP request timeout
	OutputFile    string        // Optional JSON dump of generated applicants
	Verbose       bool          // Log every response
}

// Applicant is the body posted to /predict.
type Applicant struct {
	Age         int     `json:"age"`
	Income      float64 `json:"income"`
	LoanAmount  float64 `json:"loan_amount"`
	CreditScore int     `json:"credit_score"`
}

// Prediction is the body returned by /predict on success.
type Prediction struct {
	LoanDefaultProbability float64 `json:"loan_default_probability"`
}

// detailResponse is the body returned by the service on errors.
type detailResponse struct {
	Detail string `json:"detail"`
}

// Stats holds run statistics.
type Stats struct {
	Generated    int
	Submitted    int
	Successful   int
	ClientErrors int // 4xx
	ServerErrors int // 5xx other than 503
	Unavailable  int // 503
	OutOfRange   int // 200 with a probability outside [0, 1]
	Failed       int // transport errors
	MinProb      float64
	MaxProb      float64
	MeanProb     float64
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}

// Healthy reports whether every request succeeded with a valid probability.
func (s *Stats) Healthy() bool {
	return s.Submitted == s.Generated && s.Successful == s.Submitted
}
