package smoke

import "os"

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	os.Stdout.WriteString(`Loan API Smoke Tool
===================

Generates random loan applicants, scores them concurrently against a running
service and checks every response.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -applicants int
        Number of applicants to generate and score (default 1000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -output string
        Write generated applicants to this JSON file
  -log string
        Also write logs to this file
  -verbose
        Log every response
  -help
        Show this help message

The service must have a model loaded (GET /readyz returns 200). When the
service runs under "go run ./cmd", point it at the sample model with
LOANAPI_MODEL_DIR=$PWD/cmd or LOANAPI_MODEL_PATH=$PWD/models/loan_model.json.

Examples:
  # Score 1000 applicants against a local service
  go run ./cmd/smoke

  # Heavier run against another host
  go run ./cmd/smoke -applicants 50000 -workers 32 -url http://scoring:8000
`)
}
