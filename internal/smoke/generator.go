package smoke

import (
	"context"
	"crypto/rand"
	"fmt"
	"math"
	"math/big"

	"github.com/okian/loanapi/pkg/logger"
)

const randomFloatDivisor = 1000000

// Applicant value ranges.
const (
	minAge         = 18
	maxAge         = 75
	minIncome      = 15000.0
	maxIncome      = 250000.0
	minLoanAmount  = 1000.0
	maxLoanAmount  = 100000.0
	minCreditScore = 300
	maxCreditScore = 850
)

// getRandomFloat returns a random float64 in [0, 1) using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func randomInt(lo, hi int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(hi-lo+1)))
	return lo + int(n.Int64())
}

// randomAmount returns a value in [lo, hi) rounded to cents.
func randomAmount(lo, hi float64) float64 {
	return math.Round((lo+getRandomFloat()*(hi-lo))*100) / 100
}

// generateApplicant returns one applicant with plausible values.
func generateApplicant() Applicant {
	return Applicant{
		Age:         randomInt(minAge, maxAge),
		Income:      randomAmount(minIncome, maxIncome),
		LoanAmount:  randomAmount(minLoanAmount, maxLoanAmount),
		CreditScore: randomInt(minCreditScore, maxCreditScore),
	}
}

// generateApplicants creates n applicants.
func generateApplicants(ctx context.Context, n int) ([]Applicant, error) {
	logger.Get().Info(ctx, "generating applicants", logger.Int("count", n))

	out := make([]Applicant, n)
	for i := range out {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during generation: %w", err)
		}
		out[i] = generateApplicant()
	}
	return out, nil
}
