package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
)

// logisticArtifact is the on-disk JSON form of a fitted binary logistic
// regression, optionally preceded by a standard scaler.
type logisticArtifact struct {
	Kind         string    `json:"kind"`
	Version      string    `json:"version"`
	Features     []string  `json:"features"`
	Classes      []int     `json:"classes"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Scaler       *struct {
		Mean  []float64 `json:"mean"`
		Scale []float64 `json:"scale"`
	} `json:"scaler,omitempty"`
}

// Logistic is a binary logistic regression classifier.
type Logistic struct {
	coef      []float64
	intercept float64
	mean      []float64
	scale     []float64
	info      Info
}

func decodeLogistic(r io.Reader, base Info) (Classifier, int, error) {
	var a logisticArtifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrDecodeModel, err)
	}
	if a.Kind != "" && a.Kind != KindLogisticRegression {
		return nil, 0, fmt.Errorf("%w: kind %q is not %s", ErrDecodeModel, a.Kind, KindLogisticRegression)
	}

	width := len(a.Coefficients)
	switch {
	case width == 0:
		return nil, 0, fmt.Errorf("%w: no coefficients", ErrDecodeModel)
	case len(a.Features) > 0 && len(a.Features) != width:
		return nil, 0, fmt.Errorf("%w: %d features but %d coefficients", ErrDecodeModel, len(a.Features), width)
	case len(a.Classes) > 0 && len(a.Classes) != 2:
		return nil, 0, fmt.Errorf("%w: logistic regression is binary, got %d classes", ErrDecodeModel, len(a.Classes))
	}

	l := &Logistic{
		coef:      a.Coefficients,
		intercept: a.Intercept,
	}
	if a.Scaler != nil {
		if len(a.Scaler.Mean) != width || len(a.Scaler.Scale) != width {
			return nil, 0, fmt.Errorf("%w: scaler width does not match %d coefficients", ErrDecodeModel, width)
		}
		for i, s := range a.Scaler.Scale {
			if s == 0 {
				return nil, 0, fmt.Errorf("%w: scaler scale[%d] is zero", ErrDecodeModel, i)
			}
		}
		l.mean = a.Scaler.Mean
		l.scale = a.Scaler.Scale
	}

	classes := a.Classes
	if len(classes) == 0 {
		classes = []int{0, 1}
	}
	l.info = base
	l.info.Kind = KindLogisticRegression
	l.info.Version = a.Version
	l.info.Features = a.Features
	l.info.Classes = classes
	return l, width, nil
}

// PredictProba returns [1-p, p] per row, p = sigmoid(w·x + b).
func (l *Logistic) PredictProba(ctx context.Context, rows [][]float64) ([][]float64, error) {
	if err := checkRows(rows, len(l.coef)); err != nil {
		return nil, err
	}

	out := make([][]float64, len(rows))
	x := make([]float64, len(l.coef))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		copy(x, row)
		if l.mean != nil {
			floats.Sub(x, l.mean)
			floats.Div(x, l.scale)
		}
		p := sigmoid(floats.Dot(x, l.coef) + l.intercept)
		out[i] = []float64{1 - p, p}
	}
	return out, nil
}

// Info describes the loaded artifact.
func (l *Logistic) Info() Info { return l.info }

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
