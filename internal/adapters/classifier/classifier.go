// Package classifier loads serialized binary classifiers and exposes their
// probability-estimation call.
package classifier

import (
	"context"
	"time"
)

// Artifact kinds.
const (
	KindLogisticRegression = "logistic_regression"
	KindRandomForest       = "random_forest"
)

// Classifier estimates per-class probabilities. Implementations are
// read-only after load and safe for concurrent use.
type Classifier interface {
	// PredictProba returns one probability row per input row.
	PredictProba(ctx context.Context, rows [][]float64) ([][]float64, error)
	// Info describes the loaded artifact.
	Info() Info
}

// Info describes a loaded artifact.
type Info struct {
	Kind     string    `json:"kind"`
	Version  string    `json:"version"`
	Path     string    `json:"path"`
	Features []string  `json:"features"`
	Classes  []int     `json:"classes"`
	LoadedAt time.Time `json:"loaded_at"`
}
