package classifier

import (
	"context"
	"encoding/gob"
	"fmt"
	"io"

	randomforest "github.com/malaschitz/randomForest"
)

// forestArtifact is the gob envelope of a trained random forest.
type forestArtifact struct {
	Meta   forestMeta
	Forest randomforest.Forest
}

type forestMeta struct {
	Version  string
	Features []string
}

// Forest is a random forest classifier; probabilities are tree vote shares.
type Forest struct {
	forest *randomforest.Forest
	info   Info
}

// EncodeForest writes f as a loadable artifact. Training data is not stored.
func EncodeForest(w io.Writer, f *randomforest.Forest, version string, features []string) error {
	trained := *f
	trained.Data = randomforest.ForestData{}
	a := forestArtifact{
		Meta:   forestMeta{Version: version, Features: features},
		Forest: trained,
	}
	if err := gob.NewEncoder(w).Encode(&a); err != nil {
		return fmt.Errorf("encode forest: %w", err)
	}
	return nil
}

func decodeForest(r io.Reader, base Info) (Classifier, int, error) {
	var a forestArtifact
	if err := gob.NewDecoder(r).Decode(&a); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrDecodeModel, err)
	}

	f := a.Forest
	switch {
	case f.NTrees <= 0 || len(f.Trees) < f.NTrees:
		return nil, 0, fmt.Errorf("%w: forest has no trained trees", ErrDecodeModel)
	case f.Classes < 2:
		return nil, 0, fmt.Errorf("%w: forest has %d classes, want at least 2", ErrDecodeModel, f.Classes)
	case f.Features <= 0:
		return nil, 0, fmt.Errorf("%w: forest has no features", ErrDecodeModel)
	case len(a.Meta.Features) > 0 && len(a.Meta.Features) != f.Features:
		return nil, 0, fmt.Errorf("%w: %d feature names for %d features", ErrDecodeModel, len(a.Meta.Features), f.Features)
	}

	classes := make([]int, f.Classes)
	for i := range classes {
		classes[i] = i
	}
	info := base
	info.Kind = KindRandomForest
	info.Version = a.Meta.Version
	info.Features = a.Meta.Features
	info.Classes = classes
	return &Forest{forest: &f, info: info}, f.Features, nil
}

// PredictProba returns the per-class vote share for each row.
func (f *Forest) PredictProba(ctx context.Context, rows [][]float64) ([][]float64, error) {
	if err := checkRows(rows, f.forest.Features); err != nil {
		return nil, err
	}

	out := make([][]float64, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = f.forest.Vote(row)
	}
	return out, nil
}

// Info describes the loaded artifact.
func (f *Forest) Info() Info { return f.info }
