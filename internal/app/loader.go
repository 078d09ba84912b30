package service

import (
	"context"
	"time"

	"github.com/okian/loanapi/internal/adapters/classifier"
	"github.com/okian/loanapi/pkg/logger"
	"github.com/okian/loanapi/pkg/metrics"
)

// LoadClassifier loads the model at path once. Failures are logged and
// reported as a nil classifier so the process can keep serving; there is
// no retry.
func LoadClassifier(ctx context.Context, log logger.Logger, path string) classifier.Classifier {
	now := float64(time.Now().Unix())

	clf, err := classifier.Load(ctx, path)
	if err != nil {
		log.Error(ctx, "error loading model", logger.String("path", path), logger.Error(err))
		metrics.SetModelLoaded(false, now)
		return nil
	}

	info := clf.Info()
	log.Info(ctx, "model loaded successfully",
		logger.String("path", path),
		logger.String("kind", info.Kind),
		logger.String("version", info.Version),
	)
	metrics.SetModelLoaded(true, now)
	return clf
}

// ResolveModelPath resolves a configured model path. Relative paths are
// joined onto dir, or onto the executable's directory when dir is empty.
func ResolveModelPath(path, dir string) (string, error) {
	if dir == "" {
		exeDir, err := classifier.ExecutableDir()
		if err != nil {
			return "", err
		}
		dir = exeDir
	}
	return classifier.ResolvePath(path, dir), nil
}
