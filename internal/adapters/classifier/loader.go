package classifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// ExecutableDir returns the directory of the running binary.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// ResolvePath returns path unchanged (cleaned) when absolute, otherwise
// joined onto baseDir.
func ResolvePath(path, baseDir string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}

type decoder func(r io.Reader, base Info) (Classifier, int, error)

// decoders maps a lower-case file extension to its artifact decoder.
var decoders = map[string]decoder{ //nolint:gochecknoglobals // static registry
	".json":   decodeLogistic,
	".gob":    decodeForest,
	".forest": decodeForest,
}

// Load reads the artifact at path. The decoder is chosen by file extension.
// Artifacts that declare feature names must declare exactly the expected
// ones, in order.
func Load(ctx context.Context, path string, opts ...Option) (Classifier, error) {
	o := defaultLoadOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, ext, path)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		return nil, fmt.Errorf("open model %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	clf, width, err := decode(f, Info{Path: path, LoadedAt: time.Now().UTC()})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if declared := clf.Info().Features; len(declared) > 0 && !slices.Equal(declared, o.features) {
		return nil, fmt.Errorf("%w: artifact declares %v, want %v", ErrFeatureMismatch, declared, o.features)
	}
	if width != len(o.features) {
		return nil, fmt.Errorf("%w: artifact expects %d features, want %d", ErrFeatureMismatch, width, len(o.features))
	}
	return clf, nil
}

func checkRows(rows [][]float64, width int) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: no rows", ErrInvalidInput)
	}
	for i, row := range rows {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d features, want %d", ErrInvalidInput, i, len(row), width)
		}
	}
	return nil
}
