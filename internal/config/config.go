// Package config defines service configuration and how it is loaded.
//
// Conventions:
//   - New() builds a Config with defaults; Load layers file and env on top.
//   - Errors returned from Load wrap ErrLoadConfig or ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, also writes logs to a size-rotated file.
	LogFile       string `koanf:"log_file"`
	LogMaxSizeMB  int    `koanf:"log_max_size_mb"`
	LogMaxBackups int    `koanf:"log_max_backups"`
	LogMaxAgeDays int    `koanf:"log_max_age_days"`

	// Addr configures the HTTP listen address.
	Addr string `koanf:"addr"`

	// ModelPath points at the serialized classifier. Relative paths are
	// resolved against ModelDir.
	ModelPath string `koanf:"model_path"`

	// ModelDir is the base for a relative ModelPath. Empty means the
	// directory of the running executable, which under `go run` is a
	// temporary build directory; set LOANAPI_MODEL_DIR (for example to the
	// repository's cmd directory) or use an absolute LOANAPI_MODEL_PATH there.
	ModelDir string `koanf:"model_dir"`

	// PositiveClassIndex selects the probability column reported as the
	// default probability. It must match the label encoding used in training.
	PositiveClassIndex int `koanf:"positive_class_index"`

	// ProbabilityPrecision is the number of decimals kept in responses.
	// Negative disables rounding.
	ProbabilityPrecision int `koanf:"probability_precision"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		LogMaxSizeMB:         100,
		LogMaxBackups:        3,
		LogMaxAgeDays:        28,
		Addr:                 "0.0.0.0:8000",
		ModelPath:            "../models/loan_model.json",
		PositiveClassIndex:   1,
		ProbabilityPrecision: 4,
	}
}
