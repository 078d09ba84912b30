package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/loanapi/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, "0.0.0.0:8000")
				convey.So(cfg.PositiveClassIndex, convey.ShouldEqual, 1)
				convey.So(cfg.ProbabilityPrecision, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("LOANAPI_ADDR", ":8080")
			_ = os.Setenv("LOANAPI_MODEL_PATH", "/srv/models/loan.gob")
			_ = os.Setenv("LOANAPI_POSITIVE_CLASS_INDEX", "0")
			_ = os.Setenv("LOANAPI_PROBABILITY_PRECISION", "2")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.ModelPath, convey.ShouldEqual, "/srv/models/loan.gob")
				convey.So(cfg.PositiveClassIndex, convey.ShouldEqual, 0)
				convey.So(cfg.ProbabilityPrecision, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# service settings
addr: ":9090"
log_level: debug
model_path: "models/loan_model.gob"
model_dir: "/opt/loanapi"
positive_class_index: 1
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("LOANAPI_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.ModelPath, convey.ShouldEqual, "models/loan_model.gob")
				convey.So(cfg.ModelDir, convey.ShouldEqual, "/opt/loanapi")
				convey.So(cfg.ProbabilityPrecision, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, "addr: \":9090\"\nlog_level: warn\n")
			_ = os.Setenv("LOANAPI_CONFIG", tmpFile)
			_ = os.Setenv("LOANAPI_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("LOANAPI_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("LOANAPI_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("LOANAPI_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("LOANAPI_POSITIVE_CLASS_INDEX", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a dotenv file is provided", func() {
			dotenv := filepath.Join(t.TempDir(), "loanapi.env")
			convey.So(os.WriteFile(dotenv, []byte("LOANAPI_MODEL_PATH=/from/dotenv.json\nLOANAPI_ADDR=:7000\n"), 0o600), convey.ShouldBeNil)
			_ = os.Setenv("LOANAPI_DOTENV", dotenv)
			_ = os.Setenv("LOANAPI_ADDR", ":7100")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should fill unset variables without overriding set ones", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.ModelPath, convey.ShouldEqual, "/from/dotenv.json")
				convey.So(cfg.Addr, convey.ShouldEqual, ":7100")
			})
		})

		convey.Convey("When an explicit dotenv file is missing", func() {
			_ = os.Setenv("LOANAPI_DOTENV", "/non/existent/.env")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"LOANAPI_CONFIG",
		"LOANAPI_DOTENV",
		"LOANAPI_ADDR",
		"LOANAPI_LOG_LEVEL",
		"LOANAPI_MODEL_PATH",
		"LOANAPI_MODEL_DIR",
		"LOANAPI_POSITIVE_CLASS_INDEX",
		"LOANAPI_PROBABILITY_PRECISION",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loanapi-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
