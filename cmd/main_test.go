package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/loanapi/internal/adapters/http/api"
	"github.com/okian/loanapi/internal/config"
	"github.com/okian/loanapi/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// writeModel writes a logistic artifact whose default probability for the
// sample applicant below is sigmoid(-1.7346) ~ 0.15.
func writeModel(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "loan_model.json")
	artifact := `{
  "kind": "logistic_regression",
  "version": "test",
  "features": ["age", "income", "loan_amount", "credit_score"],
  "classes": [0, 1],
  "coefficients": [0, 0, 0, 0],
  "intercept": -1.7346
}`
	if err := os.WriteFile(path, []byte(artifact), 0o600); err != nil {
		t.Fatalf("write model: %v", err)
	}
	return path
}

func mustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	return wd
}

func TestNewService(t *testing.T) {
	convey.Convey("Given a configuration", t, func() {
		ctx := context.Background()
		cfg := config.New()

		convey.Convey("When the model file exists", func() {
			cfg.ModelPath = writeModel(t)
			svc, err := newService(ctx, cfg, logger.Nop())

			convey.So(err, convey.ShouldBeNil)
			convey.So(svc.Ready(), convey.ShouldBeTrue)
		})

		convey.Convey("When the model dir points at the cmd directory", func() {
			_ = os.Setenv("LOANAPI_MODEL_DIR", mustGetwd(t))
			defer func() { _ = os.Unsetenv("LOANAPI_MODEL_DIR") }()

			loaded, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)
			svc, err := newService(ctx, loaded, logger.Nop())

			convey.Convey("Then the default relative path finds the sample model", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(svc.Ready(), convey.ShouldBeTrue)
				info, _ := svc.ModelInfo()
				convey.So(info.Version, convey.ShouldEqual, "2024.1-sample")
			})
		})

		convey.Convey("When the model file is missing", func() {
			cfg.ModelPath = "loan_model.json"
			cfg.ModelDir = t.TempDir()
			svc, err := newService(ctx, cfg, logger.Nop())

			convey.Convey("Then the service still starts without a model", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(svc.Ready(), convey.ShouldBeFalse)
			})
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given the assembled HTTP handler", t, func() {
		ctx := context.Background()
		cfg := config.New()
		cfg.ModelPath = writeModel(t)
		svc, err := newService(ctx, cfg, logger.Nop())
		convey.So(err, convey.ShouldBeNil)
		h := newHandler(ctx, svc, logger.Nop())

		convey.Convey("When posting an applicant", func() {
			body := `{"age": 30, "income": 65000.0, "loan_amount": 20000.0, "credit_score": 720}`
			req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(strings.TrimSpace(w.Body.String()), convey.ShouldEqual, `{"loan_default_probability":0.15}`)
		})

		convey.Convey("When fetching the docs", func() {
			req := httptest.NewRequest(http.MethodGet, "/docs", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "docs-1")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get(api.RequestIDHeader), convey.ShouldEqual, "docs-1")
		})

		convey.Convey("When checking readiness", func() {
			req := httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get(api.RequestIDHeader), convey.ShouldNotBeEmpty)
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("When updating once", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("When the context expires", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		})
	})
}
