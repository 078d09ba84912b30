package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with the service namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "loanapi")
				So(manager.subsystem, ShouldEqual, "predictor")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("sub"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "sub")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 5, 10})
			})

			Convey("And empty options should keep defaults", func() {
				m := NewManager(WithNamespace(""), WithHistogramBuckets(nil), WithPrometheusRegistry(prometheus.NewRegistry()))
				So(m.namespace, ShouldEqual, "loanapi")
				So(m.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording prediction outcomes", func() {
			before := testutil.ToFloat64(globalManager.predictions.WithLabelValues(OutcomeSuccess))
			RecordPrediction(OutcomeSuccess)
			RecordPrediction(OutcomeSuccess)
			RecordPrediction(OutcomeError)

			Convey("Then the success counter should advance", func() {
				after := testutil.ToFloat64(globalManager.predictions.WithLabelValues(OutcomeSuccess))
				So(after-before, ShouldEqual, 2)
			})
		})

		Convey("When flagging the model as loaded", func() {
			SetModelLoaded(true, 1700000000)

			Convey("Then the gauge should read 1", func() {
				So(testutil.ToFloat64(globalManager.modelLoaded), ShouldEqual, 1)
				So(testutil.ToFloat64(globalManager.modelLoadTimestamp), ShouldEqual, 1700000000)
			})

			Convey("And clearing it should read 0", func() {
				SetModelLoaded(false, 1700000001)
				So(testutil.ToFloat64(globalManager.modelLoaded), ShouldEqual, 0)
			})
		})

		Convey("When recording latency, HTTP, error and system metrics", func() {
			So(func() {
				RecordPredictionLatency(1.5)
				RecordPredictionProbability(0.15)
				RecordHTTPRequest("predict", "POST", "200")
				RecordHTTPRequestDuration("predict", "POST", "200", 3.0)
				RecordErrorByType("server_error", "high")
				RecordErrorByEndpoint("predict", "POST", "server_error")
				UpdateSystemMemoryUsage(1024 * 1024)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.4)
			}, ShouldNotPanic)
		})

		Convey("When gathering from the custom registry", func() {
			RecordPrediction(OutcomeUnavailable)
			families, err := GetRegistry().Gather()

			Convey("Then service metric families should be present", func() {
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "loanapi_predictor_predictions_total")
				So(names, ShouldContain, "loanapi_predictor_model_loaded")
			})
		})
	})
}
