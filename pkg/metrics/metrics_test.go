package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Given the package-level helpers", t, func() {
		Convey("When recording business metrics", func() {
			So(func() {
				RecordRecommendationsGenerated(3)
				RecordTransferPlanGenerated()
				RecordGenericPlanFallback()
				RecordProgressUpdate()
				RecordProgressConflict()
				RecordMetricClamps(2)
				RecordMetricClamps(0)
				RecordScoringLatency(12.5)
				RecordStrategyAssigned("similar_level")
			}, ShouldNotPanic)
		})

		Convey("When updating catalog gauges", func() {
			So(func() {
				UpdateCatalogProfiles(6)
				UpdateCatalogMappings(3)
				UpdateTrackedPlans(1)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("/recommendations", "POST", "200")
				RecordHTTPRequestDuration("/recommendations", "POST", "200", 8.0)
				RecordErrorByEndpoint("/progress", "POST", "conflict")
			}, ShouldNotPanic)
		})

		Convey("When recording scoring pipeline metrics", func() {
			So(func() {
				UpdateQueueSize(12)
				UpdateQueueCapacity(4096)
				UpdateQueueUtilization(0.3)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueDrop()
				UpdateWorkerActiveCount(8)
				RecordWorkerProcessingLatency(1.5)
				RecordWorkerError()
			}, ShouldNotPanic)
		})

		Convey("When updating system metrics", func() {
			So(func() {
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(42)
				RecordSystemGCPauseTime(0.25)
			}, ShouldNotPanic)
		})

		Convey("When reading the registry", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
