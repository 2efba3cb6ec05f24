package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given a manager configuration", t, func() {
		m := &Manager{namespace: "pacetrend", subsystem: "engine", histogramBuckets: DefaultLatencyBuckets}

		Convey("When applying every option", func() {
			buckets := []float64{1, 10, 100}
			labels := map[string]string{"env": "test"}
			reg := prometheus.NewRegistry()
			for _, opt := range []Option{
				WithNamespace("ns"),
				WithSubsystem("sub"),
				WithLatencyBuckets(buckets),
				WithConstLabels(labels),
				WithPrometheusRegistry(reg),
			} {
				opt(m)
			}

			Convey("Then the manager should hold private copies of the values", func() {
				So(m.namespace, ShouldEqual, "ns")
				So(m.subsystem, ShouldEqual, "sub")
				So(m.histogramBuckets, ShouldResemble, buckets)
				So(m.constLabels, ShouldResemble, prometheus.Labels{"env": "test"})
				So(m.registry, ShouldEqual, reg)

				buckets[0] = 2
				labels["env"] = "prod"
				So(m.histogramBuckets[0], ShouldEqual, 1)
				So(m.constLabels["env"], ShouldEqual, "test")
			})
		})

		Convey("When applying empty values", func() {
			WithNamespace("")(m)
			WithLatencyBuckets(nil)(m)
			WithPrometheusRegistry(nil)(m)

			Convey("Then the defaults should be kept", func() {
				So(m.namespace, ShouldEqual, "pacetrend")
				So(m.histogramBuckets, ShouldResemble, DefaultLatencyBuckets)
				So(m.registry, ShouldBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "pacetrend")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithLatencyBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test", "version": "1.0"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then metric names and labels should follow the options", func() {
				So(manager, ShouldNotBeNil)
				manager.reportsGenerated.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, f := range families {
					if f.GetName() == "test_namespace_test_subsystem_reports_generated_total" {
						found = true
						So(len(f.GetMetric()[0].GetLabel()), ShouldEqual, 2)
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording ingestion metrics", func() {
			before := sample("pacetrend_engine_activities_ignored_total", "")
			RecordActivitiesIgnored(3)

			Convey("Then counters should advance", func() {
				So(sample("pacetrend_engine_activities_ignored_total", ""), ShouldEqual, before+3)
				So(func() {
					RecordActivitiesIngested("api", 10)
					RecordActivityRejected("missing_field")
					UpdateStoredActivities(42)
				}, ShouldNotPanic)
				So(sample("pacetrend_engine_stored_activities", ""), ShouldEqual, 42.0)
			})
		})

		Convey("When recording aggregation metrics", func() {
			So(func() {
				RecordReportLatency(1.5)
				RecordMonthlyBucketsDropped(2)
				UpdateWeeklyBuckets(52)
				UpdatePersonalBests("5K", 3)
			}, ShouldNotPanic)
			So(sample("pacetrend_engine_personal_bests", "5K"), ShouldEqual, 3.0)
		})

		Convey("When recording source metrics", func() {
			So(func() {
				RecordSourceFetch("strava", "ok", 120)
				RecordSourceFetch("csv", "error", 3)
				RecordTokenRefresh()
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP and error metrics", func() {
			So(func() {
				RecordHTTPRequest("/report", "GET", "200")
				RecordHTTPRequestDuration("/report", "GET", "200", 5.0)
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("/activities", "POST", "client_error")
				RecordErrorLatency("http", "client_error", 2.0)
			}, ShouldNotPanic)
		})

		Convey("When recording system metrics", func() {
			So(func() {
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.4)
			}, ShouldNotPanic)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the global registry", t, func() {
		UpdateStoredActivities(7)
		families, err := GetRegistry().Gather()
		So(err, ShouldBeNil)

		var names []string
		for _, f := range families {
			names = append(names, f.GetName())
		}
		So(strings.Join(names, ","), ShouldContainSubstring, "pacetrend_engine_stored_activities")
	})
}

// sample reads the current value of a counter or gauge from the global registry.
// A non-empty label selects the series whose first label value matches.
func sample(name, label string) float64 {
	families, err := GetRegistry().Gather()
	if err != nil {
		panic(err)
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			if label != "" && (len(m.GetLabel()) == 0 || m.GetLabel()[0].GetValue() != label) {
				continue
			}
			if c := m.GetCounter(); c != nil {
				return c.GetValue()
			}
			return m.GetGauge().GetValue()
		}
	}
	return 0
}
