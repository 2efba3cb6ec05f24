package metrics

import (
	"maps"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultLatencyBuckets are the millisecond buckets used by every latency histogram.
var DefaultLatencyBuckets = []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 5000} //nolint:gochecknoglobals // read-only bucket layout

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace sets the metric namespace; empty keeps "pacetrend".
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem sets the metric subsystem; empty keeps "engine".
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithLatencyBuckets replaces DefaultLatencyBuckets. Values are milliseconds.
func WithLatencyBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = append([]float64(nil), buckets...)
		}
	}
}

// WithConstLabels attaches constant labels, e.g. a deployment name, to every metric.
func WithConstLabels(labels map[string]string) Option {
	return func(m *Manager) {
		if len(labels) > 0 {
			m.constLabels = prometheus.Labels(maps.Clone(labels))
		}
	}
}

// WithPrometheusRegistry registers the metrics on reg instead of the default registerer.
func WithPrometheusRegistry(reg prometheus.Registerer) Option {
	return func(m *Manager) {
		if reg != nil {
			m.registry = reg
		}
	}
}
