package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for one batch run.
// Each Metrics owns its registry, so runs and tests never collide.
type Metrics struct {
	Registry *prometheus.Registry

	RecordsLoaded     prometheus.Counter
	ProfilesWritten   prometheus.Counter
	IncompleteFields  prometheus.Gauge
	CategoryDefaults  *prometheus.CounterVec // labels: field={Humidity,Light}
	RunFailures       *prometheus.CounterVec // labels: stage={extract,transform,load}
	RunDuration       prometheus.Histogram
	LastSuccessUnixTS prometheus.Gauge
}

// NewMetrics creates all run metrics and registers them with a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crop_etl",
			Name:      "records_loaded_total",
			Help:      "Crop rows read from the source table.",
		}),
		ProfilesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crop_etl",
			Name:      "profiles_written_total",
			Help:      "Crop profiles persisted to the output sink.",
		}),
		IncompleteFields: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crop_etl",
			Name:      "incomplete_fields",
			Help:      "Fields blank or absent in at least one row.",
		}),
		CategoryDefaults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crop_etl",
			Name:      "category_defaults_total",
			Help:      "Unrecognized descriptors replaced by a default, by field.",
		}, []string{"field"}),
		RunFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crop_etl",
			Name:      "run_failures_total",
			Help:      "Fatal run failures by pipeline stage.",
		}, []string{"stage"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crop_etl",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete extract-transform-load run.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		LastSuccessUnixTS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crop_etl",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}

	m.Registry.MustRegister(
		m.RecordsLoaded,
		m.ProfilesWritten,
		m.IncompleteFields,
		m.CategoryDefaults,
		m.RunFailures,
		m.RunDuration,
		m.LastSuccessUnixTS,
	)

	return m
}

// WriteTextfile writes the current metric values to path in the Prometheus
// text exposition format. The write is atomic.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
