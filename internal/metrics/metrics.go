package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for dataset loading and queries.
type Metrics struct {
	// Query latency by query name
	QueryLatency *prometheus.HistogramVec

	// Query outcomes by query name and result ("ok", "empty", "error")
	QueryOutcome *prometheus.CounterVec

	// Rows ingested per source and status ("accepted", "rejected", "skipped", "malformed")
	IngestedRows *prometheus.GaugeVec

	// Load duration per source
	LoadLatency *prometheus.HistogramVec
}

// New registers the metrics with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		QueryLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "migmap_query_duration_seconds",
			Help:    "Duration of classification and country queries",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}, []string{"query"}),

		QueryOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "migmap_queries_total",
			Help: "Total queries by name and outcome",
		}, []string{"query", "outcome"}),

		IngestedRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "migmap_ingested_rows",
			Help: "Rows read from each source at load time, by status",
		}, []string{"source", "status"}),

		LoadLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "migmap_load_duration_seconds",
			Help:    "Duration of loading each source",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
	}
}

// ObserveQuery records the duration and outcome of a query.
func (m *Metrics) ObserveQuery(query, outcome string, d time.Duration) {
	if m != nil {
		m.QueryLatency.WithLabelValues(query).Observe(d.Seconds())
		m.QueryOutcome.WithLabelValues(query, outcome).Inc()
	}
}

// SetIngested records the row counts of a source.
func (m *Metrics) SetIngested(source string, accepted, rejected, skipped, malformed int) {
	if m != nil {
		m.IngestedRows.WithLabelValues(source, "accepted").Set(float64(accepted))
		m.IngestedRows.WithLabelValues(source, "rejected").Set(float64(rejected))
		m.IngestedRows.WithLabelValues(source, "skipped").Set(float64(skipped))
		m.IngestedRows.WithLabelValues(source, "malformed").Set(float64(malformed))
	}
}

// ObserveLoad records how long a source took to load.
func (m *Metrics) ObserveLoad(source string, d time.Duration) {
	if m != nil {
		m.LoadLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}
