package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the repair run.
type Metrics struct {
	SpansScanned     prometheus.Counter
	RecordsRecovered *prometheus.CounterVec // labels: method={single_line,reconstructed,fallback}
	RecordsDropped   *prometheus.CounterVec // labels: method={single_line,reconstructed,fallback}
	RepairDuration   prometheus.Histogram
}

// NewMetrics creates and registers all repair metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SpansScanned,
		m.RecordsRecovered,
		m.RecordsDropped,
		m.RepairDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SpansScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storm_repair",
			Name:      "spans_scanned_total",
			Help:      "Total candidate record spans closed by the boundary scanner.",
		}),
		RecordsRecovered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_repair",
			Name:      "records_recovered_total",
			Help:      "Records recovered, by parse method.",
		}, []string{"method"}),
		RecordsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storm_repair",
			Name:      "records_dropped_total",
			Help:      "Unparsable spans dropped, by parse method attempted.",
		}, []string{"method"}),
		RepairDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storm_repair",
			Name:      "repair_duration_seconds",
			Help:      "Duration of a complete read-scan-parse-write run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}
