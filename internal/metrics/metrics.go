package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the various metrics used for monitoring the import.
// It includes counters for runs and rows, and histograms for run and
// statement durations.
type Metrics struct {
	Runs            *prometheus.CounterVec
	RowsExtracted   prometheus.Counter
	RowsInserted    *prometheus.CounterVec
	RunDuration     prometheus.Histogram
	DBQueryDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
// It initializes counters for import runs, extracted workbook rows and
// inserted table rows, as well as histograms for tracking the duration
// of the run and of individual statements.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		Runs: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "charon_runs_total",
			Help: "Total times the import has successfully or unsuccessfully completed.",
		}, []string{"status"}),
		RowsExtracted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "charon_rows_extracted_total",
			Help: "Total number of rows extracted from the source workbook.",
		}),
		RowsInserted: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "charon_rows_inserted_total",
			Help: "Total number of rows inserted, per table.",
		}, []string{"table"}),
		RunDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name: "charon_run_duration_seconds",
			Help: "Measures how long it takes for a full import to complete.",
		}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "charon_db_query_duration_seconds",
			Help:    "Duration of database statements.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'insert_employee', 'insert_contact', ...
	}

	metrics.Runs.WithLabelValues("success")
	metrics.Runs.WithLabelValues("failure")

	return metrics
}
