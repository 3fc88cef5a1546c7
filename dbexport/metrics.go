package dbexport

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for exports. A nil *Metrics records nothing.
type Metrics struct {
	exports        *prometheus.CounterVec
	rowsExported   prometheus.Counter
	batchesFetched prometheus.Counter
	exportDuration prometheus.Histogram
}

// NewMetrics registers the export collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		exports: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "odbccsv_exports_total",
				Help: "Total number of exports, by result",
			},
			[]string{"result"},
		),
		rowsExported: f.NewCounter(prometheus.CounterOpts{
			Name: "odbccsv_rows_exported_total",
			Help: "Total number of rows written to CSV files",
		}),
		batchesFetched: f.NewCounter(prometheus.CounterOpts{
			Name: "odbccsv_batches_fetched_total",
			Help: "Total number of non-empty row batches fetched",
		}),
		exportDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "odbccsv_export_duration_seconds",
			Help:    "Wall time of one export, from connect to flush",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		}),
	}
}

func (m *Metrics) observeBatch(rows int) {
	if m == nil {
		return
	}
	m.batchesFetched.Inc()
	m.rowsExported.Add(float64(rows))
}

func (m *Metrics) observeExport(ok bool, start time.Time) {
	if m == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	m.exports.WithLabelValues(result).Inc()
	m.exportDuration.Observe(time.Since(start).Seconds())
}
