package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ImportMetrics records pipeline observations as prometheus series labelled
// by entity.
type ImportMetrics struct {
	parsedRows    *prometheus.CounterVec
	importedRows  *prometheus.CounterVec
	batchDuration *prometheus.HistogramVec
	batches       *prometheus.CounterVec
}

func NewImportMetrics(reg prometheus.Registerer) *ImportMetrics {
	factory := promauto.With(reg)
	return &ImportMetrics{
		parsedRows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "imports",
			Name:      "parsed_rows_total",
			Help:      "Rows parsed into import previews, by validity.",
		}, []string{"entity", "valid"}),
		importedRows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "imports",
			Name:      "rows_total",
			Help:      "Rows attempted by batch imports, by result.",
		}, []string{"entity", "result"}),
		batchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "imports",
			Name:      "batch_duration_seconds",
			Help:      "Wall time of confirmed import batches.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"entity"}),
		batches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "imports",
			Name:      "batches_total",
			Help:      "Confirmed import batches, by whether they were cancelled.",
		}, []string{"entity", "cancelled"}),
	}
}

func (m *ImportMetrics) ObserveParse(entity string, valid, invalid int) {
	m.parsedRows.WithLabelValues(entity, "true").Add(float64(valid))
	m.parsedRows.WithLabelValues(entity, "false").Add(float64(invalid))
}

func (m *ImportMetrics) ObserveRow(entity string, success bool) {
	result := "failed"
	if success {
		result = "succeeded"
	}
	m.importedRows.WithLabelValues(entity, result).Inc()
}

func (m *ImportMetrics) ObserveBatch(entity string, elapsed time.Duration, cancelled bool) {
	m.batchDuration.WithLabelValues(entity).Observe(elapsed.Seconds())
	m.batches.WithLabelValues(entity, strconv.FormatBool(cancelled)).Inc()
}
