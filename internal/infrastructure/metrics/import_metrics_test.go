package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizdash/import-service/internal/application/importing"
	"github.com/bizdash/import-service/internal/infrastructure/metrics"
)

var _ importing.Metrics = (*metrics.ImportMetrics)(nil)

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func counterValue(mf *dto.MetricFamily, labels map[string]string) float64 {
	for _, m := range mf.GetMetric() {
		matched := true
		for _, lp := range m.GetLabel() {
			if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
				matched = false
			}
		}
		if matched {
			return m.GetCounter().GetValue()
		}
	}
	return -1
}

func TestImportMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.NewImportMetrics(reg)

	m.ObserveParse("contracts", 3, 2)
	m.ObserveRow("contracts", true)
	m.ObserveRow("contracts", true)
	m.ObserveRow("contracts", false)
	m.ObserveBatch("contracts", 1500*time.Millisecond, true)

	families := gather(t, reg)

	require.Contains(t, families, "imports_parsed_rows_total")
	assert.Equal(t, 3.0, counterValue(families["imports_parsed_rows_total"], map[string]string{"valid": "true"}))
	assert.Equal(t, 2.0, counterValue(families["imports_parsed_rows_total"], map[string]string{"valid": "false"}))

	require.Contains(t, families, "imports_rows_total")
	assert.Equal(t, 2.0, counterValue(families["imports_rows_total"], map[string]string{"result": "succeeded"}))
	assert.Equal(t, 1.0, counterValue(families["imports_rows_total"], map[string]string{"result": "failed"}))

	require.Contains(t, families, "imports_batches_total")
	assert.Equal(t, 1.0, counterValue(families["imports_batches_total"], map[string]string{"cancelled": "true"}))

	require.Contains(t, families, "imports_batch_duration_seconds")
	hist := families["imports_batch_duration_seconds"].GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(1), hist.GetSampleCount())
}
