package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespace(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		want        string
	}{
		{"plain", "mongolens", "mongolens"},
		{"dashes and dots", "mongo-lens.v2", "mongo_lens_v2"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Namespace(tt.serviceName))
		})
	}
}

func TestMetricsRecordUnderNamespace(t *testing.T) {
	m := NewMetrics("mongo-lens")
	m.RegisterCounter("connects_total", "connects")
	m.RegisterCounterVec("errors_total", "errors", []string{"kind"})
	m.RegisterGauge("clients", "clients")
	m.RegisterHistogramVec("duration_seconds", "duration", []float64{0.1, 1}, []string{"operation"})

	m.IncCounter("connects_total")
	m.AddCounter("connects_total", 2)
	m.IncCounterVec("errors_total", "connection")
	m.SetGauge("clients", 3)
	m.ObserveHistogramVec("duration_seconds", 0.05, "query")

	// unknown names are ignored
	m.IncCounter("missing")
	m.IncCounterVec("missing", "x")

	families, err := m.GetRegistry().Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		metric := mf.GetMetric()[0]
		switch {
		case metric.GetCounter() != nil:
			values[mf.GetName()] = metric.GetCounter().GetValue()
		case metric.GetGauge() != nil:
			values[mf.GetName()] = metric.GetGauge().GetValue()
		case metric.GetHistogram() != nil:
			values[mf.GetName()] = float64(metric.GetHistogram().GetSampleCount())
		}
	}

	assert.Equal(t, 3.0, values["mongo_lens_connects_total"])
	assert.Equal(t, 1.0, values["mongo_lens_errors_total"])
	assert.Equal(t, 3.0, values["mongo_lens_clients"])
	assert.Equal(t, 1.0, values["mongo_lens_duration_seconds"])
	assert.Contains(t, values, "go_goroutines")
}
