package interfaces

import "github.com/prometheus/client_golang/prometheus"

// Metrics records service and pool metrics by registered name.
type Metrics interface {
	GetRegistry() *prometheus.Registry
	IncCounter(name string)
	AddCounter(name string, value float64)
	IncCounterVec(name string, labels ...string)
	ObserveHistogramVec(name string, value float64, labels ...string)
	SetGauge(name string, value float64)

	RegisterCounter(name, help string)
	RegisterCounterVec(name, help string, labels []string)
	RegisterHistogramVec(name, help string, buckets []float64, labels []string)
	RegisterGauge(name, help string)
}
