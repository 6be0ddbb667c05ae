// Package metrics exposes Prometheus metrics for the streaming
// triangle-count estimator.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Stream metrics
	TokensProcessed   prometheus.Counter
	TokensLost        prometheus.Counter
	ResamplesTotal    prometheus.Counter
	DeltasForwarded   *prometheus.CounterVec
	EstimatesEmitted  prometheus.Counter
	EstimatesSkipped  prometheus.Counter
	CurrentRound      prometheus.Gauge
	RoundsFinalized   prometheus.Counter
	RoundStatesLive   prometheus.Gauge
	StateEvictions    prometheus.Counter
	EstimateValue     prometheus.Gauge
	PipelineRuns      prometheus.Counter
	PipelineDuration  prometheus.Histogram

	// System metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initStreamMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
