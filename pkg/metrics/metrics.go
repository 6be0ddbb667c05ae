package metrics

import "time"

// RecordDelta records a nonzero delta forwarded to the aggregator
func (r *Registry) RecordDelta(delta int) {
	if delta > 0 {
		r.DeltasForwarded.WithLabelValues("positive").Inc()
	} else if delta < 0 {
		r.DeltasForwarded.WithLabelValues("negative").Inc()
	}
}

// RecordEstimate records an emitted estimate
func (r *Registry) RecordEstimate(triangles int64) {
	r.EstimatesEmitted.Inc()
	r.EstimateValue.Set(float64(triangles))
}

// RecordRun records a completed pipeline run with its duration
func (r *Registry) RecordRun(duration time.Duration) {
	r.PipelineRuns.Inc()
	r.PipelineDuration.Observe(duration.Seconds())
}
