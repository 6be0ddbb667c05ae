package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initStreamMetrics() {
	r.TokensProcessed = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "streamcount_tokens_processed_total",
			Help: "Total number of (edge, round) tokens processed by the sampler",
		},
	)

	r.TokensLost = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "streamcount_tokens_lost_total",
			Help: "Tokens aborted by a sampling error and dropped from the feedback loop",
		},
	)

	r.ResamplesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "streamcount_resamples_total",
			Help: "Total number of candidate triangle resamples across all rounds",
		},
	)

	r.DeltasForwarded = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamcount_deltas_forwarded_total",
			Help: "Nonzero deltas forwarded to the aggregator",
		},
		[]string{"sign"},
	)

	r.EstimatesEmitted = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "streamcount_estimates_emitted_total",
			Help: "Estimate records emitted by the aggregator",
		},
	)

	r.EstimatesSkipped = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "streamcount_estimates_skipped_total",
			Help: "Estimate emissions skipped because a round's delta sum was zero",
		},
	)

	r.CurrentRound = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "streamcount_current_round",
			Help: "Highest round number currently being processed",
		},
	)

	r.RoundsFinalized = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "streamcount_rounds_finalized_total",
			Help: "Rounds whose last token has passed through the sampler",
		},
	)

	r.RoundStatesLive = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "streamcount_round_states_live",
			Help: "Round states currently held in the state store",
		},
	)

	r.StateEvictions = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "streamcount_state_evictions_total",
			Help: "Finalized round states evicted from the state store",
		},
	)

	r.EstimateValue = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "streamcount_estimate_triangles",
			Help: "Most recently emitted triangle count estimate",
		},
	)

	r.PipelineRuns = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "streamcount_pipeline_runs_total",
			Help: "Completed pipeline runs",
		},
	)

	r.PipelineDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "streamcount_pipeline_duration_seconds",
			Help:    "Wall-clock duration of a full pipeline run",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
	)
}
