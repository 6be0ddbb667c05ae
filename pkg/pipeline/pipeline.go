// Package pipeline wires the triangle sampler, feedback router, and
// aggregator into a serialized feedback loop over a stream of edges.
package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-streamcount/pkg/graph"
	"github.com/dd0wney/cluso-streamcount/pkg/logging"
	"github.com/dd0wney/cluso-streamcount/pkg/metrics"
	"github.com/dd0wney/cluso-streamcount/pkg/pubsub"
	"github.com/dd0wney/cluso-streamcount/pkg/sampler"
)

// compactThreshold is the number of consumed queue slots tolerated
// before the recirculation queue's backing array is compacted.
const compactThreshold = 1 << 15

// Config holds the pipeline's tunable parameters.
type Config struct {
	// MaxRounds is the round budget: tokens stop recirculating once
	// their round reaches this bound.
	MaxRounds int

	// EdgeCount and VertexCount are the graph-size scalars used by the
	// estimate formula.
	EdgeCount   int
	VertexCount int

	// StateCap bounds the number of live round states; 0 disables
	// eviction.
	StateCap int

	// Seed initializes the pipeline's random source. Identical seeds
	// and inputs produce identical estimate sequences.
	Seed int64
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline's logger.
func WithLogger(l logging.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithMetrics sets the metrics registry the pipeline reports into.
func WithMetrics(m *metrics.Registry) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithBus sets a pubsub bus estimates are published on, in addition to
// the per-run sink.
func WithBus(b *pubsub.PubSub) Option {
	return func(p *Pipeline) { p.bus = b }
}

// Pipeline drives tokens through Sampler -> Router -> (recirculate
// and/or forward) strictly one at a time, preserving a single global
// ordering of edge observations per round.
type Pipeline struct {
	sampler *sampler.Sampler
	router  *Router
	agg     *Aggregator
	log     logging.Logger
	metrics *metrics.Registry
	bus     *pubsub.PubSub
	runID   string
}

// New builds a pipeline over a frozen vertex registry.
func New(registry *graph.VertexRegistry, cfg Config, opts ...Option) (*Pipeline, error) {
	router, err := NewRouter(cfg.MaxRounds)
	if err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}

	agg, err := NewAggregator(cfg.EdgeCount, cfg.VertexCount)
	if err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}

	store := sampler.NewStateStore(cfg.StateCap)
	rng := rand.New(rand.NewSource(cfg.Seed))
	smp, err := sampler.New(registry, store, rng)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		sampler: smp,
		router:  router,
		agg:     agg,
		runID:   uuid.NewString(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logging.DefaultLogger()
	}
	if p.metrics == nil {
		p.metrics = metrics.DefaultRegistry()
	}
	p.log = p.log.With(logging.Component("pipeline"), logging.RunID(p.runID))

	return p, nil
}

// RunID returns the unique identifier of this pipeline instance.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Aggregator returns the pipeline's aggregator, for inspecting
// per-round delta sums after a run.
func (p *Pipeline) Aggregator() *Aggregator {
	return p.agg
}

// Store returns the pipeline's round-state store.
func (p *Pipeline) Store() *sampler.StateStore {
	return p.sampler.Store()
}

// Run feeds every edge through the feedback loop until all tokens have
// exhausted the round budget, calling sink for each emitted estimate.
// Tokens aborted by a sampling error are dropped; the loop continues.
// Run returns early only on context cancellation.
func (p *Pipeline) Run(ctx context.Context, edges []graph.Edge, sink func(Estimate)) error {
	start := time.Now()

	queue := make([]Token, 0, len(edges))
	for _, e := range edges {
		queue = append(queue, Token{Edge: e})
	}

	// pending[r] counts tokens that still have to pass through round r.
	// Tokens recirculate strictly r -> r+1 and the queue is FIFO, so
	// when pending[r] drains the round is complete and its state can be
	// evicted.
	pending := map[int]int{0: len(queue)}
	head := 0
	maxRoundSeen := 0
	emitted := 0
	var evicted uint64

	for head < len(queue) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		tok := queue[head]
		head++
		if head >= compactThreshold {
			queue = append(queue[:0:0], queue[head:]...)
			head = 0
		}

		out, err := p.sampler.Process(tok.Edge, tok.Round)
		if err != nil {
			// Token lost; acceptable because the estimator is
			// approximate and self-correcting over many edges
			p.metrics.TokensLost.Inc()
			p.log.Warn("token aborted",
				logging.Round(tok.Round),
				logging.String("edge", tok.Edge.String()),
				logging.Error(err))
		} else {
			p.metrics.TokensProcessed.Inc()
			if out.Resampled {
				p.metrics.ResamplesTotal.Inc()
			}

			decision := p.router.Route(out)
			if decision.Forward {
				p.metrics.RecordDelta(out.Delta)
				if est, ok := p.agg.Contribute(out.NextRound, out.Delta); ok {
					emitted++
					p.metrics.RecordEstimate(est.Triangles)
					if sink != nil {
						sink(est)
					}
					if p.bus != nil {
						p.bus.Publish(TopicEstimates, est)
					}
					p.log.Debug("estimate emitted",
						logging.Round(est.Round),
						logging.Estimate(est.Triangles))
				} else {
					p.metrics.EstimatesSkipped.Inc()
				}
			}
			if decision.Recirculate {
				queue = append(queue, Token{Edge: tok.Edge, Round: out.NextRound, Delta: out.Delta})
				pending[out.NextRound]++
				if out.NextRound > maxRoundSeen {
					maxRoundSeen = out.NextRound
					p.metrics.CurrentRound.Set(float64(maxRoundSeen))
				}
			}
		}

		pending[tok.Round]--
		if pending[tok.Round] == 0 {
			delete(pending, tok.Round)
			p.sampler.Store().Finalize(tok.Round)
			p.metrics.RoundsFinalized.Inc()
			p.metrics.RoundStatesLive.Set(float64(p.sampler.Store().Len()))
			if ev := p.sampler.Store().Evictions(); ev > evicted {
				p.metrics.StateEvictions.Add(float64(ev - evicted))
				evicted = ev
			}
		}
	}

	elapsed := time.Since(start)
	p.metrics.RecordRun(elapsed)
	p.log.Info("pipeline run complete",
		logging.Count(len(edges)),
		logging.Int("estimates", emitted),
		logging.Int("rounds", maxRoundSeen+1),
		logging.Latency(elapsed))

	return nil
}
