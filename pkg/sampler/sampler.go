// Package sampler implements single-edge reservoir sampling for
// streaming triangle count estimation. Each round maintains one sampled
// candidate triangle; incoming edges either replace the candidate (with
// decaying probability 1/trialCount) or test its completion, and a
// signed delta is emitted whenever the candidate's closed status flips.
package sampler

import (
	"fmt"
	"math/rand"

	"github.com/dd0wney/cluso-streamcount/pkg/graph"
)

// Outcome is the result of processing one (edge, round) token.
type Outcome struct {
	// NextRound is the token's round plus one.
	NextRound int

	// Delta is -1 if the candidate triangle was just broken, +1 if it
	// was just completed, 0 otherwise.
	Delta int

	// Resampled reports whether this token replaced the round's
	// candidate triangle.
	Resampled bool
}

// Sampler consumes one (edge, round) token at a time and advances that
// round's sampling state. It is not safe for concurrent use: token
// processing must be serialized per round, and the coin-flip
// probability is only statistically valid if TrialCount strictly
// reflects the number of edges already processed for the round.
type Sampler struct {
	registry *graph.VertexRegistry
	store    *StateStore
	rng      *rand.Rand
}

// New creates a sampler over a frozen vertex registry. The random
// source drives both the resampling coin and third-vertex selection, so
// a fixed seed makes the whole run reproducible.
func New(registry *graph.VertexRegistry, store *StateStore, rng *rand.Rand) (*Sampler, error) {
	if registry == nil {
		return nil, fmt.Errorf("sampler requires a vertex registry")
	}
	if !registry.Frozen() {
		return nil, fmt.Errorf("vertex registry must be frozen before sampling")
	}
	if registry.Len() < 3 {
		return nil, fmt.Errorf("%w: got %d", graph.ErrInsufficientVertices, registry.Len())
	}
	if store == nil {
		store = NewStateStore(0)
	}
	if rng == nil {
		return nil, fmt.Errorf("sampler requires an explicit random source")
	}
	return &Sampler{registry: registry, store: store, rng: rng}, nil
}

// Store returns the sampler's round-state store.
func (s *Sampler) Store() *StateStore {
	return s.store
}

// Process handles one edge observation for a round.
//
// With probability 1/trialCount the candidate is replaced: the base
// edge becomes the observed edge and a third vertex distinct from both
// endpoints is drawn from the registry, resetting the seen flags. The
// completion test then runs on every token, the trial count advances,
// and the returned delta is the sign of the change in beta.
func (s *Sampler) Process(e graph.Edge, round int) (Outcome, error) {
	state := s.store.Get(round)

	// Reservoir step: keep the current base edge with probability
	// (trialCount-1)/trialCount, replace it with probability 1/trialCount
	resampled := false
	if s.rng.Intn(state.TrialCount) == 0 {
		third, err := s.registry.SampleExcluding(s.rng, e.Src, e.Trg)
		if err != nil {
			return Outcome{}, fmt.Errorf("failed to sample third vertex for round %d: %w", round, err)
		}
		state.CandidateSrc = e.Src
		state.CandidateTrg = e.Trg
		state.CandidateThird = third
		state.HasCandidate = true
		state.SrcEdgeSeen = false
		state.TrgEdgeSeen = false
		resampled = true
	}

	// Completion test, orientation-insensitive
	if state.HasCandidate {
		if (e.Src == state.CandidateSrc && e.Trg == state.CandidateThird) ||
			(e.Src == state.CandidateThird && e.Trg == state.CandidateSrc) {
			state.SrcEdgeSeen = true
		}
		if (e.Src == state.CandidateTrg && e.Trg == state.CandidateThird) ||
			(e.Src == state.CandidateThird && e.Trg == state.CandidateTrg) {
			state.TrgEdgeSeen = true
		}
	}

	state.TrialCount++

	oldBeta := state.Beta
	if state.SrcEdgeSeen && state.TrgEdgeSeen {
		state.Beta = 1
	} else {
		state.Beta = 0
	}

	out := Outcome{NextRound: round + 1, Resampled: resampled}
	switch {
	case state.Beta < oldBeta:
		out.Delta = -1
	case state.Beta > oldBeta:
		out.Delta = 1
	}
	return out, nil
}
