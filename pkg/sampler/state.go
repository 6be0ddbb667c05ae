package sampler

import "sort"

// RoundState is the per-round sampling state. One state exists per
// round number; it is created lazily on first access and mutated only
// while processing a token for that round.
type RoundState struct {
	// TrialCount is the number of edges observed in this round so far.
	// Starts at 1 so the first token always resamples (probability 1/1).
	TrialCount int

	// Candidate triangle: the sampled base edge plus a third vertex
	// distinct from both endpoints.
	CandidateSrc   uint64
	CandidateTrg   uint64
	CandidateThird uint64

	// HasCandidate is false until the first resample assigns a
	// candidate. The first token of a round always resamples, so it is
	// only false for states that never processed a token successfully.
	HasCandidate bool

	// SrcEdgeSeen / TrgEdgeSeen flip to true once an edge matching
	// (src,third) or (trg,third), in either orientation, has been
	// observed since the candidate was last resampled.
	SrcEdgeSeen bool
	TrgEdgeSeen bool

	// Beta is 1 exactly when both seen flags hold: the candidate
	// triangle is currently closed.
	Beta int
}

func newRoundState() *RoundState {
	return &RoundState{TrialCount: 1}
}

// StateStore maps round numbers to their sampling state. Rounds the
// pipeline has finalized become eligible for eviction; when the number
// of live states exceeds the cap, finalized states are evicted lowest
// round first. A cap of 0 disables eviction.
type StateStore struct {
	states    map[int]*RoundState
	finalized map[int]bool
	cap       int
	evictions uint64
}

// NewStateStore creates a store that evicts finalized states once more
// than cap states are live. cap <= 0 means unbounded.
func NewStateStore(cap int) *StateStore {
	return &StateStore{
		states:    make(map[int]*RoundState),
		finalized: make(map[int]bool),
		cap:       cap,
	}
}

// Get returns the state for a round, creating it on first access.
func (s *StateStore) Get(round int) *RoundState {
	state, ok := s.states[round]
	if !ok {
		state = newRoundState()
		s.states[round] = state
	}
	return state
}

// Peek returns the state for a round without creating it.
func (s *StateStore) Peek(round int) (*RoundState, bool) {
	state, ok := s.states[round]
	return state, ok
}

// Len returns the number of live round states.
func (s *StateStore) Len() int {
	return len(s.states)
}

// Evictions returns the total number of states evicted so far.
func (s *StateStore) Evictions() uint64 {
	return s.evictions
}

// Finalize marks a round as complete: no further tokens will arrive for
// it, so its state may be evicted if the store is over its cap.
func (s *StateStore) Finalize(round int) {
	if _, ok := s.states[round]; !ok {
		return
	}
	s.finalized[round] = true
	s.evict()
}

// evict removes finalized states, lowest round first, until the store
// is back under its cap.
func (s *StateStore) evict() {
	if s.cap <= 0 || len(s.states) <= s.cap {
		return
	}

	rounds := make([]int, 0, len(s.finalized))
	for r := range s.finalized {
		rounds = append(rounds, r)
	}
	sort.Ints(rounds)

	for _, r := range rounds {
		if len(s.states) <= s.cap {
			break
		}
		delete(s.states, r)
		delete(s.finalized, r)
		s.evictions++
	}
}
