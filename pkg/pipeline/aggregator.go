package pipeline

import "fmt"

// Aggregator sums forwarded deltas keyed by round number and turns each
// round's sum into a scaled triangle count estimate. Sums are
// independent per round, not cumulative across rounds.
//
// The estimate formula floor((1/sumDelta)*sumDelta*e*(v-2)) collapses
// algebraically to e*(v-2) whenever sumDelta is nonzero, so only the
// zero-ness of a round's sum decides whether an estimate is emitted.
// The collapse is observable behavior and kept as is; see DESIGN.md.
// The estimate is computed in integer form: (1.0/s)*s in floating
// point is below 1.0 for some sums and truncation would then lose 1.
type Aggregator struct {
	sums        map[int]int64
	edgeCount   int64
	vertexCount int64
}

// NewAggregator creates an aggregator with the graph-size scalars used
// by the estimate formula.
func NewAggregator(edgeCount, vertexCount int) (*Aggregator, error) {
	if edgeCount <= 0 {
		return nil, fmt.Errorf("edge count must be positive, got %d", edgeCount)
	}
	if vertexCount < 3 {
		return nil, fmt.Errorf("vertex count must be at least 3, got %d", vertexCount)
	}
	return &Aggregator{
		sums:        make(map[int]int64),
		edgeCount:   int64(edgeCount),
		vertexCount: int64(vertexCount),
	}, nil
}

// Contribute adds a forwarded delta to its round's sum and recomputes
// the round's estimate. The second return value is false when the sum
// is zero: no estimate is emitted for the round until a later nonzero
// contribution.
func (a *Aggregator) Contribute(round, delta int) (Estimate, bool) {
	a.sums[round] += int64(delta)

	sum := a.sums[round]
	if sum == 0 {
		return Estimate{}, false
	}

	return Estimate{Round: round, Triangles: a.edgeCount * (a.vertexCount - 2)}, true
}

// Sum returns the current delta sum for a round.
func (a *Aggregator) Sum(round int) int64 {
	return a.sums[round]
}

// Rounds returns the number of rounds that have received contributions.
func (a *Aggregator) Rounds() int {
	return len(a.sums)
}
