package pipeline

import (
	"fmt"

	"github.com/dd0wney/cluso-streamcount/pkg/sampler"
)

// Decision is the router's verdict for one sampler outcome. Both flags
// may hold at once: a token can continue the loop and contribute to the
// aggregate from the same event.
type Decision struct {
	Recirculate bool
	Forward     bool
}

// Router decides, for each sampler outcome, whether the token loops
// back into the sampler and whether its delta is forwarded to the
// aggregator. It is pure dispatch; no sampling logic lives here.
type Router struct {
	maxRounds int
}

// NewRouter creates a router with the given round budget.
func NewRouter(maxRounds int) (*Router, error) {
	if maxRounds <= 0 {
		return nil, fmt.Errorf("max rounds must be positive, got %d", maxRounds)
	}
	return &Router{maxRounds: maxRounds}, nil
}

// MaxRounds returns the configured round budget.
func (r *Router) MaxRounds() int {
	return r.maxRounds
}

// Route inspects an outcome. Recirculate holds iff the next round is
// below the budget; Forward holds iff the delta is nonzero.
func (r *Router) Route(out sampler.Outcome) Decision {
	return Decision{
		Recirculate: out.NextRound < r.maxRounds,
		Forward:     out.Delta != 0,
	}
}
