package pipeline

import "github.com/dd0wney/cluso-streamcount/pkg/graph"

// Token is one unit of work flowing through the feedback loop: an edge
// at a given round, carrying the delta computed when it last passed
// through the sampler. Tokens are immutable values; recirculation
// produces a new token with the incremented round.
type Token struct {
	Edge  graph.Edge
	Round int
	Delta int
}

// TopicEstimates is the pubsub topic estimate records are published on.
const TopicEstimates = "estimates"

// Estimate is the terminal output record for a round: the round number
// and the scaled triangle count estimate derived from its delta sum.
type Estimate struct {
	Round     int   `json:"round"`
	Triangles int64 `json:"triangles"`
}
