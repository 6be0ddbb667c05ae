package graph

// ExactResult holds exact triangle counting results: per-vertex counts,
// the global count, and clustering coefficients.
type ExactResult struct {
	PerVertex              map[uint64]int
	GlobalCount            int
	ClusteringCoefficients map[uint64]float64
}

// CountTrianglesExact counts triangles in an edge list, treating all
// edges as undirected. For each vertex u, it iterates over pairs (v,w)
// in u's neighbor set; if v and w are also neighbors, that's a
// triangle. Each triangle is counted once per participating vertex, so
// GlobalCount = sum(PerVertex) / 3. Clustering coefficients are
// computed in the same pass.
//
// This is the verification companion to the streaming estimator: it
// produces the reference count an estimate is judged against.
func CountTrianglesExact(edges []Edge) *ExactResult {
	// Build undirected neighbor sets, excluding self-loops
	neighborSets := make(map[uint64]map[uint64]bool)
	neighbors := func(v uint64) map[uint64]bool {
		set, ok := neighborSets[v]
		if !ok {
			set = make(map[uint64]bool)
			neighborSets[v] = set
		}
		return set
	}
	for _, e := range edges {
		if e.SelfLoop() {
			neighbors(e.Src)
			continue
		}
		neighbors(e.Src)[e.Trg] = true
		neighbors(e.Trg)[e.Src] = true
	}

	perVertex := make(map[uint64]int, len(neighborSets))
	for u, uNeighbors := range neighborSets {
		neighborsSlice := make([]uint64, 0, len(uNeighbors))
		for v := range uNeighbors {
			neighborsSlice = append(neighborsSlice, v)
		}

		count := 0
		for i := 0; i < len(neighborsSlice); i++ {
			v := neighborsSlice[i]
			for j := i + 1; j < len(neighborsSlice); j++ {
				w := neighborsSlice[j]
				if neighborSets[v][w] {
					count++
				}
			}
		}
		perVertex[u] = count
	}

	// GlobalCount: each triangle counted 3 times (once per vertex)
	total := 0
	for _, c := range perVertex {
		total += c
	}

	coefficients := make(map[uint64]float64, len(neighborSets))
	for u := range neighborSets {
		k := len(neighborSets[u])
		if k < 2 {
			coefficients[u] = 0.0
			continue
		}
		possible := k * (k - 1) / 2
		coefficients[u] = float64(perVertex[u]) / float64(possible)
	}

	return &ExactResult{
		PerVertex:              perVertex,
		GlobalCount:            total / 3,
		ClusteringCoefficients: coefficients,
	}
}
