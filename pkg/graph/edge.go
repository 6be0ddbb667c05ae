package graph

import "fmt"

// Edge is an ordered pair of vertex identifiers as it appeared in the
// input stream. The sampling algorithm treats edges as undirected; the
// orientation here is whatever the source produced.
type Edge struct {
	Src uint64
	Trg uint64
}

// SelfLoop reports whether both endpoints are the same vertex.
func (e Edge) SelfLoop() bool {
	return e.Src == e.Trg
}

// String returns the edge in the input file format.
func (e Edge) String() string {
	return fmt.Sprintf("%d %d", e.Src, e.Trg)
}

// Stats holds the size of a loaded edge list.
type Stats struct {
	VertexCount int
	EdgeCount   int
}

// ComputeStats derives vertex and edge counts from an edge list.
func ComputeStats(edges []Edge) Stats {
	seen := make(map[uint64]struct{}, len(edges))
	for _, e := range edges {
		seen[e.Src] = struct{}{}
		seen[e.Trg] = struct{}{}
	}
	return Stats{
		VertexCount: len(seen),
		EdgeCount:   len(edges),
	}
}
