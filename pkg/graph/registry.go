package graph

import (
	"errors"
	"math/rand"
)

var (
	// ErrEmptyRegistry is returned when sampling is requested before any
	// vertex has been registered.
	ErrEmptyRegistry = errors.New("vertex registry is empty")

	// ErrInsufficientVertices is returned when a third vertex is requested
	// from a registry too small to ever yield one distinct from the
	// excluded pair.
	ErrInsufficientVertices = errors.New("vertex registry has fewer than 3 vertices")

	// ErrRegistryFrozen is returned when registering after Freeze.
	ErrRegistryFrozen = errors.New("vertex registry is frozen")
)

// VertexRegistry is the set of all vertex identifiers seen in the
// input. It is built in a distinct pass before sampling starts, then
// frozen; a frozen registry is immutable and safe for concurrent reads.
type VertexRegistry struct {
	ids    []uint64
	index  map[uint64]struct{}
	frozen bool
}

// NewVertexRegistry creates an empty registry.
func NewVertexRegistry() *VertexRegistry {
	return &VertexRegistry{
		index: make(map[uint64]struct{}),
	}
}

// Register adds a vertex if absent. Registering an already-known vertex
// is a no-op; registering after Freeze is an error.
func (r *VertexRegistry) Register(v uint64) error {
	if r.frozen {
		return ErrRegistryFrozen
	}
	if _, ok := r.index[v]; ok {
		return nil
	}
	r.index[v] = struct{}{}
	r.ids = append(r.ids, v)
	return nil
}

// RegisterEdges registers both endpoints of every edge.
func (r *VertexRegistry) RegisterEdges(edges []Edge) error {
	for _, e := range edges {
		if err := r.Register(e.Src); err != nil {
			return err
		}
		if err := r.Register(e.Trg); err != nil {
			return err
		}
	}
	return nil
}

// Freeze marks the registry immutable. Idempotent.
func (r *VertexRegistry) Freeze() {
	r.frozen = true
}

// Frozen reports whether the registry has been frozen.
func (r *VertexRegistry) Frozen() bool {
	return r.frozen
}

// Len returns the number of registered vertices.
func (r *VertexRegistry) Len() int {
	return len(r.ids)
}

// Contains reports whether v has been registered.
func (r *VertexRegistry) Contains(v uint64) bool {
	_, ok := r.index[v]
	return ok
}

// Sample returns one vertex chosen uniformly at random from the
// registered set, using the supplied random source.
func (r *VertexRegistry) Sample(rng *rand.Rand) (uint64, error) {
	if len(r.ids) == 0 {
		return 0, ErrEmptyRegistry
	}
	return r.ids[rng.Intn(len(r.ids))], nil
}

// SampleExcluding draws vertices until one distinct from both a and b is
// obtained. The draw loop terminates for any registry of size >= 3, so
// smaller registries fail fast instead of looping forever.
func (r *VertexRegistry) SampleExcluding(rng *rand.Rand, a, b uint64) (uint64, error) {
	if len(r.ids) == 0 {
		return 0, ErrEmptyRegistry
	}
	if len(r.ids) < 3 {
		return 0, ErrInsufficientVertices
	}
	for {
		v := r.ids[rng.Intn(len(r.ids))]
		if v != a && v != b {
			return v, nil
		}
	}
}
