package graph

import (
	"errors"
	"math/rand"
	"testing"
)

func TestRegistry_RegisterIdempotent(t *testing.T) {
	reg := NewVertexRegistry()

	for i := 0; i < 3; i++ {
		if err := reg.Register(42); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	if reg.Len() != 1 {
		t.Errorf("Expected 1 vertex after repeated registration, got %d", reg.Len())
	}
	if !reg.Contains(42) {
		t.Error("Expected registry to contain 42")
	}
}

func TestRegistry_RegisterEdges(t *testing.T) {
	reg := NewVertexRegistry()

	err := reg.RegisterEdges([]Edge{{1, 2}, {2, 3}, {3, 1}})
	if err != nil {
		t.Fatalf("RegisterEdges failed: %v", err)
	}
	if reg.Len() != 3 {
		t.Errorf("Expected 3 vertices, got %d", reg.Len())
	}
}

func TestRegistry_FreezeRejectsRegistration(t *testing.T) {
	reg := NewVertexRegistry()
	reg.Register(1)
	reg.Freeze()

	if err := reg.Register(2); !errors.Is(err, ErrRegistryFrozen) {
		t.Errorf("Expected ErrRegistryFrozen, got %v", err)
	}
	if !reg.Frozen() {
		t.Error("Expected registry to report frozen")
	}
}

func TestRegistry_SampleEmpty(t *testing.T) {
	reg := NewVertexRegistry()
	rng := rand.New(rand.NewSource(1))

	if _, err := reg.Sample(rng); !errors.Is(err, ErrEmptyRegistry) {
		t.Errorf("Expected ErrEmptyRegistry, got %v", err)
	}
	if _, err := reg.SampleExcluding(rng, 1, 2); !errors.Is(err, ErrEmptyRegistry) {
		t.Errorf("Expected ErrEmptyRegistry, got %v", err)
	}
}

func TestRegistry_SampleExcludingInsufficient(t *testing.T) {
	reg := NewVertexRegistry()
	reg.Register(1)
	reg.Register(2)
	rng := rand.New(rand.NewSource(1))

	_, err := reg.SampleExcluding(rng, 1, 2)
	if !errors.Is(err, ErrInsufficientVertices) {
		t.Errorf("Expected ErrInsufficientVertices, got %v", err)
	}
}

func TestRegistry_SampleExcludingDistinct(t *testing.T) {
	reg := NewVertexRegistry()
	for v := uint64(1); v <= 5; v++ {
		reg.Register(v)
	}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		v, err := reg.SampleExcluding(rng, 2, 4)
		if err != nil {
			t.Fatalf("SampleExcluding failed: %v", err)
		}
		if v == 2 || v == 4 {
			t.Fatalf("Sampled excluded vertex %d", v)
		}
	}
}

func TestRegistry_SampleExcludingOnlyChoice(t *testing.T) {
	// With exactly 3 vertices the third is fully determined
	reg := NewVertexRegistry()
	reg.Register(1)
	reg.Register(2)
	reg.Register(3)
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 10; i++ {
		v, err := reg.SampleExcluding(rng, 1, 2)
		if err != nil {
			t.Fatalf("SampleExcluding failed: %v", err)
		}
		if v != 3 {
			t.Fatalf("Expected 3, got %d", v)
		}
	}
}

func TestRegistry_SampleDeterministicWithSeed(t *testing.T) {
	reg := NewVertexRegistry()
	for v := uint64(1); v <= 50; v++ {
		reg.Register(v)
	}

	draw := func(seed int64) []uint64 {
		rng := rand.New(rand.NewSource(seed))
		out := make([]uint64, 20)
		for i := range out {
			v, err := reg.Sample(rng)
			if err != nil {
				t.Fatalf("Sample failed: %v", err)
			}
			out[i] = v
		}
		return out
	}

	first := draw(12345)
	second := draw(12345)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Draw %d differs: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestRegistry_SampleRoughlyUniform(t *testing.T) {
	reg := NewVertexRegistry()
	for v := uint64(0); v < 10; v++ {
		reg.Register(v)
	}
	rng := rand.New(rand.NewSource(3))

	counts := make(map[uint64]int)
	const draws = 10000
	for i := 0; i < draws; i++ {
		v, err := reg.Sample(rng)
		if err != nil {
			t.Fatalf("Sample failed: %v", err)
		}
		counts[v]++
	}

	// Loose bounds: each vertex expects ~1000 draws
	for v := uint64(0); v < 10; v++ {
		if counts[v] < 700 || counts[v] > 1300 {
			t.Errorf("Vertex %d drawn %d times, expected roughly 1000", v, counts[v])
		}
	}
}
